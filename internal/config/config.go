// Package config loads blobposter settings from an optional TOML file and
// the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	perrors "github.com/rook-computer/blobposter/internal/errors"
)

const (
	// DefaultPath is read when no --config flag is given. It may be absent.
	DefaultPath = "blobposter.toml"

	DefaultColors = "colors.csv"
	DefaultListen = ":8501"

	EnvListenAddr = "BLOBPOSTER_LISTEN"
	EnvDevMode    = "BLOBPOSTER_DEV"
	EnvColors     = "BLOBPOSTER_COLORS"
	EnvStdioLog   = "BLOBPOSTER_STDIO_LOG"
)

// Config is the full set of runtime settings.
type Config struct {
	// Colors is the path to the color table.
	Colors string `toml:"colors"`
	// Seed fixes the random source. 0 means a fresh seed per poster.
	Seed uint64 `toml:"seed"`

	Server ServerConfig `toml:"server"`
	Canvas CanvasConfig `toml:"canvas"`
}

// ServerConfig contains settings for running the HTTP server.
type ServerConfig struct {
	ListenAddr string `toml:"listen"`
	DevMode    bool   `toml:"dev"`
	// StaticDir, when set, is served at "/" instead of the embedded UI.
	StaticDir string `toml:"static_dir"`
}

// CanvasConfig is the figure size used for rendering.
type CanvasConfig struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	DPI    float64 `toml:"dpi"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Colors: DefaultColors,
		Server: ServerConfig{ListenAddr: DefaultListen},
		Canvas: CanvasConfig{Width: 700, Height: 1000, DPI: 100},
	}
}

// Load reads path over the defaults. A missing file is only an error when
// explicit is set.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return Config{}, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, perrors.New(perrors.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ApplyEnv overrides settings from BLOBPOSTER_* variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvListenAddr); v != "" {
		c.Server.ListenAddr = v
	}
	if v := os.Getenv(EnvColors); v != "" {
		c.Colors = v
	}
	if raw := os.Getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "%s must be a boolean (got %q)", EnvDevMode, raw)
		}
		c.Server.DevMode = parsed
	}
	return nil
}

// Validate checks the settings are usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Colors) == "" {
		return perrors.New(perrors.ErrCodeInvalidConfig, "colors path is empty")
	}
	if c.Server.ListenAddr == "" {
		return perrors.New(perrors.ErrCodeInvalidConfig, "server listen address is empty")
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.DPI <= 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "canvas dpi must be positive, got %v", c.Canvas.DPI)
	}
	if c.Server.StaticDir != "" {
		st, err := os.Stat(c.Server.StaticDir)
		if err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "static_dir %s", c.Server.StaticDir)
		}
		if !st.IsDir() {
			return perrors.New(perrors.ErrCodeInvalidConfig, "static_dir %s is not a directory", c.Server.StaticDir)
		}
	}
	return nil
}
