// Package cli implements the blobposter command-line interface.
//
// The default command serves the poster page. Other commands render a
// single poster to a file, list the themes in the color table, or show a
// poster on a framebuffer.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/rook-computer/blobposter/internal/app"
	"github.com/rook-computer/blobposter/internal/config"
)

const appName = "blobposter"

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information printed by the version command.
// main calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer

	// RedirectStdIO, when set, is called with the --stdio-log path before
	// any command runs.
	RedirectStdIO func(path string) error

	configPath string
	colors     string
	verbose    bool
	stdioLog   string
}

// New creates a CLI that prints results to out and logs to logOut.
func New(out, logOut io.Writer) *CLI {
	return &CLI{
		Logger: app.NewLogger(logOut, false),
		Out:    out,
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	serve := c.serveCommand()

	root := &cobra.Command{
		Use:           appName,
		Short:         "Generative blob posters from a CSV color table",
		Long:          `blobposter reads a CSV table of named colors and generates posters of translucent, wobbly blobs in the chosen color. It serves an interactive page by default.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.Logger.SetLevel(log.DebugLevel)
			}
			path := c.stdioLog
			if path == "" {
				path = os.Getenv(config.EnvStdioLog)
			}
			if path != "" && c.RedirectStdIO != nil {
				if err := c.RedirectStdIO(path); err != nil {
					c.Logger.Error("stdio log redirect failed", "path", path, "err", err)
				}
			}
			return nil
		},
		RunE: serve.RunE,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", config.DefaultPath, "path to the TOML config file")
	pf.StringVar(&c.colors, "colors", "", "path to the CSV color table (overrides config)")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&c.stdioLog, "stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+config.EnvStdioLog)
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve)
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.themesCommand())
	root.AddCommand(c.displayCommand())
	root.AddCommand(c.versionCommand())
	return root
}

// loadConfig merges the config file, environment and global flags.
func (c *CLI) loadConfig(cmd *cobra.Command) (config.Config, error) {
	explicit := cmd.Flags().Changed("config")
	cfg, err := config.Load(c.configPath, explicit)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return config.Config{}, err
	}
	if c.colors != "" {
		cfg.Colors = c.colors
	}
	return cfg, nil
}

// newApp loads the config and builds the App for a command.
func (c *CLI) newApp(cmd *cobra.Command, mutate func(*config.Config)) (*app.App, error) {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if mutate != nil {
		mutate(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c.Logger.Debug("config loaded", "colors", cfg.Colors, "listen", cfg.Server.ListenAddr, "seed", cfg.Seed)
	return app.New(cfg, c.Logger), nil
}
