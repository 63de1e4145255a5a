package web

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rook-computer/blobposter/internal/assets"
	"github.com/rook-computer/blobposter/internal/render"
)

// RouterConfig wires the HTTP handlers to the rest of the program.
type RouterConfig struct {
	Palette  PaletteSource
	Renderer *render.RasterRenderer
	// Seed is used when a request does not pass one. 0 means unseeded.
	Seed uint64

	// StaticDir, when set to an existing directory, is served at "/"
	// instead of the embedded UI.
	StaticDir string
	DevMode   bool
	Logger    *log.Logger
}

// NewRouter builds the standard router:
// - /api/v1/* for the API
// - /healthz for liveness
// - / for the web UI
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = render.NewRasterRenderer(render.DefaultCanvas(), logger)
	}
	api := &apiV1{palette: cfg.Palette, renderer: renderer, seed: cfg.Seed, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	if cfg.DevMode {
		r.Use(WithDevCORS)
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Get("/healthz", handleHealthz)
	r.Route("/api/v1", func(r chi.Router) {
		r.NotFound(notFound)
		r.MethodNotAllowed(methodNotAllowed)
		r.Get("/themes", api.handleThemes)
		r.Get("/poster", api.handlePoster)
		r.Get("/qr.png", api.handleQRCode)
	})
	r.Handle("/*", staticHandler(cfg.StaticDir))
	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeAPIError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeAPIError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
}

// requestLogger logs one line per request after it completes.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			fields := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Microsecond),
			}
			if id := ww.Header().Get(HeaderPosterID); id != "" {
				fields = append(fields, "poster_id", id)
			}
			if ww.Status() >= http.StatusInternalServerError {
				logger.Error("request", fields...)
				return
			}
			logger.Info("request", fields...)
		})
	}
}

func staticHandler(dir string) http.Handler {
	if dir == "" {
		fileServer := http.FileServer(http.FS(assets.WebUI))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Clean path to avoid oddities.
			r.URL.Path = filepath.ToSlash(filepath.Clean("/" + r.URL.Path))
			fileServer.ServeHTTP(w, r)
		})
	}

	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return http.HandlerFunc(http.NotFound)
	}

	fileServer := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = filepath.ToSlash(filepath.Clean("/" + r.URL.Path))
		fileServer.ServeHTTP(w, r)
	})
}
