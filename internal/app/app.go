// Package app wires the palette, renderer and web shell into a running
// program.
package app

import (
	"context"
	"errors"
	"image"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/rook-computer/blobposter/internal/config"
	perrors "github.com/rook-computer/blobposter/internal/errors"
	"github.com/rook-computer/blobposter/internal/palette"
	"github.com/rook-computer/blobposter/internal/poster"
	"github.com/rook-computer/blobposter/internal/render"
	"github.com/rook-computer/blobposter/internal/web"
)

type App struct {
	Config   config.Config
	Palette  *palette.Loader
	Renderer *render.RasterRenderer
	Web      web.Server
	Logger   *log.Logger

	exitOnce atomic.Bool
	exitCh   chan error
}

// New builds an App from cfg. A nil logger discards output.
func New(cfg config.Config, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	canvas := render.DefaultCanvas()
	canvas.Width = cfg.Canvas.Width
	canvas.Height = cfg.Canvas.Height
	canvas.DPI = cfg.Canvas.DPI

	app := &App{
		Config:   cfg,
		Palette:  palette.NewLoader(cfg.Colors, logger.WithPrefix("palette")),
		Renderer: render.NewRasterRenderer(canvas, logger.WithPrefix("render")),
		Logger:   logger,
		exitCh:   make(chan error, 1),
	}
	webLogger := logger.WithPrefix("web")
	router := web.NewRouter(web.RouterConfig{
		Palette:   app.Palette,
		Renderer:  app.Renderer,
		Seed:      cfg.Seed,
		StaticDir: cfg.Server.StaticDir,
		DevMode:   cfg.Server.DevMode,
		Logger:    webLogger,
	})
	app.Web = web.NewHTTPServer(cfg.Server.ListenAddr, router, webLogger)
	return app
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Start loads the palette, starts the web server and blocks until ctx is
// cancelled or Exit is called. A broken color table stops startup.
func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)

	pal, err := app.Palette.Get()
	if err != nil {
		return err
	}
	app.Logger.Info("palette ready", "themes", pal.Len(), "file", app.Palette.Path())

	if app.Web == nil {
		app.Web = &web.NoopServer{}
	}
	if err := app.Web.Start(ctx); err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "start web server")
	}
	defer app.Web.Stop()
	if s, ok := app.Web.(*web.HTTPServer); ok {
		app.Logger.Info("poster page ready", "url", "http://"+s.ListenAddr()+"/", "dev", app.Config.Server.DevMode)
	}

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil
		}
		return ctx.Err()
	case err = <-app.exitCh:
		return err
	}
}

// PosterRequest is one generation outside the web shell.
type PosterRequest struct {
	Theme  string
	Wobble float64
	// Seed overrides the configured seed when non-zero.
	Seed uint64
}

// Generate validates req and builds a poster from the loaded palette.
func (app *App) Generate(req PosterRequest) (*poster.Poster, error) {
	if err := poster.ValidateWobble(req.Wobble); err != nil {
		return nil, err
	}
	pal, err := app.Palette.Get()
	if err != nil {
		return nil, err
	}
	seed := req.Seed
	if seed == 0 {
		seed = app.Config.Seed
	}
	return poster.Generate(pal, req.Theme, req.Wobble, poster.NewRand(seed))
}

// WritePoster generates a poster and encodes it to w.
func (app *App) WritePoster(w io.Writer, req PosterRequest, format render.Format) error {
	p, err := app.Generate(req)
	if err != nil {
		return err
	}
	app.Logger.Debug("poster generated", "theme", p.Theme, "wobble", p.Wobble, "format", format)
	return app.Renderer.Encode(w, p, format)
}

// Display renders a poster and shows it on the framebuffer device. When
// pageURL is set, a QR code for it is drawn in the corner.
func (app *App) Display(req PosterRequest, device, pageURL string) error {
	p, err := app.Generate(req)
	if err != nil {
		return err
	}
	img, err := app.Renderer.Render(p)
	if err != nil {
		return err
	}

	var overlay image.Image
	if pageURL != "" {
		overlay, err = render.GenerateQRCodeImage(pageURL, 0)
		if err != nil {
			return perrors.Wrap(perrors.ErrCodeInternal, err, "qr code for %s", pageURL)
		}
	}
	d := &render.FBDisplay{Device: device, Logger: app.Logger.WithPrefix("fb"), Overlay: overlay}
	return d.Show(img)
}
