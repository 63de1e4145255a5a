package render

import (
	"image"
	"image/draw"
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	perrors "github.com/rook-computer/blobposter/internal/errors"
	"github.com/rook-computer/blobposter/internal/poster"
	"github.com/rook-computer/blobposter/internal/render/layout"
)

// RasterRenderer paints posters onto an RGBA canvas. It is safe for
// concurrent use; every Render call gets its own canvas.
type RasterRenderer struct {
	Canvas Canvas
	Logger *log.Logger

	fontOnce sync.Once
	ttFont   *truetype.Font
}

// NewRasterRenderer returns a renderer for canvas. A nil logger is allowed.
func NewRasterRenderer(canvas Canvas, logger *log.Logger) *RasterRenderer {
	return &RasterRenderer{Canvas: canvas, Logger: logger}
}

// Render draws p: white figure, background-filled plotting area, blobs
// clipped to the plotting area with flat alpha compositing, then labels.
func (r *RasterRenderer) Render(p *poster.Poster) (*image.RGBA, error) {
	if p == nil {
		return nil, perrors.New(perrors.ErrCodeInternal, "nil poster")
	}
	if r.Canvas.Width <= 0 || r.Canvas.Height <= 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidConfig, "canvas size %dx%d", r.Canvas.Width, r.Canvas.Height)
	}
	r.loadFont()

	canvas := image.NewRGBA(r.Canvas.Bounds())
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: FigureBackground}, image.Point{}, draw.Src)

	axes := r.Canvas.Axes()
	frame := r.Canvas.Frame()
	draw.Draw(canvas, axes, &image.Uniform{C: p.Background.NRGBA(1)}, image.Point{}, draw.Src)

	raster := vector.NewRasterizer(r.Canvas.Width, r.Canvas.Height)
	for _, b := range p.Blobs {
		poly := make([]layout.Pt, len(b.Points))
		for i, pt := range b.Points {
			poly[i] = frame.Project(pt.X, pt.Y)
		}
		poly = layout.ClipPolygon(poly, axes)
		if len(poly) < 3 {
			continue
		}
		raster.Reset(r.Canvas.Width, r.Canvas.Height)
		raster.DrawOp = draw.Over
		fillPolygon(raster, poly)
		raster.Draw(canvas, canvas.Bounds(), &image.Uniform{C: b.Color.NRGBA(b.Alpha)}, image.Point{})
	}

	for _, l := range p.Labels {
		at := frame.Project(l.X, l.Y)
		src := &image.Uniform{C: l.Color.NRGBA(l.Alpha)}
		if err := r.drawText(canvas, l.Text, at, r.Canvas.PointsToPixels(l.FontSize), src); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "draw label %q", l.Text)
		}
	}
	return canvas, nil
}

func fillPolygon(z *vector.Rasterizer, poly []layout.Pt) {
	z.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, p := range poly[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
}

// loadFont parses the embedded Go Regular face once. On failure text falls
// back to the fixed-size basicfont.
func (r *RasterRenderer) loadFont() {
	r.fontOnce.Do(func() {
		tt, err := truetype.Parse(goregular.TTF)
		if err != nil {
			if r.Logger != nil {
				r.Logger.Error("truetype parse failed, using basicfont", "err", err)
			}
			return
		}
		r.ttFont = tt
		if r.Logger != nil {
			r.Logger.Debug("truetype font parsed for freetype")
		}
	})
}

// drawText draws text with its baseline-left corner at at.
func (r *RasterRenderer) drawText(dst *image.RGBA, text string, at layout.Pt, sizePx float64, src image.Image) error {
	x := int(math.Round(at.X))
	y := int(math.Round(at.Y))

	if r.ttFont == nil {
		drawer := &font.Drawer{Dst: dst, Src: src, Face: basicfont.Face7x13}
		drawer.Dot = fixed.P(x, y)
		drawer.DrawString(text)
		return nil
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(72) // sizePx is already in pixels
	ctx.SetFont(r.ttFont)
	ctx.SetFontSize(sizePx)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetSrc(src)
	ctx.SetHinting(font.HintingNone)
	_, err := ctx.DrawString(text, freetype.Pt(x, y))
	return err
}
