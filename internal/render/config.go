// Package render turns posters into pixels, SVG documents and framebuffer output.
package render

import (
	"image"
	"image/color"

	"github.com/rook-computer/blobposter/internal/render/layout"
)

// Figure background around the plotting area.
var FigureBackground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// Canvas describes the pixel surface a poster is rendered onto: a portrait
// figure with the plotting area inset by fractional margins.
type Canvas struct {
	Width  int
	Height int
	DPI    float64

	// Margins as fractions of the figure size.
	Left, Right, Bottom, Top float64
}

// DefaultCanvas is a 7x10 inch figure at 100 DPI with the usual subplot margins.
func DefaultCanvas() Canvas {
	return Canvas{
		Width:  700,
		Height: 1000,
		DPI:    100,
		Left:   0.125,
		Right:  0.1,
		Bottom: 0.11,
		Top:    0.12,
	}
}

// Bounds returns the full figure rectangle.
func (c Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Width, c.Height)
}

// Axes returns the plotting area where the [0,1]x[0,1] view is drawn.
func (c Canvas) Axes() image.Rectangle {
	return layout.InsetFractions(c.Bounds(), c.Left, c.Top, c.Right, c.Bottom)
}

// Frame maps normalized coordinates onto the plotting area.
func (c Canvas) Frame() layout.Frame {
	return layout.NewFrame(c.Axes())
}

// PointsToPixels converts a font size in points to pixels at the canvas DPI.
func (c Canvas) PointsToPixels(pt float64) float64 {
	dpi := c.DPI
	if dpi <= 0 {
		dpi = 72
	}
	return pt * dpi / 72
}
