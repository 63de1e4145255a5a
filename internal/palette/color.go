package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Row is one record of the color table.
type Row struct {
	Name    string
	R, G, B uint8
}

// Color returns the row's channels scaled to [0,1].
func (r Row) Color() Color {
	return Color{R: float64(r.R) / 255, G: float64(r.G) / 255, B: float64(r.B) / 255}
}

// Color is a normalized RGB triple, each channel in [0,1].
type Color struct {
	R, G, B float64
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return c.colorful().Clamped().Hex()
}

// RGB255 returns the channels back on the 0-255 scale.
func (c Color) RGB255() (r, g, b uint8) {
	return c.colorful().Clamped().RGB255()
}

// NRGBA returns the color with the given opacity (0..1) as a non-premultiplied color.
func (c Color) NRGBA(alpha float64) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(alpha) * 255))}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
