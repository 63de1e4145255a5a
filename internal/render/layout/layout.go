// Package layout maps normalized poster coordinates onto pixel rectangles.
package layout

import (
	"image"
	"math"
)

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// InsetFractions shrinks rect by fractions of its width (left, right) and
// height (top, bottom). Fractions are clamped to [0,1].
func InsetFractions(rect image.Rectangle, left, top, right, bottom float64) image.Rectangle {
	rect = Normalize(rect)
	w := float64(rect.Dx())
	h := float64(rect.Dy())
	out := image.Rect(
		rect.Min.X+int(math.Round(w*clamp01(left))),
		rect.Min.Y+int(math.Round(h*clamp01(top))),
		rect.Max.X-int(math.Round(w*clamp01(right))),
		rect.Max.Y-int(math.Round(h*clamp01(bottom))),
	)
	return Normalize(out)
}

// FitAspect returns the largest rectangle with the aspect ratio of
// widthPx:heightPx that fits into rect, centered.
func FitAspect(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	if widthPx <= 0 || heightPx <= 0 || rect.Empty() {
		return image.Rectangle{Min: rect.Min, Max: rect.Min}
	}
	w := rect.Dx()
	h := w * heightPx / widthPx
	if h > rect.Dy() {
		h = rect.Dy()
		w = h * widthPx / heightPx
	}
	x := rect.Min.X + (rect.Dx()-w)/2
	y := rect.Min.Y + (rect.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// Pt is a point in pixel space.
type Pt struct {
	X, Y float64
}

// Frame maps the unit square (origin bottom-left, y up) onto a pixel
// rectangle (origin top-left, y down).
type Frame struct {
	Rect image.Rectangle
}

// NewFrame returns a Frame covering rect.
func NewFrame(rect image.Rectangle) Frame {
	return Frame{Rect: Normalize(rect)}
}

// Project maps normalized (x, y) to pixel space. Values outside [0,1] land
// outside Rect.
func (f Frame) Project(x, y float64) Pt {
	return Pt{
		X: float64(f.Rect.Min.X) + x*float64(f.Rect.Dx()),
		Y: float64(f.Rect.Max.Y) - y*float64(f.Rect.Dy()),
	}
}

// ClipPolygon clips a closed polygon to rect (Sutherland-Hodgman). The
// result may be empty when the polygon lies entirely outside.
func ClipPolygon(poly []Pt, rect image.Rectangle) []Pt {
	rect = Normalize(rect)
	minX, minY := float64(rect.Min.X), float64(rect.Min.Y)
	maxX, maxY := float64(rect.Max.X), float64(rect.Max.Y)

	edges := []struct {
		inside    func(Pt) bool
		intersect func(a, b Pt) Pt
	}{
		{func(p Pt) bool { return p.X >= minX }, func(a, b Pt) Pt { return atX(a, b, minX) }},
		{func(p Pt) bool { return p.X <= maxX }, func(a, b Pt) Pt { return atX(a, b, maxX) }},
		{func(p Pt) bool { return p.Y >= minY }, func(a, b Pt) Pt { return atY(a, b, minY) }},
		{func(p Pt) bool { return p.Y <= maxY }, func(a, b Pt) Pt { return atY(a, b, maxY) }},
	}

	out := poly
	for _, e := range edges {
		if len(out) == 0 {
			break
		}
		in := out
		out = make([]Pt, 0, len(in)+4)
		prev := in[len(in)-1]
		for _, cur := range in {
			curIn, prevIn := e.inside(cur), e.inside(prev)
			switch {
			case curIn && prevIn:
				out = append(out, cur)
			case curIn && !prevIn:
				out = append(out, e.intersect(prev, cur), cur)
			case !curIn && prevIn:
				out = append(out, e.intersect(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

func atX(a, b Pt, x float64) Pt {
	t := (x - a.X) / (b.X - a.X)
	return Pt{X: x, Y: a.Y + t*(b.Y-a.Y)}
}

func atY(a, b Pt, y float64) Pt {
	t := (y - a.Y) / (b.Y - a.Y)
	return Pt{X: a.X + t*(b.X-a.X), Y: y}
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
