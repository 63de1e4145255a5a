// Package poster composes blob posters.
//
// A Poster is a resolution-independent scene: twelve translucent blobs and
// three numeric signatures in normalized [0,1]×[0,1] coordinates (y up).
// Rendering to pixels or SVG lives in package render.
package poster

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rook-computer/blobposter/internal/blob"
	perrors "github.com/rook-computer/blobposter/internal/errors"
	"github.com/rook-computer/blobposter/internal/palette"
)

const (
	// DefaultBlobs is the number of blobs on a poster.
	DefaultBlobs = 12
	// DefaultLabels is the number of signature labels on a poster.
	DefaultLabels = 3

	// MinWobble, MaxWobble and DefaultWobble bound the wobble control.
	MinWobble     = 0.01
	MaxWobble     = 0.3
	DefaultWobble = 0.1
	WobbleStep    = 0.01

	minRadius, maxRadius = 0.1, 0.35
	minAlpha, maxAlpha   = 0.2, 0.5

	labelMinX, labelMaxX = 0.05, 0.9
	labelMinY, labelMaxY = 0.05, 0.95
	labelMin, labelMax   = 100, 999
	labelAlpha           = 0.7
	labelFontSize        = 8
)

// Background is the near-white fill behind the blobs.
var Background = palette.Color{R: 0.98, G: 0.98, B: 0.97}

// Rand is the randomness a poster needs. *math/rand/v2.Rand satisfies it.
type Rand = blob.Rand

// Blob is one filled shape.
type Blob struct {
	Points []blob.Point
	Color  palette.Color
	Alpha  float64
}

// Label is one signature text.
type Label struct {
	X, Y     float64
	Text     string
	Color    palette.Color
	Alpha    float64
	FontSize float64 // points
}

// Poster is a generated composition.
type Poster struct {
	Theme      string
	Wobble     float64
	Background palette.Color
	Blobs      []Blob
	Labels     []Label
}

type options struct {
	blobs  int
	labels int
	points int
}

// Option tunes generation.
type Option func(*options)

// WithBlobCount overrides the number of blobs.
func WithBlobCount(n int) Option { return func(o *options) { o.blobs = n } }

// WithLabelCount overrides the number of labels.
func WithLabelCount(n int) Option { return func(o *options) { o.labels = n } }

// WithPoints overrides the vertex count per blob.
func WithPoints(n int) Option { return func(o *options) { o.points = n } }

// Generate builds a poster for theme. The wobble range is not checked here;
// use ValidateWobble at input boundaries.
func Generate(pal *palette.Palette, theme string, wobble float64, rng Rand, opts ...Option) (*Poster, error) {
	o := options{blobs: DefaultBlobs, labels: DefaultLabels, points: blob.DefaultPoints}
	for _, opt := range opts {
		opt(&o)
	}
	if pal == nil {
		return nil, perrors.New(perrors.ErrCodeInternal, "no palette loaded")
	}
	if rng == nil {
		return nil, perrors.New(perrors.ErrCodeInvalidParameter, "poster needs a random source")
	}
	if o.blobs < 0 || o.labels < 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidParameter, "negative shape count")
	}
	colors, err := pal.Colors(theme)
	if err != nil {
		return nil, err
	}

	p := &Poster{
		Theme:      theme,
		Wobble:     wobble,
		Background: Background,
		Blobs:      make([]Blob, 0, o.blobs),
		Labels:     make([]Label, 0, o.labels),
	}

	for range o.blobs {
		center := blob.Point{X: rng.Float64(), Y: rng.Float64()}
		radius := uniform(rng, minRadius, maxRadius)
		pts, err := blob.Make(center, radius, o.points, wobble, rng)
		if err != nil {
			return nil, err
		}
		p.Blobs = append(p.Blobs, Blob{
			Points: pts,
			Color:  colors[rng.IntN(len(colors))],
			Alpha:  uniform(rng, minAlpha, maxAlpha),
		})
	}

	for range o.labels {
		x := uniform(rng, labelMinX, labelMaxX)
		y := uniform(rng, labelMinY, labelMaxY)
		n := labelMin + rng.IntN(labelMax-labelMin+1)
		p.Labels = append(p.Labels, Label{
			X:        x,
			Y:        y,
			Text:     fmt.Sprintf("#%d", n),
			Color:    colors[rng.IntN(len(colors))],
			Alpha:    labelAlpha,
			FontSize: labelFontSize,
		})
	}
	return p, nil
}

// ValidateWobble checks w against the control range [MinWobble, MaxWobble].
func ValidateWobble(w float64) error {
	// Small tolerance so slider values like 0.3 parsed from text pass.
	const eps = 1e-9
	if math.IsNaN(w) || w < MinWobble-eps || w > MaxWobble+eps {
		return perrors.New(perrors.ErrCodeInvalidParameter, "wobble must be between %.2f and %.2f, got %v", MinWobble, MaxWobble, w)
	}
	return nil
}

// NewRand returns a PCG-backed generator. seed 0 picks a fresh random seed.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func uniform(rng Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
