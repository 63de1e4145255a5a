// Package blob generates jittered circles used as poster shapes.
package blob

import (
	"math"

	perrors "github.com/rook-computer/blobposter/internal/errors"
)

// DefaultPoints is the vertex count used when callers have no preference.
const DefaultPoints = 150

// Point is a position in normalized canvas coordinates.
type Point struct {
	X, Y float64
}

// Rand is the randomness a blob needs. *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Make returns points vertices on a circle of the given radius around
// center, each vertex's radius jittered by wobble*(u-0.5) with u uniform in
// [0,1). The angles span [0, 2π] inclusive, so the last vertex lands on the
// first angle and closes the loop. wobble == 0 yields a perfect circle.
// Large wobble values may produce self-intersecting outlines.
func Make(center Point, radius float64, points int, wobble float64, rng Rand) ([]Point, error) {
	if err := validate(radius, points, wobble, rng); err != nil {
		return nil, err
	}

	out := make([]Point, points)
	step := 2 * math.Pi / float64(points-1)
	for i := range out {
		angle := step * float64(i)
		if i == points-1 {
			angle = 2 * math.Pi
		}
		r := radius * (1 + wobble*(rng.Float64()-0.5))
		out[i] = Point{
			X: center.X + r*math.Cos(angle),
			Y: center.Y + r*math.Sin(angle),
		}
	}
	return out, nil
}

func validate(radius float64, points int, wobble float64, rng Rand) error {
	switch {
	case points < 3:
		return perrors.New(perrors.ErrCodeInvalidParameter, "blob needs at least 3 points, got %d", points)
	case math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0:
		return perrors.New(perrors.ErrCodeInvalidParameter, "blob radius must be positive, got %v", radius)
	case math.IsNaN(wobble) || math.IsInf(wobble, 0) || wobble < 0:
		return perrors.New(perrors.ErrCodeInvalidParameter, "wobble must be >= 0, got %v", wobble)
	case rng == nil:
		return perrors.New(perrors.ErrCodeInvalidParameter, "blob needs a random source")
	}
	return nil
}
