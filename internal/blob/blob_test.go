package blob

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/rook-computer/blobposter/internal/errors"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x5eed))
}

func TestMakeReturnsRequestedPointCount(t *testing.T) {
	for _, n := range []int{3, 4, 17, DefaultPoints, 1000} {
		pts, err := Make(Point{0.5, 0.5}, 0.2, n, 0.1, seeded(1))
		require.NoError(t, err)
		assert.Len(t, pts, n)
	}
}

func TestMakeZeroWobbleIsCircle(t *testing.T) {
	center := Point{0.3, 0.7}
	pts, err := Make(center, 0.25, DefaultPoints, 0, seeded(2))
	require.NoError(t, err)

	for i, p := range pts {
		d := math.Hypot(p.X-center.X, p.Y-center.Y)
		assert.InDelta(t, 0.25, d, 1e-12, "point %d", i)
	}
}

func TestMakeClosesLoop(t *testing.T) {
	pts, err := Make(Point{0.5, 0.5}, 0.2, 50, 0, seeded(3))
	require.NoError(t, err)

	first, last := pts[0], pts[len(pts)-1]
	assert.InDelta(t, first.X, last.X, 1e-12)
	assert.InDelta(t, first.Y, last.Y, 1e-12)
	assert.InDelta(t, 0.7, first.X, 1e-12)
	assert.InDelta(t, 0.5, first.Y, 1e-12)
}

func TestMakeWobbleBoundsRadius(t *testing.T) {
	for _, wobble := range []float64{0.01, 0.1, 0.3, 2} {
		center := Point{0.5, 0.5}
		radius := 0.2
		pts, err := Make(center, radius, DefaultPoints, wobble, seeded(4))
		require.NoError(t, err)

		lo := radius * (1 - wobble/2)
		hi := radius * (1 + wobble/2)
		for i, p := range pts {
			d := math.Hypot(p.X-center.X, p.Y-center.Y)
			assert.GreaterOrEqual(t, d, lo-1e-12, "wobble %v point %d", wobble, i)
			assert.Less(t, d, hi+1e-12, "wobble %v point %d", wobble, i)
		}
	}
}

func TestMakeAnglesEvenlySpaced(t *testing.T) {
	n := 9
	pts, err := Make(Point{}, 1, n, 0, seeded(5))
	require.NoError(t, err)

	step := 2 * math.Pi / float64(n-1)
	for i, p := range pts {
		assert.InDelta(t, math.Cos(step*float64(i)), p.X, 1e-12)
		assert.InDelta(t, math.Sin(step*float64(i)), p.Y, 1e-12)
	}
}

func TestMakeSeededIsReproducible(t *testing.T) {
	a, err := Make(Point{0.5, 0.5}, 0.2, 40, 0.3, seeded(7))
	require.NoError(t, err)
	b, err := Make(Point{0.5, 0.5}, 0.2, 40, 0.3, seeded(7))
	require.NoError(t, err)
	c, err := Make(Point{0.5, 0.5}, 0.2, 40, 0.3, seeded(8))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestMakeInvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		points int
		wobble float64
		rng    Rand
	}{
		{"too few points", 0.2, 2, 0.1, seeded(1)},
		{"zero radius", 0, 10, 0.1, seeded(1)},
		{"negative radius", -0.1, 10, 0.1, seeded(1)},
		{"nan radius", math.NaN(), 10, 0.1, seeded(1)},
		{"negative wobble", 0.2, 10, -0.01, seeded(1)},
		{"infinite wobble", 0.2, 10, math.Inf(1), seeded(1)},
		{"nil rng", 0.2, 10, 0.1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts, err := Make(Point{0.5, 0.5}, tt.radius, tt.points, tt.wobble, tt.rng)
			require.Error(t, err)
			assert.Nil(t, pts)
			assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidParameter))
		})
	}
}
