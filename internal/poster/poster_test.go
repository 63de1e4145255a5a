package poster

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/rook-computer/blobposter/internal/errors"
	"github.com/rook-computer/blobposter/internal/palette"
)

func testPalette(t *testing.T) *palette.Palette {
	t.Helper()
	p, err := palette.Parse(strings.NewReader("name,r,g,b\nCoral,255,127,80\nSky,135,206,235\n"))
	require.NoError(t, err)
	return p
}

func TestGenerateShapeCounts(t *testing.T) {
	pal := testPalette(t)
	for _, wobble := range []float64{MinWobble, DefaultWobble, MaxWobble} {
		for _, theme := range pal.Names() {
			p, err := Generate(pal, theme, wobble, NewRand(42))
			require.NoError(t, err)
			assert.Len(t, p.Blobs, DefaultBlobs)
			assert.Len(t, p.Labels, DefaultLabels)
			assert.Equal(t, theme, p.Theme)
			assert.Equal(t, Background, p.Background)
		}
	}
}

func TestGenerateUsesThemeColorAndRanges(t *testing.T) {
	pal := testPalette(t)
	coral, err := pal.Color("Coral")
	require.NoError(t, err)

	for seed := uint64(1); seed <= 25; seed++ {
		p, err := Generate(pal, "Coral", 0.1, NewRand(seed))
		require.NoError(t, err)

		for _, b := range p.Blobs {
			assert.Equal(t, coral, b.Color)
			assert.GreaterOrEqual(t, b.Alpha, 0.2)
			assert.Less(t, b.Alpha, 0.5)
			assert.Len(t, b.Points, 150)
		}
		for _, l := range p.Labels {
			assert.Equal(t, coral, l.Color)
			assert.Equal(t, 0.7, l.Alpha)
			assert.Equal(t, 8.0, l.FontSize)
			assert.GreaterOrEqual(t, l.X, 0.05)
			assert.LessOrEqual(t, l.X, 0.9)
			assert.GreaterOrEqual(t, l.Y, 0.05)
			assert.LessOrEqual(t, l.Y, 0.95)

			require.True(t, strings.HasPrefix(l.Text, "#"), l.Text)
			n, err := strconv.Atoi(strings.TrimPrefix(l.Text, "#"))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, 100)
			assert.LessOrEqual(t, n, 999)
		}
	}
}

func TestGenerateSeededReproducible(t *testing.T) {
	pal := testPalette(t)

	a, err := Generate(pal, "Sky", 0.2, NewRand(9))
	require.NoError(t, err)
	b, err := Generate(pal, "Sky", 0.2, NewRand(9))
	require.NoError(t, err)
	c, err := Generate(pal, "Sky", 0.2, NewRand(10))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a.Blobs, c.Blobs)
}

func TestGenerateUnseededDiffers(t *testing.T) {
	pal := testPalette(t)

	a, err := Generate(pal, "Sky", 0.1, NewRand(0))
	require.NoError(t, err)
	b, err := Generate(pal, "Sky", 0.1, NewRand(0))
	require.NoError(t, err)

	assert.NotEqual(t, a.Blobs, b.Blobs)
}

func TestGenerateUnknownTheme(t *testing.T) {
	p, err := Generate(testPalette(t), "Mauve", 0.1, NewRand(1))
	require.Error(t, err)
	assert.Nil(t, p)
	assert.True(t, perrors.Is(err, perrors.ErrCodeLookup))
}

func TestGenerateInvalidInputs(t *testing.T) {
	pal := testPalette(t)

	_, err := Generate(pal, "Coral", -0.5, NewRand(1))
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidParameter))

	_, err = Generate(pal, "Coral", 0.1, nil)
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidParameter))

	_, err = Generate(pal, "Coral", 0.1, NewRand(1), WithPoints(2))
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidParameter))

	_, err = Generate(nil, "Coral", 0.1, NewRand(1))
	assert.True(t, perrors.Is(err, perrors.ErrCodeInternal))
}

func TestGenerateOptions(t *testing.T) {
	p, err := Generate(testPalette(t), "Coral", 0.1, NewRand(3), WithBlobCount(2), WithLabelCount(0), WithPoints(12))
	require.NoError(t, err)
	assert.Len(t, p.Blobs, 2)
	assert.Empty(t, p.Labels)
	assert.Len(t, p.Blobs[0].Points, 12)
}

func TestValidateWobble(t *testing.T) {
	tests := []struct {
		wobble  float64
		wantErr bool
	}{
		{0.01, false},
		{0.1, false},
		{0.3, false},
		{0.15, false},
		{0.0, true},
		{0.009, true},
		{0.31, true},
		{-1, true},
	}
	for _, tt := range tests {
		err := ValidateWobble(tt.wobble)
		if tt.wantErr {
			assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidParameter), "wobble %v", tt.wobble)
		} else {
			assert.NoError(t, err, "wobble %v", tt.wobble)
		}
	}
}
