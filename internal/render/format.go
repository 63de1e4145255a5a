package render

import (
	"image"
	"image/png"
	"io"
	"strings"

	perrors "github.com/rook-computer/blobposter/internal/errors"
	"github.com/rook-computer/blobposter/internal/poster"
)

// Format is an output encoding for posters.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts "png" or "svg" in any case. Empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatPNG):
		return FormatPNG, nil
	case string(FormatSVG):
		return FormatSVG, nil
	default:
		return "", perrors.New(perrors.ErrCodeInvalidFormat, "unsupported format %q (want png or svg)", s)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "encode png")
	}
	return nil
}

// Encode renders p with r and writes it to w in format f.
func (r *RasterRenderer) Encode(w io.Writer, p *poster.Poster, f Format) error {
	switch f {
	case FormatSVG:
		return RenderSVG(w, p, r.Canvas)
	case FormatPNG:
		img, err := r.Render(p)
		if err != nil {
			return err
		}
		return EncodePNG(w, img)
	default:
		return perrors.New(perrors.ErrCodeInvalidFormat, "unsupported format %q", string(f))
	}
}
