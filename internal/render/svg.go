package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	perrors "github.com/rook-computer/blobposter/internal/errors"
	"github.com/rook-computer/blobposter/internal/poster"
	"github.com/rook-computer/blobposter/internal/render/layout"
)

const axesClipID = "axes"

// RenderSVG writes p as an SVG document sized to canvas. Blobs sit in a
// group clipped to the plotting area; labels are drawn on top unclipped.
func RenderSVG(w io.Writer, p *poster.Poster, canvas Canvas) error {
	if p == nil {
		return perrors.New(perrors.ErrCodeInternal, "nil poster")
	}
	if canvas.Width <= 0 || canvas.Height <= 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "canvas size %dx%d", canvas.Width, canvas.Height)
	}

	axes := canvas.Axes()
	frame := canvas.Frame()

	s := svg.New(w)
	s.Start(canvas.Width, canvas.Height)
	s.Title(fmt.Sprintf("%s poster", p.Theme))
	s.Rect(0, 0, canvas.Width, canvas.Height, "fill:#ffffff")

	s.Def()
	s.ClipPath(fmt.Sprintf(`id="%s"`, axesClipID))
	s.Rect(axes.Min.X, axes.Min.Y, axes.Dx(), axes.Dy())
	s.ClipEnd()
	s.DefEnd()

	s.Rect(axes.Min.X, axes.Min.Y, axes.Dx(), axes.Dy(), "fill:"+p.Background.Hex())

	s.Group(fmt.Sprintf(`clip-path="url(#%s)"`, axesClipID))
	for _, b := range p.Blobs {
		if len(b.Points) < 3 {
			continue
		}
		poly := make([]layout.Pt, len(b.Points))
		for i, pt := range b.Points {
			poly[i] = frame.Project(pt.X, pt.Y)
		}
		s.Path(pathData(poly), fmt.Sprintf("fill:%s;fill-opacity:%.3f;stroke:none", b.Color.Hex(), b.Alpha))
	}
	s.Gend()

	for _, l := range p.Labels {
		at := frame.Project(l.X, l.Y)
		s.Text(int(math.Round(at.X)), int(math.Round(at.Y)), l.Text,
			fmt.Sprintf("fill:%s;fill-opacity:%.2f;font-family:sans-serif;font-size:%.1fpx",
				l.Color.Hex(), l.Alpha, canvas.PointsToPixels(l.FontSize)))
	}
	s.End()
	return nil
}

func pathData(poly []layout.Pt) string {
	var sb strings.Builder
	for i, p := range poly {
		if i == 0 {
			sb.WriteString("M")
		} else {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.2f,%.2f", p.X, p.Y)
	}
	sb.WriteString(" Z")
	return sb.String()
}
