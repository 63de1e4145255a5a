package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/charmbracelet/log"
	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"

	perrors "github.com/rook-computer/blobposter/internal/errors"
	"github.com/rook-computer/blobposter/internal/render/layout"
)

// DefaultFBDevice is the Linux framebuffer used by the kiosk display.
const DefaultFBDevice = "/dev/fb0"

// FBDisplay shows rendered posters on a Linux framebuffer.
type FBDisplay struct {
	Device string
	Logger *log.Logger

	// Overlay, when set, is drawn into the bottom-right corner of the
	// screen, e.g. a QR code pointing at the web UI.
	Overlay image.Image
}

// Show letterboxes img onto the framebuffer.
func (d *FBDisplay) Show(img image.Image) error {
	dev := d.Device
	if dev == "" {
		dev = DefaultFBDevice
	}
	fbDev, err := fb.Open(dev)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "open framebuffer %s", dev)
	}
	defer fbDev.Close()

	if d.Logger != nil {
		b := fbDev.Bounds()
		d.Logger.Info("framebuffer open", "device", dev, "width", b.Dx(), "height", b.Dy())
	}
	blit(fbDev, img)
	if d.Overlay != nil {
		overlayCorner(fbDev, d.Overlay)
	}
	return nil
}

// blit clears dst to black and scales src into the largest centered
// rectangle that keeps its aspect ratio.
func blit(dst draw.Image, src image.Image) image.Rectangle {
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, &image.Uniform{C: color.Black}, image.Point{}, draw.Src)

	sb := src.Bounds()
	target := layout.FitAspect(bounds, sb.Dx(), sb.Dy())
	if target.Empty() {
		return target
	}
	xdraw.ApproxBiLinear.Scale(dst, target, src, sb, xdraw.Src, nil)
	return target
}

// overlayCorner draws src at a quarter of the short screen side, inset from
// the bottom-right corner.
func overlayCorner(dst draw.Image, src image.Image) {
	bounds := dst.Bounds()
	side := min(bounds.Dx(), bounds.Dy()) / 4
	if side <= 0 {
		return
	}
	margin := side / 8
	rect := image.Rect(bounds.Max.X-margin-side, bounds.Max.Y-margin-side, bounds.Max.X-margin, bounds.Max.Y-margin)
	xdraw.NearestNeighbor.Scale(dst, rect, src, src.Bounds(), xdraw.Over, nil)
}
