package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rook-computer/blobposter/internal/app"
	perrors "github.com/rook-computer/blobposter/internal/errors"
	"github.com/rook-computer/blobposter/internal/poster"
	"github.com/rook-computer/blobposter/internal/render"
)

type posterFlags struct {
	theme  string
	wobble float64
	seed   uint64
}

func (f *posterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.theme, "theme", "t", "", "color theme name (required)")
	cmd.Flags().Float64VarP(&f.wobble, "wobble", "w", poster.DefaultWobble,
		fmt.Sprintf("blob wobble, %.2f to %.2f", poster.MinWobble, poster.MaxWobble))
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (0 = config seed or random)")
	_ = cmd.MarkFlagRequired("theme")
}

func (f *posterFlags) request() app.PosterRequest {
	return app.PosterRequest{Theme: f.theme, Wobble: f.wobble, Seed: f.seed}
}

func (c *CLI) renderCommand() *cobra.Command {
	var (
		pf     posterFlags
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one poster to a PNG or SVG file",
		Example: `  blobposter render --theme Coral
  blobposter render -t Sky -w 0.25 -o sky.svg
  blobposter render -t Sky --format svg -o - > sky.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFormat(format, out)
			if err != nil {
				return err
			}
			if out == "" {
				out = "poster." + f.Ext()
			}

			a, err := c.newApp(cmd, nil)
			if err != nil {
				return err
			}

			if out == "-" {
				w := bufio.NewWriter(cmd.OutOrStdout())
				if err := a.WritePoster(w, pf.request(), f); err != nil {
					return err
				}
				return w.Flush()
			}
			return writeFileAtomic(out, func(w *bufio.Writer) error {
				return a.WritePoster(w, pf.request(), f)
			}, func() {
				c.printSuccess("Rendered %s poster", pf.theme)
				c.printFile(out)
			})
		},
	}

	pf.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: png or svg (default from --out, else png)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, - for stdout (default poster.<format>)")
	return cmd
}

// resolveFormat prefers an explicit --format, then the --out extension.
func resolveFormat(format, out string) (render.Format, error) {
	if format == "" && out != "" && out != "-" {
		format = strings.TrimPrefix(filepath.Ext(out), ".")
	}
	return render.ParseFormat(format)
}

// writeFileAtomic writes via a temp file in the same directory and renames
// it into place, so a failed render leaves no partial file.
func writeFileAtomic(path string, write func(*bufio.Writer) error, onDone func()) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "create %s", path)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if err := write(w); err != nil {
		tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return perrors.Wrap(perrors.ErrCodeInternal, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "rename to %s", path)
	}
	if onDone != nil {
		onDone()
	}
	return nil
}
