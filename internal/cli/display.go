package cli

import (
	"github.com/spf13/cobra"

	"github.com/rook-computer/blobposter/internal/render"
)

func (c *CLI) displayCommand() *cobra.Command {
	var (
		pf     posterFlags
		device string
		url    string
	)

	cmd := &cobra.Command{
		Use:   "display",
		Short: "Show one poster on the Linux framebuffer",
		Long: `Render a poster and draw it letterboxed on a framebuffer device. With
--url, a QR code for that address is drawn in the corner so visitors can
open the poster page on their phones.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd, nil)
			if err != nil {
				return err
			}
			if err := a.Display(pf.request(), device, url); err != nil {
				return err
			}
			c.printSuccess("Displayed %s poster on %s", pf.theme, device)
			return nil
		},
	}

	pf.register(cmd)
	cmd.Flags().StringVar(&device, "device", render.DefaultFBDevice, "framebuffer device")
	cmd.Flags().StringVar(&url, "url", "", "page address to show as a QR code")
	return cmd
}
