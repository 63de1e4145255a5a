package cli

import (
	"github.com/spf13/cobra"

	"github.com/rook-computer/blobposter/internal/config"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen    string
		dev       bool
		staticDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive poster page",
		Long: `Serve the poster page and its API.

The page offers a theme select, a wobble slider and a Generate button. The
color table is loaded once at startup; a broken table stops the server from
starting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd, func(cfg *config.Config) {
				if listen != "" {
					cfg.Server.ListenAddr = listen
				}
				if dev {
					cfg.Server.DevMode = true
				}
				if staticDir != "" {
					cfg.Server.StaticDir = staticDir
				}
			})
			if err != nil {
				return err
			}
			return a.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default "+config.DefaultListen+")")
	cmd.Flags().BoolVar(&dev, "dev", false, "enable permissive CORS for UI development")
	cmd.Flags().StringVar(&staticDir, "static-dir", "", "serve the UI from this directory instead of the embedded copy")
	return cmd
}
