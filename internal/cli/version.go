package cli

import (
	"github.com/spf13/cobra"
)

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			c.println(appName + " " + StyleHighlight.Render(version))
			if commit != "" {
				c.printKeyValue("commit", commit)
			}
			if date != "" {
				c.printKeyValue("built", date)
			}
		},
	}
}
