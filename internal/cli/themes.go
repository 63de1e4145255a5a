package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func (c *CLI) themesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the color themes in the color table",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd, nil)
			if err != nil {
				return err
			}
			pal, err := a.Palette.Get()
			if err != nil {
				return err
			}

			c.println(StyleTitle.Render(fmt.Sprintf("%d themes", pal.Len())) + " " + StyleDim.Render(a.Palette.Path()))
			for _, name := range pal.Names() {
				col, err := pal.Color(name)
				if err != nil {
					return err
				}
				r, g, b := col.RGB255()
				swatch := lipgloss.NewStyle().Background(lipgloss.Color(col.Hex())).Render("    ")
				c.println(fmt.Sprintf("%s %s %s %s",
					swatch,
					styleName.Render(name),
					StyleValue.Render(col.Hex()),
					StyleDim.Render(fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)),
				))
			}
			for _, name := range pal.Duplicates() {
				c.printWarning("%s appears more than once; the last row wins", name)
			}
			return nil
		},
	}
}
