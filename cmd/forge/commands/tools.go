package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/core/domain"
)

func (c *CLI) newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List registered tools and their availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			for _, category := range domain.Categories() {
				list := c.components.Registry.ToolsIn(category)
				if len(list) == 0 {
					continue
				}
				fmt.Fprintln(out, category.String()+":")
				for _, t := range list {
					status := "not available"
					if t.Available(ctx) {
						v, err := t.Version(ctx)
						if err == nil {
							status = v.String()
						} else {
							status = "available"
						}
					}
					fmt.Fprintf(out, "  %-24s %s\n", t.Name(), status)
				}
			}
			return nil
		},
	}
}
