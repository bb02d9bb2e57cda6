package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the source pipeline for the configured project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			jobs, _ := cmd.Flags().GetInt("jobs")
			if serial, _ := cmd.Flags().GetBool("serial"); serial {
				jobs = 1
			}
			return c.components.App.Run(cmd.Context(), app.RunOptions{
				ConfigPath: configPath,
				Jobs:       jobs,
			})
		},
	}
	cmd.Flags().IntP("jobs", "j", 0, "Worker count, overrides the profile")
	cmd.Flags().Bool("serial", false, "Process files one at a time")
	return cmd
}
