package commands

import "github.com/spf13/cobra"

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Mirror repositories, build missing versions and regenerate the index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Run(cmd.Context(), c.runOptions())
		},
	}
}
