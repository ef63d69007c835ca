package commands

import "github.com/spf13/cobra"

func (c *CLI) newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Regenerate the index pages from the published artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Index(cmd.Context(), c.runOptions())
		},
	}
}
