package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/wheelhouse/internal/core/domain"
	"go.trai.ch/wheelhouse/internal/ui/output"
	"go.trai.ch/wheelhouse/internal/ui/style"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the versions that need a build without building them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := c.app.Plan(cmd.Context(), c.runOptions())
			if err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), plan)
			return nil
		},
	}
}

func printPlan(w io.Writer, plan *domain.Plan) {
	out := output.New(w)
	pending := out.String(style.Tilde).Foreground(out.Color(string(style.Yellow)))
	done := out.String(style.Check).Foreground(out.Color(string(style.Green)))

	for _, pp := range plan.Packages {
		_, _ = fmt.Fprintf(w, "%s (%s)\n", style.Heading(pp.Package()), pp.Repository)
		if len(pp.Needed) == 0 {
			_, _ = fmt.Fprintf(w, "  %s up to date\n", done)
			continue
		}
		for _, tag := range pp.Needed {
			_, _ = fmt.Fprintf(w, "  %s %s\n", pending, tag)
		}
	}
	_, _ = fmt.Fprintf(w, "%d version(s) to build\n", plan.NeededCount())
}
