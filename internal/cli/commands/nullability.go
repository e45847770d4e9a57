package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-data/schemactl"
	"github.com/meridian-data/schemactl/internal/report"
)

// NewNullabilityCommand creates the nullability audit command.
func NewNullabilityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nullability",
		Short: "Audit nullable fields for matching null defaults",
		Long: `Check every record in every manifest-referenced schema file against the
nullability contract:

  1. A field whose type is a union including "null" must declare
     "default": null.
  2. A field whose type does not include "null" must not declare
     "default": null.

All violations are collected and reported together; the audit never
stops at the first failure.`,
		Args: cobra.NoArgs,
		RunE: runNullability,
	}
	return cmd
}

func runNullability(cmd *cobra.Command, _ []string) error {
	cfg := ConfigFrom(cmd)
	out := cmd.OutOrStdout()

	problems, err := schemactl.AuditNullability(engineConfig(cfg))
	if err != nil {
		return err
	}

	if cfg.JSON {
		if err := report.WriteJSON(out, problems); err != nil {
			return err
		}
		if len(problems) > 0 {
			return ErrProblemsFound
		}
		return nil
	}

	if len(problems) > 0 {
		report.WriteProblems(out, "Schema default audit failed:", problems)
		return ErrProblemsFound
	}
	fmt.Fprintln(out, "✓ All schema defaults are consistent.")
	return nil
}
