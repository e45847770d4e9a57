package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-data/schemactl"
	"github.com/meridian-data/schemactl/internal/report"
)

// NewTableNamesCommand creates the table-name validation command.
func NewTableNamesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tablenames",
		Short: "Validate table names across the manifest",
		Long: `Check that every manifest entry declares a non-empty table_name and
that table names are unique across all groups. The manifest is the
single source of truth for table naming, so both rules fail the run.`,
		Args: cobra.NoArgs,
		RunE: runTableNames,
	}
	return cmd
}

func runTableNames(cmd *cobra.Command, _ []string) error {
	cfg := ConfigFrom(cmd)
	out := cmd.OutOrStdout()

	rep, err := schemactl.ValidateTableNames(engineConfig(cfg))
	if err != nil {
		return err
	}

	if cfg.JSON {
		if err := report.WriteJSON(out, rep); err != nil {
			return err
		}
		if !rep.Clean() {
			return ErrProblemsFound
		}
		return nil
	}

	report.WriteSummary(out, "Table Name Validation", []report.KV{
		{Label: "Total schemas", Value: rep.Total},
		{Label: "Schemas with table_name", Value: rep.WithTableName},
		{Label: "Schemas missing table_name", Value: rep.Total - rep.WithTableName},
	})

	if !rep.Clean() {
		report.WriteProblems(out, "Table name validation failed:", rep.Problems)
		return ErrProblemsFound
	}
	fmt.Fprintln(out, "✓ All schemas have an explicit, unique table_name.")
	return nil
}
