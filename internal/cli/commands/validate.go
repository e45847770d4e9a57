package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-data/schemactl"
	"github.com/meridian-data/schemactl/internal/report"
)

// NewValidateCommand creates the manifest/file consistency check command.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate manifest entries against their schema files",
		Long: `Check that every schema file the manifest references exists, parses as
valid JSON, and embeds the same "version" the manifest declares for it.`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}
	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg := ConfigFrom(cmd)
	out := cmd.OutOrStdout()

	problems, err := schemactl.Validate(engineConfig(cfg))
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
		report.WriteProblems(out, "Schema validation failed:", problems)
		return ErrProblemsFound
	}
	fmt.Fprintln(out, "✓ Schema manifest and Avro files are consistent.")
	return nil
}
