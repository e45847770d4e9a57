package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-data/schemactl"
	"github.com/meridian-data/schemactl/internal/report"
)

// ExportOptions holds options for the export command.
type ExportOptions struct {
	DBPath string
}

// NewExportCommand creates the catalog export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the registry to a SQLite catalog",
		Long: `Materialize the manifest and the fields of every referenced record into
a SQLite database: one schema_entries row per manifest entry, keyed by
table_name, and one schema_fields row per record field with its type,
nullability, and default presence. Existing catalog contents are
replaced in a single transaction.`,
		Example: `  schemactl export --db catalog.db

  sqlite3 catalog.db 'SELECT table_name, version FROM schema_entries'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "schemactl-catalog.db", "path of the SQLite catalog database")
	return cmd
}

func runExport(cmd *cobra.Command, opts *ExportOptions) error {
	cfg := ConfigFrom(cmd)
	out := cmd.OutOrStdout()

	sum, err := schemactl.ExportCatalog(cmd.Context(), engineConfig(cfg), opts.DBPath)
	if err != nil {
		return fmt.Errorf("failed to export catalog: %w", err)
	}

	if cfg.JSON {
		return report.WriteJSON(out, sum)
	}

	fmt.Fprintf(out, "✓ Exported %d schema(s) and %d field(s) to %s\n", sum.Entries, sum.Fields, opts.DBPath)
	if sum.Skipped > 0 {
		fmt.Fprintf(out, "  %d schema file(s) could not be read; run validate for details.\n", sum.Skipped)
	}
	return nil
}
