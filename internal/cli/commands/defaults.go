package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/meridian-data/schemactl"
	"github.com/meridian-data/schemactl/internal/report"
)

// DefaultsOptions holds options for the defaults command.
type DefaultsOptions struct {
	Write bool
}

// NewDefaultsCommand creates the defaults injection command.
func NewDefaultsCommand() *cobra.Command {
	opts := &DefaultsOptions{}
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Inject missing field defaults into schema files",
		Long: `Walk every schema file beneath the schemas root and ensure all fields
declare a spec-legal default value for their type: empty string for
string and bytes, false for boolean, 0 for int and long, 0.0 for float
and double, null for unions with a leading null branch, the first symbol
for enums, and empty collections for arrays, maps and nested records.
Recurses into nested records, union branches, array items and map values.

Without --write the command only lists the files that would change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDefaults(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Write, "write", false, "rewrite schema files in place")
	return cmd
}

func runDefaults(cmd *cobra.Command, opts *DefaultsOptions) error {
	cfg := ConfigFrom(cmd)
	out := cmd.OutOrStdout()

	res, err := schemactl.InjectDefaults(engineConfig(cfg), opts.Write)
	if err != nil {
		return err
	}
	slog.Debug("defaults pass finished", "scanned", res.Scanned, "changed", len(res.Changed))

	if res.Scanned == 0 {
		return fmt.Errorf("no %s files found under %s", ".avsc", cfg.SchemasRoot)
	}

	if cfg.JSON {
		return report.WriteJSON(out, res)
	}

	if len(res.Changed) == 0 {
		fmt.Fprintln(out, "✓ All schemas already contain appropriate defaults.")
		return nil
	}

	for _, path := range res.Changed {
		if opts.Write {
			fmt.Fprintf(out, "✓ Updated defaults in %s\n", path)
		} else {
			fmt.Fprintf(out, "would update defaults in %s\n", path)
		}
	}
	if opts.Write {
		fmt.Fprintf(out, "Completed. %d schema(s) modified.\n", len(res.Changed))
	} else {
		fmt.Fprintf(out, "%d schema(s) would be modified. Run with --write to apply.\n", len(res.Changed))
	}
	return nil
}
