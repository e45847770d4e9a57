package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-data/schemactl"
	"github.com/meridian-data/schemactl/internal/report"
)

// VersionsOptions holds options for the versions command.
type VersionsOptions struct {
	Write          bool
	DefaultVersion string
}

// NewVersionsCommand creates the version-stamping command.
func NewVersionsCommand() *cobra.Command {
	opts := &VersionsOptions{}
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Stamp schema files with their registry version",
		Long: `Ensure every schema file carries a top-level "version" field. The
version declared by the manifest entry for the file wins; files the
manifest does not know get the default version. Files that already carry
a version are never touched, so running twice changes nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersions(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Write, "write", false, "rewrite schema files in place")
	cmd.Flags().StringVar(&opts.DefaultVersion, "default-version", "",
		"version applied when the manifest has no entry (default from config: 1.0.0)")
	return cmd
}

func runVersions(cmd *cobra.Command, opts *VersionsOptions) error {
	cfg := ConfigFrom(cmd)
	out := cmd.OutOrStdout()

	ecfg := engineConfig(cfg)
	if opts.DefaultVersion != "" {
		ecfg.DefaultVersion = opts.DefaultVersion
	}

	sum, modified, err := schemactl.ApplyVersions(ecfg, opts.Write)
	if err != nil {
		return err
	}

	if cfg.JSON {
		return report.WriteJSON(out, map[string]any{
			"scanned":  sum.Scanned,
			"modified": sum.Modified,
			"files":    modified,
			"written":  opts.Write,
		})
	}

	for _, path := range modified {
		if opts.Write {
			fmt.Fprintf(out, "✓ Set version in %s\n", path)
		} else {
			fmt.Fprintf(out, "would set version in %s\n", path)
		}
	}
	fmt.Fprintf(out, "Summary: scanned %d schema file(s), modified %d file(s).\n", sum.Scanned, sum.Modified)
	if !opts.Write && sum.Modified > 0 {
		fmt.Fprintln(out, "Run with --write to apply changes.")
	}
	return nil
}
