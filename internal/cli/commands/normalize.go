package commands

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meridian-data/schemactl"
	"github.com/meridian-data/schemactl/internal/report"
)

// NormalizeOptions holds options for the normalize command.
type NormalizeOptions struct {
	Write bool
}

// NewNormalizeCommand creates the normalize command.
func NewNormalizeCommand() *cobra.Command {
	opts := &NormalizeOptions{}
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Sync the manifest with the schema files on disk",
		Long: `Scan every schema file beneath the schemas root and merge the results
into the manifest: every file gets an entry grouped by its top-level
folder, names are canonicalized, aliases and table names are derived,
and existing descriptions, versions, compatibility policies and other
metadata are preserved. Entries for files no longer on disk are kept.

Without --write the command only reports whether the manifest would
change.`,
		Example: `  # Report pending changes
  schemactl normalize

  # Apply them
  schemactl normalize --write`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNormalize(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Write, "write", false, "write changes back to the manifest")
	return cmd
}

func runNormalize(cmd *cobra.Command, opts *NormalizeOptions) error {
	cfg := ConfigFrom(cmd)
	out := cmd.OutOrStdout()

	res, err := schemactl.Normalize(engineConfig(cfg))
	if err != nil {
		return err
	}
	slog.Debug("normalize merge finished",
		"groups", len(res.NewCounts), "entries", countTotal(res.NewCounts), "changed", res.Changed)

	if cfg.JSON {
		return report.WriteJSON(out, map[string]any{
			"changed":    res.Changed,
			"written":    res.Changed && opts.Write,
			"old_counts": res.OldCounts,
			"new_counts": res.NewCounts,
		})
	}

	if !res.Changed {
		fmt.Fprintln(out, "✓ Manifest is already normalized. No changes needed.")
		return nil
	}

	if opts.Write {
		if err := schemactl.WriteManifest(engineConfig(cfg), res.Manifest); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Wrote normalized manifest to %s\n", cfg.ManifestPath)
		return nil
	}

	fmt.Fprintln(out, "Manifest would be updated. Run with --write to apply changes.")
	printGroupDiff(cmd, res)
	return nil
}

func printGroupDiff(cmd *cobra.Command, res *schemactl.NormalizeResult) {
	out := cmd.OutOrStdout()

	var added, removed, all []string
	seen := map[string]bool{}
	for g := range res.NewCounts {
		if _, ok := res.OldCounts[g]; !ok {
			added = append(added, g)
		}
		if !seen[g] {
			seen[g] = true
			all = append(all, g)
		}
	}
	for g := range res.OldCounts {
		if _, ok := res.NewCounts[g]; !ok {
			removed = append(removed, g)
		}
		if !seen[g] {
			seen[g] = true
			all = append(all, g)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)
	sort.Strings(all)

	if len(added) > 0 {
		fmt.Fprintf(out, " + groups: %s\n", strings.Join(added, ", "))
	}
	if len(removed) > 0 {
		fmt.Fprintf(out, " - groups: %s\n", strings.Join(removed, ", "))
	}
	for _, g := range all {
		oldCount, newCount := res.OldCounts[g], res.NewCounts[g]
		if oldCount != newCount {
			fmt.Fprintf(out, " * %s: %d -> %d entries\n", g, oldCount, newCount)
		}
	}
}

func countTotal(counts map[string]int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}
