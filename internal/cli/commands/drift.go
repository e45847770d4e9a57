package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-data/schemactl"
	"github.com/meridian-data/schemactl/internal/drift"
	"github.com/meridian-data/schemactl/internal/report"
)

// NewDriftCommand creates the drift audit command.
func NewDriftCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drift",
		Short: "Audit the manifest against the schema files on disk",
		Long: `Compare the manifest's declared schema files with the files actually on
disk, per group. Reports three partitions: KEEP (in both), REMOVE (in
the manifest but gone from disk), and MISSING (on disk but not in the
manifest). Exits non-zero when anything has drifted, for use in CI.`,
		Args: cobra.NoArgs,
		RunE: runDrift,
	}
	return cmd
}

func runDrift(cmd *cobra.Command, _ []string) error {
	cfg := ConfigFrom(cmd)
	out := cmd.OutOrStdout()

	res, err := schemactl.AuditDrift(engineConfig(cfg))
	if err != nil {
		return err
	}

	if cfg.JSON {
		if err := report.WriteJSON(out, res); err != nil {
			return err
		}
	} else {
		printDriftSections(cmd, res)
	}

	if !res.Clean() {
		return ErrProblemsFound
	}
	return nil
}

func printDriftSections(cmd *cobra.Command, res *drift.Result) {
	out := cmd.OutOrStdout()

	sections := []struct {
		name string
		data map[string][]string
	}{
		{"KEEP", res.Keep},
		{"REMOVE (in manifest, not on disk)", res.Remove},
		{"MISSING (on disk, not in manifest)", res.Missing},
	}

	for _, section := range sections {
		fmt.Fprintf(out, "\n=== %s ===\n", section.name)
		for _, group := range res.Groups() {
			items := section.data[group]
			if len(items) == 0 {
				continue
			}
			fmt.Fprintf(out, "[%s]\n", group)
			for _, item := range items {
				fmt.Fprintf(out, " - %s\n", item)
			}
		}
	}
	fmt.Fprintln(out, "\nTip: run with --json for machine-readable output.")
}
