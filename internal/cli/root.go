// Package cli provides the command-line interface for schemactl.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/meridian-data/schemactl"
	"github.com/meridian-data/schemactl/internal/cli/commands"
	"github.com/meridian-data/schemactl/internal/config"
)

// Version information (set at build time).
var (
	Version   = "0.3.0"
	GitCommit = "unknown"
)

var cfgFile string

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "schemactl",
		Short: "Keep Avro schema files and their registry manifest consistent",
		Long: `schemactl maintains consistency between a schema registry manifest and a
tree of Avro schema definition files.

It normalizes the manifest against the files on disk, injects missing
field defaults, audits nullability contracts, stamps schema versions,
validates table names, and detects drift between the manifest and the
filesystem.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

			cmd.SetContext(commands.WithConfig(cmd.Context(), cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./schemactl.yaml)")
	rootCmd.PersistentFlags().String("repo-root", "", "repository root that manifest file paths are relative to")
	rootCmd.PersistentFlags().String("schemas-root", "", "path to the schemas root directory")
	rootCmd.PersistentFlags().String("manifest", "", "path to the manifest document")
	rootCmd.PersistentFlags().Bool("json", false, "emit machine-readable JSON output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose diagnostics on stderr")

	rootCmd.AddCommand(commands.NewNormalizeCommand())
	rootCmd.AddCommand(commands.NewDriftCommand())
	rootCmd.AddCommand(commands.NewDefaultsCommand())
	rootCmd.AddCommand(commands.NewNullabilityCommand())
	rootCmd.AddCommand(commands.NewVersionsCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewTableNamesCommand())
	rootCmd.AddCommand(commands.NewExportCommand())

	return rootCmd
}

// Execute runs the root command and maps errors to process exit codes:
// 0 clean, 1 problems found, 2 environment errors.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		if errors.Is(err, commands.ErrProblemsFound) {
			// Already reported by the command.
			return 1
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var envErr *schemactl.EnvironmentError
		if errors.As(err, &envErr) {
			return 2
		}
		return 1
	}
	return 0
}
