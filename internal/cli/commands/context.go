// Package commands implements the schemactl subcommands.
package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/meridian-data/schemactl"
	"github.com/meridian-data/schemactl/internal/config"
)

// ErrProblemsFound signals that a command found and already reported
// problems; the caller exits non-zero without reprinting the error.
var ErrProblemsFound = errors.New("problems found")

// configKey is used to store the loaded config in the command context.
type configKey struct{}

// WithConfig stores the loaded config in a context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFrom retrieves the loaded config from the command context.
func ConfigFrom(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{}
}

// engineConfig converts the CLI config into the library's Config.
func engineConfig(cfg *config.Config) schemactl.Config {
	return schemactl.Config{
		RepoRoot:       cfg.RepoRoot,
		SchemasRoot:    cfg.SchemasRoot,
		ManifestPath:   cfg.ManifestPath,
		DefaultVersion: cfg.DefaultVersion,
	}
}
