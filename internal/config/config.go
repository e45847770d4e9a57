// Package config loads tool configuration from a config file,
// environment variables, and CLI flags. Every entry point receives an
// explicit Config; nothing reads a process-wide default root.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names, looked up in the repo root.
const (
	ConfigFileName    = "schemactl.yaml"
	ConfigFileNameAlt = "schemactl.yml"
)

// Default configuration values.
const (
	DefaultSchemasRoot   = "schemas"
	DefaultManifestPath  = "schemas/manifest.yml"
	DefaultSchemaVersion = "1.0.0"
	DefaultEnvPrefix     = "SCHEMACTL_"
)

// Config carries every path and policy a run needs. SchemasRoot and
// ManifestPath are resolved relative to RepoRoot when not absolute.
type Config struct {
	RepoRoot       string `koanf:"repo_root"`
	SchemasRoot    string `koanf:"schemas_root"`
	ManifestPath   string `koanf:"manifest"`
	DefaultVersion string `koanf:"default_version"`
	JSON           bool   `koanf:"json"`
	Verbose        bool   `koanf:"verbose"`
}

// Load builds a Config.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"repo_root":       ".",
		"schemas_root":    DefaultSchemasRoot,
		"manifest":        DefaultManifestPath,
		"default_version": DefaultSchemaVersion,
		"json":            false,
		"verbose":         false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file, when present.
	configFile := findConfigFile(cfgFile)
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// 3. Environment variables: SCHEMACTL_SCHEMAS_ROOT -> schemas_root.
	if err := k.Load(env.Provider(DefaultEnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, DefaultEnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set.
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ResolvePaths()
	return &cfg, nil
}

// ResolvePaths anchors relative paths at the repo root.
func (c *Config) ResolvePaths() {
	if c.RepoRoot == "" {
		c.RepoRoot = "."
	}
	if abs, err := filepath.Abs(c.RepoRoot); err == nil {
		c.RepoRoot = abs
	}
	c.SchemasRoot = resolveRelativeTo(c.SchemasRoot, c.RepoRoot)
	c.ManifestPath = resolveRelativeTo(c.ManifestPath, c.RepoRoot)
}

func resolveRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// findConfigFile picks the config file to use.
// Priority: explicit path > schemactl.yaml > schemactl.yml.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	if _, err := os.Stat(ConfigFileNameAlt); err == nil {
		return ConfigFileNameAlt
	}
	return ""
}
