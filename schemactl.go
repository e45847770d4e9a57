// Package schemactl keeps a declarative schema manifest and a tree of
// Avro schema definition files consistent with each other.
//
// The manifest (schemas/manifest.yml by default) enumerates every known
// schema file with its canonical name, aliases, version, compatibility
// policy, and table name. The schema files themselves are plain JSON
// documents. schemactl synchronizes three things: which schema files
// exist on disk, what the manifest says about them, and whether each
// file's field declarations obey the structural rules (every field has a
// spec-legal default, nullable fields declare a null default,
// non-nullable fields never do).
//
// # Quick Start
//
// Normalize the manifest against the on-disk tree and persist the result:
//
//	res, err := schemactl.Normalize(schemactl.Config{RepoRoot: "."})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if res.Changed {
//		err = schemactl.WriteManifest(schemactl.Config{RepoRoot: "."}, res.Manifest)
//	}
//
// # Read-only audits
//
// The audit functions never modify anything; they return the complete
// problem list so callers can decide how to report and which exit code
// to use:
//
//	problems, err := schemactl.AuditNullability(cfg)
//	drift, err := schemactl.AuditDrift(cfg)
//	problems, err := schemactl.Validate(cfg)
//
// # Rewrites
//
// InjectDefaults and ApplyVersions rewrite schema files in place when
// write is true; with write false they only report what would change.
// Both are idempotent: a second run over a clean tree modifies nothing.
package schemactl

import (
	"context"
	"fmt"
	"os"

	"github.com/meridian-data/schemactl/internal/avro"
	"github.com/meridian-data/schemactl/internal/catalog"
	"github.com/meridian-data/schemactl/internal/config"
	"github.com/meridian-data/schemactl/internal/defaults"
	"github.com/meridian-data/schemactl/internal/drift"
	"github.com/meridian-data/schemactl/internal/manifest"
	"github.com/meridian-data/schemactl/internal/nullability"
	"github.com/meridian-data/schemactl/internal/report"
	"github.com/meridian-data/schemactl/internal/version"
)

// Config locates the repository the tools operate on.
//
// All fields are optional. If not specified:
//   - RepoRoot: the current working directory
//   - SchemasRoot: <RepoRoot>/schemas
//   - ManifestPath: <RepoRoot>/schemas/manifest.yml
//   - DefaultVersion: "1.0.0"
//
// Relative SchemasRoot and ManifestPath are resolved against RepoRoot.
type Config struct {
	// RepoRoot is the repository root; manifest entry file paths are
	// relative to it.
	RepoRoot string

	// SchemasRoot is the directory holding the schema group directories.
	SchemasRoot string

	// ManifestPath is the manifest document location.
	ManifestPath string

	// DefaultVersion is the version stamped into schema files the
	// manifest declares no version for.
	DefaultVersion string
}

func (c Config) resolved() Config {
	inner := config.Config{
		RepoRoot:       c.RepoRoot,
		SchemasRoot:    c.SchemasRoot,
		ManifestPath:   c.ManifestPath,
		DefaultVersion: c.DefaultVersion,
	}
	if inner.SchemasRoot == "" {
		inner.SchemasRoot = config.DefaultSchemasRoot
	}
	if inner.ManifestPath == "" {
		inner.ManifestPath = config.DefaultManifestPath
	}
	if inner.DefaultVersion == "" {
		inner.DefaultVersion = config.DefaultSchemaVersion
	}
	inner.ResolvePaths()
	return Config{
		RepoRoot:       inner.RepoRoot,
		SchemasRoot:    inner.SchemasRoot,
		ManifestPath:   inner.ManifestPath,
		DefaultVersion: inner.DefaultVersion,
	}
}

// EnvironmentError reports a broken precondition of the run environment,
// such as a missing schemas root. Unlike the recoverable problems the
// audits collect, an EnvironmentError aborts the run; the CLI maps it to
// exit code 2.
type EnvironmentError struct {
	Err error
}

func (e *EnvironmentError) Error() string { return e.Err.Error() }

func (e *EnvironmentError) Unwrap() error { return e.Err }

func envErrorf(format string, args ...any) error {
	return &EnvironmentError{Err: fmt.Errorf(format, args...)}
}

func requireDir(path, what string) error {
	info, err := os.Stat(path)
	if err != nil {
		return envErrorf("%s not found: %s", what, path)
	}
	if !info.IsDir() {
		return envErrorf("%s is not a directory: %s", what, path)
	}
	return nil
}

// NormalizeResult is the outcome of a manifest normalization pass.
type NormalizeResult struct {
	// Manifest is the merged document.
	Manifest *manifest.Manifest

	// Changed reports whether the merged document differs structurally
	// from the one on disk.
	Changed bool

	// OldCounts and NewCounts hold per-group entry counts before and
	// after the merge, for diff summaries.
	OldCounts map[string]int
	NewCounts map[string]int
}

// Normalize scans the schema tree and merges the results into the
// manifest, returning the merged document without writing it. Existing
// entry metadata (description, compatibility, version, primary key,
// physics, table name) is preserved; entries for files no longer on disk
// are retained, never dropped.
func Normalize(cfg Config) (*NormalizeResult, error) {
	cfg = cfg.resolved()
	if err := requireDir(cfg.SchemasRoot, "schemas root"); err != nil {
		return nil, err
	}

	existing, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		return nil, err
	}
	scans, err := manifest.Scan(cfg.RepoRoot, cfg.SchemasRoot)
	if err != nil {
		return nil, err
	}

	merged := manifest.Merge(existing, scans)
	res := &NormalizeResult{
		Manifest:  merged,
		Changed:   !manifest.Equal(existing, merged),
		OldCounts: groupCounts(existing),
		NewCounts: groupCounts(merged),
	}
	return res, nil
}

func groupCounts(m *manifest.Manifest) map[string]int {
	out := make(map[string]int, len(m.Schemas))
	for group, entries := range m.Schemas {
		out[group] = len(entries)
	}
	return out
}

// WriteManifest persists a manifest document to the configured path.
func WriteManifest(cfg Config, m *manifest.Manifest) error {
	cfg = cfg.resolved()
	return manifest.Save(cfg.ManifestPath, m)
}

// InjectResult is the outcome of a default-injection pass.
type InjectResult struct {
	Scanned int      `json:"scanned"`
	Changed []string `json:"changed,omitempty"`
}

// InjectDefaults walks every schema file beneath the schemas root and
// fills in missing field defaults, recursing into nested records, union
// branches, array items, and map values. Files are rewritten only when
// write is true and something actually changed.
func InjectDefaults(cfg Config, write bool) (*InjectResult, error) {
	cfg = cfg.resolved()
	if err := requireDir(cfg.SchemasRoot, "schemas root"); err != nil {
		return nil, err
	}

	files, err := avro.FindFiles(cfg.SchemasRoot)
	if err != nil {
		return nil, err
	}

	res := &InjectResult{}
	for _, path := range files {
		res.Scanned++
		doc, err := avro.ReadFile(path)
		if err != nil {
			continue // the validate tool reports malformed files
		}

		changed := false
		switch doc.Kind() {
		case avro.Object:
			changed = defaults.Inject(&doc)
		case avro.Array:
			for i := 0; i < doc.Len(); i++ {
				changed = defaults.Inject(doc.At(i)) || changed
			}
		}
		if !changed {
			continue
		}

		res.Changed = append(res.Changed, path)
		if write {
			if err := avro.WriteFile(path, doc); err != nil {
				return res, err
			}
		}
	}
	return res, nil
}

// AuditNullability checks every record in every manifest-referenced file
// for the nullability contract: nullable fields declare default null,
// non-nullable fields never do. The returned list is complete; the audit
// never stops at the first violation.
func AuditNullability(cfg Config) ([]report.Problem, error) {
	cfg = cfg.resolved()
	m, err := loadRequiredManifest(cfg)
	if err != nil {
		return nil, err
	}
	return nullability.CheckManifest(m, cfg.RepoRoot), nil
}

// AuditDrift set-differences the on-disk schema files against the
// manifest's declared files, per group.
func AuditDrift(cfg Config) (*drift.Result, error) {
	cfg = cfg.resolved()
	if err := requireDir(cfg.SchemasRoot, "schemas root"); err != nil {
		return nil, err
	}
	m, err := loadRequiredManifest(cfg)
	if err != nil {
		return nil, err
	}
	return drift.Audit(m, cfg.RepoRoot, cfg.SchemasRoot)
}

// ApplyVersions stamps a top-level version field into every schema file
// that lacks one, preferring the version the manifest declares for the
// file and falling back to cfg.DefaultVersion. Already-versioned files
// are never touched, so the operation is idempotent.
func ApplyVersions(cfg Config, write bool) (version.Summary, []string, error) {
	cfg = cfg.resolved()
	if err := requireDir(cfg.SchemasRoot, "schemas root"); err != nil {
		return version.Summary{}, nil, err
	}

	m, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		return version.Summary{}, nil, err
	}
	versions := version.FromManifest(m)
	return version.ApplyTree(cfg.RepoRoot, cfg.SchemasRoot, versions, cfg.DefaultVersion, write)
}

// Validate checks that every manifest-referenced file exists, parses as
// JSON, and embeds the version the manifest declares for it.
func Validate(cfg Config) ([]report.Problem, error) {
	cfg = cfg.resolved()
	m, err := loadRequiredManifest(cfg)
	if err != nil {
		return nil, err
	}
	return version.Check(m, cfg.RepoRoot), nil
}

// ValidateTableNames checks that every manifest entry declares a
// non-empty table_name and that table names are unique across the whole
// manifest.
func ValidateTableNames(cfg Config) (manifest.TableNameReport, error) {
	cfg = cfg.resolved()
	m, err := loadRequiredManifest(cfg)
	if err != nil {
		return manifest.TableNameReport{}, err
	}
	return manifest.ValidateTableNames(m), nil
}

// ExportCatalog materializes the manifest and the fields of every
// referenced record into a SQLite database at dbPath.
func ExportCatalog(ctx context.Context, cfg Config, dbPath string) (catalog.Summary, error) {
	cfg = cfg.resolved()
	m, err := loadRequiredManifest(cfg)
	if err != nil {
		return catalog.Summary{}, err
	}

	client, err := catalog.Open(ctx, dbPath)
	if err != nil {
		return catalog.Summary{}, err
	}
	defer func() { _ = client.Close() }()

	return client.Export(ctx, m, cfg.RepoRoot)
}

// loadRequiredManifest loads the manifest for tools that cannot run
// without one.
func loadRequiredManifest(cfg Config) (*manifest.Manifest, error) {
	if _, err := os.Stat(cfg.ManifestPath); err != nil {
		return nil, envErrorf("manifest not found: %s", cfg.ManifestPath)
	}
	return manifest.Load(cfg.ManifestPath)
}
