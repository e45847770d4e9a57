// Package version stamps schema files with their registry version and
// checks the stamped versions against the manifest.
package version

import (
	"path"
	"path/filepath"

	"github.com/meridian-data/schemactl/internal/manifest"
)

// FromManifest extracts the per-file version map declared by the
// manifest, keyed by the entry's slash-normalized file path.
func FromManifest(m *manifest.Manifest) map[string]string {
	versions := map[string]string{}
	for _, entries := range m.Schemas {
		for _, e := range entries {
			if e.File == "" || e.Version == "" {
				continue
			}
			versions[path.Clean(filepath.ToSlash(e.File))] = e.Version
		}
	}
	return versions
}

// Resolve decides which version string belongs in the schema file at
// filePath. Manifest-declared versions win; the manifest keys its files
// relative to the repo root, so a small ordered candidate set of path
// forms is tried before falling back to defaultVersion.
func Resolve(filePath, repoRoot, schemasRoot string, versions map[string]string, defaultVersion string) string {
	for _, key := range candidates(filePath, repoRoot, schemasRoot) {
		if v, ok := versions[key]; ok {
			return v
		}
	}
	return defaultVersion
}

// candidates returns the path forms to look up, most specific first: the
// path as given, the repo-root-relative form, and group-prefixed forms
// built from the schemas root's base name.
func candidates(filePath, repoRoot, schemasRoot string) []string {
	var out []string
	add := func(p string) {
		p = path.Clean(filepath.ToSlash(p))
		for _, existing := range out {
			if existing == p {
				return
			}
		}
		out = append(out, p)
	}

	add(filePath)
	if rel, err := filepath.Rel(repoRoot, filePath); err == nil {
		add(rel)
	}
	base := filepath.Base(schemasRoot)
	if rel, err := filepath.Rel(schemasRoot, filePath); err == nil {
		add(path.Join(base, filepath.ToSlash(rel)))
	}
	add(path.Join(base, filepath.Base(filePath)))
	return out
}
