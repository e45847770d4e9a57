package version

import (
	"github.com/meridian-data/schemactl/internal/avro"
)

// Summary counts what a version-stamping pass did.
type Summary struct {
	Scanned  int `json:"scanned"`
	Modified int `json:"modified"`
}

// Apply sets a top-level version field in the schema file at path when
// one is missing or empty, and reports whether the file was modified.
// Files that already carry a non-empty version are left untouched, so a
// second run over an already-versioned tree is a no-op. Documents that
// are not a single definition object are skipped.
func Apply(path, repoRoot, schemasRoot string, versions map[string]string, defaultVersion string, write bool) (bool, error) {
	doc, err := avro.ReadFile(path)
	if err != nil {
		return false, err
	}
	if doc.Kind() != avro.Object {
		return false, nil
	}
	if existing := doc.Field("version"); existing != nil && !existing.IsNull() {
		if existing.Kind() != avro.String || existing.Str() != "" {
			return false, nil
		}
	}

	resolved := Resolve(path, repoRoot, schemasRoot, versions, defaultVersion)
	doc.Set("version", avro.StringValue(resolved))

	if !write {
		return true, nil
	}
	return true, avro.WriteFile(path, doc)
}

// ApplyTree stamps every schema file beneath schemasRoot. Files with
// invalid JSON are skipped; the validate tool reports them. When write is
// false the pass only reports what it would change.
func ApplyTree(repoRoot, schemasRoot string, versions map[string]string, defaultVersion string, write bool) (Summary, []string, error) {
	files, err := avro.FindFiles(schemasRoot)
	if err != nil {
		return Summary{}, nil, err
	}

	var sum Summary
	var modified []string
	for _, f := range files {
		sum.Scanned++
		changed, err := Apply(f, repoRoot, schemasRoot, versions, defaultVersion, write)
		if err != nil {
			continue
		}
		if changed {
			sum.Modified++
			modified = append(modified, f)
		}
	}
	return sum, modified, nil
}
