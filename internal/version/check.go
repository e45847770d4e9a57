package version

import (
	"os"
	"path/filepath"

	"github.com/meridian-data/schemactl/internal/avro"
	"github.com/meridian-data/schemactl/internal/manifest"
	"github.com/meridian-data/schemactl/internal/report"
)

// Check verifies that every file the manifest references exists, parses,
// and carries the version the manifest declares for it. Problems
// accumulate; the check never stops at the first failure.
func Check(m *manifest.Manifest, repoRoot string) []report.Problem {
	var problems []report.Problem

	for _, group := range m.Groups() {
		for _, e := range m.Schemas[group] {
			qualified := group + "." + e.Name
			path := filepath.Join(repoRoot, filepath.FromSlash(e.File))

			if _, err := os.Stat(path); err != nil {
				problems = append(problems, report.Problemf(
					report.KindMissingFile, qualified, "file missing at %s", path))
				continue
			}

			doc, err := avro.ReadFile(path)
			if err != nil {
				problems = append(problems, report.Problemf(
					report.KindMalformedDocument, path, "invalid JSON (%v)", err))
				continue
			}

			// Files holding a list of definitions stamp the first one.
			top := &doc
			if doc.Kind() == avro.Array && doc.Len() > 0 {
				top = doc.At(0)
			}
			embedded := top.StringField("version")
			if embedded != e.Version {
				problems = append(problems, report.Problemf(
					report.KindStructuralViolation, qualified,
					"version mismatch (manifest=%s, file=%s)", orNone(e.Version), orNone(embedded)))
			}
		}
	}
	return problems
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
