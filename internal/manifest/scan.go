package manifest

import (
	"path/filepath"
	"sort"

	"github.com/meridian-data/schemactl/internal/avro"
)

// RecordInfo is the scan result for one schema file's primary record.
type RecordInfo struct {
	Group     string // top-level subdirectory beneath the schemas root
	File      string // path relative to the repo root, slash-separated
	Name      string
	Namespace string
	Doc       string
}

// Scan walks every schema file beneath schemasRoot, grouped by top-level
// subdirectory, and extracts the primary record of each file. Files that
// fail to parse are skipped here; the validate and nullability tools
// report them. Files with no record definition (pure enum or fixed) are
// skipped as well.
func Scan(repoRoot, schemasRoot string) ([]RecordInfo, error) {
	buckets, err := avro.GroupedFiles(schemasRoot, avro.SkipToolDirs)
	if err != nil {
		return nil, err
	}

	groups := make([]string, 0, len(buckets))
	for g := range buckets {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	var records []RecordInfo
	for _, group := range groups {
		for _, path := range buckets[group] {
			doc, err := avro.ReadFile(path)
			if err != nil {
				continue
			}
			rec, ok := avro.PrimaryRecord(&doc, path)
			if !ok {
				continue
			}

			rel, err := filepath.Rel(repoRoot, path)
			if err != nil {
				rel = path
			}
			records = append(records, RecordInfo{
				Group:     group,
				File:      filepath.ToSlash(rel),
				Name:      rec.StringField("name"),
				Namespace: rec.StringField("namespace"),
				Doc:       rec.StringField("doc"),
			})
		}
	}
	return records, nil
}
