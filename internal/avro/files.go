package avro

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileExt is the extension of schema definition files.
const FileExt = ".avsc"

// SkipToolDirs names top-level directories that live beside schema groups
// but never contain schema definitions.
var SkipToolDirs = map[string]bool{"tools": true}

// FindFiles lists every schema file beneath root, sorted.
func FindFiles(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), FileExt) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

// GroupedFiles lists schema files beneath root bucketed by top-level
// subdirectory name. Files sitting directly in root belong to no group
// and are ignored. Directories named in skip are excluded entirely.
func GroupedFiles(root string, skip map[string]bool) (map[string][]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string][]string)
	for _, entry := range entries {
		if !entry.IsDir() || skip[entry.Name()] {
			continue
		}
		files, err := FindFiles(filepath.Join(root, entry.Name()))
		if err != nil {
			return nil, err
		}
		if len(files) > 0 {
			buckets[entry.Name()] = files
		}
	}
	return buckets, nil
}
