// Package drift compares the manifest's declared file set against the
// schema files actually on disk.
package drift

import (
	"path/filepath"
	"sort"

	"github.com/meridian-data/schemactl/internal/avro"
	"github.com/meridian-data/schemactl/internal/manifest"
)

// Result partitions every schema file path by group. Keep holds files
// present on disk and referenced by the manifest, Remove files the
// manifest references that are gone from disk, Missing files on disk the
// manifest does not know about.
type Result struct {
	Keep    map[string][]string `json:"keep"`
	Remove  map[string][]string `json:"remove"`
	Missing map[string][]string `json:"missing"`
}

// Clean reports whether no group has drifted.
func (r *Result) Clean() bool {
	for _, paths := range r.Remove {
		if len(paths) > 0 {
			return false
		}
	}
	for _, paths := range r.Missing {
		if len(paths) > 0 {
			return false
		}
	}
	return true
}

// Groups returns every group named by the result, sorted.
func (r *Result) Groups() []string {
	set := map[string]bool{}
	for g := range r.Keep {
		set[g] = true
	}
	for g := range r.Remove {
		set[g] = true
	}
	for g := range r.Missing {
		set[g] = true
	}
	out := make([]string, 0, len(set))
	for g := range set {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// Audit set-differences the on-disk schema tree against the manifest's
// declared files, per group. Manifest entry paths are relative to
// repoRoot; set operations run on resolved absolute paths.
func Audit(m *manifest.Manifest, repoRoot, schemasRoot string) (*Result, error) {
	onDisk, err := avro.GroupedFiles(schemasRoot, nil)
	if err != nil {
		return nil, err
	}

	declared := map[string]map[string]bool{}
	for group, entries := range m.Schemas {
		declared[group] = map[string]bool{}
		for _, e := range entries {
			if e.File == "" {
				continue
			}
			abs, err := filepath.Abs(filepath.Join(repoRoot, filepath.FromSlash(e.File)))
			if err != nil {
				continue
			}
			declared[group][abs] = true
		}
	}

	diskSets := map[string]map[string]bool{}
	for group, files := range onDisk {
		diskSets[group] = map[string]bool{}
		for _, f := range files {
			abs, err := filepath.Abs(f)
			if err != nil {
				continue
			}
			diskSets[group][abs] = true
		}
	}

	groups := map[string]bool{}
	for g := range diskSets {
		groups[g] = true
	}
	for g := range declared {
		groups[g] = true
	}

	res := &Result{
		Keep:    map[string][]string{},
		Remove:  map[string][]string{},
		Missing: map[string][]string{},
	}
	for g := range groups {
		disk := diskSets[g]
		decl := declared[g]

		var keep, remove, missing []string
		for p := range disk {
			if decl[p] {
				keep = append(keep, p)
			} else {
				missing = append(missing, p)
			}
		}
		for p := range decl {
			if !disk[p] {
				remove = append(remove, p)
			}
		}
		sort.Strings(keep)
		sort.Strings(remove)
		sort.Strings(missing)
		res.Keep[g] = keep
		res.Remove[g] = remove
		res.Missing[g] = missing
	}
	return res, nil
}
