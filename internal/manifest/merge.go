package manifest

import "sort"

type entryKey struct {
	file      string
	namespace string
}

func keyOf(e Entry) entryKey {
	return entryKey{file: e.File, namespace: e.Namespace}
}

// Merge folds scan results into an existing manifest and returns a new
// document; neither input is mutated. Scanned entries adopt the metadata
// of a matching existing entry (same file and namespace within the
// group), falling back to derived values for anything missing. Existing
// entries whose files were not seen by the scan are retained verbatim,
// never silently dropped, though their name, aliases and table_name are
// still normalized when absent. Each group's entries come out sorted by
// (namespace, name, file).
func Merge(existing *Manifest, scans []RecordInfo) *Manifest {
	style := existing.Naming.Canonical
	if style == "" {
		style = DefaultCanonical
	}

	existingByGroup := make(map[string]map[entryKey]Entry)
	for group, entries := range existing.Schemas {
		groupMap := make(map[entryKey]Entry, len(entries))
		for _, e := range entries {
			groupMap[keyOf(e)] = e
		}
		existingByGroup[group] = groupMap
	}

	out := map[string][]Entry{}
	seen := make(map[string]map[entryKey]bool)
	for _, info := range scans {
		key := entryKey{file: info.File, namespace: info.Namespace}
		prev, hadPrev := existingByGroup[info.Group][key]

		merged := Entry{
			Name:          Canonicalize(info.Name, style),
			Aliases:       AliasesFor(info.Name, style),
			File:          info.File,
			Namespace:     info.Namespace,
			Description:   info.Doc,
			Compatibility: DefaultCompatibility,
			Version:       DefaultVersion,
			TableName:     DeriveTableName(info.Name, style),
		}
		if hadPrev {
			if prev.Description != "" {
				merged.Description = prev.Description
			}
			if prev.Compatibility != "" {
				merged.Compatibility = prev.Compatibility
			}
			if prev.Version != "" {
				merged.Version = prev.Version
			}
			if prev.TableName != "" {
				merged.TableName = prev.TableName
			}
			merged.PrimaryKey = prev.PrimaryKey
			merged.Physics = prev.Physics
		}

		out[info.Group] = append(out[info.Group], merged)
		if seen[info.Group] == nil {
			seen[info.Group] = map[entryKey]bool{}
		}
		seen[info.Group][key] = true
	}

	// Carry over entries for files the scan no longer found.
	for _, group := range existing.Groups() {
		for _, e := range existing.Schemas[group] {
			if seen[group][keyOf(e)] {
				continue
			}
			kept := e
			if kept.Name != "" {
				if len(kept.Aliases) == 0 {
					kept.Aliases = AliasesFor(kept.Name, style)
				}
				kept.Name = Canonicalize(kept.Name, style)
				if kept.TableName == "" {
					kept.TableName = DeriveTableName(kept.Name, style)
				}
			}
			out[group] = append(out[group], kept)
		}
	}

	for group := range out {
		entries := out[group]
		sort.Slice(entries, func(i, j int) bool {
			a, b := entries[i], entries[j]
			if a.Namespace != b.Namespace {
				return a.Namespace < b.Namespace
			}
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.File < b.File
		})
	}

	merged := &Manifest{
		Version: existing.Version,
		Naming:  existing.Naming,
		Schemas: out,
	}
	merged.applyDefaults()
	return merged
}
