// Package manifest owns the schema registry manifest: loading and saving
// the document, deriving canonical names and table names, and merging
// on-disk scan results into the declared entry set.
package manifest

import "sort"

// Current manifest document version.
const DocumentVersion = 1

// Fallbacks applied when an entry carries no explicit value.
const (
	DefaultCompatibility = "BACKWARD"
	DefaultVersion       = "1.0.0"
	DefaultCanonical     = "unsuffixed"
)

// DefaultAliasPatterns are the template strings recorded in a fresh
// naming policy.
var DefaultAliasPatterns = []string{"{name}", "{name}Schema"}

// Naming is the manifest's naming policy.
type Naming struct {
	Canonical     string   `yaml:"canonical"`
	AliasPatterns []string `yaml:"alias_patterns"`
}

// Entry describes one schema file known to the registry.
type Entry struct {
	Name          string   `yaml:"name"`
	Aliases       []string `yaml:"aliases,omitempty"`
	File          string   `yaml:"file"`
	Namespace     string   `yaml:"namespace"`
	Description   string   `yaml:"description,omitempty"`
	Compatibility string   `yaml:"compatibility,omitempty"`
	Version       string   `yaml:"version,omitempty"`
	TableName     string   `yaml:"table_name"`
	PrimaryKey    any      `yaml:"primary_key,omitempty"`
	Physics       any      `yaml:"physics,omitempty"`
}

// Manifest is the registry document. Schemas maps group names to ordered
// entry lists.
type Manifest struct {
	Version int                `yaml:"version"`
	Naming  Naming             `yaml:"naming"`
	Schemas map[string][]Entry `yaml:"schemas"`
}

// New returns an empty manifest with the default naming policy.
func New() *Manifest {
	m := &Manifest{Version: DocumentVersion, Schemas: map[string][]Entry{}}
	m.applyDefaults()
	return m
}

func (m *Manifest) applyDefaults() {
	if m.Schemas == nil {
		m.Schemas = map[string][]Entry{}
	}
	if m.Naming.Canonical == "" {
		m.Naming.Canonical = DefaultCanonical
	}
	if len(m.Naming.AliasPatterns) == 0 {
		m.Naming.AliasPatterns = append([]string(nil), DefaultAliasPatterns...)
	}
	if m.Version == 0 {
		m.Version = DocumentVersion
	}
}

// Groups returns the group names in sorted order for deterministic
// iteration.
func (m *Manifest) Groups() []string {
	out := make([]string, 0, len(m.Schemas))
	for g := range m.Schemas {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// EntryCount returns the total number of entries across all groups.
func (m *Manifest) EntryCount() int {
	n := 0
	for _, entries := range m.Schemas {
		n += len(entries)
	}
	return n
}
