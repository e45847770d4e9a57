package manifest

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the manifest document from path. A missing file is not an
// error: runs against an unmanaged tree start from an empty manifest with
// the default naming policy.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: invalid YAML: %w", path, err)
	}
	m.applyDefaults()
	return &m, nil
}

// Save serializes the manifest and replaces the file at path. The file is
// only touched after the document marshalled cleanly.
func Save(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Equal reports whether two manifests serialize to the same document.
// Structural comparison of the rendered form decides whether a normalize
// run is a no-op.
func Equal(a, b *Manifest) bool {
	ab, err := yaml.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := yaml.Marshal(b)
	if err != nil {
		return false
	}
	return string(ab) == string(bb)
}
