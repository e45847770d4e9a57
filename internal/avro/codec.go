package avro

import (
	"bytes"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// ReadFile parses a schema file into an ordered Value document.
func ReadFile(path string) (Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Value{}, err
	}
	v, err := Parse(data)
	if err != nil {
		return Value{}, fmt.Errorf("%s: invalid JSON: %w", path, err)
	}
	return v, nil
}

// WriteFile serializes a schema document with two-space indentation and a
// trailing newline, replacing the file contents only after the document
// marshalled cleanly.
func WriteFile(path string, doc Value) error {
	compact, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: marshal schema: %w", path, err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return fmt.Errorf("%s: indent schema: %w", path, err)
	}
	buf.WriteByte('\n')
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
