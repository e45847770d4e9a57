package avro

import (
	"path/filepath"
	"strings"
)

// SchemaSuffix is the optional naming suffix schema authors append to
// record names and file names (e.g. "StarSchema" for "Star").
const SchemaSuffix = "Schema"

// IsRecord reports whether v is a record type definition.
func IsRecord(v Value) bool {
	return v.Kind() == Object && v.StringField("type") == "record"
}

// Records returns every record-typed definition in a schema document.
// A document holds either a single definition or an ordered list.
func Records(doc Value) []Value {
	switch doc.Kind() {
	case Object:
		if IsRecord(doc) {
			return []Value{doc}
		}
	case Array:
		var out []Value
		for _, item := range doc.Items() {
			if IsRecord(item) {
				out = append(out, item)
			}
		}
		return out
	}
	return nil
}

// PrimaryRecord selects the record a schema file is "about". Files may
// hold several definitions; the record whose name matches the file base
// name (with or without the Schema suffix) wins, otherwise the first
// record found. Returns false when the document defines no record at all,
// which covers pure-enum and pure-fixed files.
func PrimaryRecord(doc *Value, path string) (*Value, bool) {
	var candidates []*Value
	switch doc.Kind() {
	case Object:
		if IsRecord(*doc) {
			candidates = append(candidates, doc)
		}
	case Array:
		for i := range doc.Items() {
			item := doc.At(i)
			if IsRecord(*item) {
				candidates = append(candidates, item)
			}
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	unsuffixed := strings.TrimSuffix(stem, SchemaSuffix)
	for _, rec := range candidates {
		name := rec.StringField("name")
		if name == stem || name == unsuffixed {
			return rec, true
		}
	}
	return candidates[0], true
}

// FullName returns the dotted namespace-qualified name of a record.
func FullName(rec *Value) string {
	ns := strings.Trim(rec.StringField("namespace"), ".")
	name := rec.StringField("name")
	if ns == "" {
		return name
	}
	return ns + "." + name
}

// Fields returns a pointer to a record's "fields" array, or nil when the
// record declares none.
func Fields(rec *Value) *Value {
	f := rec.Field("fields")
	if f == nil || f.Kind() != Array {
		return nil
	}
	return f
}

// IsNullable reports whether a field type is a union with a null branch.
// The null branch may appear anywhere in the union, not only first; the
// default resolver only honours a leading null, so schema authors are
// expected to list null first.
func IsNullable(t Value) bool {
	if t.Kind() != Array {
		return false
	}
	for _, branch := range t.Items() {
		if branch.Kind() == String && branch.Str() == "null" {
			return true
		}
		if branch.Kind() == Object && branch.StringField("type") == "null" {
			return true
		}
	}
	return false
}

// TypeString renders a field type as a short human-readable name, e.g.
// "string", "null|long" for unions, or the tag of a complex type.
func TypeString(t Value) string {
	switch t.Kind() {
	case String:
		return t.Str()
	case Object:
		return t.StringField("type")
	case Array:
		parts := make([]string, 0, t.Len())
		for _, branch := range t.Items() {
			parts = append(parts, TypeString(branch))
		}
		return strings.Join(parts, "|")
	default:
		return ""
	}
}
