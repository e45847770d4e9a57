// Package defaults computes spec-legal default values for Avro field
// types and injects them into record definitions that lack one.
package defaults

import (
	"github.com/meridian-data/schemactl/internal/avro"
)

// primitiveDefaults maps primitive type names to their canonical default.
var primitiveDefaults = map[string]avro.Value{
	"string":  avro.StringValue(""),
	"bytes":   avro.StringValue(""),
	"boolean": avro.BoolValue(false),
	"int":     avro.IntValue(0),
	"long":    avro.IntValue(0),
	"float":   avro.NumberValue("0.0"),
	"double":  avro.NumberValue("0.0"),
}

// ForType returns the canonical default value for a field type, or false
// when no default can be inferred (unrecognized primitive names, empty
// unions, unknown complex types).
func ForType(t avro.Value) (avro.Value, bool) {
	switch t.Kind() {
	case avro.String:
		d, ok := primitiveDefaults[t.Str()]
		return d, ok

	case avro.Array:
		// Union of types. A leading null branch means the default is
		// null; otherwise the default comes from the first branch, never
		// any other.
		branches := t.Items()
		if len(branches) == 0 {
			return avro.Value{}, false
		}
		first := branches[0]
		if first.Kind() == avro.String && first.Str() == "null" {
			return avro.NullValue(), true
		}
		return ForType(first)

	case avro.Object:
		switch t.StringField("type") {
		case "array":
			return avro.ArrayValue(nil), true
		case "map":
			return avro.ObjectValue(nil), true
		case "enum":
			symbols := t.Field("symbols")
			if symbols != nil && symbols.Kind() == avro.Array && symbols.Len() > 0 {
				return symbols.Items()[0], true
			}
			return avro.StringValue(""), true
		case "fixed":
			// Empty bytes placeholder.
			return avro.StringValue(""), true
		case "record":
			// A fully-populated nested default would mirror every nested
			// field; an empty map is the backward-compatible placeholder.
			return avro.ObjectValue(nil), true
		}
		return avro.Value{}, false
	}
	return avro.Value{}, false
}

// Inject walks a record definition and sets a default on every field
// that lacks one, when one can be inferred for the field's type. It
// recurses into union branches, array items, map values, and nested
// records even when the field itself already had a default. Enum and
// fixed types have no sub-fields and never recurse.
//
// Returns true iff any field anywhere in the tree was modified; callers
// use this to decide whether to persist the file. Injection is
// idempotent: a second pass over the same record changes nothing.
func Inject(rec *avro.Value) bool {
	modified := false

	fields := avro.Fields(rec)
	if fields == nil {
		return false
	}

	for i := 0; i < fields.Len(); i++ {
		field := fields.At(i)
		fieldType := field.Field("type")
		if fieldType == nil {
			continue
		}

		if field.Field("default") == nil {
			if d, ok := ForType(*fieldType); ok {
				field.Set("default", d)
				modified = true
			}
		}

		switch fieldType.Kind() {
		case avro.Array:
			// Union: recurse into complex branches.
			for j := 0; j < fieldType.Len(); j++ {
				branch := fieldType.At(j)
				if branch.Kind() == avro.Object {
					modified = Inject(branch) || modified
				}
			}
		case avro.Object:
			switch fieldType.StringField("type") {
			case "array":
				if items := fieldType.Field("items"); items != nil && items.Kind() == avro.Object {
					modified = Inject(items) || modified
				}
			case "map":
				if values := fieldType.Field("values"); values != nil && values.Kind() == avro.Object {
					modified = Inject(values) || modified
				}
			case "record":
				modified = Inject(fieldType) || modified
			}
		}
	}

	return modified
}
