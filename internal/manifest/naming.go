package manifest

import (
	"sort"
	"strings"

	"github.com/meridian-data/schemactl/internal/avro"
)

// Canonicalize derives a record's stable identity from its declared name.
// Under the "unsuffixed" style (the only one currently defined) a
// trailing Schema suffix is stripped; other names pass through unchanged.
// Idempotent: canonicalizing a canonical name is a no-op.
func Canonicalize(name, style string) string {
	if style == DefaultCanonical || style == "" {
		return strings.TrimSuffix(name, avro.SchemaSuffix)
	}
	return name
}

// DeriveTableName derives the lowercase table identifier from a schema
// name, e.g. "Star" -> "star", "StarSchema" -> "star",
// "ProtoplanetaryDisk" -> "protoplanetarydisk". The suffix is stripped
// again after canonicalization so the derivation stays idempotent under
// repeated application.
func DeriveTableName(name, style string) string {
	base := strings.TrimSuffix(Canonicalize(name, style), avro.SchemaSuffix)
	return strings.ToLower(base)
}

// AliasesFor returns the acceptable names for a schema: the canonical
// name first, then the remaining distinct members of {canonical,
// canonical+Schema, original} in lexicographic order.
func AliasesFor(name, style string) []string {
	base := Canonicalize(name, style)
	alts := map[string]bool{
		base:                     true,
		base + avro.SchemaSuffix: true,
		name:                     true,
	}
	rest := make([]string, 0, len(alts))
	for a := range alts {
		if a != base {
			rest = append(rest, a)
		}
	}
	sort.Strings(rest)
	return append([]string{base}, rest...)
}
