// Package nullability checks the contract between a field's declared
// type and its declared default: nullable fields must declare a null
// default, non-nullable fields must never declare one.
package nullability

import (
	"os"
	"path/filepath"

	"github.com/meridian-data/schemactl/internal/avro"
	"github.com/meridian-data/schemactl/internal/manifest"
	"github.com/meridian-data/schemactl/internal/report"
)

// HasExplicitNullDefault reports whether a field declares a default key
// whose value is exactly null. A field with no default key returns false;
// "has no default" and "default is null" are different states.
func HasExplicitNullDefault(field *avro.Value) bool {
	d := field.Field("default")
	return d != nil && d.IsNull()
}

// CheckRecord audits every field of one record and returns the complete
// violation list; it never stops at the first failure.
func CheckRecord(rec *avro.Value) []report.Problem {
	var problems []report.Problem

	fields := avro.Fields(rec)
	if fields == nil {
		return nil
	}
	fullName := avro.FullName(rec)

	for i := 0; i < fields.Len(); i++ {
		field := fields.At(i)
		fieldType := field.Field("type")
		if fieldType == nil {
			continue
		}

		nullable := avro.IsNullable(*fieldType)
		nullDefault := HasExplicitNullDefault(field)
		subject := fullName + "." + field.StringField("name")

		if nullable && !nullDefault {
			problems = append(problems, report.Problemf(
				report.KindStructuralViolation, subject, "nullable but missing default null"))
		}
		if !nullable && nullDefault {
			problems = append(problems, report.Problemf(
				report.KindStructuralViolation, subject, "non-nullable but default null"))
		}
	}
	return problems
}

// CheckFile audits every record definition in one schema file. A file
// that fails to parse yields a single malformed-document problem and no
// field-level checks. Non-record definitions (enum, fixed) are skipped.
func CheckFile(path string) []report.Problem {
	doc, err := avro.ReadFile(path)
	if err != nil {
		return []report.Problem{report.Problemf(
			report.KindMalformedDocument, path, "invalid JSON (%v)", err)}
	}

	var problems []report.Problem
	for _, rec := range avro.Records(doc) {
		problems = append(problems, CheckRecord(&rec)...)
	}
	return problems
}

// CheckManifest audits every schema file the manifest references,
// resolving entry paths against repoRoot. Missing files are reported and
// skipped.
func CheckManifest(m *manifest.Manifest, repoRoot string) []report.Problem {
	var problems []report.Problem
	for _, group := range m.Groups() {
		for _, e := range m.Schemas[group] {
			path := filepath.Join(repoRoot, filepath.FromSlash(e.File))
			if _, err := os.Stat(path); err != nil {
				problems = append(problems, report.Problemf(
					report.KindMissingFile, path, "referenced in manifest but missing"))
				continue
			}
			problems = append(problems, CheckFile(path)...)
		}
	}
	return problems
}
