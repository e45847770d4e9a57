package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/meridian-data/schemactl/internal/manifest"
)

func writeSchema(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testManifest() *manifest.Manifest {
	m := manifest.New()
	m.Schemas["stellar"] = []manifest.Entry{{
		Name:          "Star",
		File:          "schemas/stellar/Star.avsc",
		Namespace:     "cosmos.stellar",
		Description:   "A star.",
		Compatibility: "BACKWARD",
		Version:       "1.0.0",
		TableName:     "star",
	}}
	return m
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	writeSchema(t, filepath.Join(root, "schemas", "stellar", "Star.avsc"), `{
		"type": "record",
		"name": "Star",
		"namespace": "cosmos.stellar",
		"fields": [
			{"name": "star_id", "type": "string", "default": ""},
			{"name": "mass", "type": ["null", "double"], "default": null}
		]
	}`)

	client, err := Open(ctx, filepath.Join(root, "catalog.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer client.Close()

	sum, err := client.Export(ctx, testManifest(), root)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if sum.Entries != 1 || sum.Fields != 2 || sum.Skipped != 0 {
		t.Errorf("Unexpected summary %+v", sum)
	}

	var name, group, version string
	row := client.DB().QueryRowContext(ctx,
		"SELECT name, group_name, version FROM schema_entries WHERE table_name = ?", "star")
	if err := row.Scan(&name, &group, &version); err != nil {
		t.Fatalf("Entry row missing: %v", err)
	}
	if name != "Star" || group != "stellar" || version != "1.0.0" {
		t.Errorf("Unexpected entry row: %s %s %s", name, group, version)
	}

	var fieldType string
	var nullable, hasDefault bool
	row = client.DB().QueryRowContext(ctx,
		"SELECT field_type, nullable, has_default FROM schema_fields WHERE table_name = ? AND field_name = ?",
		"star", "mass")
	if err := row.Scan(&fieldType, &nullable, &hasDefault); err != nil {
		t.Fatalf("Field row missing: %v", err)
	}
	if fieldType != "null|double" {
		t.Errorf("Unexpected field type %s", fieldType)
	}
	if !nullable || !hasDefault {
		t.Errorf("Expected nullable field with default, got nullable=%v has_default=%v", nullable, hasDefault)
	}
}

func TestExportSkipsUnreadableFiles(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	client, err := Open(ctx, filepath.Join(root, "catalog.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer client.Close()

	sum, err := client.Export(ctx, testManifest(), root)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if sum.Entries != 1 {
		t.Errorf("Expected the entry row even without the file, got %d", sum.Entries)
	}
	if sum.Skipped != 1 || sum.Fields != 0 {
		t.Errorf("Expected 1 skipped entry and no fields, got %+v", sum)
	}
}

func TestExportReplacesPreviousContents(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	writeSchema(t, filepath.Join(root, "schemas", "stellar", "Star.avsc"),
		`{"type":"record","name":"Star","fields":[{"name":"star_id","type":"string"}]}`)

	client, err := Open(ctx, filepath.Join(root, "catalog.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer client.Close()

	for i := 0; i < 2; i++ {
		if _, err := client.Export(ctx, testManifest(), root); err != nil {
			t.Fatalf("Export run %d failed: %v", i+1, err)
		}
	}

	var n int
	if err := client.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_entries").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Expected 1 entry row after re-export, got %d", n)
	}
}
