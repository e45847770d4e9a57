package drift

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/meridian-data/schemactl/internal/manifest"
)

func writeSchema(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	content := `{"type":"record","name":"X","fields":[]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAuditPartitionsFiles(t *testing.T) {
	root := t.TempDir()
	schemas := filepath.Join(root, "schemas")

	writeSchema(t, filepath.Join(schemas, "stellar", "Star.avsc"))
	writeSchema(t, filepath.Join(schemas, "stellar", "Nebula.avsc"))

	m := manifest.New()
	m.Schemas["stellar"] = []manifest.Entry{
		{Name: "Star", File: "schemas/stellar/Star.avsc", TableName: "star"},
		{Name: "Ghost", File: "schemas/stellar/Ghost.avsc", TableName: "ghost"},
	}

	res, err := Audit(m, root, schemas)
	if err != nil {
		t.Fatalf("Audit failed: %v", err)
	}
	if res.Clean() {
		t.Error("Expected drift to be reported")
	}

	keep := res.Keep["stellar"]
	if len(keep) != 1 || filepath.Base(keep[0]) != "Star.avsc" {
		t.Errorf("Unexpected keep set %v", keep)
	}
	missing := res.Missing["stellar"]
	if len(missing) != 1 || filepath.Base(missing[0]) != "Nebula.avsc" {
		t.Errorf("Unexpected missing set %v", missing)
	}
	remove := res.Remove["stellar"]
	if len(remove) != 1 || filepath.Base(remove[0]) != "Ghost.avsc" {
		t.Errorf("Unexpected remove set %v", remove)
	}
}

func TestAuditCleanWhenDiskMatchesManifest(t *testing.T) {
	root := t.TempDir()
	schemas := filepath.Join(root, "schemas")
	writeSchema(t, filepath.Join(schemas, "stellar", "Star.avsc"))
	writeSchema(t, filepath.Join(schemas, "stellar", "Nebula.avsc"))

	m := manifest.New()
	m.Schemas["stellar"] = []manifest.Entry{
		{Name: "Star", File: "schemas/stellar/Star.avsc", TableName: "star"},
		{Name: "Nebula", File: "schemas/stellar/Nebula.avsc", TableName: "nebula"},
	}

	res, err := Audit(m, root, schemas)
	if err != nil {
		t.Fatalf("Audit failed: %v", err)
	}
	if !res.Clean() {
		t.Errorf("Expected clean result, got remove=%v missing=%v", res.Remove, res.Missing)
	}
	if len(res.Keep["stellar"]) != 2 {
		t.Errorf("Expected 2 kept files, got %v", res.Keep["stellar"])
	}
}

func TestAuditManifestOnlyGroup(t *testing.T) {
	root := t.TempDir()
	schemas := filepath.Join(root, "schemas")
	if err := os.MkdirAll(schemas, 0o755); err != nil {
		t.Fatal(err)
	}

	m := manifest.New()
	m.Schemas["retired"] = []manifest.Entry{
		{Name: "Old", File: "schemas/retired/Old.avsc", TableName: "old"},
	}

	res, err := Audit(m, root, schemas)
	if err != nil {
		t.Fatalf("Audit failed: %v", err)
	}
	if len(res.Remove["retired"]) != 1 {
		t.Errorf("Expected the vanished file in remove, got %v", res.Remove["retired"])
	}
	if got := res.Groups(); len(got) != 1 || got[0] != "retired" {
		t.Errorf("Unexpected groups %v", got)
	}
}
