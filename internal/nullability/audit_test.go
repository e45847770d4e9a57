package nullability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/meridian-data/schemactl/internal/avro"
	"github.com/meridian-data/schemactl/internal/manifest"
	"github.com/meridian-data/schemactl/internal/report"
)

func mustParse(t *testing.T, src string) avro.Value {
	t.Helper()
	v, err := avro.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return v
}

func TestCheckRecord(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		wantDetails []string
	}{
		{
			name: "nullable with null default passes",
			src: `{"type":"record","name":"Star","namespace":"cosmos","fields":[
				{"name":"mass","type":["null","double"],"default":null}]}`,
		},
		{
			name: "nullable missing default",
			src: `{"type":"record","name":"Star","namespace":"cosmos","fields":[
				{"name":"mass","type":["null","double"]}]}`,
			wantDetails: []string{"nullable but missing default null"},
		},
		{
			name: "nullable with non-null default",
			src: `{"type":"record","name":"Star","namespace":"cosmos","fields":[
				{"name":"mass","type":["null","double"],"default":0.0}]}`,
			wantDetails: []string{"nullable but missing default null"},
		},
		{
			name: "non-nullable with null default",
			src: `{"type":"record","name":"Star","namespace":"cosmos","fields":[
				{"name":"id","type":"string","default":null}]}`,
			wantDetails: []string{"non-nullable but default null"},
		},
		{
			name: "null anywhere in union counts as nullable",
			src: `{"type":"record","name":"Star","namespace":"cosmos","fields":[
				{"name":"mass","type":["double","null"],"default":0.0}]}`,
			wantDetails: []string{"nullable but missing default null"},
		},
		{
			name: "violations accumulate across fields",
			src: `{"type":"record","name":"Star","namespace":"cosmos","fields":[
				{"name":"a","type":["null","string"]},
				{"name":"b","type":"long","default":null}]}`,
			wantDetails: []string{
				"nullable but missing default null",
				"non-nullable but default null",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := mustParse(t, tt.src)
			problems := CheckRecord(&rec)
			if len(problems) != len(tt.wantDetails) {
				t.Fatalf("Expected %d problems, got %d: %v", len(tt.wantDetails), len(problems), problems)
			}
			for i, want := range tt.wantDetails {
				if problems[i].Detail != want {
					t.Errorf("Problem %d: expected %q, got %q", i, want, problems[i].Detail)
				}
			}
		})
	}
}

func TestCheckRecordSubjectUsesFullName(t *testing.T) {
	rec := mustParse(t, `{"type":"record","name":"Star","namespace":"cosmos.stellar","fields":[
		{"name":"mass","type":["null","double"]}]}`)

	problems := CheckRecord(&rec)
	if len(problems) != 1 {
		t.Fatalf("Expected 1 problem, got %d", len(problems))
	}
	if problems[0].Subject != "cosmos.stellar.Star.mass" {
		t.Errorf("Expected subject cosmos.stellar.Star.mass, got %s", problems[0].Subject)
	}
}

func TestCheckFileMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Broken.avsc")
	if err := os.WriteFile(path, []byte(`{"type": "record",`), 0o644); err != nil {
		t.Fatal(err)
	}

	problems := CheckFile(path)
	if len(problems) != 1 {
		t.Fatalf("Expected 1 problem, got %d", len(problems))
	}
	if problems[0].Kind != report.KindMalformedDocument {
		t.Errorf("Expected kind %s, got %s", report.KindMalformedDocument, problems[0].Kind)
	}
}

func TestCheckFileSkipsNonRecordDefinitions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Kind.avsc")
	if err := os.WriteFile(path, []byte(`{"type":"enum","name":"Kind","symbols":["A"]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if problems := CheckFile(path); len(problems) != 0 {
		t.Errorf("Expected no problems for enum file, got %v", problems)
	}
}

func TestCheckManifest(t *testing.T) {
	root := t.TempDir()
	schemas := filepath.Join(root, "schemas", "stellar")
	if err := os.MkdirAll(schemas, 0o755); err != nil {
		t.Fatal(err)
	}
	good := `{"type":"record","name":"Star","namespace":"cosmos","fields":[
		{"name":"mass","type":["null","double"],"default":null}]}`
	if err := os.WriteFile(filepath.Join(schemas, "Star.avsc"), []byte(good), 0o644); err != nil {
		t.Fatal(err)
	}

	m := manifest.New()
	m.Schemas["stellar"] = []manifest.Entry{
		{Name: "Star", File: "schemas/stellar/Star.avsc", TableName: "star"},
		{Name: "Ghost", File: "schemas/stellar/Ghost.avsc", TableName: "ghost"},
	}

	problems := CheckManifest(m, root)
	if len(problems) != 1 {
		t.Fatalf("Expected 1 problem, got %d: %v", len(problems), problems)
	}
	if problems[0].Kind != report.KindMissingFile {
		t.Errorf("Expected kind %s, got %s", report.KindMissingFile, problems[0].Kind)
	}
	if !strings.Contains(problems[0].Subject, "Ghost.avsc") {
		t.Errorf("Expected subject to name the missing file, got %s", problems[0].Subject)
	}
}
