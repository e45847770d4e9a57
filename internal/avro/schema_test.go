package avro

import (
	"testing"
)

func mustParse(t *testing.T, src string) Value {
	t.Helper()
	v, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return v
}

func TestIsNullable(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"null first", `["null","string"]`, true},
		{"null anywhere", `["string","null"]`, true},
		{"complex null tag", `["string",{"type":"null"}]`, true},
		{"no null branch", `["string","long"]`, false},
		{"bare primitive", `"string"`, false},
		{"complex type", `{"type":"array","items":"string"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNullable(mustParse(t, tt.src)); got != tt.want {
				t.Errorf("IsNullable(%s) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestPrimaryRecord(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		path     string
		wantName string
		wantOK   bool
	}{
		{
			name:     "single record",
			src:      `{"type":"record","name":"Star","fields":[]}`,
			path:     "schemas/stellar/Star.avsc",
			wantName: "Star",
			wantOK:   true,
		},
		{
			name:     "list picks matching stem",
			src:      `[{"type":"record","name":"Other","fields":[]},{"type":"record","name":"Star","fields":[]}]`,
			path:     "schemas/stellar/Star.avsc",
			wantName: "Star",
			wantOK:   true,
		},
		{
			name:     "suffixed stem matches unsuffixed record",
			src:      `[{"type":"record","name":"Other","fields":[]},{"type":"record","name":"Star","fields":[]}]`,
			path:     "schemas/stellar/StarSchema.avsc",
			wantName: "Star",
			wantOK:   true,
		},
		{
			name:     "no stem match falls back to first record",
			src:      `[{"type":"enum","name":"Kind","symbols":["A"]},{"type":"record","name":"Other","fields":[]}]`,
			path:     "schemas/stellar/Star.avsc",
			wantName: "Other",
			wantOK:   true,
		},
		{
			name:   "pure enum file has no primary record",
			src:    `{"type":"enum","name":"Kind","symbols":["A","B"]}`,
			path:   "schemas/stellar/Kind.avsc",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.src)
			rec, ok := PrimaryRecord(&doc, tt.path)
			if ok != tt.wantOK {
				t.Fatalf("PrimaryRecord ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got := rec.StringField("name"); got != tt.wantName {
				t.Errorf("Expected record %q, got %q", tt.wantName, got)
			}
		})
	}
}

func TestFullName(t *testing.T) {
	rec := mustParse(t, `{"type":"record","name":"Star","namespace":"cosmos.stellar","fields":[]}`)
	if got := FullName(&rec); got != "cosmos.stellar.Star" {
		t.Errorf("Expected cosmos.stellar.Star, got %s", got)
	}

	bare := mustParse(t, `{"type":"record","name":"Star","fields":[]}`)
	if got := FullName(&bare); got != "Star" {
		t.Errorf("Expected Star, got %s", got)
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`"string"`, "string"},
		{`["null","long"]`, "null|long"},
		{`{"type":"array","items":"string"}`, "array"},
		{`{"type":"enum","name":"Kind","symbols":[]}`, "enum"},
	}
	for _, tt := range tests {
		if got := TypeString(mustParse(t, tt.src)); got != tt.want {
			t.Errorf("TypeString(%s) = %q, want %q", tt.src, got, tt.want)
		}
	}
}
