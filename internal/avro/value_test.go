package avro

import (
	"testing"
)

func TestParsePreservesKeyOrder(t *testing.T) {
	src := `{"type":"record","name":"Star","namespace":"cosmos","fields":[]}`

	v, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v.Kind() != Object {
		t.Fatalf("Expected object, got kind %d", v.Kind())
	}

	wantKeys := []string{"type", "name", "namespace", "fields"}
	members := v.Members()
	if len(members) != len(wantKeys) {
		t.Fatalf("Expected %d members, got %d", len(wantKeys), len(members))
	}
	for i, key := range wantKeys {
		if members[i].Key != key {
			t.Errorf("Member %d: expected key %q, got %q", i, key, members[i].Key)
		}
	}

	out, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(out) != src {
		t.Errorf("Round trip changed document:\n in: %s\nout: %s", src, out)
	}
}

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"null", `null`, `null`},
		{"bool", `true`, `true`},
		{"integer", `42`, `42`},
		{"float keeps literal", `0.0`, `0.0`},
		{"string", `"star"`, `"star"`},
		{"empty array", `[]`, `[]`},
		{"empty object", `{}`, `{}`},
		{"nested", `{"a":[1,{"b":null}]}`, `{"a":[1,{"b":null}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse([]byte(tt.src))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			out, err := v.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON failed: %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, out)
			}
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, src := range []string{``, `{`, `{"a":}`, `[1,]`, `{"a":1}trailing`} {
		if _, err := Parse([]byte(src)); err == nil {
			t.Errorf("Expected error for %q but got none", src)
		}
	}
}

func TestFieldDistinguishesAbsentFromNull(t *testing.T) {
	v, err := Parse([]byte(`{"name":"mass","default":null}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	d := v.Field("default")
	if d == nil {
		t.Fatal("Expected default member to be present")
	}
	if !d.IsNull() {
		t.Error("Expected default value to be null")
	}
	if v.Field("doc") != nil {
		t.Error("Expected absent key to return nil")
	}
}

func TestSetAppendsNewKeysAtEnd(t *testing.T) {
	v, err := Parse([]byte(`{"a":1,"b":2}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	v.Set("c", StringValue("x"))
	v.Set("a", IntValue(9))

	out, _ := v.MarshalJSON()
	want := `{"a":9,"b":2,"c":"x"}`
	if string(out) != want {
		t.Errorf("Expected %s, got %s", want, out)
	}
}
