// Package avro models Avro schema definition files as ordered JSON
// documents. Schema files are edited in place by other tools, so the
// representation preserves object key order exactly as read.
package avro

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// Value is a closed variant over the JSON values a schema document can
// contain. Object members keep their source order.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	arr  []Value
	obj  []Member
}

// Member is a single key/value pair of an Object value.
type Member struct {
	Key   string
	Value Value
}

// NullValue returns the JSON null value.
func NullValue() Value { return Value{kind: Null} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// NumberValue returns a numeric value from its literal representation.
// The literal is kept verbatim so 0 and 0.0 stay distinct on rewrite.
func NumberValue(n json.Number) Value { return Value{kind: Number, num: n} }

// IntValue returns a numeric value holding an integer literal.
func IntValue(i int64) Value {
	return Value{kind: Number, num: json.Number(strconv.FormatInt(i, 10))}
}

// StringValue returns a string value.
func StringValue(s string) Value { return Value{kind: String, str: s} }

// ArrayValue returns an array value over the given items.
func ArrayValue(items []Value) Value { return Value{kind: Array, arr: items} }

// ObjectValue returns an object value over the given ordered members.
func ObjectValue(members []Member) Value { return Value{kind: Object, obj: members} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the JSON null value.
func (v Value) IsNull() bool { return v.kind == Null }

// Bool returns the boolean payload. Valid only for Bool values.
func (v Value) Bool() bool { return v.b }

// Number returns the numeric literal. Valid only for Number values.
func (v Value) Number() json.Number { return v.num }

// Str returns the string payload, or "" when v is not a String.
func (v Value) Str() string {
	if v.kind != String {
		return ""
	}
	return v.str
}

// Len returns the number of items or members of an Array or Object.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.arr)
	case Object:
		return len(v.obj)
	default:
		return 0
	}
}

// Items returns the items of an Array value.
func (v Value) Items() []Value {
	if v.kind != Array {
		return nil
	}
	return v.arr
}

// Members returns the ordered members of an Object value.
func (v Value) Members() []Member {
	if v.kind != Object {
		return nil
	}
	return v.obj
}

// At returns a pointer to the i-th item of an Array value so callers can
// mutate nested documents in place.
func (v *Value) At(i int) *Value { return &v.arr[i] }

// Field returns a pointer to the member value for key, or nil when the
// key is absent or v is not an Object. A nil result distinguishes "no
// default declared" from "default is null".
func (v *Value) Field(key string) *Value {
	if v.kind != Object {
		return nil
	}
	for i := range v.obj {
		if v.obj[i].Key == key {
			return &v.obj[i].Value
		}
	}
	return nil
}

// Has reports whether an Object value declares the given key.
func (v *Value) Has(key string) bool { return v.Field(key) != nil }

// Set replaces the member value for key, or appends a new member at the
// end when the key is absent. Existing key order is never disturbed.
func (v *Value) Set(key string, val Value) {
	if p := v.Field(key); p != nil {
		*p = val
		return
	}
	v.obj = append(v.obj, Member{Key: key, Value: val})
}

// StringField returns the string member for key, or "" when absent or
// not a string.
func (v *Value) StringField(key string) string {
	p := v.Field(key)
	if p == nil {
		return ""
	}
	return p.Str()
}

// MarshalJSON renders v as compact JSON, preserving object member order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v Value) error {
	switch v.kind {
	case Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(strconv.FormatBool(v.b))
	case Number:
		if v.num == "" {
			buf.WriteByte('0')
			return nil
		}
		buf.WriteString(string(v.num))
	case String:
		b, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case Array:
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, m := range v.obj {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := encodeValue(buf, m.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown value kind %d", v.kind)
	}
	return nil
}

// Parse decodes a JSON document into a Value, preserving object key order.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := parseValue(dec)
	if err != nil {
		return Value{}, err
	}
	if dec.More() {
		return Value{}, fmt.Errorf("unexpected trailing content after document")
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var members []Member
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := parseValue(dec)
				if err != nil {
					return Value{}, err
				}
				members = append(members, Member{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return Value{}, err
			}
			return ObjectValue(members), nil
		case '[':
			var items []Value
			for dec.More() {
				item, err := parseValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return Value{}, err
			}
			return ArrayValue(items), nil
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return StringValue(t), nil
	case json.Number:
		return NumberValue(t), nil
	case bool:
		return BoolValue(t), nil
	case nil:
		return NullValue(), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}
