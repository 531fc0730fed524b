// Package meta holds the typed representation of document metadata.
//
// Frontmatter values are kept as a tagged variant so that consumers can match
// on Kind (for example, to find date values) instead of asserting on untyped
// interface values. Map preserves key insertion order so serialized output
// follows the order the keys were written in the frontmatter.
package meta

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-yaml"
)

// Kind identifies which field of a Value is populated.
type Kind uint8

// Kind values enumerate the shapes a YAML frontmatter value can take.
const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
	KindList
	KindMap
)

var kindNames = [...]string{
	KindNull:   "null",
	KindString: "string",
	KindInt:    "int",
	KindFloat:  "float",
	KindBool:   "bool",
	KindTime:   "time",
	KindList:   "list",
	KindMap:    "map",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Value is a single metadata value. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	bln  bool
	tm   time.Time
	list []Value
	obj  *Map
}

// NullValue returns the null value.
func NullValue() Value { return Value{} }

// StringValue creates a string Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// IntValue creates an integer Value.
func IntValue(i int64) Value { return Value{kind: KindInt, num: i} }

// FloatValue creates a floating point Value.
func FloatValue(f float64) Value { return Value{kind: KindFloat, flt: f} }

// BoolValue creates a boolean Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, bln: b} }

// TimeValue creates a date/time Value.
func TimeValue(t time.Time) Value { return Value{kind: KindTime, tm: t} }

// ListValue creates a sequence Value.
func ListValue(items ...Value) Value { return Value{kind: KindList, list: items} }

// MapValue creates a nested mapping Value.
func MapValue(m *Map) Value {
	if m == nil {
		m = &Map{}
	}
	return Value{kind: KindMap, obj: m}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Text returns the string held by v.
func (v Value) Text() (string, bool) { return v.str, v.kind == KindString }

// Int returns the integer held by v.
func (v Value) Int() (int64, bool) { return v.num, v.kind == KindInt }

// Float returns the float held by v.
func (v Value) Float() (float64, bool) { return v.flt, v.kind == KindFloat }

// Bool returns the boolean held by v.
func (v Value) Bool() (bool, bool) { return v.bln, v.kind == KindBool }

// Time returns the date/time held by v.
func (v Value) Time() (time.Time, bool) { return v.tm, v.kind == KindTime }

// List returns the items held by v.
func (v Value) List() ([]Value, bool) { return v.list, v.kind == KindList }

// Map returns the nested mapping held by v.
func (v Value) Map() (*Map, bool) { return v.obj, v.kind == KindMap }

// Interface converts v into plain Go values: nil, string, int64, float64,
// bool, time.Time, []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindFloat:
		return v.flt
	case KindBool:
		return v.bln
	case KindTime:
		return v.tm
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		return v.obj.Interface()
	default:
		return nil
	}
}

// Equal reports whether v and other hold the same variant and contents.
// Times are compared with time.Time.Equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindInt:
		return v.num == other.num
	case KindFloat:
		return v.flt == other.flt || (math.IsNaN(v.flt) && math.IsNaN(other.flt))
	case KindBool:
		return v.bln == other.bln
	case KindTime:
		return v.tm.Equal(other.tm)
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return v.obj.Equal(other.obj)
	}
	return false
}

// MarshalJSON encodes v as its natural JSON counterpart. Times use RFC 3339;
// non-finite floats have no JSON form and are written as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindFloat:
		if math.IsNaN(v.flt) || math.IsInf(v.flt, 0) {
			return []byte("null"), nil
		}
		return marshalNoEscape(v.flt)
	case KindTime:
		return marshalNoEscape(v.tm.Format(time.RFC3339Nano))
	case KindList:
		if len(v.list) == 0 {
			return []byte("[]"), nil
		}
		return marshalNoEscape(v.list)
	case KindMap:
		return v.obj.MarshalJSON()
	default:
		return marshalNoEscape(v.Interface())
	}
}

// MarshalYAML implements goccy/go-yaml's InterfaceMarshaler.
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item
		}
		return out, nil
	case KindMap:
		return v.obj.MarshalYAML()
	default:
		return v.Interface(), nil
	}
}

// Map is an insertion-ordered string-keyed mapping of Values.
// The zero Map is empty and ready to use.
type Map struct {
	keys   []string
	values map[string]Value
}

// NewMap returns an empty Map.
func NewMap() *Map { return &Map{} }

// Len returns the number of keys in m.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key. Existing keys keep their position.
func (m *Map) Set(key string, value Value) {
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Keys returns a copy of the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Interface converts m into a plain map[string]any.
func (m *Map) Interface() map[string]any {
	out := make(map[string]any, m.Len())
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out[k] = m.values[k].Interface()
	}
	return out
}

// Equal reports whether m and other hold the same keys, in the same order,
// with equal values.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i, k := range m.Keys() {
		if other.keys[i] != k {
			return false
		}
		if !m.values[k].Equal(other.values[k]) {
			return false
		}
	}
	return true
}

// MarshalJSON writes m as a JSON object with keys in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := m.values[k].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML implements goccy/go-yaml's InterfaceMarshaler and keeps
// insertion order through yaml.MapSlice.
func (m *Map) MarshalYAML() (any, error) {
	slice := make(yaml.MapSlice, 0, m.Len())
	for _, k := range m.Keys() {
		slice = append(slice, yaml.MapItem{Key: k, Value: m.values[k]})
	}
	return slice, nil
}

// marshalNoEscape encodes v without escaping <, > and &, so rendered HTML
// and metadata survive unchanged in the output.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
