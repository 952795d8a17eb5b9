package tuteliq

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// ValueKind enumerates the JSON shapes a Value can hold.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "invalid"
}

// Value is an arbitrary JSON value: null, bool, number, string, array or
// object. It is used for open-ended metadata fields that have no fixed schema,
// such as the metadata attached to analysis requests and webhook events.
//
// The zero Value is JSON null.
type Value struct {
	kind ValueKind
	b    bool
	n    float64
	s    string
	a    []Value
	o    map[string]Value
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array Value.
func Array(items ...Value) Value { return Value{kind: KindArray, a: items} }

// Object returns an object Value.
func Object(fields map[string]Value) Value { return Value{kind: KindObject, o: fields} }

// ValueOf converts a native Go value into a Value. Supported inputs are nil,
// bool, all integer and float types, string, []any, map[string]any, Value
// itself, and nested combinations thereof. Anything else (channels, funcs,
// NaN, infinities, non-string-keyed maps) is rejected with an error rather
// than silently mangled.
func ValueOf(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Number(float64(t)), nil
	case int8:
		return Number(float64(t)), nil
	case int16:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint8:
		return Number(float64(t)), nil
	case uint16:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case float32:
		return ValueOf(float64(t))
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return Value{}, fmt.Errorf("value %v is not representable in JSON", t)
		}
		return Number(t), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			converted, err := ValueOf(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = converted
		}
		return Array(items...), nil
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for key, item := range t {
			converted, err := ValueOf(item)
			if err != nil {
				return Value{}, err
			}
			fields[key] = converted
		}
		return Object(fields), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", v)
	}
}

// Kind returns the JSON shape of the value.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload; ok is false for non-bool values.
func (v Value) AsBool() (value, ok bool) { return v.b, v.kind == KindBool }

// AsNumber returns the numeric payload; ok is false for non-number values.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string payload; ok is false for non-string values.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsArray returns the array payload; ok is false for non-array values.
func (v Value) AsArray() ([]Value, bool) { return v.a, v.kind == KindArray }

// AsObject returns the object payload; ok is false for non-object values.
func (v Value) AsObject() (map[string]Value, bool) { return v.o, v.kind == KindObject }

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return nil, fmt.Errorf("value %v is not representable in JSON", v.n)
		}
		return json.Marshal(v.n)
	case KindString:
		return json.Marshal(v.s)
	case KindArray:
		if v.a == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.a)
	case KindObject:
		if v.o == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.o)
	}
	return nil, fmt.Errorf("invalid value kind %d", v.kind)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	converted, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = converted
	return nil
}

// GoString renders the value as compact JSON. Errors collapse to "null" since
// any Value produced by the constructors is encodable.
func (v Value) GoString() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return "null"
	}
	return string(data)
}

// Equal reports deep equality of two values. Object key order is irrelevant.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n == other.n
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.a) != len(other.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].Equal(other.a[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.o) != len(other.o) {
			return false
		}
		keys := make([]string, 0, len(v.o))
		for k := range v.o {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			otherItem, ok := other.o[k]
			if !ok || !v.o[k].Equal(otherItem) {
				return false
			}
		}
		return true
	}
	return false
}
