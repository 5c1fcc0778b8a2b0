package genai

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

// Value is the dynamically-typed JSON value used to serialize tool arguments
// and tool results on the wire. It exists only at the gateway serialization
// boundary; crossing into the registries it is converted to native maps.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	obj  map[string]Value
	arr  []Value
}

// NullValue returns the null Value.
func NullValue() Value {
	return Value{kind: KindNull}
}

// StringValue wraps a string.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// NumberValue wraps a number.
func NumberValue(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// BoolValue wraps a bool.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// ObjectValue wraps a field mapping.
func ObjectValue(fields map[string]Value) Value {
	return Value{kind: KindObject, obj: fields}
}

// ArrayValue wraps an ordered item list.
func ArrayValue(items []Value) Value {
	return Value{kind: KindArray, arr: items}
}

// Kind returns the variant tag.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Interface converts the Value into native Go dynamic types: string,
// float64, bool, map[string]any, []any or nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, item := range v.obj {
			out[k] = item.Interface()
		}
		return out
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

// Equal reports structural equality between two values.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindObject:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, item := range v.obj {
			other, ok := o.obj[k]
			if !ok || !item.Equal(other) {
				return false
			}
		}
		return true
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i, item := range v.arr {
			if !item.Equal(o.arr[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// ValueFromAny converts a native dynamic value into a Value. Supported
// inputs are nil, bool, string, all int/float widths, map[string]any and
// []any, recursively.
func ValueFromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(t), nil
	case string:
		return StringValue(t), nil
	case float64:
		return NumberValue(t), nil
	case float32:
		return NumberValue(float64(t)), nil
	case int:
		return NumberValue(float64(t)), nil
	case int32:
		return NumberValue(float64(t)), nil
	case int64:
		return NumberValue(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		return NumberValue(f), nil
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			converted, err := ValueFromAny(item)
			if err != nil {
				return Value{}, err
			}
			fields[k] = converted
		}
		return ObjectValue(fields), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			converted, err := ValueFromAny(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = converted
		}
		return ArrayValue(items), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", v)
	}
}

// ObjectFromMap converts a native mapping into wire object fields.
func ObjectFromMap(m map[string]any) (map[string]Value, error) {
	fields := make(map[string]Value, len(m))
	for k, item := range m {
		converted, err := ValueFromAny(item)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		fields[k] = converted
	}
	return fields, nil
}

// MapFromObject converts wire object fields into a native mapping.
func MapFromObject(fields map[string]Value) map[string]any {
	out := make(map[string]any, len(fields))
	for k, item := range fields {
		out[k] = item.Interface()
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return nil, fmt.Errorf("cannot encode non-finite number")
		}
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindObject:
		// Deterministic key order keeps request payloads stable.
		keys := make([]string, 0, len(v.obj))
		for k := range v.obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf := []byte{'{'}
		for i, k := range keys {
			if i > 0 {
				buf = append(buf, ',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			vb, err := json.Marshal(v.obj[k])
			if err != nil {
				return nil, err
			}
			buf = append(buf, kb...)
			buf = append(buf, ':')
			buf = append(buf, vb...)
		}
		return append(buf, '}'), nil
	case KindArray:
		return json.Marshal(v.arr)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := ValueFromAny(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}
