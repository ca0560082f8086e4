// Package phpserial decodes the PHP-serialized blobs that WordPress and its
// plugins store in meta and option tables. Decoding is deliberately lenient:
// a value that cannot be parsed is carried through as its raw string rather
// than surfaced as an error, matching upstream maybe_unserialize behaviour.
package phpserial

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/elliotchance/phpserialize"
)

// Kind discriminates the variants a decoded meta value can take.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
)

// Value is a tagged union over the shapes PHP serialization can produce.
// The zero Value is Null.
type Value struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	List  []Value
	Map   map[string]Value
}

func Null() Value                 { return Value{} }
func BoolValue(b bool) Value      { return Value{Kind: KindBool, Bool: b} }
func IntValue(i int64) Value      { return Value{Kind: KindInt, Int: i} }
func FloatValue(f float64) Value  { return Value{Kind: KindFloat, Float: f} }
func StringValue(s string) Value  { return Value{Kind: KindString, Str: s} }
func ListValue(l []Value) Value   { return Value{Kind: KindList, List: l} }
func MapValue(m map[string]Value) Value {
	return Value{Kind: KindMap, Map: m}
}

// IsNull reports whether the value is the null variant.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// MarshalJSON renders the underlying value, so composites serialize the same
// way the upstream PHP layer did.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindBool:
		return json.Marshal(v.Bool)
	case KindInt:
		return json.Marshal(v.Int)
	case KindFloat:
		return json.Marshal(v.Float)
	case KindString:
		return json.Marshal(v.Str)
	case KindList:
		if v.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.List)
	case KindMap:
		return json.Marshal(v.Map)
	default:
		return []byte("null"), nil
	}
}

// StringOr returns the string content, or def for non-string variants.
func (v Value) StringOr(def string) string {
	if v.Kind == KindString {
		return v.Str
	}
	return def
}

// TryUnserialize decodes a raw blob. It never fails outward: anything that is
// not valid PHP serialization comes back as a String value holding the raw
// input.
func TryUnserialize(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return StringValue(raw)
	}
	data := []byte(trimmed)
	switch {
	case trimmed == "N;":
		return Null()
	case strings.HasPrefix(trimmed, "b:"):
		b, err := phpserialize.UnmarshalBool(data)
		if err != nil {
			return StringValue(raw)
		}
		return BoolValue(b)
	case strings.HasPrefix(trimmed, "i:"):
		i, err := phpserialize.UnmarshalInt(data)
		if err != nil {
			return StringValue(raw)
		}
		return IntValue(i)
	case strings.HasPrefix(trimmed, "d:"):
		f, err := phpserialize.UnmarshalFloat(data)
		if err != nil {
			return StringValue(raw)
		}
		return FloatValue(f)
	case strings.HasPrefix(trimmed, "s:"):
		s, err := phpserialize.UnmarshalString(data)
		if err != nil {
			return StringValue(raw)
		}
		return StringValue(s)
	case strings.HasPrefix(trimmed, "a:"):
		m, err := phpserialize.UnmarshalAssociativeArray(data)
		if err != nil {
			return StringValue(raw)
		}
		return fromArray(m)
	default:
		return StringValue(raw)
	}
}

// fromArray normalizes a decoded PHP array. Arrays keyed 0..n-1 become lists,
// everything else becomes a string-keyed map.
func fromArray(in map[interface{}]interface{}) Value {
	if isSequential(in) {
		list := make([]Value, len(in))
		for k, item := range in {
			idx, _ := keyToInt(k)
			list[idx] = fromInterface(item)
		}
		return ListValue(list)
	}
	out := make(map[string]Value, len(in))
	for k, item := range in {
		out[keyToString(k)] = fromInterface(item)
	}
	return MapValue(out)
}

func fromInterface(in interface{}) Value {
	switch t := in.(type) {
	case nil:
		return Null()
	case bool:
		return BoolValue(t)
	case int64:
		return IntValue(t)
	case int:
		return IntValue(int64(t))
	case float64:
		return FloatValue(t)
	case string:
		return StringValue(t)
	case []interface{}:
		list := make([]Value, 0, len(t))
		for _, item := range t {
			list = append(list, fromInterface(item))
		}
		return ListValue(list)
	case map[interface{}]interface{}:
		return fromArray(t)
	default:
		return StringValue(keyToString(in))
	}
}

func isSequential(in map[interface{}]interface{}) bool {
	if len(in) == 0 {
		return true
	}
	indexes := make([]int, 0, len(in))
	for k := range in {
		idx, ok := keyToInt(k)
		if !ok {
			return false
		}
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	for i, idx := range indexes {
		if idx != i {
			return false
		}
	}
	return true
}

func keyToInt(k interface{}) (int, bool) {
	switch t := k.(type) {
	case int64:
		return int(t), true
	case int:
		return t, true
	default:
		return 0, false
	}
}

func keyToString(k interface{}) string {
	switch t := k.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// ParseBool follows the upstream fuzzy boolean convention: "1", "true",
// "yes" and "on" (any case) are true, everything else, including the empty
// string, is false. Already-boolean values pass through unchanged.
func ParseBool(v Value) Value {
	switch v.Kind {
	case KindBool:
		return v
	case KindInt:
		return BoolValue(v.Int != 0)
	case KindString:
		switch strings.ToLower(strings.TrimSpace(v.Str)) {
		case "1", "true", "yes", "on":
			return BoolValue(true)
		default:
			return BoolValue(false)
		}
	default:
		return BoolValue(false)
	}
}

// Truthy collapses a value to its boolean interpretation.
func Truthy(v Value) bool {
	return ParseBool(v).Bool
}

// ParseInt coerces numeric strings to the int variant; non-numeric values
// are returned unchanged.
func ParseInt(v Value) Value {
	switch v.Kind {
	case KindInt:
		return v
	case KindFloat:
		return IntValue(int64(v.Float))
	case KindString:
		if n, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64); err == nil {
			return IntValue(n)
		}
		return v
	default:
		return v
	}
}
