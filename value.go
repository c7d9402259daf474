package jsondelta

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Kind classifies the runtime shape of a Value.
type Kind uint8

const (
	// KindNull represents JSON null.
	KindNull Kind = iota
	// KindBool represents a JSON boolean.
	KindBool
	// KindNumber represents a JSON number, stored as a float64.
	KindNumber
	// KindString represents a JSON string.
	KindString
	// KindArray represents an ordered JSON array.
	KindArray
	// KindObject represents an unordered JSON object.
	KindObject
)

// String names a Kind the way TypeOf names a Value.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the JSON value space: null, boolean, number,
// string, an ordered array of Values, or an unordered string-keyed mapping
// of Values. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  map[string]Value
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean as a Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a float64 as a Value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String wraps a string as a Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps a slice of Values as a Value. The slice is not copied.
func Array(vs []Value) Value { return Value{kind: KindArray, arr: vs} }

// Object wraps a string-keyed map of Values as a Value. The map is not
// copied.
func Object(m map[string]Value) Value { return Value{kind: KindObject, obj: m} }

// Kind returns the tag of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns v's boolean payload. Only meaningful when Kind()==KindBool.
func (v Value) AsBool() bool { return v.b }

// AsNumber returns v's numeric payload. Only meaningful when
// Kind()==KindNumber.
func (v Value) AsNumber() float64 { return v.n }

// AsString returns v's string payload. Only meaningful when
// Kind()==KindString.
func (v Value) AsString() string { return v.s }

// AsArray returns v's element slice. Only meaningful when Kind()==KindArray.
func (v Value) AsArray() []Value { return v.arr }

// AsObject returns v's field map. Only meaningful when Kind()==KindObject.
func (v Value) AsObject() map[string]Value { return v.obj }

// TypeOf returns one of "null", "boolean", "number", "string", "array",
// "object" describing v's runtime shape.
func TypeOf(v Value) string { return v.kind.String() }

// RequireObject returns v's field map, or a wrapped ErrNotAnObject if v is
// not an Object. This is the pre-validation guard for callers about to
// route a caller-supplied Value into ApplyObjectDiff or TransformObjectDiff.
func RequireObject(v Value) (map[string]Value, error) {
	if v.Kind() != KindObject {
		return nil, fmt.Errorf("%w: got %s", ErrNotAnObject, TypeOf(v))
	}
	return v.AsObject(), nil
}

// RequireList returns v's element slice, or a wrapped ErrNotAList if v is
// not an Array. This is the pre-validation guard for callers about to route
// a caller-supplied Value into ApplyListDiff or TransformListDiff.
func RequireList(v Value) ([]Value, error) {
	if v.Kind() != KindArray {
		return nil, fmt.Errorf("%w: got %s", ErrNotAList, TypeOf(v))
	}
	return v.AsArray(), nil
}

// Equals reports whether a and b are structurally identical. Booleans and
// numbers compare equal across kinds under the numeric projection of the
// boolean (false=0, true=1): Equals(Bool(true), Number(1)) is true. Arrays
// are equal when lengths match and every index is equal; objects are equal
// when key-sets match and every value is equal. Otherwise values must share
// a kind and compare equal on their primitive payload.
func Equals(a, b Value) bool {
	if a.kind == KindBool && b.kind == KindNumber {
		return boolAsNumber(a.b) == b.n
	}
	if a.kind == KindNumber && b.kind == KindBool {
		return a.n == boolAsNumber(b.b)
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equals(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for k, av := range a.obj {
			bv, ok := b.obj[k]
			if !ok || !Equals(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func boolAsNumber(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// DeepCopy returns a value-independent copy of v: mutating the result never
// affects v, and vice versa. Patching is non-destructive and always starts
// from a DeepCopy of its input.
func DeepCopy(v Value) Value {
	switch v.kind {
	case KindArray:
		cp := make([]Value, len(v.arr))
		for i, el := range v.arr {
			cp[i] = DeepCopy(el)
		}
		return Array(cp)
	case KindObject:
		cp := make(map[string]Value, len(v.obj))
		for k, el := range v.obj {
			cp[k] = DeepCopy(el)
		}
		return Object(cp)
	default:
		return v
	}
}

// sortedKeys returns the keys of an object in ascending order, matching the
// teacher's convention of sorting keys before iterating a map for
// deterministic traversal.
func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON renders v as ordinary JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return json.Marshal(v.n)
	case KindString:
		return json.Marshal(v.s)
	case KindArray:
		if v.arr == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.arr)
	case KindObject:
		if v.obj == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.obj)
	default:
		return nil, fmt.Errorf("jsondelta: unknown value kind %d", v.kind)
	}
}

// UnmarshalJSON populates v from ordinary JSON, recursively building the
// tagged union from encoding/json's generic decode (nil, bool, float64,
// string, []interface{}, map[string]interface{}).
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = fromInterface(raw)
	return nil
}

func fromInterface(raw interface{}) Value {
	switch x := raw.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(x)
	case float64:
		return Number(x)
	case string:
		return String(x)
	case []interface{}:
		vs := make([]Value, len(x))
		for i, el := range x {
			vs[i] = fromInterface(el)
		}
		return Array(vs)
	case map[string]interface{}:
		m := make(map[string]Value, len(x))
		for k, el := range x {
			m[k] = fromInterface(el)
		}
		return Object(m)
	default:
		// encoding/json never produces any other dynamic type for
		// interface{} targets, so this path is unreachable in practice.
		return Null()
	}
}
