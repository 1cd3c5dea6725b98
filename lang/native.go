package lang

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

// ToNative converts v to plain Go data: nil, bool, float64, string, []any,
// or map[string]any. Functions, natives, and classes become the string
// [Inspect] renders for them. Cyclic references become nil.
func ToNative(v Value) any {
	return toNative(v, make(map[Value]bool))
}

func toNative(v Value, seen map[Value]bool) any {
	switch x := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(x)
	case Number:
		return float64(x)
	case Str:
		return string(x)
	case *Array:
		if seen[x] {
			return nil
		}

		seen[x] = true
		defer delete(seen, x)

		out := make([]any, len(x.Elements))
		for i, e := range x.Elements {
			out[i] = toNative(e, seen)
		}

		return out
	case *Object:
		if seen[x] {
			return nil
		}

		seen[x] = true
		defer delete(seen, x)

		out := make(map[string]any, x.Len())
		for k, e := range x.All() {
			out[k] = toNative(e, seen)
		}

		return out
	case *Instance:
		if seen[x] {
			return nil
		}

		seen[x] = true
		defer delete(seen, x)

		out := make(map[string]any, len(x.keys))
		for k, e := range x.All() {
			out[k] = toNative(e, seen)
		}

		return out
	}

	return Inspect(v)
}

// FromNative converts plain Go data to a Value. Maps become objects with
// keys in sorted order. A Value passes through unchanged.
func FromNative(x any) (Value, error) {
	switch n := x.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return n, nil
	case bool:
		return Bool(n), nil
	case int:
		return Number(n), nil
	case int8:
		return Number(n), nil
	case int16:
		return Number(n), nil
	case int32:
		return Number(n), nil
	case int64:
		return Number(n), nil
	case uint:
		return Number(n), nil
	case uint8:
		return Number(n), nil
	case uint16:
		return Number(n), nil
	case uint32:
		return Number(n), nil
	case uint64:
		return Number(n), nil
	case float32:
		return Number(n), nil
	case float64:
		return Number(n), nil
	case string:
		return Str(n), nil
	case []string:
		elems := make([]Value, len(n))
		for i, s := range n {
			elems[i] = Str(s)
		}

		return NewArray(elems...), nil
	case []any:
		elems := make([]Value, len(n))

		for i, e := range n {
			v, err := FromNative(e)
			if err != nil {
				return nil, err
			}

			elems[i] = v
		}

		return NewArray(elems...), nil
	case map[string]any:
		obj := NewObject()

		for _, k := range slices.Sorted(maps.Keys(n)) {
			v, err := FromNative(n[k])
			if err != nil {
				return nil, err
			}

			obj.Set(k, v)
		}

		return obj, nil
	}

	return nil, ErrNative.With(slog.String("go_type", fmt.Sprintf("%T", x)))
}
