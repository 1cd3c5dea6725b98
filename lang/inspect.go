package lang

import (
	"iter"
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders f the way the language prints numbers: integral
// values without a fraction, the shortest round-tripping decimal otherwise,
// and exponent notation for very large or very small magnitudes.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Inspect renders v for display in a REPL or by print: strings are quoted,
// arrays are bracketed, and objects list their properties.
func Inspect(v Value) string {
	var b strings.Builder

	inspect(&b, v, make(map[Value]bool))

	return b.String()
}

// Display renders v like [Inspect] except that a string is rendered without
// quotes.
func Display(v Value) string {
	if s, ok := v.(Str); ok {
		return string(s)
	}

	return Inspect(v)
}

func inspect(b *strings.Builder, v Value, seen map[Value]bool) {
	switch x := v.(type) {
	case nil, Null:
		b.WriteString("null")

	case Bool:
		b.WriteString(strconv.FormatBool(bool(x)))

	case Number:
		b.WriteString(FormatNumber(float64(x)))

	case Str:
		b.WriteString(`"` + string(x) + `"`)

	case *Array:
		if seen[x] {
			b.WriteString("[...]")

			return
		}

		seen[x] = true
		defer delete(seen, x)

		b.WriteByte('[')

		for i, e := range x.Elements {
			if i > 0 {
				b.WriteString(", ")
			}

			inspect(b, e, seen)
		}

		b.WriteByte(']')

	case *Object:
		if seen[x] {
			b.WriteString("{...}")

			return
		}

		seen[x] = true
		defer delete(seen, x)

		inspectMembers(b, x.Len(), x.All(), seen)

	case *Instance:
		if seen[x] {
			b.WriteString(x.Class.Name() + " {...}")

			return
		}

		seen[x] = true
		defer delete(seen, x)

		b.WriteString(x.Class.Name() + " ")
		inspectMembers(b, len(x.keys), x.All(), seen)

	case *Function:
		b.WriteString("<function " + x.Name() +
			"(" + strings.Join(x.Params(), ", ") + ")>")

	case *Native:
		b.WriteString("<native-fn " + x.Name + ">")

	case *Class:
		b.WriteString("<class " + x.Name() + ">")

	default:
		b.WriteString("<" + TypeOf(v) + ">")
	}
}

func inspectMembers(
	b *strings.Builder,
	n int,
	all iter.Seq2[string, Value],
	seen map[Value]bool,
) {
	if n == 0 {
		b.WriteString("{}")

		return
	}

	b.WriteString("{ ")

	i := 0

	for k, v := range all {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(k + ": ")
		inspect(b, v, seen)

		i++
	}

	b.WriteString(" }")
}
