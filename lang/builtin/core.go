package builtin

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/nova/lang"
)

// datetimeLayout renders times like "Mon Oct 19 2026 14:03:00 GMT+0000 (UTC)".
const datetimeLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

func coreTable(cfg config) map[string]lang.Value {
	return map[string]lang.Value{
		"print":    lang.NewNative("print", printFunc(cfg)),
		"datetime": lang.NewNative("datetime", datetimeFunc(cfg)),
		"type":     lang.NewNative("type", typeFunc),
		"str":      lang.NewNative("str", strFunc),
		"len":      lang.NewNative("len", lenFunc),
		"push":     lang.NewNative("push", pushFunc),
		"keys":     lang.NewNative("keys", keysFunc),
	}
}

// printFunc writes its arguments rendered by [lang.Inspect] and separated by
// commas as one line, and returns that line.
func printFunc(cfg config) lang.NativeFunc {
	return func(args []lang.Value, _ *lang.Env) (lang.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = lang.Inspect(a)
		}

		line := strings.Join(parts, ", ")

		if _, err := fmt.Fprintln(cfg.output, line); err != nil {
			return nil, fail("print", err)
		}

		return lang.Str(line), nil
	}
}

func datetimeFunc(cfg config) lang.NativeFunc {
	return func([]lang.Value, *lang.Env) (lang.Value, error) {
		return lang.Str(cfg.now().Format(datetimeLayout)), nil
	}
}

func typeFunc(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	if err := arity("type", args, 1); err != nil {
		return nil, err
	}

	return lang.Str(lang.TypeOf(args[0])), nil
}

func strFunc(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	if err := arity("str", args, 1); err != nil {
		return nil, err
	}

	return lang.Str(lang.Display(args[0])), nil
}

func lenFunc(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	if err := arity("len", args, 1); err != nil {
		return nil, err
	}

	switch v := args[0].(type) {
	case *lang.Array:
		return lang.Number(len(v.Elements)), nil
	case lang.Str:
		return lang.Number(utf8.RuneCountInString(string(v))), nil
	case *lang.Object:
		return lang.Number(v.Len()), nil
	case *lang.Instance:
		return lang.Number(len(v.Keys())), nil
	}

	return nil, argType("len", 0, "array, string, or object", args[0])
}

// pushFunc returns a new array holding the elements of its first argument
// followed by the remaining arguments.
func pushFunc(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	if len(args) < 1 {
		return nil, arity("push", args, 1)
	}

	arr, ok := args[0].(*lang.Array)
	if !ok {
		return nil, argType("push", 0, "array", args[0])
	}

	return lang.NewArray(slices.Concat(arr.Elements, args[1:])...), nil
}

func keysFunc(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	if err := arity("keys", args, 1); err != nil {
		return nil, err
	}

	var keys []string

	switch v := args[0].(type) {
	case *lang.Object:
		keys = v.Keys()
	case *lang.Instance:
		keys = v.Keys()
	default:
		return nil, argType("keys", 0, "object", args[0])
	}

	out := make([]lang.Value, len(keys))
	for i, k := range keys {
		out[i] = lang.Str(k)
	}

	return lang.NewArray(out...), nil
}
