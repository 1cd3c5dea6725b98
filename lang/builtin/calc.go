package builtin

import (
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/nova/lang"
)

// ErrCalc indicates an expression given to calc failed to compile or run.
var ErrCalc = lang.NewError("calc expression failed")

// calcFunc evaluates an expr-lang expression. Identifiers resolve to the
// data bindings visible from the calling scope, converted by
// [lang.ToNative]. Callable bindings are not visible.
func calcFunc(args []lang.Value, env *lang.Env) (lang.Value, error) {
	if err := arity("calc", args, 1); err != nil {
		return nil, err
	}

	source, err := str("calc", args, 0)
	if err != nil {
		return nil, err
	}

	vars := make(map[string]any)

	if env != nil {
		for name, v := range env.Visible() {
			switch v.(type) {
			case *lang.Function, *lang.Native, *lang.Class:
				// leave expr-lang's own builtins (max, len, ...) visible
				continue
			}

			vars[name] = lang.ToNative(v)
		}
	}

	program, err := expr.Compile(source, expr.Env(vars))
	if err != nil {
		return nil, fail("calc", ErrCalc.Wrap(err).With(slog.String("source", source)))
	}

	result, err := vm.Run(program, vars)
	if err != nil {
		return nil, fail("calc", ErrCalc.Wrap(err).With(slog.String("source", source)))
	}

	v, err := lang.FromNative(result)
	if err != nil {
		return nil, fail("calc", err)
	}

	return v, nil
}
