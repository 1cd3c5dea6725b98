package builtin

import (
	"math"

	"github.com/ardnew/nova/lang"
)

// NovaURL is the value of constants.nova.
const NovaURL = "https://xkcd.com/927/"

func mathTable(cfg config) map[string]lang.Value {
	return map[string]lang.Value{
		"pow":   lang.NewNative("pow", powFunc),
		"floor": lang.NewNative("floor", floorFunc),
		"sum":   lang.NewNative("sum", sumFunc),
		"max":   lang.NewNative("max", extremeFunc("max", math.Max, math.Inf(-1))),
		"min":   lang.NewNative("min", extremeFunc("min", math.Min, math.Inf(1))),
		"calc":  lang.NewNative("calc", calcFunc),
		"random": namespace("random", map[string]lang.NativeFunc{
			"randInt": randIntFunc(cfg),
		}, "randInt"),
		"constants": lang.NewObject().
			Set("pi", lang.Number(math.Pi)).
			Set("e", lang.Number(math.E)).
			Set("nova", lang.Str(NovaURL)),
	}
}

func powFunc(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	if err := arity("pow", args, 2); err != nil {
		return nil, err
	}

	n, err := numbers("pow", args)
	if err != nil {
		return nil, err
	}

	return lang.Number(math.Pow(n[0], n[1])), nil
}

func floorFunc(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	if err := arity("floor", args, 1); err != nil {
		return nil, err
	}

	n, err := number("floor", args, 0)
	if err != nil {
		return nil, err
	}

	return lang.Number(math.Floor(n)), nil
}

// sumFunc adds the elements of a single array argument, or else all of its
// arguments.
func sumFunc(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	vals := args
	if len(args) > 0 {
		if arr, ok := args[0].(*lang.Array); ok {
			if len(args) > 1 {
				return nil, arity("sum", args, 1)
			}

			vals = arr.Elements
		}
	}

	n, err := numbers("sum", vals)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, x := range n {
		total += x
	}

	return lang.Number(total), nil
}

// extremeFunc returns max or min. Both accept either one array of numbers
// or exactly two numbers. An empty array yields empty.
func extremeFunc(
	name string,
	pick func(a, b float64) float64,
	empty float64,
) lang.NativeFunc {
	return func(args []lang.Value, _ *lang.Env) (lang.Value, error) {
		if len(args) == 0 {
			return nil, arity(name, args, 1)
		}

		if arr, ok := args[0].(*lang.Array); ok {
			if err := arity(name, args, 1); err != nil {
				return nil, err
			}

			n, err := numbers(name, arr.Elements)
			if err != nil {
				return nil, err
			}

			result := empty
			for _, x := range n {
				result = pick(result, x)
			}

			return lang.Number(result), nil
		}

		if err := arity(name, args, 2); err != nil {
			return nil, err
		}

		n, err := numbers(name, args)
		if err != nil {
			return nil, err
		}

		return lang.Number(pick(n[0], n[1])), nil
	}
}

// randIntFunc returns an integer in [ceil(min), floor(max)).
func randIntFunc(cfg config) lang.NativeFunc {
	return func(args []lang.Value, _ *lang.Env) (lang.Value, error) {
		if err := arity("random.randInt", args, 2); err != nil {
			return nil, err
		}

		n, err := numbers("random.randInt", args)
		if err != nil {
			return nil, err
		}

		lo, hi := math.Ceil(n[0]), math.Floor(n[1])

		return lang.Number(math.Floor(cfg.rand.Float64()*(hi-lo) + lo)), nil
	}
}
