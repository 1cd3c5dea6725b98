// Package builtin provides the native functions and constants that a host
// installs in the root scope of a NovaScript program.
//
// [Table] returns every builtin keyed by name, ready for [lang.NewRootEnv]:
//
//	root, err := lang.NewRootEnv(builtin.Table(builtin.WithOutput(os.Stdout)))
//
// Builtins fall into a few groups:
//
//   - core: print, datetime, type, str, len, push, keys
//   - math: pow, floor, sum, max, min, calc, random.randInt, constants
//   - text: concat, splitStr, countChars, regex.match, regex.replace,
//     humanize.bytes, humanize.comma, uuid
//   - system: target, platform, hostname, user, shell, cwd, env, file.*,
//     path.*, pathlist.*
//
// Argument errors are reported as [lang.ErrNative] refinements wrapping
// [ErrArity] or [ErrArgType], so a try statement can catch them.
package builtin

import (
	"io"
	"log/slog"
	"maps"
	"math/rand/v2"
	"os"
	"time"

	"github.com/ardnew/nova/lang"
)

// Argument errors.
var (
	ErrArity   = lang.NewError("wrong number of arguments")
	ErrArgType = lang.NewError("invalid argument type")
)

type config struct {
	output  io.Writer
	now     func() time.Time
	rand    *rand.Rand
	environ []string
}

// Option configures the builtins returned by [Table].
type Option func(*config)

func makeConfig(opts ...Option) config {
	c := config{
		output: os.Stdout,
		now:    time.Now,
		rand:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// WithOutput sets the writer print writes to.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithClock sets the time source used by datetime.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRand sets the random source used by random.randInt.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		if r != nil {
			c.rand = r
		}
	}
}

// WithEnviron sets the "KEY=VALUE" list that env reads. By default env
// reads the process environment.
func WithEnviron(environ []string) Option {
	return func(c *config) { c.environ = environ }
}

// Table returns every builtin keyed by the name it is declared under.
func Table(opts ...Option) map[string]lang.Value {
	cfg := makeConfig(opts...)

	table := make(map[string]lang.Value)

	for _, group := range []map[string]lang.Value{
		coreTable(cfg),
		mathTable(cfg),
		textTable(),
		systemTable(cfg),
	} {
		maps.Copy(table, group)
	}

	return table
}

// namespace returns an object holding natives keyed by their short names.
// Each native is named "ns.key".
func namespace(ns string, fns map[string]lang.NativeFunc, keys ...string) *lang.Object {
	obj := lang.NewObject()

	for _, k := range keys {
		obj.Set(k, lang.NewNative(ns+"."+k, fns[k]))
	}

	return obj
}

func fail(name string, err error) error {
	return lang.ErrNative.With(slog.String("name", name)).Wrap(err)
}

func arity(name string, args []lang.Value, want int) error {
	if len(args) != want {
		return fail(name, ErrArity.With(
			slog.Int("want", want),
			slog.Int("got", len(args)),
		))
	}

	return nil
}

func argType(name string, i int, want string, got lang.Value) error {
	return fail(name, ErrArgType.With(
		slog.Int("arg", i),
		slog.String("want", want),
		slog.String("got", lang.TypeOf(got)),
	))
}

func number(name string, args []lang.Value, i int) (float64, error) {
	n, ok := args[i].(lang.Number)
	if !ok {
		return 0, argType(name, i, "number", args[i])
	}

	return float64(n), nil
}

func str(name string, args []lang.Value, i int) (string, error) {
	s, ok := args[i].(lang.Str)
	if !ok {
		return "", argType(name, i, "string", args[i])
	}

	return string(s), nil
}

func strs(name string, args []lang.Value, from int) ([]string, error) {
	out := make([]string, 0, max(len(args)-from, 0))

	for i := from; i < len(args); i++ {
		s, err := str(name, args, i)
		if err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, nil
}

func numbers(name string, vals []lang.Value) ([]float64, error) {
	out := make([]float64, len(vals))

	for i := range vals {
		n, err := number(name, vals, i)
		if err != nil {
			return nil, err
		}

		out[i] = n
	}

	return out, nil
}
