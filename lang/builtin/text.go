package builtin

import (
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/ardnew/nova/lang"
)

// ErrPattern indicates an invalid regular expression.
var ErrPattern = lang.NewError("invalid regular expression")

func textTable() map[string]lang.Value {
	return map[string]lang.Value{
		"concat":     lang.NewNative("concat", concatFunc),
		"splitStr":   lang.NewNative("splitStr", splitFunc),
		"countChars": lang.NewNative("countChars", countCharsFunc),
		"uuid":       lang.NewNative("uuid", uuidFunc),
		"regex": namespace("regex", map[string]lang.NativeFunc{
			"match":   regexMatch,
			"replace": regexReplace,
		}, "match", "replace"),
		"humanize": namespace("humanize", map[string]lang.NativeFunc{
			"bytes": humanizeBytes,
			"comma": humanizeComma,
		}, "bytes", "comma"),
	}
}

func concatFunc(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	s, err := strs("concat", args, 0)
	if err != nil {
		return nil, err
	}

	return lang.Str(strings.Join(s, "")), nil
}

func splitFunc(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	if err := arity("splitStr", args, 2); err != nil {
		return nil, err
	}

	s, err := strs("splitStr", args, 0)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(s[0], s[1])

	out := make([]lang.Value, len(parts))
	for i, p := range parts {
		out[i] = lang.Str(p)
	}

	return lang.NewArray(out...), nil
}

func countCharsFunc(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	if err := arity("countChars", args, 1); err != nil {
		return nil, err
	}

	s, err := str("countChars", args, 0)
	if err != nil {
		return nil, err
	}

	return lang.Number(utf8.RuneCountInString(s)), nil
}

func uuidFunc(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	if err := arity("uuid", args, 0); err != nil {
		return nil, err
	}

	return lang.Str(uuid.NewString()), nil
}

func compilePattern(name, pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fail(name, ErrPattern.Wrap(err).With(slog.String("pattern", pattern)))
	}

	return re, nil
}

// regexMatch reports whether regex.match(pattern, s) finds pattern in s.
func regexMatch(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	if err := arity("regex.match", args, 2); err != nil {
		return nil, err
	}

	s, err := strs("regex.match", args, 0)
	if err != nil {
		return nil, err
	}

	re, err := compilePattern("regex.match", s[0])
	if err != nil {
		return nil, err
	}

	ok, err := re.MatchString(s[1])
	if err != nil {
		return nil, fail("regex.match", err)
	}

	return lang.Bool(ok), nil
}

// regexReplace returns regex.replace(pattern, s, repl): s with every match
// of pattern replaced by repl. repl may refer to groups as $1 or ${name}.
func regexReplace(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	if err := arity("regex.replace", args, 3); err != nil {
		return nil, err
	}

	s, err := strs("regex.replace", args, 0)
	if err != nil {
		return nil, err
	}

	re, err := compilePattern("regex.replace", s[0])
	if err != nil {
		return nil, err
	}

	out, err := re.Replace(s[1], s[2], -1, -1)
	if err != nil {
		return nil, fail("regex.replace", err)
	}

	return lang.Str(out), nil
}

func humanizeBytes(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	if err := arity("humanize.bytes", args, 1); err != nil {
		return nil, err
	}

	n, err := number("humanize.bytes", args, 0)
	if err != nil {
		return nil, err
	}

	if n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, argType("humanize.bytes", 0, "non-negative number", args[0])
	}

	return lang.Str(humanize.Bytes(uint64(n))), nil
}

func humanizeComma(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	if err := arity("humanize.comma", args, 1); err != nil {
		return nil, err
	}

	n, err := number("humanize.comma", args, 0)
	if err != nil {
		return nil, err
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, argType("humanize.comma", 0, "finite number", args[0])
	}

	// Whole numbers past the int64 range are grouped from their float form.
	const limit = 1 << 63
	if n != math.Trunc(n) || n < -limit || n >= limit {
		return lang.Str(humanize.Commaf(n)), nil
	}

	return lang.Str(humanize.Comma(int64(n))), nil
}
