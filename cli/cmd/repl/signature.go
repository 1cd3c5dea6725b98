package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/ardnew/nova/lang"
)

// nativeParams names the parameters of the host builtins, which do not
// declare them. A leading "..." marks a variadic parameter.
//
//nolint:gochecknoglobals
var nativeParams = map[string][]string{
	"print":             {"...values"},
	"datetime":          {},
	"type":              {"value"},
	"str":               {"value"},
	"len":               {"value"},
	"push":              {"array", "...values"},
	"keys":              {"object"},
	"pow":               {"base", "exp"},
	"floor":             {"n"},
	"sum":               {"...numbers"},
	"max":               {"a", "b"},
	"min":               {"a", "b"},
	"calc":              {"expression"},
	"concat":            {"...strings"},
	"splitStr":          {"s", "sep"},
	"countChars":        {"s"},
	"uuid":              {},
	"cwd":               {},
	"env":               {"key"},
	"random.randInt":    {"min", "max"},
	"regex.match":       {"pattern", "s"},
	"regex.replace":     {"pattern", "s", "repl"},
	"humanize.bytes":    {"n"},
	"humanize.comma":    {"n"},
	"path.abs":          {"path"},
	"path.join":         {"...elems"},
	"path.rel":          {"from", "to"},
	"pathlist.prefix":   {"list", "...items"},
	"pathlist.prefixIf": {"list", "predicate", "...items"},
	"file.exists":       {"path"},
	"file.isDir":        {"path"},
	"file.isRegular":    {"path"},
	"file.isSymlink":    {"path"},
}

// functionCall describes the call whose argument list contains the cursor.
type functionCall struct {
	name     string // callee, possibly a member chain such as "regex.match"
	argIndex int    // index of the argument under the cursor
	inCall   bool
}

// detectFunctionCall reports the innermost call whose open parenthesis
// precedes the cursor and is not yet closed.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))

	open, depth := -1, 0

	for i := cursor; i > 0 && open < 0; {
		r, size := utf8.DecodeLastRuneInString(input[:i])
		i -= size

		switch r {
		case ')', ']':
			depth++
		case '(', '[':
			if depth > 0 {
				depth--
			} else if r == '(' {
				open = i
			} else {
				return functionCall{}
			}
		}
	}

	if open < 0 {
		return functionCall{}
	}

	start := open
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if r != '.' && !isWordRune(r) {
			break
		}

		start -= size
	}

	name := strings.Trim(input[start:open], ".")
	if name == "" {
		return functionCall{}
	}

	arg := 0
	depth = 0

	for _, r := range input[open+1 : cursor] {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				arg++
			}
		}
	}

	return functionCall{name: name, argIndex: arg, inCall: true}
}

// signature returns the parameter names of the callable named by path, and
// false if it does not resolve to something callable.
func (s *Session) signature(path string) ([]string, bool) {
	v, ok := s.Resolve(path)
	if !ok {
		return nil, false
	}

	switch v := v.(type) {
	case *lang.Function:
		return v.Params(), true

	case *lang.Native:
		params, ok := nativeParams[v.Name]

		return params, ok

	case *lang.Class:
		// Constructor arguments are evaluated and discarded.
		return []string{"...args"}, true
	}

	return nil, false
}

// renderSignatureHint renders "name(a, b)" with the parameter at argIndex
// highlighted. A variadic parameter stays highlighted for every argument
// from its position on.
func renderSignatureHint(name string, params []string, argIndex int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		variadic := strings.HasPrefix(param, "...")

		if argIndex == i || (variadic && argIndex > i) {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
