package repl

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/nova/lang"
	"github.com/ardnew/nova/log"
)

// Session evaluates lines of input in one persistent environment, so that
// bindings declared by one line are visible to the next.
type Session struct {
	interp *lang.Interpreter
	env    *lang.Env
	logger log.Logger
}

// NewSession returns a Session that evaluates input with interp in env.
func NewSession(interp *lang.Interpreter, env *lang.Env, logger log.Logger) *Session {
	return &Session{interp: interp, env: env, logger: logger}
}

// Eval parses and evaluates source in the session environment.
func (s *Session) Eval(ctx context.Context, source string) (lang.Value, error) {
	v, err := s.interp.Run(ctx, source, "", s.env)

	s.logger.TraceContext(ctx, "repl eval",
		slog.String("input", source),
		slog.Bool("ok", err == nil),
	)

	return v, err
}

// Names returns the names visible in the session environment, sorted.
func (s *Session) Names() []string {
	names := make([]string, 0, 64)
	for name := range s.env.Visible() {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Bindings returns the names declared by the session itself, in
// declaration order.
func (s *Session) Bindings() []string { return s.env.Names() }

// Resolve returns the value of a dotted member chain such as
// "constants.pi". It reports false if any link is unresolved.
func (s *Session) Resolve(path string) (lang.Value, bool) {
	segments := strings.Split(path, ".")

	v, err := s.env.Lookup(segments[0])
	if err != nil {
		return nil, false
	}

	for _, seg := range segments[1:] {
		var ok bool
		if v, ok = member(v, seg); !ok {
			return nil, false
		}
	}

	return v, true
}

// Members returns the member names of the value at path, or nil if it has
// none.
func (s *Session) Members(path string) []string {
	v, ok := s.Resolve(path)
	if !ok {
		return nil
	}

	switch v := v.(type) {
	case *lang.Object:
		return v.Keys()
	case *lang.Instance:
		return v.Keys()
	}

	return nil
}

func member(v lang.Value, key string) (lang.Value, bool) {
	switch v := v.(type) {
	case *lang.Object:
		return v.Get(key)
	case *lang.Instance:
		return v.Get(key)
	}

	return nil, false
}

// FormatError renders err followed by the line of source it refers to, if
// the error carries a position. The source was read from path, which is
// empty for input that has no file. An error positioned in some other file
// is rendered with a reference to that file instead of a source line.
func FormatError(source, path string, err error) string {
	msg := "error: " + err.Error()

	pos, ok := lang.PositionOf(err)
	if !ok {
		return msg
	}

	if file, ok := lang.FileOf(err); ok && file != path {
		return msg + "\n  --> " + file + ":" + pos.String()
	}

	if snippet := lang.Snippet(source, pos); snippet != "" {
		msg += "\n" + strings.TrimSuffix(snippet, "\n")
	}

	return msg
}
