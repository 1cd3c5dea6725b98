package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
//
// Errors returned by this package are refinements of these sentinels created
// with [Error.With], [Error.WithPosition], or [Error.Wrap], and they still
// satisfy errors.Is against the sentinel they were derived from.
var (
	ErrLex              = NewError("unrecognized character")
	ErrUnterminated     = NewError("unterminated string literal")
	ErrParse            = NewError("unexpected token")
	ErrRedeclared       = NewError("cannot redeclare variable")
	ErrConstAssign      = NewError("cannot reassign constant")
	ErrUnresolved       = NewError("cannot resolve variable")
	ErrNotInterpretable = NewError("node is not interpretable")
	ErrInvalidAssign    = NewError("invalid assignment target")
	ErrNotBoolean       = NewError("condition is not a boolean")
	ErrNotCallable      = NewError("value is not callable")
	ErrNotClass         = NewError("value is not a class")
	ErrNoProperty       = NewError("property does not exist")
	ErrNotIndexable     = NewError("value is not indexable")
	ErrIndexType        = NewError("index is not a number")
	ErrOutOfBounds      = NewError("index out of bounds")
	ErrImport           = NewError("cannot import module")
	ErrNotExported      = NewError("name not defined by module")
	ErrUnhandledCatch   = NewError("unhandled error in catch block")
	ErrMaxDepth         = NewError("maximum call depth exceeded")
	ErrNative           = NewError("native function failed")
	ErrReadInput        = NewError("failed to read input")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	base  *Error      // Sentinel this error was derived from
	pos   *Position   // Source position, if known
	file  string      // Source file pos refers to, if known
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg> (<attrs>): <err>"
	//   2. "<msg> (<attrs>)"
	//   3. "<msg>"
	//   4. "<err>"
	var b strings.Builder

	b.WriteString(e.msg)

	if detail := e.detail(); detail != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		b.WriteString("(" + detail + ")")
	}

	if e.err != nil {
		if b.Len() > 0 {
			b.WriteString(": ")
		}

		b.WriteString(e.err.Error())
	}

	return b.String()
}

// detail renders the position and attributes as "k=v" pairs.
func (e *Error) detail() string {
	part := make([]string, 0, len(e.attrs)+1)

	if e.pos != nil {
		part = append(part,
			"line="+strconv.Itoa(e.pos.Line)+
				" column="+strconv.Itoa(e.pos.Column))
	}

	for _, a := range e.attrs {
		part = append(part, a.Key+"="+a.Value.String())
	}

	return strings.Join(part, " ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.root() == t.root()
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}

// Position returns the source position attached to e, if any.
func (e *Error) Position() (Position, bool) {
	if e.pos == nil {
		return Position{}, false
	}

	return *e.pos, true
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.pos != nil {
		attrs = append(attrs, e.pos.attrs()...)
	}

	if e.file != "" {
		attrs = append(attrs, slog.String("file", e.file))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

func (e *Error) clone() *Error {
	c := *e
	c.base = e.root()

	return &c
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(c.attrs, e.attrs)
	copy(c.attrs[len(e.attrs):], attrs)

	return c
}

// WithPosition attaches a source position to the error.
func (e *Error) WithPosition(pos Position) *Error {
	c := e.clone()
	c.pos = &pos

	return c
}

// WithFile records the path of the source file the error position refers
// to.
func (e *Error) WithFile(path string) *Error {
	c := e.clone()
	c.file = path

	return c
}

// File returns the source file recorded on e, if any.
func (e *Error) File() (string, bool) { return e.file, e.file != "" }

// IsFatal reports whether err aborts the whole run regardless of any
// enclosing try/catch statement.
func IsFatal(err error) bool {
	return errors.Is(err, ErrLex) ||
		errors.Is(err, ErrUnterminated) ||
		errors.Is(err, ErrParse) ||
		errors.Is(err, ErrUnhandledCatch)
}

// PositionOf returns the innermost source position recorded in the chain
// of err.
func PositionOf(err error) (Position, bool) {
	var (
		pos   Position
		found bool
	)

	for ; err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*Error); ok {
			if p, ok := e.Position(); ok {
				pos, found = p, true
			}
		}
	}

	return pos, found
}

// FileOf returns the innermost source file recorded in the chain of err.
func FileOf(err error) (string, bool) {
	var (
		file  string
		found bool
	)

	for ; err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*Error); ok {
			if f, ok := e.File(); ok {
				file, found = f, true
			}
		}
	}

	return file, found
}

// inFile records path on a positioned error that does not yet name its
// file. Errors are tagged by the innermost file that evaluated them, which
// is the file their position refers to.
func inFile(err error, path string) error {
	e, ok := err.(*Error)
	if !ok || path == "" {
		return err
	}

	if _, has := FileOf(err); has {
		return err
	}

	if _, has := PositionOf(err); !has {
		return err
	}

	return e.WithFile(path)
}

// Snippet renders the line of source containing pos followed by a caret
// marking its column.
//
//	  3 | mut x = @;
//	              ^
func Snippet(source string, pos Position) string {
	lines := strings.Split(source, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		return ""
	}

	var src strings.Builder

	num := strconv.Itoa(pos.Line)

	src.WriteString("  ")
	src.WriteString(num)
	src.WriteString(" | ")
	src.WriteString(strings.TrimRight(lines[pos.Line-1], "\r"))
	src.WriteRune('\n')

	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(num)+5)
	if pos.Column > 0 {
		padding += strings.Repeat(" ", pos.Column-1)
	}

	src.WriteString(padding + "^\n")

	return src.String()
}
