package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/nova/cli/cmd/repl"
	"github.com/ardnew/nova/lang"
	"github.com/ardnew/nova/lang/builtin"
	"github.com/ardnew/nova/log"
	"github.com/ardnew/nova/pkg"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable named id, or "" outside of a kong
// command.
func kongVar(ctx context.Context, id string) string {
	if ktx := kongContextFrom(ctx); ktx != nil {
		return ktx.Model.Vars()[id]
	}

	return ""
}

// Interp holds the interpreter flags shared by every command.
type Interp struct {
	MaxDepth int `default:"${maxDepth}" help:"Maximum depth of nested function calls." placeholder:"N"`
}

// Vars returns the kong variables referenced by the flags of Interp.
func (Interp) Vars() kong.Vars {
	return kong.Vars{"maxDepth": strconv.Itoa(lang.DefaultMaxDepth)}
}

// options returns the interpreter options selected by the flags.
func (i *Interp) options() []lang.Option {
	opts := []lang.Option{lang.WithLogger(log.Default())}
	if i != nil {
		opts = append(opts, lang.WithMaxDepth(i.MaxDepth))
	}

	return opts
}

// start returns an interpreter and a session scope beneath a root scope
// holding the builtins, which print to out.
func (i *Interp) start(out io.Writer) (*lang.Interpreter, *lang.Env, error) {
	root, err := lang.NewRootEnv(builtin.Table(builtin.WithOutput(out)))
	if err != nil {
		return nil, nil, ErrSetup.Wrap(err)
	}

	return lang.New(i.options()...), lang.NewEnv(root), nil
}

// readSource reads the script at path, which must have the NovaScript
// extension. It returns the source and the absolute path.
func readSource(path string) (source, abs string, err error) {
	if !strings.EqualFold(filepath.Ext(path), pkg.Extension) {
		return "", "", ErrExtension.With(slog.String("file", path))
	}

	var host lang.OSHost

	if abs, err = host.ResolvePath("", path); err != nil {
		return "", "", ErrReadSource.Wrap(err).With(slog.String("file", path))
	}

	if source, err = host.ReadFile(abs); err != nil {
		return "", "", ErrReadSource.Wrap(err).With(slog.String("file", abs))
	}

	return source, abs, nil
}

// report writes err to w with the source line it refers to. The source of
// path is replaced by that of the imported file the error occurred in, if
// it can be read.
func report(w io.Writer, source, path string, err error) {
	if file, ok := lang.FileOf(err); ok && file != path {
		var host lang.OSHost
		if src, rerr := host.ReadFile(file); rerr == nil {
			source, path = src, file
		}
	}

	fmt.Fprintln(w, repl.FormatError(source, path, err))
}

func stdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}

	return w
}

func stderr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}

	return w
}
