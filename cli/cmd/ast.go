package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/nova/lang"
	"github.com/ardnew/nova/log"
)

// AST prints the syntax tree of a script.
type AST struct {
	File   string `arg:"" help:"Script to parse (*.nv)."`
	Format string `       help:"Output format."                      default:"json" enum:"json,yaml" short:"f"`
	Indent int    `       help:"Indent width; 0 for compact output." default:"2"                     short:"i"`

	out    io.Writer
	errOut io.Writer
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	source, path, err := readSource(a.File)
	if err != nil {
		return err
	}

	prog, err := lang.Parse(ctx, source, lang.WithLogger(log.Default()))
	if err != nil {
		report(stderr(a.errOut), source, path, err)

		return err
	}

	for _, d := range prog.Diagnostics {
		log.WarnContext(ctx, d.Message,
			slog.String("file", path),
			slog.Int("line", d.Pos.Line),
			slog.Int("column", d.Pos.Column),
		)
	}

	switch a.Format {
	case "yaml":
		err = prog.FormatYAML(ctx, stdout(a.out), a.Indent)
	case "json":
		err = prog.FormatJSON(ctx, stdout(a.out), a.Indent)
	default:
		err = fmt.Errorf("unknown format %q", a.Format)
	}

	if err != nil {
		return ErrMarshal.Wrap(err).With(slog.String("format", a.Format))
	}

	return nil
}
