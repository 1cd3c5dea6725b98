package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/nova/lang"
	"github.com/ardnew/nova/log"
)

// Run runs a script. Without a script it starts the REPL.
type Run struct {
	File  string `arg:"" help:"Script to run (*.nv). Starts the REPL when omitted." optional:""`
	Print bool   `       help:"Print the value of the last statement."                        short:"P"`

	out    io.Writer
	errOut io.Writer
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context, interp *Interp) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if r.File == "" {
		return (&Repl{History: kongVar(ctx, HistoryIdentifier), out: r.out}).Run(ctx, interp)
	}

	source, path, err := readSource(r.File)
	if err != nil {
		return err
	}

	in, env, err := interp.start(stdout(r.out))
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "run script", slog.String("file", path))

	v, err := in.Run(ctx, source, path, env)
	if err != nil {
		report(stderr(r.errOut), source, path, err)

		return ErrRun.Wrap(err).With(slog.String("file", path))
	}

	if r.Print {
		fmt.Fprintln(stdout(r.out), lang.Inspect(v))
	}

	return nil
}
