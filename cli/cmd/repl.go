package cmd

import (
	"context"
	"io"

	"github.com/ardnew/nova/cli/cmd/repl"
	"github.com/ardnew/nova/log"
)

// Repl starts the interactive read-eval-print loop.
type Repl struct {
	History string `default:"${history}" help:"History file; empty keeps history in memory only."`

	in  io.Reader
	out io.Writer
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context, interp *Interp) error {
	in, env, err := interp.start(stdout(r.out))
	if err != nil {
		return err
	}

	logger := log.Default()

	return repl.Run(ctx, repl.NewSession(in, env, logger),
		repl.WithInput(r.in),
		repl.WithOutput(r.out),
		repl.WithHistory(repl.NewHistory(r.History)),
		repl.WithLogger(logger),
	)
}
