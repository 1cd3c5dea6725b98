package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/nova/lang"
	"github.com/ardnew/nova/log"
)

// Tokens prints the token stream of a script, one token per line.
type Tokens struct {
	File string `arg:"" help:"Script to tokenize (*.nv)."`

	out    io.Writer
	errOut io.Writer
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) error {
	source, path, err := readSource(t.File)
	if err != nil {
		return err
	}

	tokens, err := lang.Tokenize(source)
	if err != nil {
		report(stderr(t.errOut), source, path, err)

		return err
	}

	log.TraceContext(ctx, "tokenized",
		slog.String("file", path),
		slog.Int("count", len(tokens)),
	)

	w := stdout(t.out)

	for _, tok := range tokens {
		if _, err := fmt.Fprintln(w, tok); err != nil {
			return err
		}
	}

	return nil
}
