package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/nova/lang"
	"github.com/ardnew/nova/log"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand] for composing a multi-line
// program in the user's editor. The program is checked for syntax errors,
// with an offer to re-edit, and then evaluated in the session.
type editCommand struct {
	session *Session
	ctxFunc func() context.Context
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer

	source string     // initial buffer; the edited program afterward
	value  lang.Value // result of evaluating source
	err    error      // evaluation error
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run runs the edit-parse-retry loop and evaluates the result. An emptied
// buffer cancels the edit and leaves c.source empty. It returns
// [ErrEditDeclined] if the user declines to fix a syntax error.
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	f, err := os.CreateTemp("", "nova-repl-*.nv")
	if err != nil {
		return err
	}

	path := f.Name()
	defer os.Remove(path)

	if err := f.Close(); err != nil {
		return err
	}

	for {
		if err := os.WriteFile(path, []byte(c.source), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		c.source = string(data)
		if strings.TrimSpace(c.source) == "" {
			c.source = ""

			return nil
		}

		_, parseErr := lang.Parse(ctx, c.source, lang.WithLogger(c.logger))

		c.logger.TraceContext(ctx, "editor parse attempt",
			slog.Int("length", len(data)),
			slog.Bool("ok", parseErr == nil),
		)

		if parseErr == nil {
			c.value, c.err = c.session.Eval(ctx, c.source)

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s\n", FormatError(c.source, "", parseErr))
		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}
	}
}

// runEditor opens the file at path in $EDITOR and waits for it to exit.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout, stderr io.Writer,
	path string,
) error {
	args := strings.Fields(os.Getenv("EDITOR"))
	if len(args) == 0 {
		args = []string{defaultEditor}
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
