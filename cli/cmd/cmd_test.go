package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/nova/lang"
)

// writeScripts writes each named script into a new temporary directory and
// returns the directory.
func writeScripts(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()

	for name, src := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			t.Fatal(err)
		}

		if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	return dir
}

func TestReadSource(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"ok.nv":     "1",
		"upper.NV":  "2",
		"notes.txt": "3",
	})

	tests := []struct {
		name    string
		path    string
		source  string
		wantErr error
	}{
		{"script", "ok.nv", "1", nil},
		{"extension case", "upper.NV", "2", nil},
		{"wrong extension", "notes.txt", "", ErrExtension},
		{"missing", "gone.nv", "", ErrReadSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, abs, err := readSource(filepath.Join(dir, tt.path))
			if !errors.Is(err, tt.wantErr) || (err != nil) != (tt.wantErr != nil) {
				t.Fatalf("readSource error = %v, want %v", err, tt.wantErr)
			}

			if err == nil && (source != tt.source || !filepath.IsAbs(abs)) {
				t.Errorf("readSource = %q, %q", source, abs)
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"main.nv": `import { add } from "lib/math.nv";
mut x = 2;
print(add(x, 40));
x + 1`,
		"lib/math.nv": `func add(a, b) { a + b }`,
	})

	var out bytes.Buffer

	r := &Run{File: filepath.Join(dir, "main.nv"), Print: true, out: &out}
	if err := r.Run(t.Context(), &Interp{}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got, want := out.String(), "42\n3\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRun_Errors(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"unresolved.nv": "mut x = 1;\nmut y = nope;",
		"deep.nv":       "func f(n) { f(n + 1) }\nf(0)",
		"syntax.nv":     "mut = 1;",
		"importer.nv":   "mut a = 1;\nimport { y } from \"lib/fail.nv\";\ny",
		"lib/fail.nv":   "mut q = 0;\nmut y = nope;",
	})

	tests := []struct {
		file    string
		want    error
		snippet string
	}{
		{"unresolved.nv", lang.ErrUnresolved, "  2 | mut y = nope;"},
		{"deep.nv", lang.ErrMaxDepth, ""},
		{"syntax.nv", lang.ErrParse, "  1 | mut = 1;"},
		{"importer.nv", lang.ErrUnresolved, "  2 | mut y = nope;"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			var errOut bytes.Buffer

			r := &Run{File: filepath.Join(dir, tt.file), out: new(bytes.Buffer), errOut: &errOut}

			err := r.Run(t.Context(), &Interp{MaxDepth: 32})
			if !errors.Is(err, tt.want) || !errors.Is(err, ErrRun) {
				t.Fatalf("Run error = %v, want %v", err, tt.want)
			}

			if !strings.HasPrefix(errOut.String(), "error: ") {
				t.Errorf("report = %q", errOut.String())
			}

			if tt.snippet != "" && !strings.Contains(errOut.String(), tt.snippet) {
				t.Errorf("report = %q, want snippet %q", errOut.String(), tt.snippet)
			}
		})
	}
}

func TestRepl(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.utf8")

	var out bytes.Buffer

	r := &Repl{
		History: path,
		in:      strings.NewReader("mut a = 1;\na + 1\nexit\n"),
		out:     &out,
	}

	if err := r.Run(t.Context(), &Interp{}); err != nil {
		t.Fatalf("Repl: %v", err)
	}

	if got, want := out.String(), "1\n2\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("history not written: %v", err)
	}
}

func TestAST(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"prog.nv": "mut x = 1;\nx + 2",
		"bad.nv":  "mut x = ;",
	})

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			var out bytes.Buffer

			a := &AST{File: filepath.Join(dir, "prog.nv"), Format: format, Indent: 2, out: &out}
			if err := a.Run(t.Context()); err != nil {
				t.Fatalf("AST: %v", err)
			}

			var tree map[string]any

			unmarshal := json.Unmarshal
			if format == "yaml" {
				unmarshal = func(data []byte, v any) error { return yaml.Unmarshal(data, v) }
			}

			if err := unmarshal(out.Bytes(), &tree); err != nil {
				t.Fatalf("unmarshal %s: %v\n%s", format, err, out.String())
			}

			if tree["kind"] != "Program" {
				t.Errorf("kind = %v", tree["kind"])
			}

			if body, ok := tree["body"].([]any); !ok || len(body) != 2 {
				t.Errorf("body = %v", tree["body"])
			}
		})
	}

	var errOut bytes.Buffer

	a := &AST{File: filepath.Join(dir, "bad.nv"), Format: "json", out: new(bytes.Buffer), errOut: &errOut}
	if err := a.Run(t.Context()); !lang.IsFatal(err) {
		t.Errorf("AST of invalid source error = %v", err)
	}

	if !strings.Contains(errOut.String(), "  1 | mut x = ;") {
		t.Errorf("report = %q", errOut.String())
	}
}

func TestTokens(t *testing.T) {
	const src = `mut s = "hi"; // comment`

	dir := writeScripts(t, map[string]string{"tok.nv": src})

	var out bytes.Buffer

	if err := (&Tokens{File: filepath.Join(dir, "tok.nv"), out: &out}).Run(t.Context()); err != nil {
		t.Fatalf("Tokens: %v", err)
	}

	want, err := lang.Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), out.String())
	}

	for i, tok := range want {
		if lines[i] != tok.String() {
			t.Errorf("line %d = %q, want %q", i, lines[i], tok.String())
		}
	}

	if !strings.Contains(lines[3], `"hi"`) {
		t.Errorf("string token = %q", lines[3])
	}
}
