package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolve(t *testing.T) {
	const doc = `
log-level: debug
log_format: json
log:
  pretty: false
  time_layout: none
max_depth: 64
tags: [a, b, 3]
empty:
`

	r, err := resolve(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-format", "json"},
		{"log-pretty", false},
		{"log-time-layout", "none"},
		{"max-depth", "64"},
		{"tags", "a,b,3"},
		{"empty", nil},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: tt.flag}})
			if err != nil {
				t.Fatal(err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%s) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestResolve_EmptyAndMalformed(t *testing.T) {
	for _, doc := range []string{"", "log-level: [unterminated"} {
		r, err := resolve(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("resolve(%q): %v", doc, err)
		}

		if cfg, ok := r.(config); !ok || len(cfg) != 0 {
			t.Errorf("resolve(%q) = %#v, want empty", doc, r)
		}
	}
}

func TestResolve_Kong(t *testing.T) {
	var cli struct {
		Log      logConfig `embed:"" prefix:"log-"`
		MaxDepth int       `default:"10"`
	}

	var lc logConfig

	parser, err := kong.New(&cli,
		lc.vars(),
		kong.Resolvers(mustResolve(t, "log:\n  caller: true\nmax-depth: 32\n")),
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--max-depth=7"}); err != nil {
		t.Fatal(err)
	}

	if !cli.Log.Caller {
		t.Error("caller not resolved from configuration")
	}

	if cli.MaxDepth != 7 {
		t.Errorf("MaxDepth = %d, want command-line value 7", cli.MaxDepth)
	}
}

func mustResolve(t *testing.T, doc string) kong.Resolver {
	t.Helper()

	r, err := resolve(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}

	return r
}
