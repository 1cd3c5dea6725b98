package repl

import (
	"slices"
	"testing"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		input  string
		cursor int
		word   string
		start  int
		end    int
	}{
		{"foo bar", 2, "foo", 0, 3},
		{"foo bar", 7, "bar", 4, 7},
		{"x + constants.p", 15, "p", 14, 15},
		{"a + ", 4, "", 4, 4},
		{"print(x1", 8, "", 8, 8},
		{"", 0, "", 0, 0},
		{"héllo", 100, "héllo", 0, 6},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.word || start != tt.start || end != tt.end {
				t.Errorf("wordBounds(%q, %d) = %q, %d, %d; want %q, %d, %d",
					tt.input, tt.cursor, word, start, end, tt.word, tt.start, tt.end)
			}
		})
	}
}

func TestParentPath(t *testing.T) {
	tests := []struct {
		input     string
		wordStart int
		want      string
	}{
		{"x + constants.p", 14, "constants"},
		{"a.b.c", 4, "a.b"},
		{"regex.", 6, "regex"},
		{"foo", 0, ""},
		{"x + y", 4, ""},
		{"f(cfg.db.", 9, "cfg.db"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parentPath(tt.input, tt.wordStart); got != tt.want {
				t.Errorf("parentPath(%q, %d) = %q, want %q", tt.input, tt.wordStart, got, tt.want)
			}
		})
	}
}

func TestSession_Candidates(t *testing.T) {
	s := newTestSession(t, nil)

	if _, err := s.Eval(t.Context(), "mut counter = 0;"); err != nil {
		t.Fatal(err)
	}

	top := s.candidates("")

	for _, want := range []string{"counter", "print", "regex", "mut", "func"} {
		if !slices.Contains(top, want) {
			t.Errorf("candidates missing %q", want)
		}
	}

	if !slices.IsSorted(top) || len(slices.Compact(slices.Clone(top))) != len(top) {
		t.Errorf("candidates not sorted and unique: %v", top)
	}

	if got := s.candidates("regex"); !slices.Equal(got, []string{"match", "replace"}) {
		t.Errorf("candidates(regex) = %v", got)
	}

	if got := s.candidates("counter"); got != nil {
		t.Errorf("candidates(counter) = %v", got)
	}
}

func TestSession_IsCallable(t *testing.T) {
	s := newTestSession(t, nil)

	if _, err := s.Eval(t.Context(), "func f() { 1 } class C { } mut n = 1;"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{"f", true},
		{"C", true},
		{"print", true},
		{"regex.match", true},
		{"regex", false},
		{"n", false},
		{"missing", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := s.isCallable(tt.path); got != tt.want {
				t.Errorf("isCallable(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
