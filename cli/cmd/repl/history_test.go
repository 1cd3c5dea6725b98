package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory_AppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), HistoryFile)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load of a missing file: %v", err)
	}

	for _, e := range []HistoryEntry{
		{"mut x = 1;", modeEval},
		{"help", modeCtrl},
		{"x + 1", modeEval},
		{"x + 1", modeEval},
	} {
		if err := h.Append(e.Line, e.Mode); err != nil {
			t.Fatalf("Append(%q): %v", e.Line, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "E:mut x = 1;\nC:help\nE:x + 1\n"; got != want {
		t.Errorf("file = %q, want %q", got, want)
	}

	// An earlier duplicate moves to the end and the file is rewritten.
	if err := h.Append("  mut x = 1;  ", modeEval); err != nil {
		t.Fatal(err)
	}

	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "C:help\nE:x + 1\nE:mut x = 1;\n"; got != want {
		t.Errorf("file after dedupe = %q, want %q", got, want)
	}

	loaded := NewHistory(path)
	if err := loaded.Load(); err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(loaded.Entries(), h.Entries()) {
		t.Errorf("loaded %v, want %v", loaded.Entries(), h.Entries())
	}
}

func TestHistory_SameLineDifferentMode(t *testing.T) {
	h := NewHistory("")

	_ = h.Append("list", modeCtrl)
	_ = h.Append("list", modeEval)

	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistory("")

	if err := h.Append("", modeEval); err != nil || h.Len() != 0 {
		t.Fatalf("blank line appended: len=%d err=%v", h.Len(), err)
	}

	if err := h.Append("1 + 1", modeEval); err != nil {
		t.Fatal(err)
	}

	entry, err := h.Entry(0)
	if err != nil || entry.Line != "1 + 1" || entry.Mode != modeEval {
		t.Errorf("Entry(0) = %+v, %v", entry, err)
	}

	for _, i := range []int{-1, 1} {
		if _, err := h.Entry(i); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Entry(%d) error = %v", i, err)
		}
	}
}

func TestParseHistoryEntry(t *testing.T) {
	tests := []struct {
		line string
		want HistoryEntry
	}{
		{"E:x", HistoryEntry{"x", modeEval}},
		{"C:quit", HistoryEntry{"quit", modeCtrl}},
		{"legacy", HistoryEntry{"legacy", modeEval}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := parseHistoryEntry(tt.line)
			if got != tt.want {
				t.Errorf("parseHistoryEntry(%q) = %+v, want %+v", tt.line, got, tt.want)
			}

			if tt.line != "legacy" && got.String() != tt.line {
				t.Errorf("String() = %q, want %q", got.String(), tt.line)
			}
		})
	}
}
