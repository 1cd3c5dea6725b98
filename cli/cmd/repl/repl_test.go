package repl

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/nova/lang"
	"github.com/ardnew/nova/log"
)

func TestRun_Lines(t *testing.T) {
	s := newTestSession(t, nil)
	path := filepath.Join(t.TempDir(), HistoryFile)

	input := strings.Join([]string{
		"mut x = 2;",
		"",
		"x * 3",
		"nope",
		"exit",
		"x",
	}, "\n")

	var out bytes.Buffer

	err := Run(t.Context(), s,
		WithInput(strings.NewReader(input)),
		WithOutput(&out),
		WithHistory(NewHistory(path)),
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()

	if !strings.HasPrefix(got, "2\n6\nerror: ") {
		t.Errorf("output = %q", got)
	}

	if !strings.Contains(got, "  1 | nope\n") {
		t.Errorf("output missing snippet: %q", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if want := "E:mut x = 2;\nE:x * 3\nE:nope\n"; string(data) != want {
		t.Errorf("history = %q, want %q", data, want)
	}
}

func TestRun_LinesPrint(t *testing.T) {
	var printed bytes.Buffer

	s := newTestSession(t, &printed)

	var out bytes.Buffer

	err := Run(t.Context(), s,
		WithInput(strings.NewReader(`print("hi", 1)`+"\n")),
		WithOutput(&out),
	)
	if err != nil {
		t.Fatal(err)
	}

	if printed.String() != "\"hi\", 1\n" {
		t.Errorf("printed = %q", printed.String())
	}
}

func newTestModel(t *testing.T) model {
	t.Helper()

	return newModel(t.Context(), newTestSession(t, nil), NewHistory(""), log.Logger{})
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func TestModel_CompleteSoleCandidate(t *testing.T) {
	m := newTestModel(t)
	m.setLine("humani")

	m = m.cycle(1)

	if got := m.input.Value(); got != "humanize" {
		t.Errorf("value = %q, want humanize", got)
	}

	if m.tabActive || m.matches != nil {
		t.Errorf("sole candidate left tab state: active=%v matches=%v", m.tabActive, m.matches)
	}
}

func TestModel_CycleMembers(t *testing.T) {
	m := newTestModel(t)
	m.setLine("regex.")

	if len(m.matches) != 2 {
		t.Fatalf("matches = %v", m.matches)
	}

	m, _ = m.handleKey(key(tea.KeyTab))
	if got := m.input.Value(); got != "regex.match" {
		t.Errorf("first tab = %q", got)
	}

	m, _ = m.handleKey(key(tea.KeyTab))
	if got := m.input.Value(); got != "regex.replace" {
		t.Errorf("second tab = %q", got)
	}

	m, _ = m.handleKey(key(tea.KeyShiftTab))
	if got := m.input.Value(); got != "regex.match" {
		t.Errorf("shift-tab = %q", got)
	}

	m, _ = m.handleKey(key(tea.KeyEsc))
	if got := m.input.Value(); got != "regex." || m.tabActive {
		t.Errorf("esc = %q, active=%v", got, m.tabActive)
	}

	if m.mode != modeEval {
		t.Error("esc while cycling changed mode")
	}
}

func TestModel_Execute(t *testing.T) {
	m := newTestModel(t)
	m.setLine("mut y = 2;")

	m, cmd := m.handleKey(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected output command")
	}

	if m.input.Value() != "" || m.history.Len() != 1 {
		t.Errorf("after enter: value=%q history=%d", m.input.Value(), m.history.Len())
	}

	v, ok := m.session.Resolve("y")
	if !ok || lang.Inspect(v) != "2" {
		t.Errorf("y = %v, %v", v, ok)
	}

	m.setLine(exitCommand)

	m, _ = m.handleKey(key(tea.KeyEnter))
	if !m.quitting {
		t.Error("exit did not quit")
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m := newTestModel(t)
	m.setLine("1 +")

	m, _ = m.handleKey(key(tea.KeyCtrlD))
	if m.quitting {
		t.Fatal("ctrl+d quit with pending input")
	}

	m, _ = m.handleKey(key(tea.KeyCtrlC))
	if m.quitting || m.input.Value() != "" {
		t.Fatalf("ctrl+c with input: quitting=%v value=%q", m.quitting, m.input.Value())
	}

	m, cmd := m.handleKey(key(tea.KeyCtrlD))
	if !m.quitting || cmd == nil {
		t.Error("ctrl+d on an empty line did not quit")
	}
}

func TestModel_ModeSwitch(t *testing.T) {
	m := newTestModel(t)
	m.setLine("x + ")

	m, _ = m.handleKey(key(tea.KeyEsc))
	if m.mode != modeCtrl || m.input.Value() != "" {
		t.Fatalf("mode=%v value=%q", m.mode, m.input.Value())
	}

	m.setLine("hel")

	found := false

	for _, match := range m.matches {
		found = found || match.Str == "help"
	}

	if !found {
		t.Errorf("ctrl matches = %v", m.matches)
	}

	m, _ = m.handleKey(key(tea.KeyEsc))

	if m.mode != modeEval || m.input.Value() != "x + " {
		t.Errorf("restored mode=%v value=%q", m.mode, m.input.Value())
	}
}

func TestModel_HistoryStep(t *testing.T) {
	m := newTestModel(t)

	_ = m.history.Append("mut a = 1;", modeEval)
	_ = m.history.Append("help", modeCtrl)
	m.historyIdx = m.history.Len()

	m = m.historyStep(-1, false)
	if m.mode != modeCtrl || m.input.Value() != "help" {
		t.Fatalf("up: mode=%v value=%q", m.mode, m.input.Value())
	}

	m = m.historyStep(-1, false)
	if m.mode != modeEval || m.input.Value() != "mut a = 1;" {
		t.Fatalf("up twice: mode=%v value=%q", m.mode, m.input.Value())
	}

	m = m.historyStep(1, true)
	if m.historyIdx != m.history.Len() || m.input.Value() != "" {
		t.Errorf("shift-down past ctrl entry: idx=%d value=%q", m.historyIdx, m.input.Value())
	}

	m = m.historyStep(-1, true)
	if m.input.Value() != "mut a = 1;" {
		t.Errorf("shift-up skipped to %q", m.input.Value())
	}
}

func TestModel_ListBindings(t *testing.T) {
	m := newTestModel(t)

	if got := m.listBindings(); !strings.Contains(got, "no bindings") {
		t.Errorf("empty list = %q", got)
	}

	if _, err := m.session.Eval(t.Context(), `mut s = "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyz";`); err != nil {
		t.Fatal(err)
	}

	got := m.listBindings()
	if !strings.Contains(got, "  s ") || !strings.Contains(got, "...") {
		t.Errorf("list = %q", got)
	}
}
