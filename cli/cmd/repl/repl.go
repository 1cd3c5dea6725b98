package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/nova/lang"
	"github.com/ardnew/nova/log"
)

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

// exitCommand ends the session when entered as an expression.
const exitCommand = "exit"

const helpMessage = `
: Commands (press Esc to toggle mode):

  help     Print this help
  list     List the bindings declared in this session
  edit     Compose a program in $EDITOR and run it
  clear    Clear screen
  quit     Exit REPL

Usage:
  Type a statement or expression to evaluate it
  Declarations persist for the rest of the session
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to toggle between eval and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Type exit, press Ctrl+C on an empty line, or press Ctrl+D to exit
`

// inputMode is the interpretation of a submitted line.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
//
//nolint:gochecknoglobals
var (
	promptStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	ctrlPromptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	inputStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle         = suggestionStyle.Bold(true)
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	currentParamStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// Option configures [Run].
type Option func(*config)

type config struct {
	input   io.Reader
	output  io.Writer
	history *History
	logger  log.Logger
}

// WithInput sets the source of input lines. The default is [os.Stdin].
func WithInput(r io.Reader) Option {
	return func(c *config) {
		if r != nil {
			c.input = r
		}
	}
}

// WithOutput sets the destination of results. The default is [os.Stdout].
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithHistory sets the history the session loads and appends to.
// The default history is kept in memory only.
func WithHistory(h *History) Option {
	return func(c *config) {
		if h != nil {
			c.history = h
		}
	}
}

// WithLogger sets the logger used to trace the session.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// Run reads and evaluates input in session until the input ends or the
// user exits.
//
// When both input and output are terminals, Run presents an interactive
// editor with completion and history navigation. Otherwise it evaluates
// input line by line and writes one result per line.
func Run(ctx context.Context, session *Session, opts ...Option) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cfg := config{
		input:   os.Stdin,
		output:  os.Stdout,
		history: NewHistory(""),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.history.Load(); err != nil {
		cfg.logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	interactive := isTerminal(cfg.input) && isTerminal(cfg.output)

	cfg.logger.TraceContext(ctx, "repl start",
		slog.Bool("interactive", interactive),
		slog.Int("history", cfg.history.Len()),
	)

	if !interactive {
		return runLines(ctx, session, cfg)
	}

	p := tea.NewProgram(
		newModel(ctx, session, cfg.history, cfg.logger),
		tea.WithContext(ctx),
		tea.WithInput(cfg.input),
		tea.WithOutput(cfg.output),
	)

	_, err = p.Run()

	return err
}

func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })

	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// runLines evaluates each line of cfg.input and writes its result or error
// to cfg.output.
func runLines(ctx context.Context, session *Session, cfg config) error {
	scanner := bufio.NewScanner(cfg.input)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue

		case exitCommand:
			return nil
		}

		if err := cfg.history.Append(line, modeEval); err != nil {
			cfg.logger.WarnContext(ctx, "could not save history", slog.Any("error", err))
		}

		v, err := session.Eval(ctx, line)

		switch {
		case ctx.Err() != nil:
			return context.Cause(ctx)

		case err != nil:
			fmt.Fprintln(cfg.output, FormatError(line, "", err))

		default:
			fmt.Fprintln(cfg.output, lang.Inspect(v))
		}
	}

	return scanner.Err()
}

// editDoneMsg is sent when an edit command completes.
type editDoneMsg struct{ cmd *editCommand }

// editDeclinedMsg is sent when the user declined to fix a syntax error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the editor could not be run.
type editErrorMsg struct{ err error }

const defaultWidth = 80

// model is the Bubble Tea model for the interactive REPL.
type model struct {
	ctxFunc      func() context.Context
	session      *Session
	history      *History
	logger       log.Logger
	input        textinput.Model
	matches      fuzzy.Matches // ranked completions of the word at the cursor
	lastEdit     string        // program from the most recent edit command
	evalText     string
	ctrlText     string
	preTabText   string
	historyIdx   int
	wordStart    int
	wordEnd      int
	suggIdx      int
	preTabCursor int
	evalCursor   int
	ctrlCursor   int
	width        int
	mode         inputMode
	tabActive    bool
	quitting     bool
}

func newModel(
	ctx context.Context,
	session *Session,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		session:    session,
		history:    history,
		logger:     logger,
		input:      ti,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(evalPrompt)-2, 1)

		return m, nil

	case editDoneMsg:
		if msg.cmd.source == "" {
			return m, tea.Println(hintStyle.Render("edit cancelled"))
		}

		m.lastEdit = msg.cmd.source

		return m, tea.Println(renderResult(msg.cmd.source, msg.cmd.value, msg.cmd.err))

	case editDeclinedMsg:
		return m, tea.Println(hintStyle.Render("edit discarded"))

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.hint())
	b.WriteString("\n")

	return b.String()
}

// hint renders the line below the input: the history position, a usage
// hint, the signature of the enclosing call, or the completion bar.
func (m model) hint() string {
	input := m.input.Value()

	if m.historyIdx < m.history.Len() {
		return hintStyle.Render(
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)) +
				"/" + strconv.Itoa(m.history.Len()))
	}

	if strings.TrimSpace(input) == "" {
		if m.mode == modeCtrl {
			return hintStyle.Render("Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)")
		}

		return hintStyle.Render("Type a statement or press Esc for commands")
	}

	if m.mode == modeEval && len(m.matches) == 0 {
		if call := detectFunctionCall(input, m.input.Position()); call.inCall {
			if params, ok := m.session.signature(call.name); ok {
				return renderSignatureHint(call.name, params, call.argIndex)
			}
		}
	}

	parent := ""
	if m.mode == modeEval {
		parent = parentPath(input, m.wordStart)
	}

	return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width,
		func(name string) bool {
			if m.mode == modeCtrl {
				return false
			}

			if parent != "" {
				name = parent + "." + name
			}

			return m.session.isCallable(name)
		})
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.setLine("")

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			// Accept the current candidate without executing.
			m.tabActive = false
			m.refreshMatches(true)

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1, false), nil

	case tea.KeyDown:
		return m.historyStep(1, false), nil

	case tea.KeyShiftUp:
		return m.historyStep(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyStep(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches(false)

			return m, nil
		}

		if m.mode == modeEval {
			return m.switchToMode(modeCtrl), nil
		}

		return m.switchToMode(modeEval), nil
	}

	// Any other key edits the input; completions are recomputed and a
	// fully typed sole candidate is confirmed only when inserting text.
	insert := msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace

	m.tabActive = false
	m.historyIdx = m.history.Len()

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.refreshMatches(insert)

	return m, cmd
}

// cycle moves the tab selection by step through the completion candidates.
func (m model) cycle(step int) model {
	n := len(m.matches)

	switch {
	case n == 0:
		return m

	case n == 1:
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m

	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + n) % n

	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

// replaceWord replaces the word at the cursor with s.
func (m *model) replaceWord(s string) {
	input := m.input.Value()

	m.input.SetValue(input[:m.wordStart] + s + input[m.wordEnd:])
	m.input.SetCursor(m.wordStart + len(s))
	m.wordEnd = m.wordStart + len(s)
}

// refreshMatches recomputes the completions at the cursor. With confirm
// set, a word that already equals its sole candidate is accepted.
func (m *model) refreshMatches(confirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if confirm && len(m.matches) == 1 &&
		m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.matches = nil
	}
}

func (m *model) setLine(s string) {
	m.input.SetValue(s)
	m.input.SetCursor(len(s))
	m.refreshMatches(false)
}

// historyStep moves through history by step. With sameMode set, entries
// entered in the other mode are skipped; otherwise the mode follows the
// entry. Moving past the newest entry clears the input.
func (m model) historyStep(step int, sameMode bool) model {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.Entry(i)
		if err != nil || (sameMode && entry.Mode != m.mode) {
			continue
		}

		if entry.Mode != m.mode {
			m = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.setLine(entry.Line)

		return m
	}

	if step > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.setLine("")
	}

	return m
}

// switchToMode switches the input mode, saving the text entered in the
// current mode and restoring the text of the target mode.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modeEval {
		m.evalText, m.evalCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode

	if mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt)
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	m.refreshMatches(false)

	return m
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	mode := m.mode

	m.evalText, m.evalCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.setLine("")

	if err := m.history.Append(input, mode); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if mode == modeCtrl {
		return m.executeCommand(input)
	}

	echo := tea.Println(promptStyle.Render(evalPrompt) + inputStyle.Render(input))

	if input == exitCommand {
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)
	}

	v, err := m.session.Eval(m.ctxFunc(), input)

	return m, tea.Sequence(echo, tea.Println(renderResult(input, v, err)))
}

func renderResult(source string, v lang.Value, err error) string {
	if err != nil {
		return errorStyle.Render(FormatError(source, "", err))
	}

	return resultStyle.Render(lang.Inspect(v))
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	fields := strings.Fields(input)
	echo := tea.Println(ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input))

	m.logger.TraceContext(m.ctxFunc(), "repl command", slog.String("command", fields[0]))

	switch fields[0] {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Printf("%s", helpMessage))

	case "l", "list":
		return m, tea.Sequence(echo, tea.Println(m.listBindings()))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echo, m.edit())

	default:
		return m, tea.Println(
			errorStyle.Render("unknown command: " + fields[0] + " (try 'help')"))
	}
}

// edit suspends the program to compose a program in the user's editor.
func (m model) edit() tea.Cmd {
	cmd := &editCommand{
		session: m.session,
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
		source:  m.lastEdit,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}

		case err != nil:
			return editErrorMsg{err: err}

		default:
			return editDoneMsg{cmd: cmd}
		}
	})
}

// listBindings renders each session binding with a preview of its value.
func (m model) listBindings() string {
	const maxPreview = 40

	names := m.session.Bindings()
	if len(names) == 0 {
		return hintStyle.Render("  (no bindings)")
	}

	var b strings.Builder

	for _, name := range names {
		v, ok := m.session.Resolve(name)
		if !ok {
			continue
		}

		preview := lang.Inspect(v)
		if len(preview) > maxPreview {
			preview = preview[:maxPreview-3] + "..."
		}

		b.WriteString("  " + name + " " + hintStyle.Render(preview) + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}
