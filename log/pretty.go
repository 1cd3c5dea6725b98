package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// prettyStyles colorizes the parts of a log record. Colors are dropped
// automatically when the output is not a color-capable terminal.
type prettyStyles struct {
	key, str, num, yes, no, other lipgloss.Style
	level                         map[slog.Level]lipgloss.Style
}

func makePrettyStyles(w io.Writer) prettyStyles {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }

	return prettyStyles{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		yes:   fg("2"),
		no:    fg("1"),
		other: fg("5"),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): fg("8"),
			slog.LevelDebug:        fg("4"),
			slog.LevelInfo:         fg("2"),
			slog.LevelWarn:         fg("3"),
			slog.LevelError:        fg("1").Bold(true),
		},
	}
}

// levelStyle returns the style of the highest named level not above l.
func (s prettyStyles) levelStyle(l slog.Level) lipgloss.Style {
	best, style := slog.Level(LevelTrace), s.level[slog.Level(LevelTrace)]

	for k, v := range s.level {
		if k <= l && k >= best {
			best, style = k, v
		}
	}

	return style
}

// prettyHandler renders records as colorized "key=value" pairs on one line
// (text format) or as an indented block with one field per line (JSON
// format). Attribute groups are flattened into dotted keys.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	styles prettyStyles
	block  bool
	prefix string
	attrs  []slog.Attr
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions, block bool) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		styles: makePrettyStyles(w),
		block:  block,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	min := slog.LevelInfo
	if h.opts.Level != nil {
		min = h.opts.Level.Level()
	}

	return level >= min
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = slices.Concat(h.attrs, h.qualify(attrs))

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

// qualify prefixes attribute keys with the open group names.
func (h *prettyHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if h.prefix == "" {
		return attrs
	}

	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: h.prefix + a.Key, Value: a.Value}
	}

	return out
}

func (h *prettyHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]string, 0, 4+len(h.attrs)+r.NumAttrs())

	add := func(a slog.Attr, style *lipgloss.Style) {
		if a.Equal(slog.Attr{}) {
			return
		}

		fields = append(fields, h.styles.key.Render(a.Key)+h.sep()+h.value(a.Value, style))
	}

	if !r.Time.IsZero() {
		add(h.replace(slog.Time(slog.TimeKey, r.Time)), nil)
	}

	ls := h.styles.levelStyle(r.Level)
	add(h.replace(slog.Any(slog.LevelKey, r.Level)), &ls)

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			add(slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)), nil)
		}
	}

	add(slog.String(slog.MessageKey, r.Message), nil)

	for _, a := range h.attrs {
		h.flatten("", a, add)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.flatten(h.prefix, a, add)

		return true
	})

	var out string
	if h.block {
		out = "{\n  " + strings.Join(fields, ",\n  ") + "\n}\n"
	} else {
		out = strings.Join(fields, " ") + "\n"
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.w, out)

	return err
}

// flatten resolves a and emits it, expanding groups into dotted keys.
func (h *prettyHandler) flatten(
	prefix string,
	a slog.Attr,
	emit func(slog.Attr, *lipgloss.Style),
) {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() != slog.KindGroup {
		emit(h.replace(slog.Attr{Key: prefix + a.Key, Value: a.Value}), nil)

		return
	}

	group := prefix
	if a.Key != "" {
		group += a.Key + "."
	}

	for _, g := range a.Value.Group() {
		h.flatten(group, g, emit)
	}
}

func (h *prettyHandler) sep() string {
	if h.block {
		return ": "
	}

	return "="
}

func (h *prettyHandler) value(v slog.Value, style *lipgloss.Style) string {
	if style != nil {
		return style.Render(v.String())
	}

	switch v.Kind() {
	case slog.KindString:
		return h.styles.str.Render(v.String())

	case slog.KindInt64:
		return h.styles.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return h.styles.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return h.styles.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return h.styles.yes.Render("true")
		}

		return h.styles.no.Render("false")

	case slog.KindDuration, slog.KindTime:
		return h.styles.other.Render(v.String())
	}

	if v.Any() == nil {
		return h.styles.key.Render("null")
	}

	return h.styles.str.Render(v.String())
}
