package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func plain(buf *bytes.Buffer, opts ...Option) Logger {
	return Make(buf, append([]Option{WithTimeLayout("none"), WithPretty(false)}, opts...)...)
}

func TestMake_Defaults(t *testing.T) {
	logger := Make(nil)

	if got := logger.Level(); got != DefaultLevel {
		t.Errorf("Level() = %v, want %v", got, DefaultLevel)
	}

	if got := logger.Format(); got != DefaultFormat {
		t.Errorf("Format() = %v, want %v", got, DefaultFormat)
	}

	if logger.caller != DefaultCaller || logger.pretty != DefaultPretty {
		t.Errorf("unexpected defaults: %+v", logger.config)
	}
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		log   func(Logger)
		want  bool
	}{
		{"trace at trace", LevelTrace, func(l Logger) { l.Trace("m") }, true},
		{"trace at debug", LevelDebug, func(l Logger) { l.Trace("m") }, false},
		{"debug at info", LevelInfo, func(l Logger) { l.Debug("m") }, false},
		{"info at info", LevelInfo, func(l Logger) { l.Info("m") }, true},
		{"info at warn", LevelWarn, func(l Logger) { l.Info("m") }, false},
		{"warn at warn", LevelWarn, func(l Logger) { l.Warn("m") }, true},
		{"error at warn", LevelWarn, func(l Logger) { l.Error("m") }, true},
		{"context", LevelDebug, func(l Logger) { l.DebugContext(t.Context(), "m") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(plain(&buf, WithLevel(tt.level)))

			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("logged = %v, want %v: %q", got, tt.want, buf.String())
			}
		})
	}
}

func TestLogger_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer

	plain(&buf, WithLevel(LevelTrace)).Trace("deep")

	if want := "level=TRACE msg=deep\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer

	plain(&buf, WithFormat(FormatJSON)).Warn("parsed", slog.Int("nodes", 3))

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v: %s", err, buf.String())
	}

	if got["msg"] != "parsed" || got["level"] != "WARN" || got["nodes"] != 3.0 {
		t.Errorf("record = %v", got)
	}

	if _, ok := got["time"]; ok {
		t.Error("time was not omitted")
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	plain(&buf, WithCaller(true)).Warn("here")

	if !strings.Contains(buf.String(), "log_test.go:") {
		t.Errorf("source is not the calling file: %s", buf.String())
	}
}

func TestLogger_WithAndWrap(t *testing.T) {
	var buf bytes.Buffer

	base := plain(&buf)
	scoped := base.With(slog.String("file", "main.nv"))

	scoped.Warn("a")
	base.Warn("b")

	want := "level=WARN msg=a file=main.nv\nlevel=WARN msg=b\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}

	quiet := base.Wrap(WithLevel(LevelError))
	if quiet.Level() != LevelError || base.Level() != DefaultLevel {
		t.Errorf("Wrap changed the wrong logger: %v %v", quiet.Level(), base.Level())
	}

	if quiet.Enabled(t.Context(), LevelWarn) {
		t.Error("wrapped logger enabled below its level")
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var logger Logger

	logger.Error("ignored")
	logger.With(slog.Bool("k", true)).Info("ignored")

	if logger.Enabled(t.Context(), LevelError) {
		t.Error("zero logger reports enabled")
	}

	if logger.Level() != DefaultLevel || logger.Format() != DefaultFormat {
		t.Error("zero logger does not report defaults")
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var (
		buf bytes.Buffer
		mu  sync.Mutex
		wg  sync.WaitGroup
	)

	logger := plain(&buf, WithOutput(writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()

		return buf.Write(p)
	})))

	for i := range 16 {
		wg.Go(func() {
			logger.With(slog.Int("worker", i)).Warn("tick")
			_ = logger.Wrap(WithLevel(LevelDebug)).Level()
		})
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 16 {
		t.Errorf("wrote %d lines, want 16", n)
	}
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

func TestPretty(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer

		logger := Make(&buf, WithTimeLayout("none"))
		logger.With(slog.String("file", "a.nv")).
			Warn("import", slog.Group("module", slog.String("path", "b.nv"), slog.Int("size", 12)))

		want := "level=WARN msg=import file=a.nv module.path=b.nv module.size=12\n"
		if buf.String() != want {
			t.Errorf("output = %q, want %q", buf.String(), want)
		}
	})

	t.Run("block", func(t *testing.T) {
		var buf bytes.Buffer

		logger := Make(&buf, WithTimeLayout("none"), WithFormat(FormatJSON))
		logger.Error("failed", slog.Bool("fatal", true), slog.Any("error", errors.New("boom")))

		want := "{\n  level: ERROR,\n  msg: failed,\n  fatal: true,\n  error: boom\n}\n"
		if buf.String() != want {
			t.Errorf("output = %q, want %q", buf.String(), want)
		}
	})

	t.Run("group", func(t *testing.T) {
		var buf bytes.Buffer

		logger := Make(&buf, WithTimeLayout("none"))
		logger.Logger = slog.New(logger.Handler().WithGroup("eval"))
		logger.Warn("depth", slog.Int("max", 2048))

		if want := "level=WARN msg=depth eval.max=2048\n"; buf.String() != want {
			t.Errorf("output = %q, want %q", buf.String(), want)
		}
	})
}

func TestPackageLogger(t *testing.T) {
	original := Default()
	t.Cleanup(func() {
		defaultMu.Lock()
		defaultLog = original
		defaultMu.Unlock()
	})

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelTrace), WithTimeLayout("none"), WithPretty(false))

	tests := []struct {
		fn    func(string, ...slog.Attr)
		level string
	}{
		{Trace, "TRACE"},
		{Debug, "DEBUG"},
		{Info, "INFO"},
		{Warn, "WARN"},
		{Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			want := "level=" + tt.level + " msg=message key=value\n"
			if buf.String() != want {
				t.Errorf("output = %q, want %q", buf.String(), want)
			}
		})
	}

	buf.Reset()
	InfoContext(t.Context(), "ctx")
	With(slog.Int("n", 1)).Info("with")

	if want := "level=INFO msg=ctx\nlevel=INFO msg=with n=1\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
