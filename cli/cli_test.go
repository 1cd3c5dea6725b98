package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/nova/cli/cmd"
	"github.com/ardnew/nova/lang"
)

func TestMain(m *testing.M) {
	home, err := os.MkdirTemp("", "nova-cli-test-*")
	if err != nil {
		panic(err)
	}

	for key, dir := range map[string]string{
		"HOME":            home,
		"XDG_CONFIG_HOME": filepath.Join(home, "config"),
		"XDG_CACHE_HOME":  filepath.Join(home, "cache"),
	} {
		os.Setenv(key, dir)
	}

	code := m.Run()

	os.RemoveAll(home)
	os.Exit(code)
}

func noExit(t *testing.T) func(int) {
	t.Helper()

	return func(code int) { t.Errorf("unexpected exit(%d)", code) }
}

func TestRun_Script(t *testing.T) {
	dir := t.TempDir()

	for name, src := range map[string]string{
		"ok.nv":     "mut x = 1;\nx + 1",
		"fail.nv":   "missing()",
		"notes.txt": "1",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"default command", []string{filepath.Join(dir, "ok.nv")}, nil},
		{"explicit run", []string{"--max-depth=16", "run", filepath.Join(dir, "ok.nv")}, nil},
		{"tokens", []string{"tokens", filepath.Join(dir, "ok.nv")}, nil},
		{"ast", []string{"--log-level=error", "ast", "-f", "yaml", filepath.Join(dir, "ok.nv")}, nil},
		{"evaluation error", []string{filepath.Join(dir, "fail.nv")}, lang.ErrUnresolved},
		{"wrong extension", []string{"run", filepath.Join(dir, "notes.txt")}, cmd.ErrExtension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Run(t.Context(), noExit(t), tt.args...)
			if !errors.Is(err, tt.want) || (err != nil) != (tt.want != nil) {
				t.Errorf("Run(%v) error = %v, want %v", tt.args, err, tt.want)
			}
		})
	}
}

func TestRun_Init(t *testing.T) {
	path := configPath(baseConfig + ".yaml")

	t.Cleanup(func() { os.Remove(path) })

	if err := Run(t.Context(), noExit(t), "--log-level=info", "init"); err != nil {
		t.Fatalf("init: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("configuration not written: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r, err := resolve(f)
	if err != nil {
		t.Fatal(err)
	}

	if c := r.(config); c["log-level"] != "info" || c["max-depth"] == nil {
		t.Errorf("configuration = %v", c)
	}

	err = Run(t.Context(), noExit(t), "init")
	if !errors.Is(err, cmd.ErrFileExists) {
		t.Errorf("second init error = %v", err)
	}

	if err := Run(t.Context(), noExit(t), "init", "--force"); err != nil {
		t.Errorf("forced init: %v", err)
	}
}

func TestLogConfigScan(t *testing.T) {
	tests := []struct {
		args   []string
		pretty bool
		caller bool
		level  logLevel
	}{
		{[]string{"--log-level", "debug", "--no-log-pretty"}, false, false, "debug"},
		{[]string{"run", "--log-caller", "--log-level=trace"}, true, true, "trace"},
		{[]string{"--log-pretty=false", "--no-log-caller=false"}, false, true, ""},
		{[]string{"--log-caller=bogus"}, true, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if f.Pretty != tt.pretty || f.Caller != tt.caller || f.Level != tt.level {
				t.Errorf("scan(%v) = pretty:%v caller:%v level:%q", tt.args, f.Pretty, f.Caller, f.Level)
			}
		})
	}
}
