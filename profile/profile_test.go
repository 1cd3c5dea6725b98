package profile

import (
	"slices"
	"testing"
)

func TestOptions(t *testing.T) {
	var c Config

	for _, opt := range []Option{
		WithMode("cpu"),
		WithPath("/tmp/profiles"),
		WithQuiet(true),
	} {
		opt(&c)
	}

	want := Config{Mode: "cpu", Path: "/tmp/profiles", Quiet: true}
	if c != want {
		t.Errorf("config = %+v, want %+v", c, want)
	}
}

func TestStart_Disabled(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"no mode", nil},
		{"unknown mode", []Option{WithMode("bogus"), WithPath(t.TempDir())}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Start(tt.opts...)
			if _, ok := p.(ignore); !ok {
				t.Errorf("Start() = %T, want no-op", p)
			}

			p.Stop()
		})
	}
}

func TestModes(t *testing.T) {
	modes := Modes()

	if !slices.IsSorted(modes) {
		t.Errorf("Modes() not sorted: %v", modes)
	}

	if len(modes) > 0 && !slices.Contains(modes, "cpu") {
		t.Errorf("Modes() = %v, missing cpu", modes)
	}
}
