package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

// Config is the profiler configuration.
type Config struct {
	Mode  string // one of [Modes]; empty disables profiling
	Path  string // output directory
	Quiet bool   // suppress the profiler's own log output
}

// Option configures a [Config].
type Option func(*Config)

// WithMode sets the profiling mode.
func WithMode(mode string) Option {
	return func(c *Config) { c.Mode = mode }
}

// WithPath sets the directory profiles are written to.
func WithPath(path string) Option {
	return func(c *Config) { c.Path = path }
}

// WithQuiet suppresses log output from the profiler.
func WithQuiet(quiet bool) Option {
	return func(c *Config) { c.Quiet = quiet }
}

// Start starts the profiler configured by opts and returns a handle to stop
// it. Stop must be called to flush the profile.
//
// Start returns a no-op when the mode is empty or unsupported, or when the
// binary was built without the pprof tag.
func Start(opts ...Option) interface{ Stop() } {
	var c Config

	for _, opt := range opts {
		opt(&c)
	}

	if c.Mode == "" {
		return ignore{}
	}

	return start(c)
}

type ignore struct{}

func (ignore) Stop() {}
