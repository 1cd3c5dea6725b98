package lang

import (
	"github.com/ardnew/nova/log"
)

// DefaultMaxDepth is the default limit on nested function calls.
const DefaultMaxDepth = 2048

// Option configures parsing and evaluation.
type Option func(*config)

type config struct {
	logger   log.Logger
	host     Host
	maxDepth int
}

func makeConfig(opts ...Option) config {
	cfg := config{
		host:     OSHost{},
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithLogger sets the logger used to trace parsing and evaluation.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithHost sets the host used to resolve and read imported modules.
func WithHost(host Host) Option {
	return func(c *config) {
		if host != nil {
			c.host = host
		}
	}
}

// WithMaxDepth sets the maximum number of nested function calls.
// Values less than 1 leave the default in place.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}
