package lang

import "github.com/ardnew/kaleidoscope/log"

// DefaultMaxDepth is the default limit on nested expressions.
// Zero means unlimited.
const DefaultMaxDepth = 0

// config holds the settings of a single parse.
type config struct {
	logger   log.Logger
	maxDepth int
}

// Option configures parsing behavior.
type Option func(*config)

func makeConfig(opts ...Option) config {
	cfg := config{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithLogger sets the logger used to trace parsing.
// The zero value [log.Logger] discards all messages.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMaxDepth limits how deeply expressions may nest through call
// arguments. A depth of zero or less removes the limit.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = max(depth, 0)
	}
}
