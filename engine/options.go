package engine

import "go.uber.org/zap"

// ============================================================================
// ENGINE OPTIONS: Functional options for ComputeView() / Execute()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Logger *zap.Logger
	Strict bool // reject unknown field names instead of ignoring them
}

// WithLogger routes engine debug logs to l.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithStrictFields makes unknown facet, text, floor and sort fields an error.
// By default they are ignored.
func WithStrictFields() Option {
	return func(c *config) {
		c.Strict = true
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
