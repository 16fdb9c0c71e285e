package filter

import "log/slog"

// DefaultAnyPropertyKey is the pattern key that matches against any
// property of the item.
const DefaultAnyPropertyKey = "$"

// Option configures a filter call.
type Option func(*config)

type config struct {
	comparator     Comparator
	anyPropertyKey string
	logger         *slog.Logger
}

func newConfig(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.comparator == nil {
		cfg.comparator = Substring
	}
	if cfg.anyPropertyKey == "" {
		cfg.anyPropertyKey = DefaultAnyPropertyKey
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return cfg
}

// WithComparator sets the leaf comparator. A nil comparator selects the
// default substring comparator.
func WithComparator(c Comparator) Option {
	return func(cfg *config) {
		cfg.comparator = c
	}
}

// WithExact selects deep equality as the leaf comparator when exact is
// true. False leaves the comparator unchanged.
func WithExact(exact bool) Option {
	return func(cfg *config) {
		if exact {
			cfg.comparator = Equals
		}
	}
}

// WithAnyPropertyKey overrides the any-property key. An empty key selects
// DefaultAnyPropertyKey.
func WithAnyPropertyKey(key string) Option {
	return func(cfg *config) {
		cfg.anyPropertyKey = key
	}
}

// WithLogger sets the sink for diagnostics. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}
