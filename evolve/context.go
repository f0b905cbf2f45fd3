package evolve

import (
	"context"
	"errors"
)

// ErrConfigNotFound is returned by FromContext when no Config was attached
// to the context, following the same pattern as the teacher's
// neat.ErrNEATOptionsNotFound.
var ErrConfigNotFound = errors.New("evolve: Config not found in the context")

// key is an unexported type for keys defined in this package, preventing
// collisions with keys defined elsewhere.
type key int

var configKey key

// NewContext returns a new Context carrying cfg, retrievable with FromContext.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext returns the Config value stored in ctx, if any.
func FromContext(ctx context.Context) (*Config, bool) {
	cfg, ok := ctx.Value(configKey).(*Config)
	return cfg, ok
}
