package solver

import (
	"time"

	hclog "github.com/hashicorp/go-hclog"
)

// Config configures how a Driver spawns and supervises its solver child.
// There is no persisted configuration file: every field here is a
// parameter the in-process caller supplies (the CLI front end that would
// turn flags into a Config is out of scope for this engine).
type Config struct {
	Bin     string
	Args    []string
	Timeout time.Duration
	TeeDir  string
	TeeName string
	Logger  hclog.Logger
}

// Option configures a Config in the functional-options style.
type Option func(*Config)

// WithBin overrides the solver binary and its invocation arguments.
func WithBin(bin string, args ...string) Option {
	return func(c *Config) {
		c.Bin = bin
		c.Args = args
	}
}

// WithTimeout bounds every check-sat / get-value round-trip.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithTee enables SMT logging: every emitted line is mirrored to
// <dir>/<name>. If name is empty, a collision-free name is minted per
// session (see New).
func WithTee(dir, name string) Option {
	return func(c *Config) {
		c.TeeDir = dir
		c.TeeName = name
	}
}

// WithLogger overrides the structured logger; the default is a no-op.
func WithLogger(l hclog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// NewConfig builds a Config with the incremental-mode defaults: the "z3"
// binary run in "-in" (read-queries-from-stdin) mode, no timeout, no
// logging, no tee.
func NewConfig(opts ...Option) Config {
	cfg := Config{
		Bin:    "z3",
		Args:   []string{"-in"},
		Logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	return cfg
}
