package tsbuild

import (
	"io"
	"log/slog"
)

// Config holds Builder tunables. The zero value is not meant to be used
// directly; Alloc fills in defaults before applying Options.
type Config struct {
	nodesChunk     int
	edgesChunk     int
	maxEdges       int
	extendedChecks bool
	logger         *slog.Logger
}

func defaultConfig() Config {
	return Config{
		nodesChunk: 1024,
		edgesChunk: 1024,
		maxEdges:   0, // 0 == unlimited, matching the teacher's unbounded chunked-growth arenas
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures a Builder at Alloc time. Adapted from the
// functional-options pattern in tigerwill90/fox's options.go, simplified
// to a single option kind since Builder (unlike fox's Router/Route split)
// has only one configurable object.
type Option func(*Config)

// WithNodesChunk sets the node table's growth chunk size: the table grows
// by one fixed-size chunk of this many nodes at a time.
func WithNodesChunk(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.nodesChunk = n
		}
	}
}

// WithEdgesChunk sets the edge arena's growth chunk size.
func WithEdgesChunk(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.edgesChunk = n
		}
	}
}

// WithMaxEdges caps the number of live edges the builder will allocate
// before returning ErrNoMemory. A cap of 0 (the default) means unlimited,
// matching the teacher's unbounded chunked-growth arenas; pipelines that
// want to fail fast instead of growing without bound set this explicitly.
func WithMaxEdges(n int) Option {
	return func(c *Config) { c.maxEdges = n }
}

// WithExtendedChecks enables the full structural invariant check (spec
// §8) after every AddPath and AddMutations call, not just on explicit
// PrintState calls. The Restore methods do not run it.
// Expensive; intended for tests, not production ingestion.
func WithExtendedChecks() Option {
	return func(c *Config) { c.extendedChecks = true }
}

// WithLogger sets the structured logger used for compression/squash
// diagnostics and builder lifecycle events (allocation, breakage);
// PrintState writes to its own io.Writer instead. The default discards
// all output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.logger = l
		}
	}
}
