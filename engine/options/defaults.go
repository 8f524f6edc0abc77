package options

import (
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/robbyt/go-tickscript/execution/script/loader"
)

const (
	// DefaultWait is the sleep of a wait instruction without a valid count.
	DefaultWait = 10
	// DefaultJoinTimeout bounds the post-pulse join of a compiled script.
	DefaultJoinTimeout = 100 * time.Millisecond
)

// DefaultConfig initializes a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		handler:        DefaultHandler(),
		fsys:           loader.OSFS{},
		searchDirs:     slices.Clone(loader.DefaultSearchDirs),
		defaultWait:    DefaultWait,
		joinTimeout:    DefaultJoinTimeout,
		echoSuppressed: map[string]bool{"log": true},
	}
}

// DefaultHandler returns the default logging handler
func DefaultHandler() slog.Handler {
	return slog.NewTextHandler(os.Stdout, nil)
}

// WithDefaults applies default values to any config properties that are unset
func WithDefaults() Option {
	return func(c *Config) error {
		if c.handler == nil {
			c.handler = DefaultHandler()
		}
		if c.fsys == nil {
			c.fsys = loader.OSFS{}
		}
		if c.joinTimeout <= 0 {
			c.joinTimeout = DefaultJoinTimeout
		}
		if c.echoSuppressed == nil {
			c.echoSuppressed = map[string]bool{"log": true}
		}
		return nil
	}
}
