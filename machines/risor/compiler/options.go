package compiler

import (
	"fmt"
	"log/slog"
	"os"
)

// Options holds the configuration for the Risor compiler
type Options struct {
	Globals    map[string]any
	LogHandler slog.Handler
	Logger     *slog.Logger
}

// FunctionalOption is a function that configures an Options instance
type FunctionalOption func(*Options) error

// WithGlobals binds extra globals into every unit the compiler produces. Names are
// declared at compile time and the values are bound on each run. Plain Go values
// are converted to Risor objects.
func WithGlobals(globals map[string]any) FunctionalOption {
	return func(cfg *Options) error {
		for name := range globals {
			switch name {
			case HostGlobal, GateGlobal, ArgsGlobal, EntryPoint:
				return fmt.Errorf("global %q is reserved", name)
			}
		}
		cfg.Globals = globals
		return nil
	}
}

// WithLogHandler creates an option to set the log handler for the Risor compiler.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(cfg *Options) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		cfg.LogHandler = handler
		// Clear logger if handler is explicitly set
		cfg.Logger = nil
		return nil
	}
}

// WithLogger creates an option to set a specific logger for the Risor compiler.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(cfg *Options) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		cfg.Logger = logger
		// Clear handler if logger is explicitly set
		cfg.LogHandler = nil
		return nil
	}
}

// ApplyDefaults sets the default values for an Options
func ApplyDefaults(cfg *Options) {
	if cfg.LogHandler == nil && cfg.Logger == nil {
		cfg.LogHandler = slog.NewTextHandler(os.Stderr, nil)
	}

	if cfg.Globals == nil {
		cfg.Globals = map[string]any{}
	}
}

// Validate checks if the configuration is valid
func Validate(cfg *Options) error {
	if cfg.LogHandler == nil && cfg.Logger == nil {
		return fmt.Errorf("either log handler or logger must be specified")
	}

	return nil
}
