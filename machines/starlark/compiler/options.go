package compiler

import (
	"fmt"
	"log/slog"
	"os"
)

// Option holds the configuration for the Starlark compiler
type Option struct {
	Filename   string
	Indent     string
	LogHandler slog.Handler
	Logger     *slog.Logger
}

// FunctionalOption is a function that configures an Option instance
type FunctionalOption func(*Option) error

// WithFilename sets the file name used in diagnostics and backtraces.
func WithFilename(name string) FunctionalOption {
	return func(cfg *Option) error {
		if name == "" {
			return fmt.Errorf("filename cannot be empty")
		}
		cfg.Filename = name
		return nil
	}
}

// WithIndent sets the indentation added to the main section inside the entry point.
func WithIndent(indent string) FunctionalOption {
	return func(cfg *Option) error {
		if indent == "" {
			return fmt.Errorf("indent cannot be empty")
		}
		cfg.Indent = indent
		return nil
	}
}

// WithLogHandler creates an option to set the log handler for the Starlark compiler.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(cfg *Option) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		cfg.LogHandler = handler
		// Clear logger if handler is explicitly set
		cfg.Logger = nil
		return nil
	}
}

// WithLogger creates an option to set a specific logger for the Starlark compiler.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(cfg *Option) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		cfg.Logger = logger
		// Clear handler if logger is explicitly set
		cfg.LogHandler = nil
		return nil
	}
}

// ApplyDefaults sets the default values for an Option
func ApplyDefaults(cfg *Option) {
	if cfg.LogHandler == nil && cfg.Logger == nil {
		cfg.LogHandler = slog.NewTextHandler(os.Stderr, nil)
	}
	if cfg.Filename == "" {
		cfg.Filename = "script.star"
	}
	if cfg.Indent == "" {
		cfg.Indent = "    "
	}
}

// Validate checks if the configuration is valid
func Validate(cfg *Option) error {
	if cfg.LogHandler == nil && cfg.Logger == nil {
		return fmt.Errorf("either log handler or logger must be specified")
	}
	return nil
}
