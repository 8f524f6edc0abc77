package options

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"time"

	"github.com/robbyt/go-tickscript/execution/script"
	"github.com/robbyt/go-tickscript/machines/types"
	"golang.org/x/text/cases"
)

// Config holds all configuration for a script instance
type Config struct {
	// Logger for the engine
	handler slog.Handler
	// Requester notified on load and failure; empty means silent
	owner string
	// Filesystem the locator probes
	fsys fs.FS
	// Directories probed after the bare name
	searchDirs []string
	// Ticks to sleep before the first interpreted instruction
	startDelay int
	// Ticks used by a wait without a valid count
	defaultWait int
	// Upper bound on the post-pulse join of a compiled script
	joinTimeout time.Duration
	// Compiled-mode backends, by machine type
	compilers map[types.Type]script.Compiler
	// Instruction names whose successful execution is not echoed to the console
	echoSuppressed map[string]bool
}

// Option is a function that modifies Config
type Option func(*Config) error

// WithLogHandler sets the logger for the script engine
func WithLogHandler(handler slog.Handler) Option {
	return func(c *Config) error {
		if handler != nil {
			c.handler = handler
		}
		return nil
	}
}

// WithSlog sets the slog logger for the script engine
func WithSlog(logger *slog.Logger) Option {
	return func(c *Config) error {
		if logger != nil {
			c.handler = logger.Handler()
		}
		return nil
	}
}

// WithOwner sets the requester that receives load and failure notifications
func WithOwner(owner string) Option {
	return func(c *Config) error {
		c.owner = owner
		return nil
	}
}

// WithFS sets the filesystem scripts are located and read from
func WithFS(fsys fs.FS) Option {
	return func(c *Config) error {
		if fsys == nil {
			return fmt.Errorf("filesystem cannot be nil")
		}
		c.fsys = fsys
		return nil
	}
}

// WithSearchDirs replaces the directories probed after the bare script name
func WithSearchDirs(dirs ...string) Option {
	return func(c *Config) error {
		if slices.Contains(dirs, "") {
			return fmt.Errorf("search directory cannot be empty")
		}
		c.searchDirs = slices.Clone(dirs)
		return nil
	}
}

// WithStartDelay makes an interpreted script sleep for n ticks before its first line
func WithStartDelay(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("start delay cannot be negative: %d", n)
		}
		c.startDelay = n
		return nil
	}
}

// WithDefaultWait sets the tick count used when a wait has no valid count
func WithDefaultWait(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("default wait cannot be negative: %d", n)
		}
		c.defaultWait = n
		return nil
	}
}

// WithJoinTimeout sets how long each tick waits for a compiled script to finish
func WithJoinTimeout(d time.Duration) Option {
	return func(c *Config) error {
		if d <= 0 {
			return fmt.Errorf("join timeout must be positive: %s", d)
		}
		c.joinTimeout = d
		return nil
	}
}

// WithCompiler registers a compiled-mode backend for its machine type
func WithCompiler(comp script.Compiler) Option {
	return func(c *Config) error {
		if comp == nil {
			return fmt.Errorf("compiler cannot be nil")
		}
		if c.compilers == nil {
			c.compilers = make(map[types.Type]script.Compiler)
		}
		c.compilers[comp.GetMachineType()] = comp
		return nil
	}
}

// WithEchoSuppressed replaces the instruction names that are not echoed after running
func WithEchoSuppressed(names ...string) Option {
	return func(c *Config) error {
		fold := cases.Fold()
		c.echoSuppressed = make(map[string]bool, len(names))
		for _, n := range names {
			c.echoSuppressed[fold.String(n)] = true
		}
		return nil
	}
}

// Validate performs basic validation on the configuration
func (c *Config) Validate() error {
	var errz []error
	if c.handler == nil {
		errz = append(errz, fmt.Errorf("no logger specified"))
	}
	if c.fsys == nil {
		errz = append(errz, fmt.Errorf("no filesystem specified"))
	}
	if c.joinTimeout <= 0 {
		errz = append(errz, fmt.Errorf("no join timeout specified"))
	}
	if c.startDelay < 0 || c.defaultWait < 0 {
		errz = append(errz, fmt.Errorf("tick counts cannot be negative"))
	}
	return errors.Join(errz...)
}

// GetHandler returns the configured logger
func (c *Config) GetHandler() slog.Handler {
	return c.handler
}

// GetOwner returns the configured owner
func (c *Config) GetOwner() string {
	return c.owner
}

// GetFS returns the configured filesystem
func (c *Config) GetFS() fs.FS {
	return c.fsys
}

// GetSearchDirs returns the configured search directories
func (c *Config) GetSearchDirs() []string {
	return c.searchDirs
}

// GetStartDelay returns the configured start delay in ticks
func (c *Config) GetStartDelay() int {
	return c.startDelay
}

// GetDefaultWait returns the configured default wait in ticks
func (c *Config) GetDefaultWait() int {
	return c.defaultWait
}

// GetJoinTimeout returns the configured join timeout
func (c *Config) GetJoinTimeout() time.Duration {
	return c.joinTimeout
}

// GetCompiler returns the backend registered for machine
func (c *Config) GetCompiler(machine types.Type) (script.Compiler, bool) {
	comp, ok := c.compilers[machine]
	return comp, ok
}

// GetCompiledExtensions returns the extensions of the registered backends, in locator order
func (c *Config) GetCompiledExtensions() []string {
	var exts []string
	for _, t := range types.All() {
		if _, ok := c.compilers[t]; ok {
			exts = append(exts, t.Extension())
		}
	}
	return exts
}

// IsEchoSuppressed reports whether a folded instruction name is kept off the console
func (c *Config) IsEchoSuppressed(name string) bool {
	return c.echoSuppressed[name]
}
