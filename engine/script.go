package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/robbyt/go-tickscript/engine/options"
	"github.com/robbyt/go-tickscript/execution/host"
	"github.com/robbyt/go-tickscript/execution/invocation"
	"github.com/robbyt/go-tickscript/execution/script"
	"github.com/robbyt/go-tickscript/execution/script/loader"
	"github.com/robbyt/go-tickscript/internal/helpers"
)

// Script is one running script instance. The host calls Initialize once and then
// Advance once per tick. Every instance ends with exactly one Host.Deactivate call,
// unless the host tears it down first with Close.
type Script struct {
	mu          sync.Mutex
	inv         invocation.Invocation
	host        host.Host
	cfg         *options.Config
	caps        host.Capabilities
	locator     *loader.Locator
	logHandler  slog.Handler
	logger      *slog.Logger
	workerCtx   context.Context
	cancel      context.CancelFunc
	handle      *script.Handle
	interp      *interpreter
	job         *runner
	initialized bool
	finished    bool
	err         error
}

// New tokenizes the invocation and prepares a script instance. The file is not
// touched until Initialize.
func New(raw string, h host.Host, opts ...options.Option) (*Script, error) {
	return NewFromInvocation(invocation.Tokenize(raw), h, opts...)
}

// NewFromInvocation prepares a script instance from an already split invocation,
// for callers whose arguments may hold quotes or backslashes.
func NewFromInvocation(inv invocation.Invocation, h host.Host, opts ...options.Option) (*Script, error) {
	if h == nil {
		return nil, fmt.Errorf("host cannot be nil")
	}

	cfg := options.DefaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}
	if err := options.WithDefaults()(cfg); err != nil {
		return nil, fmt.Errorf("error applying defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	inv.Args = slices.Clone(inv.Args)
	handler, logger := helpers.SetupLogger(cfg.GetHandler(), "engine", "Script")
	logger = logger.With("file", inv.File)
	workerCtx, cancel := context.WithCancel(context.Background())

	return &Script{
		inv:        inv,
		host:       h,
		cfg:        cfg,
		caps:       host.NewCapabilities(h, cfg.GetOwner()),
		locator:    loader.NewLocator(handler, cfg.GetFS(), cfg.GetSearchDirs(), cfg.GetCompiledExtensions()),
		logHandler: handler,
		logger:     logger,
		workerCtx:  workerCtx,
		cancel:     cancel,
	}, nil
}

func (s *Script) String() string {
	return fmt.Sprintf("engine.Script{Invocation: %s}", s.inv)
}

// Invocation returns the tokenized invocation.
func (s *Script) Invocation() invocation.Invocation {
	return s.inv
}

// Handle returns the loaded script, or nil before a successful Initialize.
func (s *Script) Handle() *script.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle
}

// Done reports whether the script has finished, failed or been closed.
func (s *Script) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// Err returns the error that ended the script, if any.
func (s *Script) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Initialize locates and reads the script file. A missing file is reported to the
// console and the owner, and the script deactivates at once.
func (s *Script) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialize(ctx)
}

func (s *Script) initialize(ctx context.Context) error {
	if s.initialized || s.finished {
		return nil
	}
	s.initialized = true

	path, lines, err := s.locator.Load(s.inv.File)
	if err != nil {
		s.logger.WarnContext(ctx, "script not loaded", "error", err)
		if errors.Is(err, loader.ErrScriptNotFound) {
			msg := fmt.Sprintf("File not found: '%s'", s.inv.File)
			s.host.LogToConsole(msg)
			s.caps.Notify(msg)
		} else {
			s.host.LogToConsole(fmt.Sprintf("Error loading '%s':\n%s", s.inv.File, err))
			s.caps.Notify(fmt.Sprintf("Script '%s' failed to run.", s.inv.File))
		}
		s.finish(err)
		return err
	}

	s.handle = script.NewHandle(path, lines, s.cfg.GetOwner())
	s.logger = s.logger.With("path", path, "mode", s.handle.Mode)
	s.logger.DebugContext(ctx, "script loaded", "handle", s.handle)
	s.caps.Notify(fmt.Sprintf("Script '%s' loaded.", path))

	switch s.handle.Mode {
	case script.ModeCompiled:
		comp, _ := s.cfg.GetCompiler(s.handle.Machine)
		s.job = newRunner(s.workerCtx, s.handle.Lines, s.inv.Args, comp, s.caps, s.cfg.GetJoinTimeout(), s.logger)
	default:
		s.interp = newInterpreter(
			s.handle.Lines,
			s.caps,
			s.cfg.GetStartDelay(),
			s.cfg.GetDefaultWait(),
			s.cfg.IsEchoSuppressed,
			s.logger,
		)
	}
	return nil
}

// Advance runs one host tick. It initializes the script first if needed. The
// error that ends a script is returned from the tick that ended it, later ticks
// do nothing.
func (s *Script) Advance(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		if err := s.initialize(ctx); err != nil {
			return err
		}
	}
	if s.finished {
		return nil
	}

	if s.interp != nil {
		if s.interp.advance() {
			s.logger.DebugContext(ctx, "script completed")
			s.finish(nil)
		}
		return nil
	}

	finished, err := s.job.tick(ctx)
	if !finished {
		return nil
	}
	if err != nil {
		s.report(ctx, err)
	} else {
		s.logger.DebugContext(ctx, "script completed")
	}
	s.finish(err)
	return err
}

// Close tears the script down without deactivating it. A compiled worker blocked
// between statements returns ErrAborted. A worker inside a long host call is not
// interrupted and exits at its next statement boundary.
func (s *Script) Close() {
	s.cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.finished {
		s.finished = true
		s.err = ErrAborted
	}
}

// report writes a compiled-mode failure to the console and tells the owner.
func (s *Script) report(ctx context.Context, err error) {
	path := s.handle.Path
	s.logger.WarnContext(ctx, "script failed", "error", err)

	switch {
	case errors.Is(err, ErrAborted):
		return
	case errors.Is(err, ErrFormat):
		s.host.LogToConsole(fmt.Sprintf("Script file '%s' does not start with a valid %s identifier.", path, SectionPrefix))
	case errors.Is(err, ErrCompile):
		s.host.LogToConsole(fmt.Sprintf("Error loading '%s':\n%s", path, cause(err)))
	default:
		s.host.LogToConsole(fmt.Sprintf("Runtime error for '%s':\n%s", path, cause(err)))
	}
	s.caps.Notify(fmt.Sprintf("Script '%s' failed to run.", path))
}

// finish ends the script and deactivates it, unless Close already tore it down.
// Only the first call has an effect.
func (s *Script) finish(err error) {
	if s.finished {
		return
	}
	s.finished = true
	s.err = err
	s.cancel()
	if !errors.Is(err, ErrAborted) {
		s.host.Deactivate()
	}
}
