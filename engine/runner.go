package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robbyt/go-tickscript/execution/gate"
	"github.com/robbyt/go-tickscript/execution/host"
	"github.com/robbyt/go-tickscript/execution/script"
)

// runner compiles a script and single-steps it on a worker goroutine.
// Only the step gate and the done channel are shared with the worker.
type runner struct {
	lines       []string
	args        []string
	comp        script.Compiler
	caps        host.Capabilities
	gate        *gate.StepGate
	joinTimeout time.Duration
	workerCtx   context.Context
	done        chan error
	logger      *slog.Logger
}

func newRunner(
	workerCtx context.Context,
	lines, args []string,
	comp script.Compiler,
	caps host.Capabilities,
	joinTimeout time.Duration,
	logger *slog.Logger,
) *runner {
	return &runner{
		lines:       lines,
		args:        args,
		comp:        comp,
		caps:        caps,
		gate:        gate.New(),
		joinTimeout: joinTimeout,
		workerCtx:   workerCtx,
		logger:      logger.WithGroup("runner"),
	}
}

func (r *runner) started() bool {
	return r.done != nil
}

// start checks the header, generates and compiles the unit, then launches the
// worker. Nothing is launched when any step fails.
func (r *runner) start(ctx context.Context) error {
	if err := CheckHeader(r.lines); err != nil {
		return err
	}
	if r.comp == nil {
		return fmt.Errorf("%w: %w", ErrCompile, script.ErrNoCompiler)
	}

	main, extensions := Transform(r.lines, r.comp.StepCall())
	source := r.comp.Generate(main, extensions)
	unit, err := r.comp.Compile(ctx, source)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCompile, err)
	}
	if unit == nil {
		return fmt.Errorf("%w: %w", ErrCompile, script.ErrUnitNil)
	}

	r.logger.DebugContext(ctx, "starting worker", "machine", unit.GetMachineType(), "mainLines", len(main), "extensionLines", len(extensions))
	r.done = make(chan error, 1)
	go func() {
		r.done <- r.run(unit)
	}()
	return nil
}

// run executes the unit, turning failures and panics into ErrRuntime, or
// ErrAborted when the worker context was cancelled.
func (r *runner) run(unit script.Unit) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %w", ErrRuntime, fmt.Errorf("panic: %v", p))
		}
	}()

	if err := unit.Run(r.workerCtx, r.caps, r.gate, r.args); err != nil {
		if r.workerCtx.Err() != nil {
			return fmt.Errorf("%w: %w", ErrAborted, err)
		}
		return fmt.Errorf("%w: %w", ErrRuntime, err)
	}
	return nil
}

// tick starts the worker on the first call and pulses the gate on every later
// call, then waits up to joinTimeout for the worker to finish.
func (r *runner) tick(ctx context.Context) (finished bool, err error) {
	if !r.started() {
		if err := r.start(ctx); err != nil {
			return true, err
		}
	} else {
		r.gate.Pulse()
	}

	timer := time.NewTimer(r.joinTimeout)
	defer timer.Stop()
	select {
	case err := <-r.done:
		return true, err
	case <-timer.C:
		return false, nil
	case <-ctx.Done():
		return false, nil
	}
}
