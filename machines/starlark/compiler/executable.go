package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robbyt/go-tickscript/execution/host"
	"github.com/robbyt/go-tickscript/execution/script"
	"github.com/robbyt/go-tickscript/internal/helpers"
	"github.com/robbyt/go-tickscript/machines/starlark/compiler/internal/compile"
	machineTypes "github.com/robbyt/go-tickscript/machines/types"
	starlarkLib "go.starlark.net/starlark"
)

type executable struct {
	source  string
	Program *starlarkLib.Program
	logger  *slog.Logger
}

func newExecutable(handler slog.Handler, source string, program *starlarkLib.Program) *executable {
	if source == "" || program == nil {
		return nil
	}
	_, logger := helpers.SetupLogger(handler, "starlark", "Executable")

	return &executable{
		source:  source,
		Program: program,
		logger:  logger,
	}
}

func (e *executable) GetSource() string {
	return e.source
}

func (e *executable) GetStarlarkProgram() *starlarkLib.Program {
	return e.Program
}

func (e *executable) GetMachineType() machineTypes.Type {
	return machineTypes.Starlark
}

// Run initializes the program, which declares the extensions and the entry point,
// and then calls the entry point. print() goes to the host console.
func (e *executable) Run(ctx context.Context, caps host.Capabilities, gate script.Stepper, args []string) error {
	logger := e.logger.WithGroup("Run")

	thread := &starlarkLib.Thread{
		Name: "tickscript",
		Print: func(_ *starlarkLib.Thread, msg string) {
			caps.Log(msg)
		},
	}
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	defer stop()

	startTime := time.Now()
	globals, err := e.Program.Init(thread, compile.StandardModules())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecution, err)
	}

	entry, ok := globals[EntryPoint]
	if !ok {
		return fmt.Errorf("%w: %s", ErrEntryPointMissing, EntryPoint)
	}

	_, err = starlarkLib.Call(thread, entry, starlarkLib.Tuple{
		hostModule(caps),
		gateModule(ctx, gate),
		argsList(args),
	}, nil)
	execTime := time.Since(startTime)
	if err != nil {
		logger.WarnContext(ctx, "execution failed", "error", err, "execTime", execTime)
		return fmt.Errorf("%w: %w", ErrExecution, err)
	}

	logger.DebugContext(ctx, "execution complete", "execTime", execTime)
	return nil
}
