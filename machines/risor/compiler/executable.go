package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	risorLib "github.com/risor-io/risor"
	risorCompiler "github.com/risor-io/risor/compiler"
	"github.com/robbyt/go-tickscript/execution/host"
	"github.com/robbyt/go-tickscript/execution/script"
	"github.com/robbyt/go-tickscript/internal/helpers"
	machineTypes "github.com/robbyt/go-tickscript/machines/types"
)

type executable struct {
	source   string
	ByteCode *risorCompiler.Code
	globals  map[string]any
	logger   *slog.Logger
}

func newExecutable(
	handler slog.Handler,
	source string,
	byteCode *risorCompiler.Code,
	globals map[string]any,
) *executable {
	if source == "" || byteCode == nil {
		return nil
	}
	_, logger := helpers.SetupLogger(handler, "risor", "Executable")

	return &executable{
		source:   source,
		ByteCode: byteCode,
		globals:  globals,
		logger:   logger,
	}
}

func (e *executable) GetSource() string {
	return e.source
}

func (e *executable) GetRisorByteCode() *risorCompiler.Code {
	return e.ByteCode
}

func (e *executable) GetMachineType() machineTypes.Type {
	return machineTypes.Risor
}

// Run binds the capabilities, the gate, the arguments and any configured globals,
// then evaluates the unit, which calls the entry point as its last statement.
func (e *executable) Run(ctx context.Context, caps host.Capabilities, gate script.Stepper, args []string) error {
	logger := e.logger.WithGroup("Run")

	startTime := time.Now()
	opts := []risorLib.Option{
		risorLib.WithGlobal(HostGlobal, hostModule(caps)),
		risorLib.WithGlobal(GateGlobal, gateModule(gate)),
		risorLib.WithGlobal(ArgsGlobal, argsList(args)),
	}
	for name, value := range e.globals {
		opts = append(opts, risorLib.WithGlobal(name, value))
	}
	result, err := risorLib.EvalCode(ctx, e.ByteCode, opts...)
	execTime := time.Since(startTime)
	if err != nil {
		logger.WarnContext(ctx, "execution failed", "error", err, "execTime", execTime)
		return fmt.Errorf("%w: %w", ErrExecution, err)
	}

	if result != nil && result.Type() == "error" {
		return fmt.Errorf("%w: %s", ErrExecution, result.Inspect())
	}

	logger.DebugContext(ctx, "execution complete", "execTime", execTime)
	return nil
}
