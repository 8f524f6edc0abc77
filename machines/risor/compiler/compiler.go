package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/robbyt/go-tickscript/execution/script"
	"github.com/robbyt/go-tickscript/internal/helpers"
	"github.com/robbyt/go-tickscript/machines/risor/compiler/internal/compile"
	machineTypes "github.com/robbyt/go-tickscript/machines/types"
)

// Names bound by the generated unit.
const (
	EntryPoint = "__run"
	HostGlobal = "host"
	GateGlobal = "gate"
	ArgsGlobal = "args"
)

type Compiler struct {
	globals    map[string]any
	logHandler slog.Handler
	logger     *slog.Logger
}

// NewCompiler creates a new Risor-specific Compiler instance with the provided options.
func NewCompiler(opts ...FunctionalOption) (*Compiler, error) {
	cfg := &Options{}
	ApplyDefaults(cfg)

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying compiler option: %w", err)
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid compiler configuration: %w", err)
	}

	var handler slog.Handler
	var logger *slog.Logger
	if cfg.Logger != nil {
		logger = cfg.Logger
		handler = logger.Handler()
	} else {
		handler, logger = helpers.SetupLogger(cfg.LogHandler, "risor", "Compiler")
	}

	return &Compiler{
		globals:    cfg.Globals,
		logHandler: handler,
		logger:     logger,
	}, nil
}

func (c *Compiler) String() string {
	return "risor.Compiler"
}

func (c *Compiler) GetMachineType() machineTypes.Type {
	return machineTypes.Risor
}

func (c *Compiler) StepCall() string {
	return GateGlobal + ".wait()"
}

// Generate puts the extensions first so the entry point can call helpers they declare,
// then declares the entry point and calls it.
func (c *Compiler) Generate(main, extensions []string) string {
	var b strings.Builder
	for _, line := range extensions {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	params := strings.Join([]string{HostGlobal, GateGlobal, ArgsGlobal}, ", ")
	fmt.Fprintf(&b, "func %s(%s) {\n", EntryPoint, params)
	for _, line := range main {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	fmt.Fprintf(&b, "%s(%s)\n", EntryPoint, params)
	return b.String()
}

// Compile turns a generated unit into runnable bytecode.
func (c *Compiler) Compile(ctx context.Context, source string) (script.Unit, error) {
	logger := c.logger.WithGroup("compile")
	if strings.TrimSpace(source) == "" {
		return nil, ErrContentNil
	}

	globals := []string{HostGlobal, GateGlobal, ArgsGlobal}
	for _, name := range slices.Sorted(maps.Keys(c.globals)) {
		globals = append(globals, name)
	}
	logger.Debug("Starting compilation", "globals", globals)

	bc, err := compile.CompileWithGlobals(ctx, &source, globals)
	if err != nil {
		logger.Warn("Compilation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if bc == nil {
		logger.Error("Compilation returned nil bytecode")
		return nil, ErrBytecodeNil
	}

	exe := newExecutable(c.logHandler, source, bc, c.globals)
	if exe == nil {
		return nil, ErrExecCreationFailed
	}

	logger.Debug("Compilation successful", "instructionCount", bc.InstructionCount())
	return exe, nil
}
