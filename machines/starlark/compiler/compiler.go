package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/robbyt/go-tickscript/execution/script"
	"github.com/robbyt/go-tickscript/internal/helpers"
	"github.com/robbyt/go-tickscript/machines/starlark/compiler/internal/compile"
	machineTypes "github.com/robbyt/go-tickscript/machines/types"
)

// Names bound by the generated unit.
const (
	EntryPoint = "__run"
	HostParam  = "host"
	GateParam  = "gate"
	ArgsParam  = "args"
)

type Compiler struct {
	filename   string
	indent     string
	logHandler slog.Handler
	logger     *slog.Logger
}

// NewCompiler creates a new Starlark-specific Compiler instance with the provided options.
func NewCompiler(opts ...FunctionalOption) (*Compiler, error) {
	cfg := &Option{}
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
		handler, logger = helpers.SetupLogger(cfg.LogHandler, "starlark", "Compiler")
	}

	return &Compiler{
		filename:   cfg.Filename,
		indent:     cfg.Indent,
		logHandler: handler,
		logger:     logger,
	}, nil
}

func (c *Compiler) String() string {
	return "starlark.Compiler"
}

func (c *Compiler) GetMachineType() machineTypes.Type {
	return machineTypes.Starlark
}

func (c *Compiler) StepCall() string {
	return GateParam + ".wait()"
}

// Generate emits the extensions at top level, then the entry point with the main
// section indented one level. An entry point without statements gets a pass.
func (c *Compiler) Generate(main, extensions []string) string {
	var b strings.Builder
	for _, line := range extensions {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "def %s(%s, %s, %s):\n", EntryPoint, HostParam, GateParam, ArgsParam)
	empty := true
	for _, line := range main {
		if strings.TrimSpace(line) == "" {
			b.WriteByte('\n')
			continue
		}
		if !strings.HasPrefix(strings.TrimSpace(line), "#") {
			empty = false
		}
		b.WriteString(c.indent)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if empty {
		b.WriteString(c.indent)
		b.WriteString("pass\n")
	}
	return b.String()
}

// Compile resolves the generated unit against the standard modules.
func (c *Compiler) Compile(ctx context.Context, source string) (script.Unit, error) {
	logger := c.logger.WithGroup("compile")
	if strings.TrimSpace(source) == "" {
		return nil, ErrContentNil
	}

	logger.DebugContext(ctx, "Starting compilation", "filename", c.filename)
	program, err := compile.Compile(c.filename, []byte(source), compile.StandardModules())
	if err != nil {
		logger.WarnContext(ctx, "Compilation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if program == nil {
		logger.ErrorContext(ctx, "Compilation returned nil program")
		return nil, ErrBytecodeNil
	}

	exe := newExecutable(c.logHandler, source, program)
	if exe == nil {
		return nil, ErrExecCreationFailed
	}

	logger.DebugContext(ctx, "Compilation successful")
	return exe, nil
}
