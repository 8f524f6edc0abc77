package script

import (
	"context"

	machineTypes "github.com/robbyt/go-tickscript/machines/types"
)

// Compiler is the compiled-mode backend. It knows how to wrap script sections into a
// source unit of its language and how to compile that unit in-process.
//
// Example usage:
//
//	stepCall := comp.StepCall()
//	source := comp.Generate(mainLines, extensionLines)
//	unit, err := comp.Compile(ctx, source)
//	if err != nil {
//	    // Report the first diagnostic
//	}
//	err = unit.Run(ctx, caps, gate, args)
type Compiler interface {
	// GetMachineType returns the machine type this compiler targets.
	GetMachineType() machineTypes.Type

	// StepCall returns the statement inserted after every statement of the main section.
	// It must block on the gate parameter of the generated entry point.
	StepCall() string

	// Generate wraps the main section into the entry point that takes the host
	// capabilities, the step gate and the argument list, and adds the extensions
	// section verbatim as further members of the same unit.
	Generate(main, extensions []string) string

	// Compile compiles a generated unit. Diagnostics are reported as an error that
	// carries only the first problem found.
	Compile(ctx context.Context, source string) (Unit, error)
}
