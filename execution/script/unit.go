package script

import (
	"context"

	"github.com/robbyt/go-tickscript/execution/host"
	machineTypes "github.com/robbyt/go-tickscript/machines/types"
)

// Stepper is the blocking side of a step gate.
type Stepper interface {
	Await(ctx context.Context) error
}

// Unit is a compiled script, ready to run.
type Unit interface {
	// GetSource returns the generated source the unit was compiled from.
	GetSource() string

	// GetMachineType returns the machine type the unit runs on.
	GetMachineType() machineTypes.Type

	// Run invokes the generated entry point and blocks until it returns. Every
	// inserted step call blocks on gate.
	Run(ctx context.Context, caps host.Capabilities, gate Stepper, args []string) error
}
