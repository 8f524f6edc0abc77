// Package machines creates the compiled-mode backends by machine type.
package machines

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-tickscript/execution/script"
	"github.com/robbyt/go-tickscript/machines/risor"
	"github.com/robbyt/go-tickscript/machines/starlark"
	"github.com/robbyt/go-tickscript/machines/types"
)

// NewCompiler returns the backend for machineType.
func NewCompiler(handler slog.Handler, machineType types.Type) (script.Compiler, error) {
	var comp script.Compiler
	var err error
	switch machineType {
	case types.Risor:
		comp, err = risor.NewCompiler(handler)
	case types.Starlark:
		comp, err = starlark.NewCompiler(handler)
	default:
		return nil, fmt.Errorf("%w: %s", script.ErrNoCompiler, machineType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s compiler: %w", machineType, err)
	}
	return comp, nil
}

// NewCompilers returns a backend for every known machine type, in locator order.
func NewCompilers(handler slog.Handler) ([]script.Compiler, error) {
	compilers := make([]script.Compiler, 0, len(types.All()))
	for _, t := range types.All() {
		comp, err := NewCompiler(handler, t)
		if err != nil {
			return nil, err
		}
		compilers = append(compilers, comp)
	}
	return compilers, nil
}
