package risor

import (
	"log/slog"

	"github.com/robbyt/go-tickscript/machines/risor/compiler"
)

// NewCompiler creates a Risor compiler that logs to logHandler.
// Returns a compiler implementing the script.Compiler interface.
func NewCompiler(logHandler slog.Handler, opts ...compiler.FunctionalOption) (*compiler.Compiler, error) {
	if logHandler == nil {
		return compiler.NewCompiler(opts...)
	}
	return compiler.NewCompiler(append([]compiler.FunctionalOption{compiler.WithLogHandler(logHandler)}, opts...)...)
}
