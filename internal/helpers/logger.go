package helpers

import (
	"log/slog"
	"os"
)

// SetupLogger returns a handler and a logger for one engine component.
// If the provided handler is nil, a text handler on stdout is created and grouped
// under the component name.
//
// Parameters:
//   - handler: The slog.Handler to use, or nil for defaults
//   - component: The component name (e.g., "engine", "risor", "starlark")
//   - groupName: Optional additional group name within the component
func SetupLogger(handler slog.Handler, component string, groupName string) (slog.Handler, *slog.Logger) {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, nil).WithGroup(component)
		slog.New(handler).Warn("Handler is nil, using the default logger configuration.")
	}

	if groupName == "" {
		return handler, slog.New(handler)
	}
	return handler, slog.New(handler.WithGroup(groupName))
}
