package loader

import "errors"

var (
	// ErrScriptNotFound is returned when no search candidate exists.
	ErrScriptNotFound = errors.New("script not found")
	// ErrScriptNotAvailable is returned when a located script cannot be read.
	ErrScriptNotAvailable = errors.New("script not available")
	ErrInputEmpty         = errors.New("input is empty")
)
