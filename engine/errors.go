package engine

import (
	"errors"

	"github.com/robbyt/go-tickscript/execution/script/loader"
)

var (
	// ErrScriptNotFound is returned when no locator candidate exists.
	ErrScriptNotFound = loader.ErrScriptNotFound

	// ErrFormat is returned when a compiled script does not open with VersionMarker.
	ErrFormat = errors.New("script format error")

	// ErrCompile is returned when the backend rejects the generated unit.
	ErrCompile = errors.New("script compile error")

	// ErrRuntime is returned when a compiled script fails on its worker goroutine.
	ErrRuntime = errors.New("script runtime error")

	// ErrAborted is returned when a compiled script is torn down by Close.
	ErrAborted = errors.New("script aborted")
)

// cause returns the error wrapped after a sentinel by fmt.Errorf("%w: %w", ...).
func cause(err error) error {
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		if errs := u.Unwrap(); len(errs) == 2 {
			return errs[1]
		}
	}
	return err
}
