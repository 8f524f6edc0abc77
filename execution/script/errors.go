package script

import "errors"

var (
	ErrNoCompiler = errors.New("no compiler registered for machine")
	ErrUnitNil    = errors.New("compiled unit is nil")
)
