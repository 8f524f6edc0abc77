package compiler

import "errors"

var (
	ErrContentNil         = errors.New("content is nil")
	ErrValidationFailed   = errors.New("starlark script validation error")
	ErrBytecodeNil        = errors.New("starlark bytecode is nil")
	ErrExecCreationFailed = errors.New("unable to create starlark executable")
	ErrExecution          = errors.New("starlark execution error")
	ErrEntryPointMissing  = errors.New("starlark entry point is missing")
)
