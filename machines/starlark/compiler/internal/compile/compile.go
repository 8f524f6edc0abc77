package compile

import (
	"errors"
	"fmt"

	"go.starlark.net/resolve"
	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// FileOptions enables the language features compiled scripts may use.
func FileOptions() *syntax.FileOptions {
	return &syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
		Recursion:       true,
	}
}

// Compile parses and resolves the script against the predeclared names.
// Only the first diagnostic is reported, without its position: the compiled
// source is generated, so positions do not match the script file.
func Compile(filename string, scriptBodyBytes []byte, predeclared starlarkLib.StringDict) (*starlarkLib.Program, error) {
	if scriptBodyBytes == nil {
		return nil, ErrContentNil
	}
	if predeclared == nil {
		predeclared = StandardModules()
	}

	f, err := FileOptions().Parse(filename, scriptBodyBytes, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, firstError(err))
	}

	prog, err := starlarkLib.FileProgram(f, predeclared.Has)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, firstError(err))
	}

	return prog, nil
}

func firstError(err error) error {
	var resolveErrs resolve.ErrorList
	if errors.As(err, &resolveErrs) && len(resolveErrs) > 0 {
		return errors.New(resolveErrs[0].Msg)
	}
	var syntaxErr syntax.Error
	if errors.As(err, &syntaxErr) {
		return errors.New(syntaxErr.Msg)
	}
	return err
}
