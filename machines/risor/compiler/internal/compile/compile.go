package compile

import (
	"context"
	"errors"
	"fmt"

	risorLib "github.com/risor-io/risor"
	risorCompiler "github.com/risor-io/risor/compiler"
	risorErrors "github.com/risor-io/risor/errz"
	risorParser "github.com/risor-io/risor/parser"
)

// Compile parses and compiles the script content into bytecode
func Compile(ctx context.Context, scriptContent *string, options ...risorCompiler.Option) (*risorCompiler.Code, error) {
	if scriptContent == nil {
		return nil, ErrContentNil
	}

	ast, err := risorParser.Parse(ctx, *scriptContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCompileFailed, friendly(err))
	}

	bc, err := risorCompiler.Compile(ast, options...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCompileFailed, friendly(err))
	}

	return bc, nil
}

// CompileWithGlobals compiles the script with the default Risor globals plus the
// given names, which are only bound when the unit runs.
func CompileWithGlobals(ctx context.Context, scriptContent *string, globals []string) (*risorCompiler.Code, error) {
	cfg := risorLib.NewConfig()
	globalNames := append(cfg.GlobalNames(), globals...)

	return Compile(ctx, scriptContent, risorCompiler.WithGlobalNames(globalNames))
}

// friendly returns the single, user facing message of a parse or compile error.
func friendly(err error) string {
	var friendlyErr risorErrors.FriendlyError
	if errors.As(err, &friendlyErr) {
		return friendlyErr.FriendlyErrorMessage()
	}
	return err.Error()
}
