// Package tickscript runs scripts on a host's tick cycle. Plain text scripts are
// interpreted one instruction per tick. Risor and Starlark scripts are compiled
// in-process and single-stepped, one statement per tick.
package tickscript

import (
	"fmt"

	"github.com/robbyt/go-tickscript/engine"
	"github.com/robbyt/go-tickscript/engine/options"
	"github.com/robbyt/go-tickscript/execution/host"
	"github.com/robbyt/go-tickscript/execution/invocation"
	"github.com/robbyt/go-tickscript/machines"
)

// NewScript creates a script instance from an invocation string such as
// `greet "John Smith" 3`, with every compiled backend registered.
func NewScript(raw string, h host.Host, opts ...options.Option) (*engine.Script, error) {
	return NewScriptFromInvocation(invocation.Tokenize(raw), h, opts...)
}

// NewScriptFromInvocation is NewScript for an invocation that is already split into
// a file name and arguments.
func NewScriptFromInvocation(inv invocation.Invocation, h host.Host, opts ...options.Option) (*engine.Script, error) {
	// Scratch config, only to find the log handler for the backends
	cfg := options.DefaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}

	compilers, err := machines.NewCompilers(cfg.GetHandler())
	if err != nil {
		return nil, err
	}

	// Backends first, so callers can replace them
	allOpts := make([]options.Option, 0, len(compilers)+len(opts))
	for _, comp := range compilers {
		allOpts = append(allOpts, options.WithCompiler(comp))
	}
	allOpts = append(allOpts, opts...)

	return engine.NewFromInvocation(inv, h, allOpts...)
}

// NewScriptWithOwner is NewScript with owner notified when the script loads or fails.
func NewScriptWithOwner(raw, owner string, h host.Host, opts ...options.Option) (*engine.Script, error) {
	return NewScript(raw, h, append([]options.Option{options.WithOwner(owner)}, opts...)...)
}
