package compiler

import (
	"context"

	"github.com/robbyt/go-tickscript/execution/host"
	"github.com/robbyt/go-tickscript/execution/script"
	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

type builtinFn = func(*starlarkLib.Thread, *starlarkLib.Builtin, starlarkLib.Tuple, []starlarkLib.Tuple) (starlarkLib.Value, error)

// hostModule exposes the script capabilities as the "host" module.
func hostModule(caps host.Capabilities) *starlarkstruct.Module {
	return &starlarkstruct.Module{
		Name: HostParam,
		Members: starlarkLib.StringDict{
			"log":     starlarkLib.NewBuiltin("log", textSink(caps.Log)),
			"notify":  starlarkLib.NewBuiltin("notify", textSink(caps.Notify)),
			"command": starlarkLib.NewBuiltin("command", command(caps)),
			"expand":  starlarkLib.NewBuiltin("expand", expand(caps)),
		},
	}
}

// gateModule exposes the step gate as the "gate" module.
func gateModule(ctx context.Context, gate script.Stepper) *starlarkstruct.Module {
	wait := func(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
		if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
			return nil, err
		}
		if err := gate.Await(ctx); err != nil {
			return nil, err
		}
		return starlarkLib.None, nil
	}
	return &starlarkstruct.Module{
		Name:    GateParam,
		Members: starlarkLib.StringDict{"wait": starlarkLib.NewBuiltin("wait", wait)},
	}
}

func argsList(args []string) *starlarkLib.List {
	items := make([]starlarkLib.Value, 0, len(args))
	for _, a := range args {
		items = append(items, starlarkLib.String(a))
	}
	return starlarkLib.NewList(items)
}

// textSink accepts one value of any type; strings are passed without quotes.
func textSink(sink func(string)) builtinFn {
	return func(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
		var v starlarkLib.Value
		if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &v); err != nil {
			return nil, err
		}
		if s, ok := starlarkLib.AsString(v); ok {
			sink(s)
		} else {
			sink(v.String())
		}
		return starlarkLib.None, nil
	}
}

func command(caps host.Capabilities) builtinFn {
	return func(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
		var line string
		if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &line); err != nil {
			return nil, err
		}
		return starlarkLib.Bool(caps.Command(line)), nil
	}
}

func expand(caps host.Capabilities) builtinFn {
	return func(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
		var line string
		if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &line); err != nil {
			return nil, err
		}
		return starlarkLib.String(caps.Expand(line)), nil
	}
}
