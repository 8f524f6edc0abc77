package compiler

import (
	"context"

	"github.com/risor-io/risor/object"
	"github.com/robbyt/go-tickscript/execution/host"
	"github.com/robbyt/go-tickscript/execution/script"
)

// hostModule exposes the script capabilities as the "host" module.
func hostModule(caps host.Capabilities) *object.Module {
	return object.NewBuiltinsModule(HostGlobal, map[string]object.Object{
		"log": object.NewBuiltin("log", func(ctx context.Context, args ...object.Object) object.Object {
			if len(args) != 1 {
				return object.NewArgsError("host.log", 1, len(args))
			}
			caps.Log(text(args[0]))
			return object.Nil
		}),
		"notify": object.NewBuiltin("notify", func(ctx context.Context, args ...object.Object) object.Object {
			if len(args) != 1 {
				return object.NewArgsError("host.notify", 1, len(args))
			}
			caps.Notify(text(args[0]))
			return object.Nil
		}),
		"command": object.NewBuiltin("command", func(ctx context.Context, args ...object.Object) object.Object {
			if len(args) != 1 {
				return object.NewArgsError("host.command", 1, len(args))
			}
			line, err := object.AsString(args[0])
			if err != nil {
				return err
			}
			return object.NewBool(caps.Command(line))
		}),
		"expand": object.NewBuiltin("expand", func(ctx context.Context, args ...object.Object) object.Object {
			if len(args) != 1 {
				return object.NewArgsError("host.expand", 1, len(args))
			}
			line, err := object.AsString(args[0])
			if err != nil {
				return err
			}
			return object.NewString(caps.Expand(line))
		}),
	})
}

// gateModule exposes the step gate as the "gate" module. wait blocks the script
// until the tick loop pulses the gate.
func gateModule(gate script.Stepper) *object.Module {
	return object.NewBuiltinsModule(GateGlobal, map[string]object.Object{
		"wait": object.NewBuiltin("wait", func(ctx context.Context, args ...object.Object) object.Object {
			if len(args) != 0 {
				return object.NewArgsError("gate.wait", 0, len(args))
			}
			if err := gate.Await(ctx); err != nil {
				return object.NewError(err)
			}
			return object.Nil
		}),
	})
}

func argsList(args []string) *object.List {
	items := make([]object.Object, 0, len(args))
	for _, a := range args {
		items = append(items, object.NewString(a))
	}
	return object.NewList(items)
}

// text renders strings without quotes and everything else in its inspected form.
func text(obj object.Object) string {
	if s, ok := obj.(*object.String); ok {
		return s.Value()
	}
	return obj.Inspect()
}
