package tickscript_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"testing/fstest"
	"time"

	"github.com/robbyt/go-tickscript"
	"github.com/robbyt/go-tickscript/engine"
	"github.com/robbyt/go-tickscript/engine/options"
	"github.com/robbyt/go-tickscript/execution/host"
	"github.com/robbyt/go-tickscript/execution/script"
	"github.com/robbyt/go-tickscript/machines/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const risorGreeter = `//MCCScript 1.0
host.log("hello " + args[0]);
host.command("jump");
host.log(shout(args[1]));
//MCCScript Extensions
func shout(s) {
  return s + "!"
}
`

const starlarkGreeter = `//MCCScript 1.0
host.log("hello " + args[0]);
if host.command("jump"):
    host.notify(host.expand("%who%"));
print(shout(args[1]));
//MCCScript Extensions
def shout(s):
    return s + "!"
`

func getLogger() slog.Handler {
	return slog.NewTextHandler(os.Stdout, nil)
}

func newScript(t *testing.T, invocation string, h host.Host, fsys fstest.MapFS) *engine.Script {
	t.Helper()
	s, err := tickscript.NewScriptWithOwner(invocation, "bob", h,
		options.WithLogHandler(getLogger()),
		options.WithFS(fsys),
		options.WithJoinTimeout(20*time.Millisecond),
	)
	require.NoError(t, err)
	return s
}

// runToCompletion ticks s until it is done and returns the number of ticks and the
// error of the final tick.
func runToCompletion(t *testing.T, s *engine.Script) (ticks int, err error) {
	t.Helper()
	ctx := context.Background()
	for ticks = 1; ticks <= 500; ticks++ {
		err = s.Advance(ctx)
		if s.Done() {
			return ticks, err
		}
	}
	t.Fatal("script did not finish")
	return ticks, err
}

func TestCompiledGreeters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		machine  types.Type
		notified []string
	}{
		{
			name:     "risor",
			path:     "scripts/greet.risor",
			content:  risorGreeter,
			machine:  types.Risor,
			notified: []string{"bob: Script 'scripts/greet.risor' loaded."},
		},
		{
			name:     "starlark",
			path:     "config/greet.star",
			content:  starlarkGreeter,
			machine:  types.Starlark,
			notified: []string{"bob: Script 'config/greet.star' loaded.", "bob: %who%"},
		},
		{
			name:     "starlark with byte order mark",
			path:     "greet.star",
			content:  "\ufeff" + starlarkGreeter,
			machine:  types.Starlark,
			notified: []string{"bob: Script 'greet.star' loaded.", "bob: %who%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := &host.RecordingHost{}
			s := newScript(t, `greet "big world" b`, h, fstest.MapFS{
				tt.path: &fstest.MapFile{Data: []byte(tt.content)},
			})

			ticks, err := runToCompletion(t, s)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, ticks, 4, "one statement per tick")

			require.NotNil(t, s.Handle())
			assert.Equal(t, script.ModeCompiled, s.Handle().Mode)
			assert.Equal(t, tt.machine, s.Handle().Machine)

			executed, console, notified, deactivated := h.Snapshot()
			assert.Equal(t, []string{"hello big world", "b!"}, console)
			assert.Equal(t, []string{"jump"}, executed)
			assert.Equal(t, tt.notified, notified)
			assert.Equal(t, 1, deactivated)
		})
	}
}

func TestCompiledFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		err     error
		console string
		absent  string
	}{
		{
			name:    "risor missing marker",
			file:    "bad.risor",
			content: "host.log(\"x\");\n",
			err:     engine.ErrFormat,
			console: "Script file 'bad.risor' does not start with a valid //MCCScript identifier.",
		},
		{
			name:    "risor syntax error",
			file:    "bad.risor",
			content: "//MCCScript 1.0\nhost.log(;\n",
			err:     engine.ErrCompile,
			console: "Error loading 'bad.risor':\n",
		},
		{
			name:    "starlark undefined name",
			file:    "bad.star",
			content: "//MCCScript 1.0\nnope(1);\n",
			err:     engine.ErrCompile,
			console: "undefined: nope",
			absent:  "script.star",
		},
		{
			name:    "starlark syntax error",
			file:    "bad.star",
			content: "//MCCScript 1.0\nhost.log(;\n",
			err:     engine.ErrCompile,
			console: "Error loading 'bad.star':\n",
			absent:  "script.star",
		},
		{
			name:    "starlark runtime error",
			file:    "bad.star",
			content: "//MCCScript 1.0\nhost.log(\"before\");\nx = args[5];\n",
			err:     engine.ErrRuntime,
			console: "Runtime error for 'bad.star':\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := &host.RecordingHost{}
			s := newScript(t, "bad", h, fstest.MapFS{tt.file: &fstest.MapFile{Data: []byte(tt.content)}})

			_, err := runToCompletion(t, s)
			require.ErrorIs(t, err, tt.err)
			require.ErrorIs(t, s.Err(), tt.err)

			_, console, notified, deactivated := h.Snapshot()
			require.NotEmpty(t, console)
			assert.Contains(t, console[len(console)-1], tt.console)
			if tt.absent != "" {
				assert.NotContains(t, console[len(console)-1], tt.absent)
			}
			assert.Contains(t, notified, "bob: Script '"+tt.file+"' failed to run.")
			assert.Equal(t, 1, deactivated)
		})
	}
}

func TestInterpretedWinsOverCompiled(t *testing.T) {
	t.Parallel()
	h := &host.RecordingHost{Commands: map[string]bool{"say": true}}
	s := newScript(t, "greet", h, fstest.MapFS{
		"greet.risor":       &fstest.MapFile{Data: []byte(risorGreeter)},
		"greet.txt":         &fstest.MapFile{Data: []byte("# greeting\nsay hi\nwait 1\nsay bye\n")},
		"scripts/greet.txt": &fstest.MapFile{Data: []byte("say wrong\n")},
	})

	ticks, err := runToCompletion(t, s)
	require.NoError(t, err)
	assert.Equal(t, 4, ticks)
	assert.Equal(t, script.ModeInterpreted, s.Handle().Mode)

	_, console, _, deactivated := h.Snapshot()
	assert.Equal(t, []string{"say hi", "say bye"}, console)
	assert.Equal(t, 1, deactivated)
}

func TestNewScriptInvalidOption(t *testing.T) {
	t.Parallel()
	_, err := tickscript.NewScript("x", &host.RecordingHost{}, options.WithStartDelay(-1))
	require.Error(t, err)
}

func TestCompiledMultiLineStatements(t *testing.T) {
	t.Parallel()
	const body = "//MCCScript 1.0\n" +
		"host.log(\"a\" +\n" +
		"    \"b\");\n" +
		"        # trailing note;\n" +
		"host.log(\"c\");\n"

	for _, file := range []string{"multi.risor", "multi.star"} {
		t.Run(file, func(t *testing.T) {
			t.Parallel()
			h := &host.RecordingHost{}
			s := newScript(t, "multi", h, fstest.MapFS{file: &fstest.MapFile{Data: []byte(body)}})

			_, err := runToCompletion(t, s)
			require.NoError(t, err)
			require.NoError(t, s.Err())

			_, console, _, deactivated := h.Snapshot()
			assert.Equal(t, []string{"ab", "c"}, console)
			assert.Equal(t, 1, deactivated)
		})
	}
}

func TestCompiledStatementCadence(t *testing.T) {
	t.Parallel()
	const body = "//MCCScript 1.0\nhost.log(\"S1\");\nhost.log(\"S2\");\nhost.log(\"S3\");\n"

	for _, file := range []string{"steps.risor", "steps.star"} {
		t.Run(file, func(t *testing.T) {
			t.Parallel()
			h := &host.RecordingHost{}
			s := newScript(t, "steps", h, fstest.MapFS{file: &fstest.MapFile{Data: []byte(body)}})
			ctx := context.Background()

			consoleLen := func() int {
				_, console, _, _ := h.Snapshot()
				return len(console)
			}

			for tick := 1; tick <= 3; tick++ {
				require.NoError(t, s.Advance(ctx))
				require.Eventually(t, func() bool { return consoleLen() == tick }, 2*time.Second, time.Millisecond)
				time.Sleep(30 * time.Millisecond)
				assert.Equal(t, tick, consoleLen(), "one statement per tick")
				assert.False(t, s.Done())
			}

			for i := 0; i < 100 && !s.Done(); i++ {
				require.NoError(t, s.Advance(ctx))
			}
			require.True(t, s.Done())

			_, console, _, deactivated := h.Snapshot()
			assert.Equal(t, []string{"S1", "S2", "S3"}, console)
			assert.Equal(t, 1, deactivated)
		})
	}
}
