package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckHeader(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		lines []string
		ok    bool
	}{
		{"exact marker", []string{"//MCCScript 1.0", "x;"}, true},
		{"marker only", []string{"//MCCScript 1.0"}, true},
		{"empty file", nil, false},
		{"other version", []string{"//MCCScript 2.0"}, false},
		{"trailing space", []string{"//MCCScript 1.0 "}, false},
		{"marker not first", []string{"", "//MCCScript 1.0"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CheckHeader(tt.lines)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestTransform(t *testing.T) {
	t.Parallel()

	t.Run("sections and step calls", func(t *testing.T) {
		t.Parallel()
		main, ext := Transform([]string{
			"//MCCScript 1.0",
			`host.log("a");`,
			"if x {",
			`    host.log("b");  `,
			"}",
			"//MCCScript Extensions",
			"func helper() {",
			"  return 1;",
			"}",
		}, "gate.wait()")

		assert.Equal(t, []string{
			`host.log("a");`,
			"gate.wait()",
			"if x {",
			`    host.log("b");  `,
			"    gate.wait()",
			"}",
		}, main)
		assert.Equal(t, []string{"func helper() {", "  return 1;", "}"}, ext)
	})

	t.Run("other delimiters are dropped without switching", func(t *testing.T) {
		t.Parallel()
		main, ext := Transform([]string{
			"//MCCScript 1.0",
			"a;",
			"//MCCScript Notes",
			"\tb;",
		}, "step()")
		assert.Equal(t, []string{"a;", "step()", "\tb;", "\tstep()"}, main)
		assert.Empty(t, ext)
	})

	t.Run("extensions never get step calls", func(t *testing.T) {
		t.Parallel()
		main, ext := Transform([]string{"//MCCScript 1.0", "//MCCScript Extensions", "x;"}, "step()")
		assert.Empty(t, main)
		assert.Equal(t, []string{"x;"}, ext)
	})

	t.Run("multi-line statement uses opening indent", func(t *testing.T) {
		t.Parallel()
		main, _ := Transform([]string{
			"//MCCScript 1.0",
			`host.log("a" +`,
			`    "b");`,
			"  if x:",
			"    host.log(f(1,  # open (",
			`        "(", "#"));`,
			"  y = [1,",
			"    2];",
		}, "step()")
		assert.Equal(t, []string{
			`host.log("a" +`,
			`    "b");`,
			"step()",
			"  if x:",
			"    host.log(f(1,  # open (",
			`        "(", "#"));`,
			"    step()",
			"  y = [1,",
			"    2];",
			"  step()",
		}, main)
	})

	t.Run("comment lines get no step call", func(t *testing.T) {
		t.Parallel()
		main, _ := Transform([]string{
			"//MCCScript 1.0",
			"a;",
			"        # note;",
			"    // note;",
			"b;",
		}, "step()")
		assert.Equal(t, []string{"a;", "step()", "        # note;", "    // note;", "b;", "step()"}, main)
	})

	t.Run("floor division is not a comment", func(t *testing.T) {
		t.Parallel()
		main, _ := Transform([]string{
			"//MCCScript 1.0",
			"x = (7 // 2,",
			"  1);",
			"y;",
		}, "step()")
		assert.Equal(t, []string{"x = (7 // 2,", "  1);", "step()", "y;", "step()"}, main)
	})
}
