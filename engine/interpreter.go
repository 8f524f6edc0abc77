package engine

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/robbyt/go-tickscript/execution/host"
	"golang.org/x/text/cases"
)

const waitInstruction = "wait"

// interpreter runs a line-oriented command script, one instruction per tick.
// It is driven only from the tick goroutine.
type interpreter struct {
	lines       []string
	cursor      int
	sleepTicks  int
	defaultWait int
	suppressed  func(name string) bool
	caps        host.Capabilities
	fold        cases.Caser
	logger      *slog.Logger
}

func newInterpreter(
	lines []string,
	caps host.Capabilities,
	startDelay, defaultWait int,
	suppressed func(string) bool,
	logger *slog.Logger,
) *interpreter {
	return &interpreter{
		lines:       lines,
		sleepTicks:  startDelay,
		defaultWait: defaultWait,
		suppressed:  suppressed,
		caps:        caps,
		fold:        cases.Fold(),
		logger:      logger.WithGroup("interpreter"),
	}
}

// advance runs one tick and reports whether the script is terminal.
// When the sleep runs out the same tick goes on to the next line.
func (in *interpreter) advance() bool {
	if in.sleepTicks > 0 {
		in.sleepTicks--
		if in.sleepTicks > 0 {
			return false
		}
	}

	for in.cursor < len(in.lines) {
		line := strings.TrimSpace(in.lines[in.cursor])
		in.cursor++
		if isFreeLine(line) {
			continue
		}

		line = strings.TrimSpace(in.caps.Expand(line))
		name, rest := splitInstruction(line)
		name = in.fold.String(name)

		if name == waitInstruction {
			in.sleepTicks = in.parseWait(rest)
			in.logger.Debug("sleeping", "line", in.cursor, "ticks", in.sleepTicks)
			return false
		}

		if !in.caps.Command(line) {
			in.logger.Debug("unknown instruction skipped", "line", in.cursor, "name", name)
			continue
		}
		if !in.suppressed(name) {
			in.caps.Log(line)
		}
		return false
	}
	return true
}

// parseWait reads a tick count. Anything unparsable falls back to the default.
func (in *interpreter) parseWait(arg string) int {
	ticks, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return in.defaultWait
	}
	return max(ticks, 0)
}

// splitInstruction cuts line at its first whitespace.
func splitInstruction(line string) (name, rest string) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], line[i:]
}

// isFreeLine reports whether a trimmed line is blank, too short to be an
// instruction, or a comment. Such lines cost no ticks.
func isFreeLine(line string) bool {
	if len([]rune(line)) <= 1 {
		return true
	}
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//")
}
