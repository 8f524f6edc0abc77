package engine

import "strings"

const (
	// VersionMarker must be the first line of every compiled script.
	VersionMarker = "//MCCScript 1.0"

	// SectionPrefix starts every section delimiter line.
	SectionPrefix = "//MCCScript"

	// ExtensionsSuffix ends the delimiter that switches to the extensions section.
	ExtensionsSuffix = "Extensions"
)

// CheckHeader returns ErrFormat unless the first line is exactly VersionMarker.
func CheckHeader(lines []string) error {
	if len(lines) == 0 || lines[0] != VersionMarker {
		return ErrFormat
	}
	return nil
}

// Transform splits a compiled script into its main and extensions sections.
// Delimiter lines are dropped. In the main section, stepCall is inserted after
// every line ending in ';', indented like the line that opened the statement.
// Comment lines never get a step call.
func Transform(lines []string, stepCall string) (main, extensions []string) {
	inMain := true
	depth := 0
	indent := ""
	for _, line := range lines {
		if strings.HasPrefix(line, SectionPrefix) {
			if strings.HasSuffix(line, ExtensionsSuffix) {
				inMain = false
			}
			continue
		}
		if !inMain {
			extensions = append(extensions, line)
			continue
		}

		main = append(main, line)
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isCommentLine(trimmed) {
			continue
		}
		if depth == 0 {
			indent = line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		}
		depth = max(depth+bracketDelta(line), 0)
		if strings.HasSuffix(trimmed, ";") {
			main = append(main, indent+stepCall)
		}
	}
	return main, extensions
}

func isCommentLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//")
}

// bracketDelta returns the change in parenthesis and square bracket nesting over
// line. String literals and trailing '#' comments are skipped. Braces are not
// counted since they also open blocks. A mid-line '//' is floor division in
// Starlark, so it is not treated as a comment.
func bracketDelta(line string) int {
	delta := 0
	var quote rune
	escaped := false
	for _, c := range line {
		switch {
		case quote != 0:
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '#':
			return delta
		case c == '(' || c == '[':
			delta++
		case c == ')' || c == ']':
			delta--
		}
	}
	return delta
}
