// Package invocation splits a raw script invocation string into a file reference and
// its positional arguments.
package invocation

import "strings"

// Invocation is the parsed form of a script invocation string.
type Invocation struct {
	// File is the first token, the script reference to locate.
	File string
	// Args holds the remaining tokens in their original order.
	Args []string
}

// Tokenize splits raw on unquoted, unescaped spaces.
//
// A double quote toggles quoting and is dropped. A backslash escapes the next character:
// an escaped double quote is kept together with its backslash and does not toggle
// quoting, any other escaped character is kept without the backslash. Unterminated
// quotes run to the end of the input. Tokenize never fails.
func Tokenize(raw string) Invocation {
	var (
		tokens  []string
		buf     strings.Builder
		escape  bool
		inQuote bool
	)

	for _, c := range raw {
		switch {
		case escape:
			if c == '"' {
				buf.WriteRune('\\')
			}
			buf.WriteRune(c)
			escape = false
		case c == '\\':
			escape = true
		case c == '"':
			inQuote = !inQuote
		case c == ' ' && !inQuote:
			if buf.Len() > 0 {
				tokens = append(tokens, buf.String())
				buf.Reset()
			}
		default:
			buf.WriteRune(c)
		}
	}
	if buf.Len() > 0 {
		tokens = append(tokens, buf.String())
	}

	if len(tokens) == 0 {
		return Invocation{Args: []string{}}
	}
	return Invocation{File: tokens[0], Args: tokens[1:]}
}

// String renders the invocation back to a space separated form, quoting arguments
// that contain spaces. Used for logging.
func (i Invocation) String() string {
	parts := make([]string, 0, len(i.Args)+1)
	parts = append(parts, i.File)
	for _, a := range i.Args {
		if strings.ContainsRune(a, ' ') {
			a = `"` + a + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
