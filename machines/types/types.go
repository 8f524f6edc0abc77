package types

import "strings"

// Type names a compiled-mode machine.
type Type string

const (
	// Risor machine: https://github.com/risor-io/risor
	Risor Type = "risor"
	// Starlark machine: https://github.com/google/starlark-go
	Starlark Type = "starlark"
)

// Extension returns the script file extension handled by the machine, including the dot.
func (t Type) Extension() string {
	switch t {
	case Risor:
		return ".risor"
	case Starlark:
		return ".star"
	}
	return ""
}

func (t Type) String() string {
	return string(t)
}

// FromExtension maps a file extension (with or without the leading dot, any case)
// back to its machine type.
func FromExtension(ext string) (Type, bool) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	for _, t := range All() {
		if t.Extension() == ext {
			return t, true
		}
	}
	return "", false
}

// All returns every known machine type, in locator priority order.
func All() []Type {
	return []Type{Risor, Starlark}
}
