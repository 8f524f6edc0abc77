package script

import (
	"fmt"
	"path/filepath"

	"github.com/robbyt/go-tickscript/internal/helpers"
	machineTypes "github.com/robbyt/go-tickscript/machines/types"
)

// Mode selects how a script is executed.
type Mode int

const (
	// ModeInterpreted runs a line-oriented command script, one instruction per tick.
	ModeInterpreted Mode = iota
	// ModeCompiled compiles the script and single-steps it on a worker goroutine.
	ModeCompiled
)

func (m Mode) String() string {
	switch m {
	case ModeInterpreted:
		return "interpreted"
	case ModeCompiled:
		return "compiled"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Handle is a located and loaded script. It is never changed after creation.
type Handle struct {
	Path    string
	Lines   []string
	Mode    Mode
	Machine machineTypes.Type
	Owner   string
}

// NewHandle builds a Handle, deriving the mode from the extension of path.
// Extensions of a known machine select compiled mode, anything else is interpreted.
func NewHandle(path string, lines []string, owner string) *Handle {
	h := &Handle{
		Path:  path,
		Lines: lines,
		Mode:  ModeInterpreted,
		Owner: owner,
	}
	if machine, ok := machineTypes.FromExtension(filepath.Ext(path)); ok {
		h.Mode = ModeCompiled
		h.Machine = machine
	}
	if h.Lines == nil {
		h.Lines = []string{}
	}
	return h
}

func (h *Handle) String() string {
	return fmt.Sprintf("script.Handle{Path: %s, Mode: %s, Lines: %d, SHA256: %s}",
		h.Path, h.Mode, len(h.Lines), helpers.LinesChecksum(h.Lines))
}
