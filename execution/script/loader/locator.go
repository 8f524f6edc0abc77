package loader

import (
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/robbyt/go-tickscript/internal/helpers"
)

// PlainTextExtension is probed right after the bare name.
const PlainTextExtension = ".txt"

// DefaultSearchDirs are probed, in order, after the bare name.
var DefaultSearchDirs = []string{"scripts", "config"}

// Locator resolves a bare script name to an existing file by probing a fixed
// candidate order. Explicit paths win over directory-qualified guesses, and plain
// text scripts win over compiled ones with the same stem.
type Locator struct {
	fsys         fs.FS
	searchDirs   []string
	compiledExts []string
	logger       *slog.Logger
}

// NewLocator returns a locator over fsys. A nil fsys probes the process filesystem.
// compiledExts are probed after PlainTextExtension, in the given order.
func NewLocator(handler slog.Handler, fsys fs.FS, searchDirs []string, compiledExts []string) *Locator {
	_, logger := helpers.SetupLogger(handler, "loader", "Locator")
	if fsys == nil {
		fsys = OSFS{}
	}
	return &Locator{
		fsys:         fsys,
		searchDirs:   append([]string(nil), searchDirs...),
		compiledExts: append([]string(nil), compiledExts...),
		logger:       logger,
	}
}

func (l *Locator) String() string {
	return fmt.Sprintf("loader.Locator{SearchDirs: %v, Extensions: %v}", l.searchDirs, l.compiledExts)
}

// Candidates returns every path Locate probes for name, in priority order.
func (l *Locator) Candidates(name string) []string {
	forms := make([]string, 0, 2+len(l.compiledExts))
	forms = append(forms, name, name+PlainTextExtension)
	for _, ext := range l.compiledExts {
		forms = append(forms, name+ext)
	}

	candidates := make([]string, 0, len(forms)*(1+len(l.searchDirs)))
	candidates = append(candidates, forms...)
	for _, dir := range l.searchDirs {
		for _, form := range forms {
			candidates = append(candidates, dir+"/"+form)
		}
	}
	return candidates
}

// Locate returns the first candidate for name that exists as a regular file.
func (l *Locator) Locate(name string) (string, error) {
	logger := l.logger.With("name", name)
	if name == "" {
		return "", fmt.Errorf("%w: name is empty", ErrScriptNotFound)
	}

	for _, candidate := range l.Candidates(name) {
		info, err := fs.Stat(l.fsys, candidate)
		if err != nil || info.IsDir() {
			continue
		}
		logger.Debug("script located", "path", candidate)
		return candidate, nil
	}

	logger.Debug("no candidate exists")
	return "", fmt.Errorf("%w: '%s'", ErrScriptNotFound, name)
}

// Load locates name and reads its lines through a FromDisk loader.
func (l *Locator) Load(name string) (path string, lines []string, err error) {
	path, err = l.Locate(name)
	if err != nil {
		return "", nil, err
	}
	ldr, err := NewFromDisk(l.fsys, path)
	if err != nil {
		return "", nil, err
	}
	lines, err = ReadLines(ldr)
	if err != nil {
		return "", nil, err
	}
	return path, lines, nil
}
