package loader

import (
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strings"
)

// OSFS exposes the process filesystem as an fs.StatFS. Unlike os.DirFS it accepts
// absolute paths and paths relative to the working directory.
type OSFS struct{}

func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

func (OSFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// FromDisk loads a script from a path inside a filesystem.
type FromDisk struct {
	fsys      fs.FS
	path      string
	sourceURL *url.URL
}

// NewFromDisk returns a loader for path. A nil fsys reads from the process filesystem.
func NewFromDisk(fsys fs.FS, path string) (*FromDisk, error) {
	path = strings.TrimPrefix(path, "file://")
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: path is empty", ErrInputEmpty)
	}
	if fsys == nil {
		fsys = OSFS{}
	}

	return &FromDisk{
		fsys:      fsys,
		path:      path,
		sourceURL: &url.URL{Scheme: "file", Path: path},
	}, nil
}

func (l *FromDisk) String() string {
	return fmt.Sprintf("loader.FromDisk{Path: %s}", l.path)
}

func (l *FromDisk) GetReader() (io.ReadCloser, error) {
	return l.fsys.Open(l.path)
}

// GetSourceURL returns the source URL of the script.
func (l *FromDisk) GetSourceURL() *url.URL {
	return l.sourceURL
}

// GetPath returns the path the loader reads.
func (l *FromDisk) GetPath() string {
	return l.path
}
