package loader

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testExts = []string{".risor", ".star"}

func newTestLocator(fsys fstest.MapFS) *Locator {
	return NewLocator(slog.NewTextHandler(os.Stdout, nil), fsys, DefaultSearchDirs, testExts)
}

func TestCandidates(t *testing.T) {
	t.Parallel()
	l := newTestLocator(fstest.MapFS{})
	want := []string{
		"x", "x.txt", "x.risor", "x.star",
		"scripts/x", "scripts/x.txt", "scripts/x.risor", "scripts/x.star",
		"config/x", "config/x.txt", "config/x.risor", "config/x.star",
	}
	assert.Equal(t, want, l.Candidates("x"))
}

func TestLocate(t *testing.T) {
	t.Parallel()
	file := &fstest.MapFile{Data: []byte("log hi\n")}

	tests := []struct {
		name    string
		files   fstest.MapFS
		lookup  string
		want    string
		wantErr error
	}{
		{
			name:   "only a subdirectory text script exists",
			files:  fstest.MapFS{"scripts/x.txt": file},
			lookup: "x",
			want:   "scripts/x.txt",
		},
		{
			name:   "bare name wins over txt",
			files:  fstest.MapFS{"x": file, "x.txt": file},
			lookup: "x",
			want:   "x",
		},
		{
			name:   "text wins over compiled with the same stem",
			files:  fstest.MapFS{"x.risor": file, "x.txt": file},
			lookup: "x",
			want:   "x.txt",
		},
		{
			name:   "working directory wins over search dirs",
			files:  fstest.MapFS{"config/x": file, "x.star": file},
			lookup: "x",
			want:   "x.star",
		},
		{
			name:   "scripts dir wins over config dir",
			files:  fstest.MapFS{"config/x.txt": file, "scripts/x.star": file},
			lookup: "x",
			want:   "scripts/x.star",
		},
		{
			name:   "explicit extension",
			files:  fstest.MapFS{"config/x.star": file},
			lookup: "x.star",
			want:   "config/x.star",
		},
		{
			name:    "directories are not scripts",
			files:   fstest.MapFS{"x/inner.txt": file},
			lookup:  "x",
			wantErr: ErrScriptNotFound,
		},
		{
			name:    "nothing exists",
			files:   fstest.MapFS{},
			lookup:  "x",
			wantErr: ErrScriptNotFound,
		},
		{
			name:    "empty name",
			files:   fstest.MapFS{"x": file},
			lookup:  "",
			wantErr: ErrScriptNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := newTestLocator(tt.files)
			got, err := l.Locate(tt.lookup)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocateIsDeterministic(t *testing.T) {
	t.Parallel()
	file := &fstest.MapFile{Data: []byte("x")}
	l := newTestLocator(fstest.MapFS{"scripts/x": file, "config/x.txt": file})

	first, err := l.Locate("x")
	require.NoError(t, err)
	for range 20 {
		again, err := l.Locate("x")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestLocatePrecedenceProperty(t *testing.T) {
	l := newTestLocator(fstest.MapFS{})
	candidates := l.Candidates("x")

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("the earliest existing candidate always wins", prop.ForAll(
		func(mask uint16) bool {
			files := fstest.MapFS{}
			first := ""
			for i, c := range candidates {
				if mask&(1<<i) == 0 {
					continue
				}
				files[c] = &fstest.MapFile{Data: []byte(c)}
				if first == "" {
					first = c
				}
			}

			got, err := newTestLocator(files).Locate("x")
			if first == "" {
				return err != nil && got == ""
			}
			return err == nil && got == first
		},
		gen.UInt16Range(0, 1<<len(candidates)-1),
	))

	properties.TestingRun(t)
}

func TestLoadFromOSFS(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFlog hi\r\nwait 2\n"), 0o600))

	l := NewLocator(slog.NewTextHandler(os.Stdout, nil), nil, nil, testExts)
	gotPath, lines, err := l.Load(filepath.Join(dir, "hello"))
	require.NoError(t, err)
	assert.Equal(t, path, gotPath)
	assert.Equal(t, []string{"log hi", "wait 2"}, lines)
}
