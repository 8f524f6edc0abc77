package loader

import (
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringLoader struct {
	content string
	err     error
}

func (s *stringLoader) GetReader() (io.ReadCloser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.content)), nil
}

func (s *stringLoader) GetSourceURL() *url.URL {
	return &url.URL{Scheme: "string", Path: "inline"}
}

func TestReadLines(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "empty", content: "", want: []string{}},
		{name: "single line without terminator", content: "log hi", want: []string{"log hi"}},
		{name: "trailing newline", content: "a\nb\n", want: []string{"a", "b"}},
		{name: "crlf", content: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "lone cr", content: "a\rb", want: []string{"a", "b"}},
		{name: "blank lines kept", content: "a\n\n\nb", want: []string{"a", "", "", "b"}},
		{name: "utf8 bom stripped", content: "\xEF\xBB\xBF//MCCScript 1.0\nx;", want: []string{"//MCCScript 1.0", "x;"}},
		{name: "utf16le bom decoded", content: "\xFF\xFEh\x00i\x00\n\x00", want: []string{"hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ReadLines(&stringLoader{content: tt.content})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadLinesReaderError(t *testing.T) {
	t.Parallel()
	_, err := ReadLines(&stringLoader{err: errors.New("boom")})
	require.ErrorIs(t, err, ErrScriptNotAvailable)
}

func TestFromDisk(t *testing.T) {
	t.Parallel()

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		ldr, err := NewFromDisk(nil, "  ")
		require.ErrorIs(t, err, ErrInputEmpty)
		assert.Nil(t, ldr)
	})

	t.Run("file scheme stripped", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{"scripts/a.txt": {Data: []byte("log a")}}
		ldr, err := NewFromDisk(fsys, "file://scripts/a.txt")
		require.NoError(t, err)
		assert.Equal(t, "scripts/a.txt", ldr.GetPath())
		assert.Equal(t, "file", ldr.GetSourceURL().Scheme)
		assert.Equal(t, "loader.FromDisk{Path: scripts/a.txt}", ldr.String())

		lines, err := ReadLines(ldr)
		require.NoError(t, err)
		assert.Equal(t, []string{"log a"}, lines)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		ldr, err := NewFromDisk(fstest.MapFS{}, "nope.txt")
		require.NoError(t, err)
		_, err = ReadLines(ldr)
		require.ErrorIs(t, err, ErrScriptNotAvailable)
	})
}
