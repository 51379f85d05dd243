package output

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCreatesParents(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "issue"))
	require.NoError(t, err)

	path, err := w.Write("artikel/!5301234", []byte("<html/>"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.OutputDir, "artikel", "!5301234"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html/>", string(data))
	assert.EqualValues(t, 7, w.BytesWritten())
}

func TestWriteRejectsEscapingPaths(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	for _, p := range []string{"../evil", "/etc/passwd", "a/../../evil", "", "."} {
		_, err := w.Write(p, []byte("x"))
		assert.Error(t, err, p)
	}
}

func TestWriteFS(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	fsys := fstest.MapFS{
		"index_styles.css": {Data: []byte("body{}")},
		"fonts/font.woff":  {Data: []byte("font")},
		".lock":            {Data: []byte{}},
	}
	require.NoError(t, w.WriteFS("res", fsys))

	data, err := os.ReadFile(filepath.Join(w.OutputDir, "res", "index_styles.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(data))
	assert.FileExists(t, filepath.Join(w.OutputDir, "res", "fonts", "font.woff"))
	assert.NoFileExists(t, filepath.Join(w.OutputDir, "res", ".lock"))
}
