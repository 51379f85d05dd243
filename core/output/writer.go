// Package output writes rendered pages of an issue to disk.
// Page paths mirror the article hrefs of the source site, so the
// written tree links together the same way the source does.
package output

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output below a target directory.
type Writer struct {
	OutputDir string
	written   int64
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data at relPath below the output directory, creating
// parent directories. Paths escaping the output directory are rejected.
func (w *Writer) Write(relPath string, data []byte) (string, error) {
	fullPath, err := w.resolve(relPath)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	w.written += int64(len(data))
	return fullPath, nil
}

// WriteFS copies every file of fsys into dir below the output directory.
// Hidden files are skipped.
func (w *Writer) WriteFS(dir string, fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("reading resource %s: %w", path, err)
		}
		_, err = w.Write(filepath.Join(dir, filepath.FromSlash(path)), data)
		return err
	})
}

// BytesWritten returns the total size of everything written so far.
func (w *Writer) BytesWritten() int64 {
	return w.written
}

func (w *Writer) resolve(relPath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(relPath))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path %q escapes %s", relPath, w.OutputDir)
	}
	return filepath.Join(w.OutputDir, clean), nil
}
