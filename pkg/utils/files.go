package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// GetPathInfo resolves relPath to a cleaned absolute path and the directory
// holding it. The path must name an existing regular file.
func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}
	fi, err := os.Stat(fullPath)
	if err != nil {
		return "", "", err
	}
	if !fi.Mode().IsRegular() {
		return "", "", fmt.Errorf("%s: %w", fullPath, ErrNotRegular)
	}
	return fullPath, filepath.Dir(fullPath), nil
}

var ErrNotRegular = errors.New("not a regular file")

// DefaultOutputPath swaps the extension of inPath for ext. When outDir is
// set the result is placed there instead of next to the input.
func DefaultOutputPath(inPath, outDir, ext string) string {
	base := strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ext
	if outDir == "" {
		return base
	}
	return filepath.Join(outDir, filepath.Base(base))
}

// ReadSource reads a source file as text.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteFile creates path and hands a buffered writer to write. The file is
// flushed and closed even when write fails; the first error wins.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return err
	}
	return bw.Flush()
}
