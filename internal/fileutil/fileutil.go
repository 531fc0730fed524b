// Package fileutil provides file and path utility functions.
package fileutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// Sentinel errors for file utility operations.
var (
	ErrEmptyPath      = errors.New("path cannot be empty")
	ErrPathIsDir      = errors.New("path is a directory")
	ErrNotMarkdown    = errors.New("file does not have a Markdown extension")
	ErrOutputDirState = errors.New("output directory does not exist")
)

// OutputFileMode is applied to files written by WriteFileAtomic.
const OutputFileMode os.FileMode = 0o644

// markdownExtensions lists recognized Markdown file extensions.
var markdownExtensions = []string{".md", ".markdown", ".mdown", ".mkd"}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "blog" -> false (name)
//   - "./blog.json" -> true (relative path)
//   - "/etc/md2json/blog.yaml" -> true (absolute)
//   - "C:\config\blog.json" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// HasMarkdownExtension reports whether path ends in a Markdown extension
// (case-insensitive).
func HasMarkdownExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, md := range markdownExtensions {
		if ext == md {
			return true
		}
	}
	return false
}

// ValidateInputPath checks that path names a readable Markdown file.
func ValidateInputPath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s", ErrPathIsDir, path)
	}
	if !HasMarkdownExtension(path) {
		return fmt.Errorf("%w: %s", ErrNotMarkdown, path)
	}
	return nil
}

// WriteFileAtomic writes data to path through a temporary file in the same
// directory, so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte) error {
	if path == "" {
		return ErrEmptyPath
	}
	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrOutputDirState, dir)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(path, OutputFileMode); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	return nil
}
