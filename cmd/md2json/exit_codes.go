package main

import (
	"errors"
	"os"

	md2json "github.com/alnah/go-md2json"
	"github.com/alnah/go-md2json/internal/config"
	"github.com/alnah/go-md2json/internal/dateutil"
	"github.com/alnah/go-md2json/internal/fileutil"
)

// Exit codes for md2json CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful conversion
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, options, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitDocument = 4 // Malformed front matter or renderer failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Document errors (exit 4)
	if errors.Is(err, md2json.ErrMalformedFrontmatter) ||
		errors.Is(err, md2json.ErrRendererFailure) {
		return ExitDocument
	}

	// Usage/config/validation errors (exit 2)
	// Checked before I/O: a missing options file is a usage error.
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, md2json.ErrInvalidConfiguration) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, fileutil.ErrNotMarkdown) ||
		errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrNoOptions) ||
		errors.Is(err, ErrUnknownFormat) ||
		errors.Is(err, ErrUnknownStyle) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrTooManyArgs) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, fileutil.ErrPathIsDir) ||
		errors.Is(err, fileutil.ErrOutputDirState) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	return ExitGeneral
}
