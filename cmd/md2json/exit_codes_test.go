package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	md2json "github.com/alnah/go-md2json"
	"github.com/alnah/go-md2json/internal/config"
	"github.com/alnah/go-md2json/internal/dateutil"
	"github.com/alnah/go-md2json/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error classification
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"unclassified", errors.New("boom"), ExitGeneral},
		{"context canceled", context.Canceled, ExitGeneral},

		{"malformed frontmatter", md2json.ErrMalformedFrontmatter, ExitDocument},
		{"renderer failure", md2json.ErrRendererFailure, ExitDocument},
		{"wrapped renderer failure", fmt.Errorf("post.md: %w", md2json.ErrRendererFailure), ExitDocument},

		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"schema violation", config.ErrInvalidConfig, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid options", md2json.ErrInvalidConfiguration, ExitUsage},
		{"date format", dateutil.ErrInvalidDateFormat, ExitUsage},
		{"not markdown", fileutil.ErrNotMarkdown, ExitUsage},
		{"flags", ErrInvalidFlags, ExitUsage},
		{"no options", ErrNoOptions, ExitUsage},
		{"format", ErrUnknownFormat, ExitUsage},
		{"style", ErrUnknownStyle, ExitUsage},
		{"timeout", ErrInvalidTimeout, ExitUsage},
		{"too many args", ErrTooManyArgs, ExitUsage},
		{"missing options file wins over not exist", fmt.Errorf("%w: %w", config.ErrConfigNotFound, os.ErrNotExist), ExitUsage},

		{"not exist", &fs.PathError{Op: "stat", Path: "x.md", Err: fs.ErrNotExist}, ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"directory", fileutil.ErrPathIsDir, ExitIO},
		{"output dir", fmt.Errorf("%w: %w", ErrWriteOutput, fileutil.ErrOutputDirState), ExitIO},
		{"read", ErrReadInput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
