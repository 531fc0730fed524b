package md2json

import (
	"errors"

	"github.com/alnah/go-md2json/internal/frontmatter"
	"github.com/alnah/go-md2json/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// ErrInvalidConfiguration reports missing or invalid RenderOptions.
	// It is returned before any rendering happens.
	ErrInvalidConfiguration = errors.New("invalid render options")

	// ErrMalformedFrontmatter reports a front matter block that is not a
	// YAML mapping.
	ErrMalformedFrontmatter = frontmatter.ErrMalformed

	// ErrRendererFailure reports a failure inside the Markdown renderer.
	ErrRendererFailure = pipeline.ErrHTMLConversion
)
