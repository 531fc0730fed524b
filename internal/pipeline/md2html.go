package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-md2json/internal/meta"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// RenderConfig selects the renderer behavior for one conversion.
type RenderConfig struct {
	TOC            TOCConfig
	HighlightStyle string
	Sanitize       bool
}

// Rendered is the output of a conversion.
type Rendered struct {
	HTML     string
	Metadata *meta.Map
}

// HTMLConverter abstracts document to HTML conversion.
type HTMLConverter interface {
	Convert(ctx context.Context, document string) (*Rendered, error)
}

// GoldmarkConverter converts Markdown documents with frontmatter to HTML
// using goldmark (pure Go).
type GoldmarkConverter struct {
	md            goldmark.Markdown
	preprocessors []Preprocessor
	sanitizer     *Sanitizer
}

// NewGoldmarkConverter creates a GoldmarkConverter for cfg.
func NewGoldmarkConverter(cfg RenderConfig) *GoldmarkConverter {
	style := cfg.HighlightStyle

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,    // Pipe tables
			extension.Footnote, // [^1] footnotes
			extension.Linkify,  // Bare URLs and emails become links
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // Inline styles, no stylesheet needed
				),
			),
			NewInlineHighlight(style),
			Admonitions,
			NewTOC(cfg.TOC),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Generate IDs for headings (required for TOC)
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			html.WithUnsafe(), // Raw HTML in posts is kept, as authors expect
		),
	)

	c := &GoldmarkConverter{md: md, preprocessors: DefaultPreprocessors()}
	if cfg.Sanitize {
		c.sanitizer = NewSanitizer()
	}
	return c
}

// Convert runs the preprocessors on document, renders the remaining lines
// and returns the HTML fragment together with the extracted metadata.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) Convert(ctx context.Context, document string) (*Rendered, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	session := NewSession()
	lines, err := runPreprocessors(c.preprocessors, SplitLines(document), session)
	if err != nil {
		return nil, err
	}
	body := strings.Join(lines, "\n") + "\n"

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		// A panic here would otherwise end the process: the caller's recover
		// only covers its own goroutine.
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: panic: %v", ErrHTMLConversion, r)}
			}
		}()

		var buf bytes.Buffer
		pc := parser.NewContext()
		if err := c.md.Convert([]byte(body), &buf, parser.WithContext(pc)); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: strings.TrimSpace(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		out := r.html
		if c.sanitizer != nil {
			out = c.sanitizer.Sanitize(out)
		}
		return &Rendered{HTML: out, Metadata: session.Metadata}, nil
	}
}
