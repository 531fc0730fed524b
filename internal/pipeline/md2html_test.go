package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-md2json/internal/frontmatter"
)

func convert(t *testing.T, cfg RenderConfig, doc string) *Rendered {
	t.Helper()
	r, err := NewGoldmarkConverter(cfg).Convert(context.Background(), doc)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	return r
}

// ---------------------------------------------------------------------------
// TestConvert_Markdown - Extension set produces the expected markup
// ---------------------------------------------------------------------------

func TestConvert_Markdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		want    []string
		notWant []string
	}{
		{
			name: "heading with id and paragraph",
			doc:  "# Hello\n\nWorld",
			want: []string{`<h1 id="hello">Hello</h1>`, "<p>World</p>"},
		},
		{
			name: "table",
			doc:  "| a | b |\n|---|---|\n| 1 | 2 |",
			want: []string{"<table>", "<th>a</th>", "<td>1</td>"},
		},
		{
			name: "footnote",
			doc:  "Text[^1]\n\n[^1]: The note.",
			want: []string{"footnote-ref", "The note."},
		},
		{
			name: "bare URL is linked",
			doc:  "Visit https://example.com today",
			want: []string{`<a href="https://example.com">https://example.com</a>`},
		},
		{
			name:    "fenced code is highlighted with inline styles",
			doc:     "```go\nfunc main() {}\n```",
			want:    []string{"<pre", `style="`, "main"},
			notWant: []string{`class="chroma"`},
		},
		{
			name: "raw HTML is kept",
			doc:  `<div class="note">hi</div>`,
			want: []string{`<div class="note">hi</div>`},
		},
		{
			name:    "newlines are not hard breaks",
			doc:     "line one\nline two",
			notWant: []string{"<br"},
		},
		{
			name: "thematic break is XHTML",
			doc:  "a\n\n***\n\nb",
			want: []string{"<hr />"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := convert(t, RenderConfig{}, tt.doc).HTML
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output missing %q:\n%s", w, got)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("output should not contain %q:\n%s", nw, got)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Frontmatter - Metadata extraction through the renderer
// ---------------------------------------------------------------------------

func TestConvert_Frontmatter(t *testing.T) {
	t.Parallel()

	t.Run("block never reaches the body", func(t *testing.T) {
		t.Parallel()

		r := convert(t, RenderConfig{}, "---\ntitle: Secret\n---\n# Body")
		if strings.Contains(r.HTML, "Secret") || strings.Contains(r.HTML, "title:") {
			t.Errorf("frontmatter leaked into HTML:\n%s", r.HTML)
		}
		got, _ := r.Metadata.Get("title")
		if s, _ := got.Text(); s != "Secret" {
			t.Errorf("title = %v, want Secret", got.Interface())
		}
		if r.HTML != `<h1 id="body">Body</h1>` {
			t.Errorf("HTML = %q", r.HTML)
		}
	})

	t.Run("CRLF document", func(t *testing.T) {
		t.Parallel()

		r := convert(t, RenderConfig{}, "---\r\ntitle: A\r\n...\r\nBody\r\n")
		if r.Metadata.Len() != 1 {
			t.Errorf("metadata Len() = %d, want 1", r.Metadata.Len())
		}
		if r.HTML != "<p>Body</p>" {
			t.Errorf("HTML = %q, want %q", r.HTML, "<p>Body</p>")
		}
	})

	t.Run("no frontmatter gives empty metadata", func(t *testing.T) {
		t.Parallel()

		r := convert(t, RenderConfig{}, "Just text")
		if r.Metadata == nil || r.Metadata.Len() != 0 {
			t.Errorf("metadata = %v, want empty", r.Metadata)
		}
	})

	t.Run("unterminated block consumes body", func(t *testing.T) {
		t.Parallel()

		r := convert(t, RenderConfig{}, "---\ntitle: A\nauthor: B")
		if r.HTML != "" {
			t.Errorf("HTML = %q, want empty", r.HTML)
		}
		if r.Metadata.Len() != 2 {
			t.Errorf("metadata Len() = %d, want 2", r.Metadata.Len())
		}
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		r := convert(t, RenderConfig{}, "")
		if r.HTML != "" || r.Metadata.Len() != 0 {
			t.Errorf("got HTML %q, metadata %d keys; want empty", r.HTML, r.Metadata.Len())
		}
	})

	t.Run("malformed frontmatter", func(t *testing.T) {
		t.Parallel()

		_, err := NewGoldmarkConverter(RenderConfig{}).Convert(context.Background(), "---\ntags: [a\n---\nBody")
		if !errors.Is(err, frontmatter.ErrMalformed) {
			t.Errorf("error = %v, want ErrMalformed", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConvert_Isolation - Sequential calls share no metadata
// ---------------------------------------------------------------------------

func TestConvert_Isolation(t *testing.T) {
	t.Parallel()

	c := NewGoldmarkConverter(RenderConfig{})
	ctx := context.Background()

	first, err := c.Convert(ctx, "---\ntitle: A\nextra: 1\n---\nOne")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	second, err := c.Convert(ctx, "Two")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	if first.Metadata.Len() != 2 {
		t.Errorf("first metadata Len() = %d, want 2", first.Metadata.Len())
	}
	if second.Metadata.Len() != 0 {
		t.Errorf("second metadata leaked keys: %v", second.Metadata.Keys())
	}
}

func TestConvert_HeadingIDsResetPerCall(t *testing.T) {
	t.Parallel()

	c := NewGoldmarkConverter(RenderConfig{})
	for i := 0; i < 2; i++ {
		r, err := c.Convert(context.Background(), "# Intro")
		if err != nil {
			t.Fatalf("Convert() error: %v", err)
		}
		if !strings.Contains(r.HTML, `id="intro"`) {
			t.Errorf("call %d: HTML = %q, want id=\"intro\"", i, r.HTML)
		}
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Context - Cancellation before rendering
// ---------------------------------------------------------------------------

func TestConvert_Context(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter(RenderConfig{}).Convert(ctx, "# Title")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Sanitize - Optional HTML sanitization
// ---------------------------------------------------------------------------

func TestConvert_Sanitize(t *testing.T) {
	t.Parallel()

	doc := "<script>alert(1)</script>\n\n/// note\nSafe\n///"

	raw := convert(t, RenderConfig{}, doc).HTML
	if !strings.Contains(raw, "<script>") {
		t.Errorf("unsanitized output lost raw HTML:\n%s", raw)
	}

	clean := convert(t, RenderConfig{Sanitize: true}, doc).HTML
	if strings.Contains(clean, "<script") {
		t.Errorf("sanitized output kept script:\n%s", clean)
	}
	if !strings.Contains(clean, `class="admonition note"`) {
		t.Errorf("sanitized output dropped admonition class:\n%s", clean)
	}
}

// panickingTransformer fails inside goldmark's parse step.
type panickingTransformer struct{}

func (panickingTransformer) Transform(*ast.Document, text.Reader, parser.Context) {
	panic("transformer exploded")
}

func TestConvert_RecoversRendererPanic(t *testing.T) {
	t.Parallel()

	c := NewGoldmarkConverter(RenderConfig{HighlightStyle: "monokai"})
	c.md.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(panickingTransformer{}, 0),
	))

	r, err := c.Convert(context.Background(), "# Title")
	if r != nil {
		t.Errorf("expected nil result, got %+v", r)
	}
	if !errors.Is(err, ErrHTMLConversion) || !strings.Contains(err.Error(), "transformer exploded") {
		t.Errorf("error = %v, want ErrHTMLConversion naming the panic", err)
	}
}
