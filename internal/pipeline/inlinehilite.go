package pipeline

import (
	"bytes"
	"html"
	"regexp"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// inlineLang matches "#!lang code" and ":::lang code" inside a code span.
var inlineLang = regexp.MustCompile(`(?s)^(?:#!|:::)([\w#+.-]+) (.*)$`)

type inlineHighlight struct {
	style string
}

// NewInlineHighlight returns a goldmark extension that highlights code
// spans written as `#!lang code` or `:::lang code` with inline styles.
// Other code spans render as plain <code>.
func NewInlineHighlight(style string) goldmark.Extender {
	return &inlineHighlight{style: style}
}

func (e *inlineHighlight) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(e, 100), // overrides the default code span renderer
	))
}

func (e *inlineHighlight) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindCodeSpan, e.renderCodeSpan)
}

func (e *inlineHighlight) renderCodeSpan(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	code := codeSpanText(n, source)
	if m := inlineLang.FindSubmatch(code); m != nil {
		highlighted, err := highlightInline(string(m[1]), string(m[2]), e.style)
		if err == nil {
			_, _ = w.WriteString(`<code class="highlight">`)
			_, _ = w.WriteString(highlighted)
			_, err = w.WriteString("</code>")
			return ast.WalkSkipChildren, err
		}
	}

	_, _ = w.WriteString("<code>")
	_, _ = w.WriteString(html.EscapeString(string(code)))
	_, err := w.WriteString("</code>")
	return ast.WalkSkipChildren, err
}

// codeSpanText returns the span content with line breaks folded to spaces.
func codeSpanText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		var value []byte
		switch t := c.(type) {
		case *ast.Text:
			value = t.Segment.Value(source)
		case *ast.String:
			value = t.Value
		default:
			continue
		}
		if bytes.HasSuffix(value, []byte("\n")) {
			buf.Write(value[:len(value)-1])
			buf.WriteByte(' ')
		} else {
			buf.Write(value)
		}
	}
	return buf.Bytes()
}

// highlightInline renders code with chroma using inline styles and no
// surrounding <pre>. Unknown languages fall back to plain text.
func highlightInline(lang, code, style string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	formatter := chromahtml.New(
		chromahtml.WithClasses(false),
		chromahtml.PreventSurroundingPre(true),
	)

	var buf bytes.Buffer
	if err := formatter.Format(&buf, styles.Get(style), iterator); err != nil {
		return "", err
	}
	return buf.String(), nil
}
