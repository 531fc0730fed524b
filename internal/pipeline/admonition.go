package pipeline

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// admonitionTypes lists the block names recognized after "///".
// "admonition" is the generic form and only gets the base class.
var admonitionTypes = map[string]bool{
	"admonition": true,
	"attention":  true,
	"caution":    true,
	"danger":     true,
	"error":      true,
	"hint":       true,
	"important":  true,
	"note":       true,
	"tip":        true,
	"warning":    true,
}

// admonitionStart matches "/// type" or "/// type | Title".
var admonitionStart = regexp.MustCompile(`^(/{3,})[ \t]*([A-Za-z][\w-]*)(?:[ \t]*\|[ \t]*(.*?))?[ \t]*\r?\n?$`)

// KindAdmonition is the ast.NodeKind of an admonition block.
var KindAdmonition = ast.NewNodeKind("Admonition")

// Admonition is a titled callout block whose body is regular Markdown.
//
//	/// warning | Heads up
//	Body text.
//	///
type Admonition struct {
	ast.BaseBlock
	AdmonitionType string
	Title          string
	fence          int
}

// Dump implements ast.Node.
func (n *Admonition) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Type":  n.AdmonitionType,
		"Title": n.Title,
	}, nil)
}

// Kind implements ast.Node.
func (n *Admonition) Kind() ast.NodeKind { return KindAdmonition }

// DisplayTitle returns the explicit title or the capitalized type name.
func (n *Admonition) DisplayTitle() string {
	if n.Title != "" {
		return n.Title
	}
	r, size := utf8.DecodeRuneInString(n.AdmonitionType)
	return string(unicode.ToUpper(r)) + n.AdmonitionType[size:]
}

type admonitionParser struct{}

func (p *admonitionParser) Trigger() []byte {
	return []byte{'/'}
}

func (p *admonitionParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos >= len(line) {
		return nil, parser.NoChildren
	}

	m := admonitionStart.FindSubmatch(line[pos:])
	if m == nil {
		return nil, parser.NoChildren
	}
	kind := strings.ToLower(string(m[2]))
	if !admonitionTypes[kind] {
		return nil, parser.NoChildren
	}

	node := &Admonition{
		AdmonitionType: kind,
		Title:          strings.TrimSpace(string(m[3])),
		fence:          len(m[1]),
	}
	reader.Advance(lineLength(line))
	return node, parser.HasChildren
}

func (p *admonitionParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, _ := reader.PeekLine()
	n := node.(*Admonition)
	if isClosingFence(line, n.fence) {
		reader.Advance(lineLength(line))
		return parser.Close
	}
	return parser.Continue | parser.HasChildren
}

func (p *admonitionParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *admonitionParser) CanInterruptParagraph() bool { return true }

func (p *admonitionParser) CanAcceptIndentedLine() bool { return false }

// isClosingFence reports whether line is exactly fence slashes, allowing up
// to three leading spaces and trailing whitespace.
func isClosingFence(line []byte, fence int) bool {
	s := strings.TrimRight(string(line), " \t\r\n")
	trimmed := strings.TrimLeft(s, " ")
	if len(s)-len(trimmed) > 3 {
		return false
	}
	return len(trimmed) == fence && strings.Count(trimmed, "/") == fence
}

// lineLength is the length of line without its line terminator.
func lineLength(line []byte) int {
	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		n--
	}
	if n > 0 && line[n-1] == '\r' {
		n--
	}
	return n
}

type admonitionRenderer struct{}

func (r *admonitionRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindAdmonition, r.renderAdmonition)
}

func (r *admonitionRenderer) renderAdmonition(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*Admonition)
	if !entering {
		_, err := w.WriteString("</div>\n")
		return ast.WalkContinue, err
	}

	class := "admonition"
	if n.AdmonitionType != "admonition" {
		class += " " + n.AdmonitionType
	}
	_, _ = w.WriteString(`<div class="`)
	_, _ = w.WriteString(class)
	_, _ = w.WriteString("\">\n")
	_, _ = w.WriteString(`<p class="admonition-title">`)
	_, _ = w.WriteString(html.EscapeString(n.DisplayTitle()))
	_, err := w.WriteString("</p>\n")
	return ast.WalkContinue, err
}

type admonitionExtension struct{}

// Admonitions is a goldmark extension for "///" admonition blocks.
var Admonitions goldmark.Extender = &admonitionExtension{}

func (e *admonitionExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(&admonitionParser{}, 150),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&admonitionRenderer{}, 100),
	))
}
