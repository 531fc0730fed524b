package pipeline

import (
	"bytes"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// DefaultPermalinkText is shown when Permalink is set without PermalinkText.
const DefaultPermalinkText = "¶"

const permalinkTitle = "Permanent link"

// TOCConfig controls the table of contents and heading links. Classes are
// written as given, so an empty class renders as class="".
type TOCConfig struct {
	// Marker is the paragraph text replaced by the table of contents.
	// An empty Marker disables replacement.
	Marker     string
	Title      string
	TitleClass string
	TOCClass   string

	// AnchorLink wraps each heading's content in a link to itself.
	AnchorLink      bool
	AnchorLinkClass string

	// Permalink appends a link to each heading, showing PermalinkText.
	Permalink      bool
	PermalinkText  string
	PermalinkClass string
}

// permalinkLabel returns the permalink text, or the pilcrow when none is set.
func (c TOCConfig) permalinkLabel() string {
	if c.PermalinkText == "" {
		return DefaultPermalinkText
	}
	return c.PermalinkText
}

// KindTOC is the ast.NodeKind of a table of contents block.
var KindTOC = ast.NewNodeKind("TOC")

// TOC is a table of contents block that replaced a marker paragraph.
type TOC struct {
	ast.BaseBlock
	Headings []headingInfo
}

// Dump implements ast.Node.
func (n *TOC) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// Kind implements ast.Node.
func (n *TOC) Kind() ast.NodeKind { return KindTOC }

// headingInfo represents a heading collected from the document.
type headingInfo struct {
	Level int    // 1-6
	ID    string // anchor ID
	Text  string // heading text content
}

type tocExtension struct {
	cfg TOCConfig
}

// NewTOC returns a goldmark extension that collects headings, adds the
// configured heading links and replaces marker paragraphs with a nested
// list of links.
func NewTOC(cfg TOCConfig) goldmark.Extender {
	return &tocExtension{cfg: cfg}
}

func (e *tocExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&tocTransformer{cfg: e.cfg}, 100),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&tocRenderer{cfg: e.cfg}, 100),
	))
}

type tocTransformer struct {
	cfg TOCConfig
}

// Transform walks the document once, then edits the tree. Nodes are not
// mutated during the walk.
func (t *tocTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()

	var (
		headings []*ast.Heading
		markers  []*ast.Paragraph
	)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			headings = append(headings, node)
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if t.cfg.Marker != "" && isMarker(node, source, t.cfg.Marker) {
				markers = append(markers, node)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	infos := make([]headingInfo, 0, len(headings))
	for _, h := range headings {
		id := headingID(h)
		infos = append(infos, headingInfo{
			Level: h.Level,
			ID:    id,
			Text:  strings.TrimSpace(nodeText(h, source)),
		})
		if id == "" {
			continue
		}
		if t.cfg.AnchorLink {
			wrapInAnchor(h, id, t.cfg.AnchorLinkClass)
		}
		if t.cfg.Permalink {
			appendPermalink(h, id, t.cfg.PermalinkClass, t.cfg.permalinkLabel())
		}
	}

	for _, p := range markers {
		toc := &TOC{Headings: infos}
		p.Parent().ReplaceChild(p.Parent(), p, toc)
	}
}

// isMarker reports whether the paragraph consists of the marker text alone.
func isMarker(p *ast.Paragraph, source []byte, marker string) bool {
	lines := p.Lines()
	if lines.Len() != 1 {
		return false
	}
	seg := lines.At(0)
	return string(bytes.TrimSpace(seg.Value(source))) == marker
}

func headingID(h *ast.Heading) string {
	v, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	}
	return ""
}

// nodeText concatenates the text of n's descendants, dropping markup.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func wrapInAnchor(h *ast.Heading, id, class string) {
	link := ast.NewLink()
	link.Destination = []byte("#" + id)
	link.SetAttributeString("class", []byte(class))
	for c := h.FirstChild(); c != nil; {
		next := c.NextSibling()
		h.RemoveChild(h, c)
		link.AppendChild(link, c)
		c = next
	}
	h.AppendChild(h, link)
}

func appendPermalink(h *ast.Heading, id, class, label string) {
	link := ast.NewLink()
	link.Destination = []byte("#" + id)
	link.Title = []byte(permalinkTitle)
	link.SetAttributeString("class", []byte(class))
	link.AppendChild(link, ast.NewString([]byte(label)))
	h.AppendChild(h, link)
}

type tocRenderer struct {
	cfg TOCConfig
}

func (r *tocRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindTOC, r.renderTOC)
}

func (r *tocRenderer) renderTOC(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, err := w.WriteString(generateTOC(n.(*TOC).Headings, r.cfg))
	return ast.WalkSkipChildren, err
}

// tocDepth tracks nesting for TOC entries.
// Supports normalization (first heading becomes depth 1) and gap skipping.
type tocDepth struct {
	minLevelSeen int // for normalization (0 = not set)
	lastDepth    int // for tracking parent relationships
}

// next returns the effective nesting depth for the given heading level.
func (d *tocDepth) next(level int) int {
	if d.minLevelSeen == 0 {
		d.minLevelSeen = level
	}

	depth := level - d.minLevelSeen + 1
	if depth < 1 {
		depth = 1
	}

	// Handle gap skipping: if we jump levels, treat as direct child
	// E.g., H1 -> H3 becomes depth 1 -> depth 2 (not depth 3)
	if d.lastDepth > 0 && depth > d.lastDepth+1 {
		depth = d.lastDepth + 1
	}

	d.lastDepth = depth
	return depth
}

// generateTOC renders headings as nested <ul> lists inside a titled <div>.
func generateTOC(headings []headingInfo, cfg TOCConfig) string {
	var buf strings.Builder
	buf.WriteString(`<div class="`)
	buf.WriteString(html.EscapeString(cfg.TOCClass))
	buf.WriteString("\">\n")

	if cfg.Title != "" {
		buf.WriteString(`<span class="`)
		buf.WriteString(html.EscapeString(cfg.TitleClass))
		buf.WriteString(`">`)
		buf.WriteString(html.EscapeString(cfg.Title))
		buf.WriteString(`</span>`)
	}

	if len(headings) == 0 {
		buf.WriteString("<ul></ul>\n</div>\n")
		return buf.String()
	}

	tracker := &tocDepth{}
	depth := 0
	for _, h := range headings {
		d := tracker.next(h.Level)
		if d > depth {
			for ; depth < d; depth++ {
				buf.WriteString("<ul>\n")
			}
		} else {
			buf.WriteString("</li>\n")
			for ; depth > d; depth-- {
				buf.WriteString("</ul>\n</li>\n")
			}
		}

		buf.WriteString(`<li><a href="#`)
		buf.WriteString(html.EscapeString(h.ID))
		buf.WriteString(`">`)
		buf.WriteString(html.EscapeString(h.Text))
		buf.WriteString(`</a>`)
	}
	for ; depth > 0; depth-- {
		buf.WriteString("</li>\n</ul>\n")
	}

	buf.WriteString("</div>\n")
	return buf.String()
}
