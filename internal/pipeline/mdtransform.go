package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/go-md2json/internal/frontmatter"
	"github.com/alnah/go-md2json/internal/meta"
)

// Line ending normalization.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Session carries per-document results produced while preprocessing.
// A new Session is created for every conversion.
type Session struct {
	Metadata *meta.Map
}

// NewSession returns a Session with empty metadata.
func NewSession() *Session {
	return &Session{Metadata: meta.NewMap()}
}

// Preprocessor transforms document lines before Markdown parsing.
type Preprocessor interface {
	Run(lines []string, s *Session) ([]string, error)
}

// FrontmatterPreprocessor removes a leading YAML block from the lines and
// stores its parsed contents in the Session. Documents without a block
// pass through unchanged.
type FrontmatterPreprocessor struct{}

// Run implements Preprocessor.
func (FrontmatterPreprocessor) Run(lines []string, s *Session) ([]string, error) {
	metaLines, content := frontmatter.Split(lines)
	if metaLines == nil {
		return content, nil
	}

	m, err := frontmatter.Parse(metaLines)
	if err != nil {
		return nil, err
	}
	s.Metadata = m
	return content, nil
}

// DefaultPreprocessors returns the preprocessors every conversion runs, in
// order. Frontmatter extraction is always first.
func DefaultPreprocessors() []Preprocessor {
	return []Preprocessor{FrontmatterPreprocessor{}}
}

// SplitLines normalizes line endings and splits content into lines.
func SplitLines(content string) []string {
	return strings.Split(normalizeLineEndings(content), "\n")
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

func runPreprocessors(pps []Preprocessor, lines []string, s *Session) ([]string, error) {
	var err error
	for _, pp := range pps {
		lines, err = pp.Run(lines, s)
		if err != nil {
			return nil, err
		}
	}
	return lines, nil
}
