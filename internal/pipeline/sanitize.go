package pipeline

import "github.com/microcosm-cc/bluemonday"

// Sanitizer removes scripts and unsafe markup from rendered HTML.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer returns a Sanitizer based on bluemonday's user generated
// content policy. The class and style attributes written by highlighting,
// admonitions and the table of contents are kept.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class", "style").Globally()
	p.AllowElements("div", "span")
	return &Sanitizer{policy: p}
}

// Sanitize returns the cleaned HTML.
func (s *Sanitizer) Sanitize(htmlContent string) string {
	return s.policy.Sanitize(htmlContent)
}
