package md2json

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/alecthomas/chroma/v2/styles"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-md2json/internal/config"
	"github.com/alnah/go-md2json/internal/dateutil"
	"github.com/alnah/go-md2json/internal/meta"
	"github.com/alnah/go-md2json/internal/pipeline"
)

// Value is a metadata value: null, string, integer, float, boolean,
// timestamp, list or mapping.
type Value = meta.Value

// Map is an insertion-ordered metadata mapping.
type Map = meta.Map

// Field length limits, shared with options files.
const (
	MaxMarkerLength    = config.MaxMarkerLength
	MaxTitleLength     = config.MaxTOCTitleLength
	MaxClassLength     = config.MaxClassLength
	MaxPermalinkLength = config.MaxPermalinkLength
)

// cssClassList matches one or more space-separated CSS class names.
var cssClassList = regexp.MustCompile(`^[A-Za-z_][\w-]*( +[A-Za-z_][\w-]*)*$`)

// RenderOptions configures one conversion. TOC, Highlight and DateFormat
// are required.
type RenderOptions struct {
	TOC        *TOCOptions       `json:"toc"`
	Highlight  *HighlightOptions `json:"highlight"`
	DateFormat string            `json:"dateFormat"` // strftime pattern or preset name
	Sanitize   bool              `json:"sanitize"`
}

// Validate checks that all required options are present and well formed.
// Errors wrap ErrInvalidConfiguration.
func (o *RenderOptions) Validate() error {
	if o == nil {
		return fmt.Errorf("%w: options are required", ErrInvalidConfiguration)
	}
	err := validation.ValidateStruct(o,
		validation.Field(&o.TOC, validation.Required),
		validation.Field(&o.Highlight, validation.Required),
		validation.Field(&o.DateFormat, validation.Required, validation.By(validDateFormat)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return nil
}

func validDateFormat(value any) error {
	s, _ := value.(string)
	if _, err := dateutil.ResolveFormat(s); err != nil {
		return validation.NewError("validation_date_format", err.Error())
	}
	return nil
}

// TOCOptions configures the table of contents and heading links.
type TOCOptions struct {
	Marker          string    `json:"marker"` // paragraph replaced by the TOC; empty disables
	Title           string    `json:"title"`
	TitleClass      string    `json:"titleClass"`
	TOCClass        string    `json:"tocClass"`
	AnchorLink      bool      `json:"anchorlink"`
	AnchorLinkClass string    `json:"anchorlinkClass"`
	Permalink       Permalink `json:"permalink"`
	PermalinkClass  string    `json:"permalinkClass"`
}

// Validate implements validation.Validatable.
func (t TOCOptions) Validate() error {
	class := []validation.Rule{validation.Length(0, MaxClassLength), validation.Match(cssClassList)}
	return validation.ValidateStruct(&t,
		validation.Field(&t.Marker, validation.Length(0, MaxMarkerLength)),
		validation.Field(&t.Title, validation.Length(0, MaxTitleLength)),
		validation.Field(&t.TitleClass, class...),
		validation.Field(&t.TOCClass, class...),
		validation.Field(&t.AnchorLinkClass, class...),
		validation.Field(&t.Permalink),
		validation.Field(&t.PermalinkClass, class...),
	)
}

// Permalink controls the link appended to each heading. In JSON it is
// either a boolean or the link text.
type Permalink struct {
	Enabled bool
	Text    string // empty uses the default pilcrow
}

// Validate implements validation.Validatable.
func (p Permalink) Validate() error {
	return validation.Validate(p.Text, validation.Length(0, MaxPermalinkLength))
}

// MarshalJSON writes the boolean form unless custom text is set.
func (p Permalink) MarshalJSON() ([]byte, error) {
	if p.Enabled && p.Text != "" {
		return json.Marshal(p.Text)
	}
	return json.Marshal(p.Enabled)
}

// UnmarshalJSON accepts a boolean or a string. A non-empty string enables
// permalinks with that text.
func (p *Permalink) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*p = Permalink{}
	case bool:
		*p = Permalink{Enabled: x}
	case string:
		*p = Permalink{Enabled: x != "", Text: x}
	default:
		return fmt.Errorf("permalink: expected boolean or string, got %T", v)
	}
	return nil
}

// HighlightOptions configures code highlighting.
type HighlightOptions struct {
	Style string `json:"style"` // chroma style name, see Styles
}

// Validate implements validation.Validatable.
func (h HighlightOptions) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Style, validation.Required, validation.By(knownStyle)),
	)
}

func knownStyle(value any) error {
	s, _ := value.(string)
	if !HasStyle(s) {
		return validation.NewError("validation_unknown_style", fmt.Sprintf("unknown style %q", s))
	}
	return nil
}

// HasStyle reports whether name is a registered highlight style.
func HasStyle(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

// Styles returns the registered highlight style names, sorted.
func Styles() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// renderConfig maps the public options onto the renderer configuration.
func (o *RenderOptions) renderConfig() pipeline.RenderConfig {
	return pipeline.RenderConfig{
		TOC: pipeline.TOCConfig{
			Marker:          o.TOC.Marker,
			Title:           o.TOC.Title,
			TitleClass:      o.TOC.TitleClass,
			TOCClass:        o.TOC.TOCClass,
			AnchorLink:      o.TOC.AnchorLink,
			AnchorLinkClass: o.TOC.AnchorLinkClass,
			Permalink:       o.TOC.Permalink.Enabled,
			PermalinkText:   o.TOC.Permalink.Text,
			PermalinkClass:  o.TOC.PermalinkClass,
		},
		HighlightStyle: o.Highlight.Style,
		Sanitize:       o.Sanitize,
	}
}

// Result is the output of a conversion.
type Result struct {
	Metadata *Map   `json:"metadata" yaml:"metadata"`
	Content  string `json:"content" yaml:"content"`
}

// Option configures a Processor.
type Option func(*Processor)

// WithTimeout bounds the time spent rendering one document.
// Zero or negative means no limit.
func WithTimeout(d time.Duration) Option {
	return func(p *Processor) {
		p.timeout = d
	}
}
