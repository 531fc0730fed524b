package md2json

import (
	"context"
	"fmt"
	"time"

	"github.com/alnah/go-md2json/internal/dateutil"
	"github.com/alnah/go-md2json/internal/meta"
	"github.com/alnah/go-md2json/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.Preprocessor  = pipeline.FrontmatterPreprocessor{}
)

// Processor renders documents and normalizes their metadata.
// A Processor holds no per-document state and is safe for concurrent use.
type Processor struct {
	timeout      time.Duration
	newConverter func(pipeline.RenderConfig) pipeline.HTMLConverter
}

// NewProcessor creates a Processor. Use options to customize behavior
// (e.g., WithTimeout).
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		newConverter: func(cfg pipeline.RenderConfig) pipeline.HTMLConverter {
			return pipeline.NewGoldmarkConverter(cfg)
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process converts document into metadata and HTML content.
//
// opts is validated before anything is rendered. When the metadata holds a
// timestamp under "date", dateEpoch, dateRFC822 and dateW3C are derived
// from it; then every top-level timestamp is formatted with opts.DateFormat.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (p *Processor) Process(ctx context.Context, document string, opts *RenderOptions) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: internal error: %v", ErrRendererFailure, r)
		}
	}()

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	format, err := dateutil.ResolveFormat(opts.DateFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	rendered, err := p.newConverter(opts.renderConfig()).Convert(ctx, document)
	if err != nil {
		return nil, fmt.Errorf("converting document: %w", err)
	}

	metadata := rendered.Metadata
	if metadata == nil {
		metadata = meta.NewMap()
	}
	normalizeDates(metadata, format)

	return &Result{Metadata: metadata, Content: rendered.HTML}, nil
}

// Process converts document with a default Processor.
func Process(ctx context.Context, document string, opts *RenderOptions) (*Result, error) {
	return NewProcessor().Process(ctx, document, opts)
}
