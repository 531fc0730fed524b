package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	md2json "github.com/alnah/go-md2json"
	"github.com/alnah/go-md2json/internal/config"
	"github.com/alnah/go-md2json/internal/dateutil"
	"github.com/alnah/go-md2json/internal/fileutil"
	"github.com/alnah/go-md2json/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrTooManyArgs    = errors.New("too many arguments")
	ErrInvalidFlags   = errors.New("invalid flags")
	ErrNoOptions      = errors.New("no options file specified")
	ErrReadInput      = errors.New("failed to read input")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrUnknownFormat  = errors.New("unknown output format")
	ErrUnknownStyle   = errors.New("unknown highlight style")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// Output formats.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// stdinArg selects standard input as the document source.
const stdinArg = "-"

// runRender converts one document and writes the result.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printRenderUsage(env.Stdout)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	input, err := resolveInput(positional)
	if err != nil {
		return err
	}

	cfg, err := loadOptions(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	opts := toRenderOptions(cfg)
	if err := checkOptions(opts); err != nil {
		return err
	}

	format, err := resolveFormat(flags.output.format, envCfg.Format)
	if err != nil {
		return err
	}
	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	doc, err := readInput(input, env.Stdin)
	if err != nil {
		return err
	}

	start := env.Now()
	result, err := md2json.NewProcessor(md2json.WithTimeout(timeout)).Process(ctx, doc, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(input), err)
	}
	elapsed := env.Now().Sub(start)

	out, err := encodeResult(result, format, flags.output.pretty)
	if err != nil {
		return err
	}
	if err := writeOutput(out, flags.output.path, env.Stdout); err != nil {
		return err
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "%s: %d metadata keys, %d bytes of HTML (%v)\n",
			displayName(input), result.Metadata.Len(), len(result.Content), elapsed.Round(time.Microsecond))
	}
	if !flags.common.quiet && isFileOutput(flags.output.path) {
		fmt.Fprintf(env.Stderr, "Created %s\n", flags.output.path)
	}
	return nil
}

// resolveInput returns the single document argument.
func resolveInput(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", ErrNoInput
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: expected one input, got %d", ErrTooManyArgs, len(args))
	}
}

// loadOptions loads the options file named by the flag or, failing that,
// by MD2JSON_CONFIG.
func loadOptions(flagConfig string, env *envSettings) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}
	if name == "" {
		return nil, ErrNoOptions
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading options: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	if flags.overrides.style != "" {
		cfg.Highlight.Style = flags.overrides.style
	}
	if flags.overrides.dateFormat != "" {
		cfg.DateFormat = flags.overrides.dateFormat
	}
	if flags.overrides.sanitize {
		cfg.Sanitize = true
	}
}

// toRenderOptions converts the options file into library options.
func toRenderOptions(cfg *config.Config) *md2json.RenderOptions {
	return &md2json.RenderOptions{
		TOC: &md2json.TOCOptions{
			Marker:          cfg.TOC.Marker,
			Title:           cfg.TOC.Title,
			TitleClass:      cfg.TOC.TitleClass,
			TOCClass:        cfg.TOC.TOCClass,
			AnchorLink:      cfg.TOC.AnchorLink,
			AnchorLinkClass: cfg.TOC.AnchorLinkClass,
			Permalink: md2json.Permalink{
				Enabled: cfg.TOC.Permalink.Enabled,
				Text:    cfg.TOC.Permalink.Text,
			},
			PermalinkClass: cfg.TOC.PermalinkClass,
		},
		Highlight:  &md2json.HighlightOptions{Style: cfg.Highlight.Style},
		DateFormat: cfg.DateFormat,
		Sanitize:   cfg.Sanitize,
	}
}

// checkOptions reports the option errors the CLI can give hints for, then
// runs full validation.
func checkOptions(opts *md2json.RenderOptions) error {
	if !md2json.HasStyle(opts.Highlight.Style) {
		return fmt.Errorf("%w: %w %q", md2json.ErrInvalidConfiguration, ErrUnknownStyle, opts.Highlight.Style)
	}
	if _, err := dateutil.ResolveFormat(opts.DateFormat); err != nil {
		return fmt.Errorf("%w: %w", md2json.ErrInvalidConfiguration, err)
	}
	return opts.Validate()
}

// resolveFormat picks the output format: flag, then env var, then JSON.
func resolveFormat(flagFormat, envFormat string) (string, error) {
	format := flagFormat
	if format == "" {
		format = envFormat
	}
	switch strings.ToLower(format) {
	case "", formatJSON:
		return formatJSON, nil
	case formatYAML, "yml":
		return formatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (use json or yaml)", ErrUnknownFormat, format)
	}
}

// resolveTimeout picks the render timeout: flag, then env var, then none.
func resolveTimeout(flagTimeout string, envTimeout time.Duration) (time.Duration, error) {
	if flagTimeout == "" {
		return envTimeout, nil
	}
	d, err := time.ParseDuration(flagTimeout)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, flagTimeout)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, flagTimeout)
	}
	return d, nil
}

// readInput reads the document from a file or, for "-", from stdin.
func readInput(input string, stdin io.Reader) (string, error) {
	if input == stdinArg {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
		}
		return string(data), nil
	}

	if err := fileutil.ValidateInputPath(input); err != nil {
		return "", err
	}
	data, err := os.ReadFile(input) // #nosec G304 -- input path is user-provided
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return string(data), nil
}

// encodeResult serializes result. JSON keeps <, > and & unescaped so the
// HTML content stays readable.
func encodeResult(result *md2json.Result, format string, pretty bool) ([]byte, error) {
	switch format {
	case formatYAML:
		out, err := yamlutil.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
		return out, nil
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if pretty {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(result); err != nil {
			return nil, fmt.Errorf("encoding JSON: %w", err)
		}
		return buf.Bytes(), nil
	}
}

// writeOutput writes data to path atomically, or to stdout.
func writeOutput(data []byte, path string, stdout io.Writer) error {
	if !isFileOutput(path) {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}
	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

func isFileOutput(path string) bool {
	return path != "" && path != stdinArg
}

func displayName(input string) string {
	if input == stdinArg {
		return "<stdin>"
	}
	return filepath.Base(input)
}
