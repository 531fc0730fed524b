package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// overrideFlags holds flags that override options file values.
type overrideFlags struct {
	dateFormat string
	style      string
	sanitize   bool
}

// outputFlags holds output encoding flags.
type outputFlags struct {
	path   string // file path; empty or "-" writes to stdout
	format string // json or yaml
	pretty bool   // indent JSON
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common    commonFlags
	overrides overrideFlags
	output    outputFlags
	timeout   string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "options file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addOverrideFlags adds option override flags to a FlagSet.
func addOverrideFlags(fs *flag.FlagSet, f *overrideFlags) {
	fs.StringVar(&f.dateFormat, "date-format", "", "strftime pattern or preset (iso, rfc822, w3c, long)")
	fs.StringVar(&f.style, "style", "", "code highlight style")
	fs.BoolVar(&f.sanitize, "sanitize", false, "sanitize rendered HTML")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.path, "output", "o", "", "output file (default: stdout)")
	fs.StringVarP(&f.format, "format", "f", "", "output format: json, yaml (default: json)")
	fs.BoolVar(&f.pretty, "pretty", false, "indent JSON output")
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	f := &renderFlags{}

	fs.StringVarP(&f.timeout, "timeout", "t", "", "render timeout (e.g., 5s, 1m)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addOverrideFlags(fs, &f.overrides)
	addOutputFlags(fs, &f.output)

	// Errors are reported by the caller, which also handles --help
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
