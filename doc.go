// Package md2json converts a Markdown document with an optional YAML front
// matter block into its metadata and rendered HTML.
//
// # Quick Start
//
//	opts := &md2json.RenderOptions{
//	    TOC:        &md2json.TOCOptions{Marker: "[TOC]"},
//	    Highlight:  &md2json.HighlightOptions{Style: "monokai"},
//	    DateFormat: "%d %B %Y",
//	}
//
//	result, err := md2json.Process(ctx, "---\ntitle: Hi\n---\n# Hello", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, _ := json.Marshal(result) // {"metadata":{"title":"Hi"},"content":"<h1 ..."}
//
// # Pipeline
//
// Process runs these stages:
//
//  1. Options validation (nothing is rendered for invalid options)
//  2. Line normalization and front matter extraction (the block never
//     reaches the Markdown renderer)
//  3. Markdown to HTML via goldmark: tables, footnotes, table of contents,
//     fenced and inline code highlighting (chroma), admonitions, and
//     automatic links
//  4. Optional HTML sanitization (bluemonday)
//  5. Date normalization: when the metadata holds a "date" timestamp,
//     dateEpoch, dateRFC822 and dateW3C are added, then every top-level
//     timestamp is formatted with RenderOptions.DateFormat
//
// # Metadata
//
// Metadata is an ordered map of tagged values (see Value). Keys keep the
// order of the front matter; derived date fields follow it. Timestamps
// without a zone are read as UTC.
//
// # Errors
//
// Errors wrap one of ErrInvalidConfiguration, ErrMalformedFrontmatter or
// ErrRendererFailure; test with errors.Is. No partial Result is returned.
package md2json
