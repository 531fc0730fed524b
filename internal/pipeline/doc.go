// Package pipeline implements the Markdown-to-HTML rendering stage.
//
// A document goes through these steps:
//   - Line ending normalization and splitting into lines
//   - Line preprocessors, starting with frontmatter extraction
//   - Markdown to HTML conversion via Goldmark with tables, footnotes,
//     linkify, fenced and inline code highlighting, admonitions and a
//     marker-driven table of contents
//   - Optional HTML sanitization
//
// Preprocessors report side results through a Session created for each
// call, so a converter never carries state from one document to the next.
package pipeline
