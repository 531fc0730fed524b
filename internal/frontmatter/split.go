// Package frontmatter separates a leading YAML metadata block from a
// Markdown document and parses it into typed metadata.
//
// A block opens when the first line, with trailing spaces removed, is exactly
// "---". It closes at the first later line that, with trailing spaces
// removed, is "---" or "...". Leading whitespace is significant: an indented
// delimiter is ordinary content.
package frontmatter

import "strings"

// Delimiters recognized around the metadata block.
const (
	OpenDelimiter      = "---"
	CloseDelimiter     = "---"
	AltCloseDelimiter  = "..."
	delimiterTrimChars = " "
)

// Split separates lines into the metadata block and the content lines.
//
// Without an opening delimiter, Split returns (nil, lines) unchanged. The
// delimiter lines themselves belong to neither result. A block that is
// never closed consumes every remaining line, leaving no content.
func Split(lines []string) (metaLines, contentLines []string) {
	if !HasFrontmatter(lines) {
		return nil, lines
	}

	rest := lines[1:]
	metaLines = make([]string, 0, len(rest))
	for i, line := range rest {
		if isCloseDelimiter(line) {
			return metaLines, rest[i+1:]
		}
		metaLines = append(metaLines, line)
	}

	// Unterminated block: everything after the opener is metadata.
	return metaLines, []string{}
}

// HasFrontmatter reports whether lines open with a metadata block.
func HasFrontmatter(lines []string) bool {
	return len(lines) > 0 && trimDelimiter(lines[0]) == OpenDelimiter
}

func isCloseDelimiter(line string) bool {
	switch trimDelimiter(line) {
	case CloseDelimiter, AltCloseDelimiter:
		return true
	}
	return false
}

// trimDelimiter removes trailing spaces only; tabs and leading spaces are kept.
func trimDelimiter(line string) string {
	return strings.TrimRight(line, delimiterTrimChars)
}
