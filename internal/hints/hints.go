// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// userConfigMarker identifies the per-user config directory among searched paths.
const userConfigMarker = ".config/go-md2json"

// ForConfigNotFound returns hints for options file not found errors.
// Suggests --config flag, creating a file in ~/.config/go-md2json/, and
// the built-in presets.
func ForConfigNotFound(searchedPaths, presets []string) string {
	hint := "use --config /path/to/options.json"

	// Find a user config path to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, userConfigMarker) {
			hint += " or create " + p
			break
		}
	}

	if len(presets) == 0 {
		return format(hint)
	}
	return formatHints([]string{hint, "built-in presets: " + strings.Join(presets, ", ")})
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForUnknownStyle returns hints for unknown highlight style errors.
func ForUnknownStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return formatHints([]string{
		"run 'md2json styles' to list styles",
		"available: " + strings.Join(available, ", "),
	})
}

// ForMalformedFrontmatter returns hints for front matter that is not a YAML mapping.
func ForMalformedFrontmatter() string {
	return formatHints([]string{
		"front matter must be a YAML mapping between '---' lines",
		"quote values containing ':' or '#'",
	})
}

// ForDateFormat returns hints for rejected date format patterns.
func ForDateFormat(presets []string) string {
	hint := "use strftime directives such as %Y-%m-%d"
	if len(presets) > 0 {
		hint += " or a preset: " + strings.Join(presets, ", ")
	}
	return format(hint)
}

// ForNoInput returns a hint when no document argument is given.
func ForNoInput() string {
	return format("pass a file path or pipe a document: cat post.md | md2json render -")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
