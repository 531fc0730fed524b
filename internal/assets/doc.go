// Package assets provides the built-in render option presets.
//
// # Loader Architecture
//
//	Loader (interface)
//	    │
//	    └── EmbeddedLoader    - presets compiled in with go:embed
//
// Presets are ordinary options files stored under presets/ as
// {name}.json or {name}.yaml. The config package falls back to them when
// a name is not found on disk, so "md2json render post.md -c blog" works
// without any setup. A file of the same name in the working directory or
// the user config directory takes precedence.
//
// # Security
//
// Preset names are validated before lookup: separators and dots are
// rejected, so a name can never reach outside presets/.
package assets
