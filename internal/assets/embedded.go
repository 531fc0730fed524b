package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed presets/*
var presets embed.FS

// presetExtensions are tried in order for each name.
var presetExtensions = []string{".json", ".yaml"}

// EmbeddedLoader loads presets compiled into the binary.
// Implements Loader interface.
type EmbeddedLoader struct {
	fsys fs.FS
}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{fsys: presets}
}

// LoadPreset loads a preset by name.
func (e *EmbeddedLoader) LoadPreset(name string) (*Preset, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	for _, ext := range presetExtensions {
		data, err := fs.ReadFile(e.fsys, path.Join("presets", name+ext))
		if err == nil {
			return &Preset{Name: name, Ext: ext, Data: data}, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
}

// Presets lists the embedded preset names, sorted.
func (e *EmbeddedLoader) Presets() []string {
	entries, err := fs.ReadDir(e.fsys, "presets")
	if err != nil {
		return nil
	}
	seen := make(map[string]bool, len(entries))
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))
		if entry.IsDir() || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
