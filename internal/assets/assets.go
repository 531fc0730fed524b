package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadPreset loads a built-in preset by name using the default loader.
// Returns ErrPresetNotFound if the preset does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or dots.
func LoadPreset(name string) (*Preset, error) {
	return defaultLoader.LoadPreset(name)
}

// Presets lists the built-in preset names.
func Presets() []string {
	return defaultLoader.Presets()
}
