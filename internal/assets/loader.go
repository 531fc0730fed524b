package assets

// Preset is a built-in options file.
type Preset struct {
	Name string
	Ext  string // ".json" or ".yaml", selects the parser
	Data []byte
}

// Loader defines the contract for loading option presets.
type Loader interface {
	// LoadPreset loads a preset by name (without extension).
	// Returns ErrPresetNotFound if the preset doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadPreset(name string) (*Preset, error)

	// Presets lists the available preset names, sorted.
	Presets() []string
}
