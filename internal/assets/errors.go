package assets

import "errors"

// Sentinel errors for preset operations.
var (
	// ErrPresetNotFound indicates no built-in preset has the requested name.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrInvalidAssetName indicates the name contains path separators or dots.
	ErrInvalidAssetName = errors.New("invalid asset name")
)
