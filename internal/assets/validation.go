package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that name can be used as a bare file stem.
// Empty names and names containing separators or dots are rejected.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
