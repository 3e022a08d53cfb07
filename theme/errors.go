// theme/errors.go
package theme

import (
	"errors"
	"fmt"
)

// Common theme registry errors.
var (
	// ErrThemeNotFound is returned when a directory key is not registered.
	ErrThemeNotFound = errors.New("theme: theme not found")

	// ErrNoActiveTheme is returned by Active when no theme has been activated.
	ErrNoActiveTheme = errors.New("theme: no active theme")

	// errNoManifest marks a folder without a manifest; Scan skips it silently.
	errNoManifest = errors.New("theme: no manifest")
)

// AttributeError reports a manifest that is missing one of its required
// attributes (name, author or directory). A blank value counts as missing.
type AttributeError struct {
	// Manifest is the path of the offending manifest file.
	Manifest string

	// Attribute is the required key that is missing.
	Attribute string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("theme: manifest %s is missing required attribute %q", e.Manifest, e.Attribute)
}
