// theme/theme.go
package theme

// Info describes one discovered theme. Instances are built from a
// manifest during Scan and should be treated as read-only afterwards.
type Info struct {
	// Name is the human-readable display name.
	Name string `json:"name"`

	// Author identifies who made the theme.
	Author string `json:"author"`

	// Directory is the folder name declared in the manifest, lowercased.
	// It is the unique key the registry is addressed by.
	Directory string `json:"directory"`

	// Version is the theme version, if the manifest declares one.
	Version string `json:"version,omitempty"`

	// Description is an optional free-form summary.
	Description string `json:"description,omitempty"`

	// Parent names the Directory key of the theme this one inherits
	// views from. Empty means the theme stands alone.
	Parent string `json:"parent,omitempty"`

	// Path is the theme's views directory: <base>/<directory>/views.
	Path string `json:"path"`
}

// String implements fmt.Stringer.
func (t Info) String() string {
	return "Theme: " + t.Name
}
