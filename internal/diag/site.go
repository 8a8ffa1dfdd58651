package diag

import "strings"

// Site locates a diagnostic inside a declaration. Definitions come from
// manifests and API calls rather than source text, so a site is a path
// of declaration segments (manifest file, type, attach entry) instead
// of a byte span.
type Site struct {
	// Manifest is the manifest path; empty for API-made declarations.
	Manifest string
	// Type is the declaring type's name.
	Type string
	// Detail narrows the site further: an attach entry, a family
	// instance, a primitive key.
	Detail string
}

// NoSite is the zero Site, used when a diagnostic has no location.
var NoSite = Site{}

func (s Site) IsZero() bool { return s == NoSite }

func (s Site) String() string {
	parts := make([]string, 0, 3)
	if s.Manifest != "" {
		parts = append(parts, s.Manifest)
	}
	if s.Type != "" {
		parts = append(parts, "type "+s.Type)
	}
	if s.Detail != "" {
		parts = append(parts, s.Detail)
	}
	if len(parts) == 0 {
		return "<no site>"
	}
	return strings.Join(parts, ": ")
}

// In returns a copy of the site narrowed to detail.
func (s Site) In(detail string) Site {
	s.Detail = detail
	return s
}
