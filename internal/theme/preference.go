// Package theme owns the light/dark/system preference and the concrete
// light/dark value derived from it.
package theme

import "strings"

// StorageKey names the single persisted slot holding the preference.
// Changing it orphans every saved preference.
const StorageKey = "theme.preference"

// Preference is the user's theme choice.
type Preference string

const (
	PreferenceLight  Preference = "light"
	PreferenceDark   Preference = "dark"
	PreferenceSystem Preference = "system"
)

// Preferences lists the valid preferences in toggle order.
var Preferences = []Preference{PreferenceLight, PreferenceDark, PreferenceSystem}

// ParsePreference accepts only the literal stored forms. Case and
// surrounding whitespace are not forgiven: anything else is reported as invalid.
func ParsePreference(s string) (Preference, bool) {
	p := Preference(s)
	if !p.Valid() {
		return "", false
	}
	return p, true
}

// Valid reports whether p is one of light, dark or system.
func (p Preference) Valid() bool {
	switch p {
	case PreferenceLight, PreferenceDark, PreferenceSystem:
		return true
	}
	return false
}

// Next returns the preference that follows p in toggle order.
// Invalid values restart the cycle at light.
func (p Preference) Next() Preference {
	for i, candidate := range Preferences {
		if candidate == p {
			return Preferences[(i+1)%len(Preferences)]
		}
	}
	return PreferenceLight
}

func (p Preference) String() string { return string(p) }

// Label is the capitalized form shown in menus.
func (p Preference) Label() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// Resolved is the concrete theme applied to the rendering surface.
type Resolved string

const (
	Light Resolved = "light"
	Dark  Resolved = "dark"
)

func (r Resolved) String() string { return string(r) }

// IsDark reports whether r is the dark theme.
func (r Resolved) IsDark() bool { return r == Dark }

// Resolve derives the concrete theme. The OS signal only matters for system.
func Resolve(p Preference, prefersDark bool) Resolved {
	switch p {
	case PreferenceLight:
		return Light
	case PreferenceDark:
		return Dark
	}
	if prefersDark {
		return Dark
	}
	return Light
}
