// Package palette provides the semantic color system for the site UI.
package palette

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines the semantic colors the UI draws with.
// Every method returns an AdaptiveColor, so the active light/dark theme picks
// the variant; see Apply.
type Palette interface {
	// Brand colors
	Primary() lipgloss.AdaptiveColor   // Brand accent (highlight words, active tab)
	Secondary() lipgloss.AdaptiveColor // Links, secondary buttons
	Accent() lipgloss.AdaptiveColor    // Quote marks, core value initials

	// Status colors
	Error() lipgloss.AdaptiveColor
	Success() lipgloss.AdaptiveColor

	// Text colors
	Text() lipgloss.AdaptiveColor
	TextMuted() lipgloss.AdaptiveColor
	TextOnPrimary() lipgloss.AdaptiveColor // Text drawn over Primary

	// Surfaces
	Background() lipgloss.AdaptiveColor
	Surface() lipgloss.AdaptiveColor // Cards

	// Borders
	BorderNormal() lipgloss.AdaptiveColor
	BorderFocused() lipgloss.AdaptiveColor
}

// Registry maps names to palettes. It is created once at startup and
// passed to the UI; there is no package-level instance.
type Registry struct {
	mu       sync.RWMutex
	palettes map[string]Palette
	fallback string
}

// NewRegistry returns a registry holding the built-in palettes, with
// "agents" as the fallback.
func NewRegistry() *Registry {
	r := &Registry{palettes: make(map[string]Palette)}
	r.Register("agents", Agents{})
	r.Register("mono", Mono{})
	return r
}

// Register adds p under name. The first registered palette becomes the
// fallback for unknown names.
func (r *Registry) Register(name string, p Palette) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.palettes[name] = p
	if r.fallback == "" {
		r.fallback = name
	}
}

// Get returns the named palette, or the fallback and false when name is unknown.
func (r *Registry) Get(name string) (Palette, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.palettes[name]; ok {
		return p, true
	}
	return r.palettes[r.fallback], false
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.palettes))
	for name := range r.palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
