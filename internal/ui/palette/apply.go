package palette

import (
	"agents/internal/theme"

	"github.com/charmbracelet/lipgloss"
)

// Apply makes every AdaptiveColor render its variant for resolved. This is
// the terminal counterpart of toggling a root light/dark class.
func Apply(resolved theme.Resolved) {
	lipgloss.SetHasDarkBackground(resolved.IsDark())
}

// Applier adapts Apply for theme.WithApplier.
var Applier theme.Applier = theme.ApplierFunc(Apply)

// Pick returns the variant of c that is active under resolved.
func Pick(c lipgloss.AdaptiveColor, resolved theme.Resolved) lipgloss.Color {
	if resolved.IsDark() {
		return lipgloss.Color(c.Dark)
	}
	return lipgloss.Color(c.Light)
}
