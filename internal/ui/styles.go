package ui

import (
	"strings"

	"agents/internal/theme"
	"agents/internal/ui/palette"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// Styles holds every style the views use. All colors are adaptive, so a
// theme switch needs no rebuild.
type Styles struct {
	Header       lipgloss.Style
	Brand        lipgloss.Style
	NavItem      lipgloss.Style
	NavActive    lipgloss.Style
	ThemeBadge   lipgloss.Style
	Title        lipgloss.Style
	Highlight    lipgloss.Style
	Text         lipgloss.Style
	Muted        lipgloss.Style
	Accent       lipgloss.Style
	Card         lipgloss.Style
	CardActive   lipgloss.Style
	CardDim      lipgloss.Style
	Chip         lipgloss.Style
	ChipActive   lipgloss.Style
	Selected     lipgloss.Style
	Button       lipgloss.Style
	Footer       lipgloss.Style
	Toast        lipgloss.Style
	Error        lipgloss.Style
	HelpKey      lipgloss.Style
	HelpDesc     lipgloss.Style
	HelpSection  lipgloss.Style
	HelpBox      lipgloss.Style
	SectionBreak lipgloss.Style
}

// NewStyles builds styles from p.
func NewStyles(p palette.Palette) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(p.Text()).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.BorderNormal()),
		Brand: lipgloss.NewStyle().
			Foreground(p.Primary()).
			Bold(true).
			Padding(0, 1),
		NavItem: lipgloss.NewStyle().
			Foreground(p.TextMuted()).
			Padding(0, 1),
		NavActive: lipgloss.NewStyle().
			Foreground(p.TextOnPrimary()).
			Background(p.Primary()).
			Bold(true).
			Padding(0, 1),
		ThemeBadge: lipgloss.NewStyle().
			Foreground(p.Secondary()).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(p.Text()).
			Bold(true),
		Highlight: lipgloss.NewStyle().
			Foreground(p.Primary()).
			Bold(true).
			Italic(true),
		Text:   lipgloss.NewStyle().Foreground(p.Text()),
		Muted:  lipgloss.NewStyle().Foreground(p.TextMuted()),
		Accent: lipgloss.NewStyle().Foreground(p.Accent()).Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.BorderNormal()).
			Padding(0, 1),
		CardActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.BorderFocused()).
			Padding(0, 1),
		CardDim: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.BorderNormal()).
			Foreground(p.TextMuted()).
			Faint(true).
			Padding(0, 1),
		Chip: lipgloss.NewStyle().
			Foreground(p.TextMuted()).
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.BorderNormal()).
			Padding(0, 1),
		ChipActive: lipgloss.NewStyle().
			Foreground(p.TextOnPrimary()).
			Background(p.Primary()).
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Primary()).
			Bold(true).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Foreground(p.Primary()).
			Bold(true),
		Button: lipgloss.NewStyle().
			Foreground(p.TextOnPrimary()).
			Background(p.Primary()).
			Bold(true).
			Padding(0, 2),
		Footer: lipgloss.NewStyle().
			Foreground(p.TextMuted()).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(p.BorderNormal()),
		Toast: lipgloss.NewStyle().
			Foreground(p.Success()).
			Bold(true),
		Error:       lipgloss.NewStyle().Foreground(p.Error()).Bold(true),
		HelpKey:     lipgloss.NewStyle().Foreground(p.Primary()).Bold(true),
		HelpDesc:    lipgloss.NewStyle().Foreground(p.Text()),
		HelpSection: lipgloss.NewStyle().Foreground(p.Secondary()).Bold(true),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.BorderFocused()).
			Padding(1, 2),
		SectionBreak: lipgloss.NewStyle().MarginTop(1),
	}
}

// themeIcon is the nav toggle glyph for the active theme.
func themeIcon(r theme.Resolved) string {
	if r.IsDark() {
		return "☾"
	}
	return "☀"
}

// buildMarkdownRenderer returns a glamour renderer matching the resolved
// theme, falling back to plain wrapping if glamour cannot be built.
func buildMarkdownRenderer(resolved theme.Resolved, width int) func(string) string {
	if width < 20 {
		width = 20
	}
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := "light"
	if resolved.IsDark() {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
