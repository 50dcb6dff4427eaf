package palette

import "github.com/charmbracelet/lipgloss"

// AGENTS brand colors. The yellow is the site's signature highlight; the
// light variants are darkened so they stay legible on white.
var agents = struct {
	Yellow      string
	YellowDeep  string
	Navy        string
	NavyPanel   string
	Ink         string
	Paper       string
	PaperPanel  string
	Fog         string
	Slate       string
	SkyDark     string
	SkyLight    string
	RedDark     string
	RedLight    string
	GreenDark   string
	GreenLight  string
	BorderDark  string
	BorderLight string
}{
	Yellow:      "#FFE500",
	YellowDeep:  "#A68A00",
	Navy:        "#0B1220",
	NavyPanel:   "#151E2E",
	Ink:         "#111827",
	Paper:       "#FFFFFF",
	PaperPanel:  "#F3F4F6",
	Fog:         "#E5E7EB",
	Slate:       "#6B7280",
	SkyDark:     "#60A5FA",
	SkyLight:    "#1D4ED8",
	RedDark:     "#F87171",
	RedLight:    "#B91C1C",
	GreenDark:   "#34D399",
	GreenLight:  "#047857",
	BorderDark:  "#2A3548",
	BorderLight: "#D1D5DB",
}

// Agents is the brand palette.
type Agents struct{}

func (Agents) Primary() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: agents.YellowDeep, Dark: agents.Yellow}
}

func (Agents) Secondary() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: agents.SkyLight, Dark: agents.SkyDark}
}

func (Agents) Accent() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: agents.YellowDeep, Dark: agents.Yellow}
}

func (Agents) Error() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: agents.RedLight, Dark: agents.RedDark}
}

func (Agents) Success() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: agents.GreenLight, Dark: agents.GreenDark}
}

func (Agents) Text() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: agents.Ink, Dark: agents.Fog}
}

func (Agents) TextMuted() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: agents.Slate, Dark: "#9CA3AF"}
}

func (Agents) TextOnPrimary() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: agents.Paper, Dark: agents.Ink}
}

func (Agents) Background() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: agents.Paper, Dark: agents.Navy}
}

func (Agents) Surface() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: agents.PaperPanel, Dark: agents.NavyPanel}
}

func (Agents) BorderNormal() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: agents.BorderLight, Dark: agents.BorderDark}
}

func (Agents) BorderFocused() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: agents.YellowDeep, Dark: agents.Yellow}
}

// Mono is a grayscale palette for terminals with poor color support.
type Mono struct{}

func (Mono) Primary() lipgloss.AdaptiveColor   { return lipgloss.AdaptiveColor{Light: "0", Dark: "15"} }
func (Mono) Secondary() lipgloss.AdaptiveColor { return lipgloss.AdaptiveColor{Light: "8", Dark: "7"} }
func (Mono) Accent() lipgloss.AdaptiveColor    { return lipgloss.AdaptiveColor{Light: "0", Dark: "15"} }
func (Mono) Error() lipgloss.AdaptiveColor     { return lipgloss.AdaptiveColor{Light: "0", Dark: "15"} }
func (Mono) Success() lipgloss.AdaptiveColor   { return lipgloss.AdaptiveColor{Light: "8", Dark: "7"} }
func (Mono) Text() lipgloss.AdaptiveColor      { return lipgloss.AdaptiveColor{Light: "0", Dark: "15"} }
func (Mono) TextMuted() lipgloss.AdaptiveColor { return lipgloss.AdaptiveColor{Light: "8", Dark: "7"} }
func (Mono) TextOnPrimary() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "15", Dark: "0"}
}
func (Mono) Background() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "15", Dark: "0"}
}
func (Mono) Surface() lipgloss.AdaptiveColor { return lipgloss.AdaptiveColor{Light: "7", Dark: "8"} }
func (Mono) BorderNormal() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "8", Dark: "8"}
}
func (Mono) BorderFocused() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
}
