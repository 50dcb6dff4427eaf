package ui

import (
	"context"
	"time"

	"agents/internal/theme"

	tea "github.com/charmbracelet/bubbletea"
)

const toastDuration = 3 * time.Second

// SchemeChangedMsg carries an OS color-scheme change into the program.
// Send it with tea.Program.Send from whatever watches the host.
type SchemeChangedMsg struct {
	PrefersDark bool
}

// themeReadyMsg reports that the resolver finished initializing.
type themeReadyMsg struct {
	resolved theme.Resolved
}

type toastExpiredMsg struct {
	gen int
}

func initThemeCmd(r *theme.Resolver) tea.Cmd {
	return func() tea.Msg {
		r.Initialize(context.Background())
		return themeReadyMsg{resolved: r.Resolved()}
	}
}

func scheduleToastExpiry(gen int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{gen: gen}
	})
}
