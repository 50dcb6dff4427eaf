package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"agents/internal/content"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RenderStatic renders one page without starting a program, for output that
// is not a terminal. The resolver is initialized first so the page uses the
// stored theme.
func RenderStatic(ctx context.Context, cfg Config, width int) string {
	cfg.Zones = nil
	m := NewApp(cfg)
	m.static = true
	if !m.resolver.Ready() {
		m.resolver.Initialize(ctx)
	}
	if width <= 0 {
		width = defaultAppWidth
	}
	m.setSize(width, defaultAppHeight)
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.renderPage(), m.renderFooter())
}

// WriteUpdateList prints one line per update: slug, category, date and title.
func WriteUpdateList(w io.Writer, updates []content.Update, width int) error {
	if len(updates) == 0 {
		_, err := fmt.Fprintln(w, emptyUpdatesText)
		return err
	}
	slugWidth := 0
	for _, u := range updates {
		if n := len(u.Slug); n > slugWidth {
			slugWidth = n
		}
	}
	for _, u := range updates {
		line := fmt.Sprintf("%-*s  %-13s  %-14s  %s", slugWidth, u.Slug, u.Category.Label(), u.Date, u.Title)
		if width > 0 {
			line = ansi.Truncate(line, width, "…")
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
