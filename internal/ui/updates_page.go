package ui

import (
	"fmt"
	"strings"

	"agents/internal/content"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const emptyUpdatesText = "No updates found matching your search."

const gridColumns = 2

func (m *App) renderUpdates() string {
	s := m.styles
	h := m.site.UpdatesHeading
	lines := []string{m.sectionTitle(h.Title, h.TitleHighlight)}
	if h.Description != "" {
		lines = append(lines, s.Muted.Render(m.wrap(h.Description, 0)))
	}
	lines = append(lines, "", m.renderChips(), m.renderSearchBar(), "")

	if len(m.visible) == 0 {
		lines = append(lines,
			s.Muted.Render(emptyUpdatesText),
			"",
			m.mark(zoneClearFilters, s.Button.Render("Clear filters")),
		)
		return strings.Join(lines, "\n")
	}

	top := lipgloss.Height(strings.Join(lines, "\n"))
	var cards string
	if m.grid {
		cards = m.renderGrid()
	} else {
		cards = m.renderList()
	}
	m.selTop += top
	return strings.Join(append(lines, cards), "\n")
}

// followCursor scrolls the body so the selected card is fully visible.
func (m *App) followCursor() {
	if m.page != PageUpdates || len(m.visible) == 0 {
		return
	}
	switch {
	case m.selTop < m.body.YOffset:
		m.body.SetYOffset(m.selTop)
	case m.selTop+m.selHeight > m.body.YOffset+m.body.Height:
		m.body.SetYOffset(m.selTop + m.selHeight - m.body.Height)
	}
}

func (m *App) renderChips() string {
	s := m.styles
	opts := m.catalog.FilterOptions()
	chips := make([]string, 0, len(opts))
	for _, o := range opts {
		label := fmt.Sprintf("%s %d", o.Label, o.Count)
		st := s.Chip
		if o.Category == m.category {
			st = s.ChipActive
		}
		chips = append(chips, m.mark(zoneChipPrefix+string(o.Category), st.Render(label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (m *App) renderSearchBar() string {
	s := m.styles
	var field string
	switch {
	case m.searching:
		field = m.search.View()
	case m.search.Value() != "":
		field = s.Text.Render("⌕ " + m.search.Value())
	default:
		field = s.Muted.Render("⌕ / to search")
	}
	mode := "▦ grid"
	if !m.grid {
		mode = "☰ list"
	}
	toggle := m.mark(zoneViewToggle, s.ThemeBadge.Render(mode))
	summary := s.Muted.Render(fmt.Sprintf("%d of %d", len(m.visible), m.catalog.Len()))
	return lipgloss.JoinHorizontal(lipgloss.Center, field, "   ", summary, "  ", toggle)
}

func (m *App) renderList() string {
	width := m.contentWidth() - 2
	cards := make([]string, 0, len(m.visible))
	offset := 0
	for i, u := range m.visible {
		card := m.renderCard(u, i == m.cursor, width)
		if i == m.cursor {
			m.selTop, m.selHeight = offset, lipgloss.Height(card)
		}
		offset += lipgloss.Height(card)
		cards = append(cards, card)
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (m *App) renderGrid() string {
	width := (m.contentWidth() - 2) / gridColumns
	var rows []string
	offset := 0
	for i := 0; i < len(m.visible); i += gridColumns {
		var row []string
		for j := i; j < i+gridColumns && j < len(m.visible); j++ {
			row = append(row, m.renderCard(m.visible[j], j == m.cursor, width))
		}
		joined := lipgloss.JoinHorizontal(lipgloss.Top, row...)
		if m.cursor >= i && m.cursor < i+gridColumns {
			m.selTop, m.selHeight = offset, lipgloss.Height(joined)
		}
		offset += lipgloss.Height(joined)
		rows = append(rows, joined)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *App) renderCard(u content.Update, selected bool, width int) string {
	s := m.styles
	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	title := s.Title.Render(ansi.Truncate(u.Title, inner, "…"))
	if u.Featured {
		title = s.Accent.Render("★ ") + title
	}
	meta := s.Muted.Render(ansi.Truncate(
		strings.Join(nonEmpty(u.Category.Label(), u.Date, u.AcademicYear), " · "), inner, "…"))
	body := []string{title, meta}
	if u.Description != "" {
		desc := lipgloss.NewStyle().Width(inner).MaxHeight(2).Render(u.Description)
		body = append(body, s.Text.Render(desc))
	}
	if len(u.Tags) > 0 {
		body = append(body, s.Accent.Render(ansi.Truncate("#"+strings.Join(u.Tags, " #"), inner, "…")))
	}

	st := s.Card
	if selected {
		st = s.CardActive
	}
	card := st.Width(width - 2).Render(strings.Join(body, "\n"))
	return m.mark(zoneUpdatePrefix+u.Slug, card)
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
