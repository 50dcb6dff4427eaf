package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *App) renderDetail() string {
	s := m.styles
	u := m.current
	if u.Slug == "" {
		return s.Muted.Render("No update selected.")
	}

	actions := lipgloss.JoinHorizontal(lipgloss.Center,
		m.mark(zoneBack, s.Chip.Render("← Back")),
		" ",
		m.mark(zoneCopyLink, s.Chip.Render("⧉ Copy link")),
	)
	meta := s.Muted.Render(strings.Join(nonEmpty(u.Category.Label(), u.Date, u.AcademicYear), " · "))

	blocks := []string{actions, "", meta, m.renderMarkdown(u.Markdown())}
	if len(u.Tags) > 0 {
		blocks = append(blocks, s.Accent.Render("#"+strings.Join(u.Tags, " #")))
	}
	blocks = append(blocks, s.Muted.Render(m.site.Link(u)))

	if len(m.related) > 0 {
		blocks = append(blocks, "", s.Title.Render("Related updates"))
		width := m.contentWidth() - 2
		for i, r := range m.related {
			blocks = append(blocks, m.renderCard(r, i == m.relatedCursor, width))
		}
	}
	return strings.Join(blocks, "\n")
}
