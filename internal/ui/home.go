package ui

import (
	"fmt"
	"strings"

	"agents/internal/content"

	"github.com/charmbracelet/lipgloss"
)

func (m *App) renderHome() string {
	blocks := []string{
		m.renderHero(),
		m.renderGroupPhoto(),
		m.renderPerspectives(),
		m.renderLookingAhead(),
		m.renderTestimonials(),
		m.renderCoreValues(),
		m.renderIskoOps(),
	}
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b != "" {
			out = append(out, m.styles.SectionBreak.Render(b))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func (m *App) renderHero() string {
	h := m.site.Hero
	if h.TitleHighlight == "" && h.TitleRest == "" {
		return ""
	}
	s := m.styles
	title := lipgloss.JoinHorizontal(lipgloss.Top,
		s.Highlight.Render(h.TitleHighlight), " ", s.Title.Render(h.TitleRest))
	lines := []string{title}
	if h.Description != "" {
		lines = append(lines, s.Text.Render(m.wrap(h.Description, 0)))
	}
	if h.CTAText != "" {
		lines = append(lines, "", s.Button.Render(h.CTAText+" →"))
	}
	return strings.Join(lines, "\n")
}

func (m *App) renderGroupPhoto() string {
	g := m.site.GroupPhoto
	if g.Subtitle == "" && len(g.Tagline) == 0 {
		return ""
	}
	s := m.styles
	lines := []string{s.Muted.Render(g.Subtitle)}
	for _, t := range g.Tagline {
		lines = append(lines, s.Accent.Render(t))
	}
	return strings.Join(lines, "\n")
}

func (m *App) renderPerspectives() string {
	if len(m.site.Projects) == 0 {
		return ""
	}
	s := m.styles
	h := m.site.Perspectives
	lines := []string{m.sectionTitle(h.Title, h.TitleHighlight)}
	if h.Description != "" {
		lines = append(lines, s.Muted.Render(m.wrap(h.Description, 0)))
	}
	for _, p := range m.site.Projects {
		lines = append(lines, fmt.Sprintf("  %s %s", s.Text.Render(p.Title), s.Muted.Render(p.Date)))
	}
	return strings.Join(lines, "\n")
}

func (m *App) renderLookingAhead() string {
	if len(m.site.Features) == 0 {
		return ""
	}
	s := m.styles
	h := m.site.LookingAhead
	lines := []string{m.sectionTitle(h.Title, h.TitleHighlight)}
	if h.Description != "" {
		lines = append(lines, s.Muted.Render(m.wrap(h.Description, 0)))
	}
	for _, f := range m.site.Features {
		num := s.Accent.Render(fmt.Sprintf("%02d", f.Number))
		lines = append(lines, fmt.Sprintf("%s  %s", num, s.Title.Render(f.Title)))
		if f.Description != "" {
			lines = append(lines, s.Text.Render(indent(m.wrap(f.Description, 4), 4)))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *App) renderTestimonials() string {
	items := m.site.Testimonials
	if len(items) == 0 {
		return ""
	}
	s := m.styles
	h := m.site.TestimonialsHeading
	header := m.sectionTitle(h.Title, h.TitleHighlight)

	current := clampIndex(m.carousel.Index(), len(items))
	width := m.contentWidth() - 4
	t := items[current]
	quote := s.Text.Render(lipgloss.NewStyle().Width(width - 4).Render("“" + t.Quote + "”"))
	byline := s.Accent.Render("— " + t.Author)
	if t.Batch != "" {
		byline += s.Muted.Render(", " + t.Batch)
	}
	card := s.CardActive.Width(width).Render(quote + "\n" + byline)

	dots := make([]string, len(items))
	for i := range items {
		if i == current {
			dots[i] = s.Selected.Render("●")
		} else {
			dots[i] = s.Muted.Render("○")
		}
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Center,
		m.mark(zoneCarouselPrev, s.Chip.Render("‹")),
		"  ", strings.Join(dots, " "), "  ",
		m.mark(zoneCarouselNext, s.Chip.Render("›")),
	)
	status := s.Muted.Render("auto")
	if !m.carousel.AutoPlaying() {
		status = s.Muted.Render("paused")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		card,
		lipgloss.JoinHorizontal(lipgloss.Center, controls, "  ", status),
	)
}

func (m *App) renderCoreValues() string {
	values := m.site.CoreValues
	if len(values) == 0 {
		return ""
	}
	s := m.styles
	h := m.site.CoreValuesHeading
	words := make([]string, 0, len(values))
	for _, v := range values {
		words = append(words, coreValueWord(m.styles, v))
	}
	lines := []string{m.sectionTitle(h.Title, h.TitleHighlight)}
	if h.Description != "" {
		lines = append(lines, s.Muted.Render(m.wrap(h.Description, 0)))
	}
	lines = append(lines, strings.Join(words, s.Muted.Render(" · ")))
	return strings.Join(lines, "\n")
}

// coreValueWord accents the leading Highlight letters of a value.
func coreValueWord(s Styles, v content.CoreValue) string {
	if v.Highlight == "" || !strings.HasPrefix(strings.ToLower(v.Name), strings.ToLower(v.Highlight)) {
		return s.Title.Render(v.Name)
	}
	n := len(v.Highlight)
	return s.Highlight.Render(v.Name[:n]) + s.Title.Render(v.Name[n:])
}

func (m *App) renderIskoOps() string {
	ops := m.site.IskoOps
	if ops.Title == "" {
		return ""
	}
	s := m.styles
	lines := []string{s.Highlight.Render(ops.Title)}
	if ops.Subtitle != "" {
		lines = append(lines, s.Title.Render(ops.Subtitle))
	}
	if ops.Description != "" {
		lines = append(lines, s.Text.Render(m.wrap(ops.Description, 4)))
	}
	for _, d := range ops.Details {
		lines = append(lines, s.Text.Render("• "+d))
	}
	if ops.Tagline != "" {
		lines = append(lines, s.Accent.Render(ops.Tagline))
	}
	if ops.RegistrationDeadline != "" {
		lines = append(lines, s.Muted.Render("Register by "+ops.RegistrationDeadline))
	}
	if ops.CTA != "" {
		cta := s.Button.Render(ops.CTA)
		if ops.RegistrationLink != "" {
			cta += " " + s.Muted.Render(ops.RegistrationLink)
		}
		lines = append(lines, "", cta)
	}
	return s.Card.Width(m.contentWidth() - 2).Render(strings.Join(lines, "\n"))
}

func indent(text string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
