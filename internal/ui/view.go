package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// View renders the whole screen. Nothing is drawn until the theme resolver is
// Ready, so the first painted frame already uses the stored theme.
func (m *App) View() string {
	if !m.resolver.Ready() {
		return ""
	}
	if m.showHelp {
		return m.scan(renderHelpOverlay(m.styles, m.keys, m.width, m.height))
	}

	m.body.SetContent(m.renderPage())
	m.followCursor()

	sections := []string{
		m.renderHeader(),
		m.body.View(),
		m.renderFooter(),
	}
	return m.scan(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// scan strips zone markers and records their positions.
func (m *App) scan(s string) string {
	if m.zones == nil {
		return s
	}
	return m.zones.Scan(s)
}

func (m *App) renderPage() string {
	switch m.page {
	case PageUpdates:
		return m.renderUpdates()
	case PageDetail:
		return m.renderDetail()
	default:
		return m.renderHome()
	}
}

func (m *App) renderHeader() string {
	s := m.styles
	brand := s.Brand.Render(m.site.Organization.Name)
	if m.site.Organization.Name == "" {
		brand = s.Brand.Render(m.site.Name)
	}

	navStyle := func(active bool) lipgloss.Style {
		if active {
			return s.NavActive
		}
		return s.NavItem
	}
	items := []string{brand, " "}
	for _, n := range m.navEntries() {
		active := m.page == n.page || (n.page == PageUpdates && m.page == PageDetail)
		label := fmt.Sprintf("%d %s", int(n.page)+1, n.label)
		items = append(items, m.mark(n.zone, navStyle(active).Render(label)))
	}

	pref := m.resolver.Preference()
	toggle := m.mark(zoneNavTheme, s.ThemeBadge.Render(
		fmt.Sprintf("%s %s", themeIcon(m.resolver.Resolved()), pref.Label())))

	left := lipgloss.JoinHorizontal(lipgloss.Center, items...)
	gap := m.contentWidth() - lipgloss.Width(left) - lipgloss.Width(toggle)
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + toggle
	return s.Header.Width(m.contentWidth()).Render(line)
}

func (m *App) renderFooter() string {
	s := m.styles
	width := m.contentWidth()

	var status string
	if m.toast != "" {
		if m.toastErr {
			status = s.Error.Render("⚠ " + m.toast)
		} else {
			status = s.Toast.Render("✓ " + m.toast)
		}
	} else {
		contact := m.site.Contact
		parts := make([]string, 0, 3+len(m.site.Social))
		if contact.Email != "" {
			parts = append(parts, contact.Email)
		}
		if contact.Phone != "" {
			parts = append(parts, contact.Phone)
		}
		if !m.static {
			parts = append(parts, m.renderSocial()...)
			parts = append(parts, "? help  t theme  q quit")
		}
		status = s.Muted.Render(strings.Join(parts, " · "))
	}
	if m.version != "" {
		v := s.Muted.Render("v" + strings.TrimPrefix(m.version, "v"))
		gap := width - lipgloss.Width(status) - lipgloss.Width(v)
		if gap >= 1 {
			status = status + strings.Repeat(" ", gap) + v
		}
	}
	lines := []string{ansi.Truncate(status, width, "…")}
	if m.static {
		for _, l := range m.renderSocial() {
			lines = append(lines, ansi.Truncate(s.Muted.Render(l), width, "…"))
		}
	}
	return s.Footer.Width(width).Render(strings.Join(lines, "\n"))
}

type navEntry struct {
	label string
	zone  string
	page  Page
}

// navEntries maps the site navigation onto pages by href. Items that point
// anywhere else are skipped, and missing pages fall back to their default label.
func (m *App) navEntries() []navEntry {
	home := navEntry{label: "Home", zone: zoneNavHome, page: PageHome}
	updates := navEntry{label: "Updates", zone: zoneNavUpdates, page: PageUpdates}
	for _, n := range m.site.Nav {
		if n.Label == "" {
			continue
		}
		switch strings.TrimRight(n.Href, "/") {
		case "":
			home.label = n.Label
		case "/updates":
			updates.label = n.Label
		}
	}
	return []navEntry{home, updates}
}

// renderSocial lists the social links. Interactive output shows the clickable
// platform name and static output adds the URL.
func (m *App) renderSocial() []string {
	out := make([]string, 0, len(m.site.Social))
	for _, l := range m.site.Social {
		if l.Platform == "" {
			continue
		}
		text := l.Platform
		if m.static && l.URL != "" {
			text += "  " + l.URL
		}
		out = append(out, m.mark(zoneSocialPrefix+l.Platform, text))
	}
	return out
}

// sectionTitle renders a heading whose highlight is accented.
func (m *App) sectionTitle(title, highlight string) string {
	s := m.styles
	parts := make([]string, 0, 2)
	if title != "" {
		parts = append(parts, s.Title.Render(title))
	}
	if highlight != "" {
		parts = append(parts, s.Highlight.Render(highlight))
	}
	return strings.Join(parts, " ")
}

// wrap soft-wraps text to the body width minus indent.
func (m *App) wrap(text string, indent int) string {
	width := m.contentWidth() - indent
	if width < 10 {
		width = 10
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}
