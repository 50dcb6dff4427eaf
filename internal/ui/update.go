package ui

import (
	"context"
	"fmt"
	"strings"

	"agents/internal/content"
	"agents/internal/debug"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Zone identifiers for clickable regions.
const (
	zoneNavHome      = "nav-home"
	zoneNavUpdates   = "nav-updates"
	zoneNavTheme     = "nav-theme"
	zoneCarouselPrev = "carousel-prev"
	zoneCarouselNext = "carousel-next"
	zoneClearFilters = "clear-filters"
	zoneViewToggle   = "view-toggle"
	zoneCopyLink     = "copy-link"
	zoneBack         = "back"
	zoneChipPrefix   = "chip-"
	zoneUpdatePrefix = "update-"
	zoneSocialPrefix = "social-"
)

// Update handles every message.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case themeReadyMsg:
		debug.L().Debug("theme ready", zap.String("resolved", msg.resolved.String()))
		return m, nil

	case SchemeChangedMsg:
		if m.resolver.HandleSignal(msg.PrefersDark) {
			debug.L().Debug("os color scheme applied", zap.Bool("prefers_dark", msg.PrefersDark))
		}
		return m, nil

	case toastExpiredMsg:
		if msg.gen == m.toastGen {
			m.toast = ""
			m.toastErr = false
		}
		return m, nil

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.carousel, cmd = m.carousel.Update(msg)
	return m, cmd
}

func (m *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m, m.handleSearchKey(msg)
	}

	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Back):
			m.showHelp = false
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		return m, m.cycleTheme()
	case key.Matches(msg, m.keys.Home):
		m.setPage(PageHome)
		return m, nil
	case key.Matches(msg, m.keys.Updates):
		m.setPage(PageUpdates)
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		if m.page == PageHome {
			m.setPage(PageUpdates)
		} else {
			m.setPage(PageHome)
		}
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		_ = m.body.PageDown()
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		_ = m.body.PageUp()
		return m, nil
	}

	switch m.page {
	case PageHome:
		return m, m.handleHomeKey(msg)
	case PageUpdates:
		return m, m.handleUpdatesKey(msg)
	case PageDetail:
		return m, m.handleDetailKey(msg)
	}
	return m, nil
}

func (m *App) handleHomeKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Left):
		m.carousel, cmd = m.carousel.Prev()
	case key.Matches(msg, m.keys.Right):
		m.carousel, cmd = m.carousel.Next()
	case key.Matches(msg, m.keys.Down):
		m.scroll(1)
	case key.Matches(msg, m.keys.Up):
		m.scroll(-1)
	case key.Matches(msg, m.keys.Enter):
		m.setPage(PageUpdates)
	}
	return cmd
}

func (m *App) handleUpdatesKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m.search.Focus()
	case key.Matches(msg, m.keys.FilterNext):
		m.stepCategory(1)
	case key.Matches(msg, m.keys.FilterPrev):
		m.stepCategory(-1)
	case key.Matches(msg, m.keys.ClearFilter):
		m.clearFilters()
	case key.Matches(msg, m.keys.ToggleView):
		m.grid = !m.grid
	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Enter):
		if u, ok := m.selected(); ok {
			m.openDetail(u.Slug)
		}
	case key.Matches(msg, m.keys.Back):
		m.setPage(PageHome)
	}
	return nil
}

func (m *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return nil
	case tea.KeyCtrlC:
		return tea.Quit
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilter()
	return cmd
}

func (m *App) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.goBack()
	case key.Matches(msg, m.keys.Copy):
		return m.copyLink()
	case key.Matches(msg, m.keys.Down):
		m.scroll(1)
	case key.Matches(msg, m.keys.Up):
		m.scroll(-1)
	case key.Matches(msg, m.keys.Right):
		m.stepRelated(1)
	case key.Matches(msg, m.keys.Left):
		m.stepRelated(-1)
	case key.Matches(msg, m.keys.Enter):
		if len(m.related) > 0 {
			m.openDetail(m.related[clampIndex(m.relatedCursor, len(m.related))].Slug)
		}
	}
	return nil
}

func (m *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		m.scroll(3)
		return nil
	case tea.MouseButtonWheelUp:
		m.scroll(-3)
		return nil
	}
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft || m.zones == nil {
		return nil
	}
	for _, id := range m.clickableZones() {
		if z := m.zones.Get(id); z != nil && z.InBounds(msg) {
			return m.activateZone(id)
		}
	}
	return nil
}

// clickableZones lists the zone ids rendered on the current page.
func (m *App) clickableZones() []string {
	ids := []string{zoneNavHome, zoneNavUpdates, zoneNavTheme}
	for _, l := range m.site.Social {
		ids = append(ids, zoneSocialPrefix+l.Platform)
	}
	switch m.page {
	case PageHome:
		ids = append(ids, zoneCarouselPrev, zoneCarouselNext)
	case PageUpdates:
		ids = append(ids, zoneClearFilters, zoneViewToggle)
		for _, c := range content.Categories {
			ids = append(ids, zoneChipPrefix+string(c))
		}
		for _, u := range m.visible {
			ids = append(ids, zoneUpdatePrefix+u.Slug)
		}
	case PageDetail:
		ids = append(ids, zoneCopyLink, zoneBack)
		for _, u := range m.related {
			ids = append(ids, zoneUpdatePrefix+u.Slug)
		}
	}
	return ids
}

// activateZone runs the action bound to a clicked region.
func (m *App) activateZone(id string) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case id == zoneNavHome:
		m.setPage(PageHome)
	case id == zoneNavUpdates:
		m.setPage(PageUpdates)
	case id == zoneNavTheme:
		cmd = m.cycleTheme()
	case id == zoneCarouselPrev:
		m.carousel, cmd = m.carousel.Prev()
	case id == zoneCarouselNext:
		m.carousel, cmd = m.carousel.Next()
	case id == zoneClearFilters:
		m.clearFilters()
	case id == zoneViewToggle:
		m.grid = !m.grid
	case id == zoneCopyLink:
		cmd = m.copyLink()
	case id == zoneBack:
		m.goBack()
	case strings.HasPrefix(id, zoneChipPrefix):
		m.setCategory(content.Category(strings.TrimPrefix(id, zoneChipPrefix)))
	case strings.HasPrefix(id, zoneUpdatePrefix):
		m.openDetail(strings.TrimPrefix(id, zoneUpdatePrefix))
	case strings.HasPrefix(id, zoneSocialPrefix):
		cmd = m.copySocial(strings.TrimPrefix(id, zoneSocialPrefix))
	}
	return cmd
}

func (m *App) cycleTheme() tea.Cmd {
	pref := m.resolver.Cycle(context.Background())
	resolved := m.resolver.Resolved()
	return m.showToast(fmt.Sprintf("Theme: %s (%s)", pref.Label(), resolved), false)
}

func (m *App) copyLink() tea.Cmd {
	if m.page != PageDetail || m.current.Slug == "" {
		return nil
	}
	link := m.site.Link(m.current)
	if err := m.copyFn(link); err != nil {
		debug.L().Warn("copy link failed", zap.String("link", link), zap.Error(err))
		return m.showToast("Could not copy link", true)
	}
	return m.showToast("Link copied to clipboard", false)
}

// copySocial copies the URL of the named social link.
func (m *App) copySocial(platform string) tea.Cmd {
	for _, l := range m.site.Social {
		if l.Platform != platform || l.URL == "" {
			continue
		}
		if err := m.copyFn(l.URL); err != nil {
			debug.L().Warn("copy social link failed", zap.String("link", l.URL), zap.Error(err))
			return m.showToast("Could not copy link", true)
		}
		return m.showToast(platform+" link copied to clipboard", false)
	}
	return nil
}

// goBack leaves the detail page for whichever list opened it.
func (m *App) goBack() {
	if m.prevPage == PageDetail {
		m.setPage(PageUpdates)
		return
	}
	m.setPage(m.prevPage)
}

func (m *App) scroll(delta int) {
	m.body.SetYOffset(m.body.YOffset + delta)
}

func (m *App) applyFilter() {
	m.visible = m.catalog.Filter(m.category, m.search.Value())
	m.cursor = clampIndex(m.cursor, len(m.visible))
}

func (m *App) setCategory(c content.Category) {
	if !c.Valid() {
		return
	}
	m.category = c
	m.cursor = 0
	m.applyFilter()
	m.setPage(PageUpdates)
}

func (m *App) stepCategory(delta int) {
	idx := 0
	for i, c := range content.Categories {
		if c == m.category {
			idx = i
			break
		}
	}
	n := len(content.Categories)
	m.setCategory(content.Categories[((idx+delta)%n+n)%n])
}

func (m *App) clearFilters() {
	m.category = content.CategoryAll
	m.search.SetValue("")
	m.cursor = 0
	m.applyFilter()
}

func (m *App) moveCursor(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.cursor = clampIndex(m.cursor+delta, len(m.visible))
}

func (m *App) stepRelated(delta int) {
	if len(m.related) == 0 {
		return
	}
	m.relatedCursor = clampIndex(m.relatedCursor+delta, len(m.related))
}

func (m *App) selected() (content.Update, bool) {
	if len(m.visible) == 0 {
		return content.Update{}, false
	}
	return m.visible[clampIndex(m.cursor, len(m.visible))], true
}

// openDetail shows slug's article. Unknown slugs leave the page unchanged.
func (m *App) openDetail(slug string) {
	u, err := m.catalog.BySlug(slug)
	if err != nil {
		debug.L().Debug("update not found", zap.String("slug", slug), zap.Error(err))
		return
	}
	m.current = u
	m.related = m.catalog.Related(u.Slug, relatedLimit)
	m.relatedCursor = 0
	if m.page == PageDetail {
		m.body.GotoTop()
		return
	}
	m.setPage(PageDetail)
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
