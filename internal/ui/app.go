package ui

import (
	"time"

	"agents/internal/carousel"
	"agents/internal/content"
	"agents/internal/debug"
	"agents/internal/theme"
	"agents/internal/ui/palette"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// Page identifies the screen currently shown.
type Page int

const (
	PageHome Page = iota
	PageUpdates
	PageDetail
)

func (p Page) String() string {
	switch p {
	case PageUpdates:
		return "updates"
	case PageDetail:
		return "detail"
	default:
		return "home"
	}
}

const (
	minViewportWidth  = 40
	maxContentWidth   = 110
	chromeHeight      = 6
	relatedLimit      = 3
	defaultAppWidth   = 100
	defaultAppHeight  = 30
	searchPlaceholder = "Search updates..."
)

// Config configures the App.
type Config struct {
	Site     *content.Site
	Resolver *theme.Resolver
	Palette  palette.Palette

	CarouselInterval    time.Duration
	CarouselResumeAfter time.Duration

	// Zones tracks clickable regions. A nil manager disables mouse support.
	Zones *zone.Manager
	// Clipboard copies text for the "copy link" action. Defaults to the
	// system clipboard.
	Clipboard func(string) error

	Version string
	// StartPage and StartSlug pick the first screen. StartSlug opens the
	// detail page for that update.
	StartPage Page
	StartSlug string
}

// App is the root bubbletea model.
type App struct {
	site     *content.Site
	catalog  *content.Catalog
	resolver *theme.Resolver
	styles   Styles
	keys     KeyMap
	zones    *zone.Manager
	copyFn   func(string) error
	version  string

	page     Page
	prevPage Page
	width    int
	height   int
	showHelp bool
	// static is set for one-shot rendering without a program.
	static bool

	body     viewport.Model
	carousel carousel.Model

	// updates page
	category  content.Category
	search    textinput.Model
	searching bool
	grid      bool
	cursor    int
	visible   []content.Update
	// selTop and selHeight locate the selected card within the page,
	// recorded while rendering.
	selTop    int
	selHeight int

	// detail page
	current       content.Update
	related       []content.Update
	relatedCursor int

	markdown    func(string) string
	markdownFor theme.Resolved
	markdownW   int

	toast    string
	toastErr bool
	toastGen int
}

// NewApp builds the application model. The theme is initialized by Init, and
// the view stays blank until the resolver reports Ready.
func NewApp(cfg Config) *App {
	site := cfg.Site
	if site == nil {
		site = &content.Site{}
	}
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = theme.NewResolver(nil, theme.WithApplier(palette.Applier))
	}
	pal := cfg.Palette
	if pal == nil {
		pal = palette.Agents{}
	}
	copyFn := cfg.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	var opts []carousel.Option
	if cfg.CarouselInterval > 0 {
		opts = append(opts, carousel.WithInterval(cfg.CarouselInterval))
	}
	if cfg.CarouselResumeAfter > 0 {
		opts = append(opts, carousel.WithResumeAfter(cfg.CarouselResumeAfter))
	}

	ti := textinput.New()
	ti.Placeholder = searchPlaceholder
	ti.Prompt = "⌕ "
	ti.CharLimit = 80

	m := &App{
		site:     site,
		catalog:  site.Catalog(),
		resolver: resolver,
		styles:   NewStyles(pal),
		keys:     DefaultKeyMap(),
		zones:    cfg.Zones,
		copyFn:   copyFn,
		version:  cfg.Version,
		page:     cfg.StartPage,
		width:    defaultAppWidth,
		height:   defaultAppHeight,
		body:     viewport.Model{Width: defaultAppWidth, Height: defaultAppHeight - chromeHeight},
		carousel: carousel.New(len(site.Testimonials), opts...),
		category: content.CategoryAll,
		search:   ti,
		grid:     true,
	}
	m.applyFilter()
	if cfg.StartSlug != "" {
		m.openDetail(cfg.StartSlug)
	}
	return m
}

// Init starts theme initialization and the testimonial carousel.
func (m *App) Init() tea.Cmd {
	return tea.Batch(initThemeCmd(m.resolver), m.carousel.Init())
}

// Page returns the current page.
func (m *App) Page() Page { return m.page }

// Resolver exposes the theme resolver backing the view.
func (m *App) Resolver() *theme.Resolver { return m.resolver }

func (m *App) setSize(width, height int) {
	m.width = width
	m.height = height
	w := width
	if w > maxContentWidth {
		w = maxContentWidth
	}
	if w < minViewportWidth {
		w = minViewportWidth
	}
	h := height - chromeHeight
	if h < 3 {
		h = 3
	}
	m.body.Width = w
	m.body.Height = h
}

func (m *App) contentWidth() int {
	if m.body.Width > 0 {
		return m.body.Width
	}
	return defaultAppWidth
}

// renderMarkdown renders md with a glamour style matching the current theme,
// rebuilding the renderer after a theme or width change.
func (m *App) renderMarkdown(md string) string {
	resolved := m.resolver.Resolved()
	width := m.contentWidth() - 4
	if m.markdown == nil || m.markdownFor != resolved || m.markdownW != width {
		m.markdown = buildMarkdownRenderer(resolved, width)
		m.markdownFor = resolved
		m.markdownW = width
		debug.Logf("markdown renderer rebuilt for %s at width %d", resolved, width)
	}
	return m.markdown(md)
}

func (m *App) setPage(p Page) {
	if p == m.page {
		return
	}
	m.prevPage = m.page
	m.page = p
	m.body.GotoTop()
}

func (m *App) showToast(text string, isErr bool) tea.Cmd {
	m.toast = text
	m.toastErr = isErr
	m.toastGen++
	return scheduleToastExpiry(m.toastGen)
}

func (m *App) mark(id, s string) string {
	if m.zones == nil {
		return s
	}
	return m.zones.Mark(id, s)
}
