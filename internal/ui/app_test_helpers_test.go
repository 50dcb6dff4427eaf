package ui

import (
	"context"
	"errors"
	"testing"

	"agents/internal/content"
	"agents/internal/prefs"
	"agents/internal/theme"
	"agents/internal/ui/palette"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

type fakeSignal struct {
	dark bool
	err  error
}

func (f *fakeSignal) PrefersDark() (bool, error) { return f.dark, f.err }

type clipboardRecorder struct {
	copied []string
	fail   bool
}

func (c *clipboardRecorder) write(s string) error {
	if c.fail {
		return errors.New("no clipboard")
	}
	c.copied = append(c.copied, s)
	return nil
}

type testHarness struct {
	app       *App
	store     *prefs.MemoryStore
	signal    *fakeSignal
	clipboard *clipboardRecorder
}

// newTestApp builds an App over the embedded sample site with an in-memory
// preference store holding stored (empty for none).
func newTestApp(t *testing.T, stored string) *testHarness {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(true) })

	site, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	store := prefs.NewMemoryStore()
	if stored != "" {
		if err := store.Put(context.Background(), theme.StorageKey, stored); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}
	signal := &fakeSignal{dark: true}
	clip := &clipboardRecorder{}
	resolver := theme.NewResolver(prefs.NewSlot(store, theme.StorageKey),
		theme.WithDetector(signal),
		theme.WithApplier(palette.Applier),
	)
	app := NewApp(Config{
		Site:      site,
		Resolver:  resolver,
		Palette:   palette.Agents{},
		Clipboard: clip.write,
		Version:   "1.2.3",
	})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return &testHarness{app: app, store: store, signal: signal, clipboard: clip}
}

// ready runs the resolver initialization command the way the program would.
func (h *testHarness) ready(t *testing.T) {
	t.Helper()
	msg := initThemeCmd(h.app.resolver)()
	if _, ok := msg.(themeReadyMsg); !ok {
		t.Fatalf("init command returned %T, want themeReadyMsg", msg)
	}
	h.app.Update(msg)
}

func (h *testHarness) storedPreference(t *testing.T) string {
	t.Helper()
	v, err := h.store.Get(context.Background(), theme.StorageKey)
	if err != nil {
		t.Fatalf("store.Get: %v", err)
	}
	return v
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeText(m *App, s string) {
	for _, r := range s {
		m.Update(runeKey(r))
	}
}

func stripANSI(s string) string {
	return ansi.Strip(s)
}
