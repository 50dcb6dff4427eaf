package appearance

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	apperrors "agents/internal/errors"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type failing struct{ name string }

func (f failing) Name() string               { return f.name }
func (f failing) PrefersDark() (bool, error) { return false, errors.New("nope") }

type scripted struct {
	mu     sync.Mutex
	values []bool
	calls  int
}

func (s *scripted) Name() string { return "scripted" }

func (s *scripted) PrefersDark() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[len(s.values)-1]
	if s.calls < len(s.values) {
		v = s.values[s.calls]
	}
	s.calls++
	return v, nil
}

func envLookup(value string, ok bool) func(string) (string, bool) {
	return func(string) (string, bool) { return value, ok }
}

func TestEnvDetector(t *testing.T) {
	dark, err := EnvDetector{Lookup: envLookup("DARK", true)}.PrefersDark()
	require.NoError(t, err)
	assert.True(t, dark)

	dark, err = EnvDetector{Lookup: envLookup(" light ", true)}.PrefersDark()
	require.NoError(t, err)
	assert.False(t, dark)

	_, err = EnvDetector{Lookup: envLookup("", false)}.PrefersDark()
	assert.Error(t, err)

	_, err = EnvDetector{Lookup: envLookup("sepia", true)}.PrefersDark()
	assert.ErrorContains(t, err, "sepia")
}

func TestGSettingsDetector(t *testing.T) {
	tests := []struct {
		out     string
		want    bool
		wantErr bool
	}{
		{"'prefer-dark'\n", true, false},
		{"'prefer-light'\n", false, false},
		{"'default'\n", false, false},
		{"'something-else'\n", false, true},
	}
	for _, tt := range tests {
		var gotArgs []string
		d := &GSettingsDetector{Run: func(_ context.Context, name string, args ...string) ([]byte, error) {
			gotArgs = append([]string{name}, args...)
			return []byte(tt.out), nil
		}}
		dark, err := d.PrefersDark()
		if tt.wantErr {
			assert.Error(t, err, tt.out)
			continue
		}
		require.NoError(t, err, tt.out)
		assert.Equal(t, tt.want, dark, tt.out)
		assert.Equal(t, []string{"gsettings", "get", "org.gnome.desktop.interface", "color-scheme"}, gotArgs)
	}
}

func TestGSettingsDetectorCommandFailure(t *testing.T) {
	d := &GSettingsDetector{Run: func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	}}
	_, err := d.PrefersDark()
	assert.ErrorContains(t, err, "exit status 1")
}

func TestDarwinDetector(t *testing.T) {
	tests := []struct {
		out  string
		want bool
	}{
		{"Dark\n", true},
		{"", false},
		{"Light\n", false},
	}
	for _, tt := range tests {
		var gotArgs []string
		d := &DarwinDetector{Run: func(_ context.Context, name string, args ...string) ([]byte, error) {
			gotArgs = append([]string{name}, args...)
			return []byte(tt.out), nil
		}}
		dark, err := d.PrefersDark()
		require.NoError(t, err, tt.out)
		assert.Equal(t, tt.want, dark, tt.out)
		assert.Equal(t, []string{"defaults", "read", "-g", "AppleInterfaceStyle"}, gotArgs)
	}
}

func TestDarwinDetectorCommandFailure(t *testing.T) {
	d := &DarwinDetector{Run: func(context.Context, string, ...string) ([]byte, error) {
		return nil, context.DeadlineExceeded
	}}
	_, err := d.PrefersDark()
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDarwinDetectorSeesLiveChanges(t *testing.T) {
	var mu sync.Mutex
	out := ""
	d := &DarwinDetector{Run: func(context.Context, string, ...string) ([]byte, error) {
		mu.Lock()
		defer mu.Unlock()
		return []byte(out), nil
	}}
	chain := Chain{failing{name: "env"}, d, &TerminalDetector{Output: termenv.NewOutput(&bytes.Buffer{})}}
	w := NewWatcher(chain, time.Hour, nil)
	w.Prime(false)

	mu.Lock()
	out = "Dark\n"
	mu.Unlock()
	dark, changed, err := w.Check()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, dark)
}

func TestDefaultChainOrder(t *testing.T) {
	c := Default()
	require.Len(t, c, 3)
	assert.Equal(t, "env", c[0].Name())
	assert.Contains(t, []string{"gsettings", "defaults"}, c[1].Name())
	assert.Equal(t, "terminal", c[2].Name())
}

func TestTerminalDetectorCachesFirstAnswer(t *testing.T) {
	d := &TerminalDetector{Output: termenv.NewOutput(&bytes.Buffer{})}
	first, err := d.PrefersDark()
	require.NoError(t, err)
	second, err := d.PrefersDark()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestChainFirstSuccessWins(t *testing.T) {
	c := Chain{failing{"a"}, Static(false), Static(true)}
	dark, err := c.PrefersDark()
	require.NoError(t, err)
	assert.False(t, dark)
	assert.Equal(t, "chain(a,static,static)", c.Name())
}

func TestChainAllFail(t *testing.T) {
	_, err := Chain{failing{"a"}, failing{"b"}}.PrefersDark()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUndetermined)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeDetectorUnavailable))
	assert.ErrorContains(t, err, "b: nope")
}

func TestWatcherCheckReportsTransitionsOnly(t *testing.T) {
	w := NewWatcher(&scripted{values: []bool{false, false, true, true, false}}, time.Second, nil)

	var changes []bool
	for i := 0; i < 5; i++ {
		dark, changed, err := w.Check()
		require.NoError(t, err)
		if changed {
			changes = append(changes, dark)
		}
	}
	assert.Equal(t, []bool{true, false}, changes)
}

func TestWatcherPrimeMakesFirstPollComparable(t *testing.T) {
	w := NewWatcher(Static(true), time.Second, nil)
	w.Prime(false)

	dark, changed, err := w.Check()
	require.NoError(t, err)
	assert.True(t, dark)
	assert.True(t, changed)
}

func TestWatcherRunDeliversChangesAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan bool, 4)
	w := NewWatcher(&scripted{values: []bool{false, true}}, 5*time.Millisecond, func(dark bool) {
		got <- dark
	})

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case dark := <-got:
		assert.True(t, dark)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never reported the change")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
	assert.Empty(t, got, "a steady signal must not fire again")
}
