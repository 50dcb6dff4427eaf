package theme

import (
	"context"
	"errors"
	"sync"
	"testing"

	apperrors "agents/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	value   string
	loadErr error
	saveErr error
	saves   int
}

func (s *memStore) Load(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return "", s.loadErr
	}
	return s.value, nil
}

func (s *memStore) Save(_ context.Context, v string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.value = v
	return nil
}

type osSignal struct {
	mu   sync.Mutex
	dark bool
	err  error
}

func (o *osSignal) PrefersDark() (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dark, o.err
}

func (o *osSignal) set(dark bool) {
	o.mu.Lock()
	o.dark = dark
	o.mu.Unlock()
}

type recorder struct {
	mu      sync.Mutex
	applied []Resolved
}

func (r *recorder) Apply(v Resolved) {
	r.mu.Lock()
	r.applied = append(r.applied, v)
	r.mu.Unlock()
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.applied)
}

func (r *recorder) last() Resolved {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.applied) == 0 {
		return ""
	}
	return r.applied[len(r.applied)-1]
}

func newTestResolver(store Store, sig *osSignal) (*Resolver, *recorder) {
	rec := &recorder{}
	return NewResolver(store, WithDetector(sig), WithApplier(rec)), rec
}

func TestExplicitPreferenceIgnoresSignal(t *testing.T) {
	for _, pref := range []Preference{PreferenceLight, PreferenceDark} {
		for _, dark := range []bool{false, true} {
			store := &memStore{value: pref.String()}
			r, _ := newTestResolver(store, &osSignal{dark: dark})
			r.Initialize(context.Background())
			assert.Equal(t, Resolved(pref), r.Resolved(), "pref=%s prefersDark=%v", pref, dark)
		}
	}
}

func TestSystemFollowsSignal(t *testing.T) {
	for _, dark := range []bool{false, true} {
		r, _ := newTestResolver(&memStore{value: "system"}, &osSignal{dark: dark})
		r.Initialize(context.Background())
		want := Light
		if dark {
			want = Dark
		}
		assert.Equal(t, want, r.Resolved())
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	store := &memStore{value: "light"}
	sig := &osSignal{dark: true}
	r, _ := newTestResolver(store, sig)

	r.Initialize(context.Background())
	first := r.State()
	r.Initialize(context.Background())
	r.Initialize(context.Background())

	assert.Equal(t, first, r.State())
	assert.Zero(t, store.saves, "initialize must never write the store")
}

func TestSetThemeRoundTripsThroughReload(t *testing.T) {
	for _, pref := range Preferences {
		store := &memStore{}
		sig := &osSignal{dark: false}
		r, _ := newTestResolver(store, sig)
		r.Initialize(context.Background())
		require.NoError(t, r.SetTheme(context.Background(), pref))

		reloaded, _ := newTestResolver(store, sig)
		reloaded.Initialize(context.Background())
		assert.Equal(t, pref, reloaded.Preference())
	}
}

func TestInvalidStoredValueActsAsAbsent(t *testing.T) {
	sig := &osSignal{dark: true}

	absent, _ := newTestResolver(&memStore{}, sig)
	absent.Initialize(context.Background())

	for _, raw := range []string{"purple", "DARK", " light", "null"} {
		invalid, _ := newTestResolver(&memStore{value: raw}, sig)
		invalid.Initialize(context.Background())
		assert.Equal(t, absent.State(), invalid.State(), "stored %q", raw)
		assert.Equal(t, PreferenceSystem, invalid.Preference())
	}
}

func TestScenarioNoStoredValueDarkOS(t *testing.T) {
	r, rec := newTestResolver(&memStore{}, &osSignal{dark: true})
	require.False(t, r.Ready())

	r.Initialize(context.Background())

	assert.True(t, r.Ready())
	assert.Equal(t, PreferenceSystem, r.Preference())
	assert.Equal(t, Dark, r.Resolved())
	assert.Equal(t, Dark, rec.last())
}

func TestScenarioStoredLightDarkOS(t *testing.T) {
	r, _ := newTestResolver(&memStore{value: "light"}, &osSignal{dark: true})
	r.Initialize(context.Background())

	assert.Equal(t, PreferenceLight, r.Preference())
	assert.Equal(t, Light, r.Resolved())
}

func TestScenarioSignalFlipsMidSession(t *testing.T) {
	sig := &osSignal{dark: false}
	r, rec := newTestResolver(&memStore{value: "system"}, sig)
	r.Initialize(context.Background())
	require.Equal(t, Light, r.Resolved())

	sig.set(true)
	assert.True(t, r.HandleSignal(true))

	assert.Equal(t, Dark, r.Resolved())
	assert.Equal(t, []Resolved{Light, Dark}, rec.applied)
}

func TestScenarioExplicitDarkIgnoresSignalUntilSystem(t *testing.T) {
	store := &memStore{}
	sig := &osSignal{dark: false}
	r, rec := newTestResolver(store, sig)
	r.Initialize(context.Background())

	require.NoError(t, r.SetTheme(context.Background(), PreferenceDark))
	assert.Equal(t, Dark, r.Resolved())
	assert.Equal(t, "dark", store.value)

	applied := rec.count()
	assert.False(t, r.HandleSignal(false))
	assert.False(t, r.HandleSignal(true))
	assert.False(t, r.HandleSignal(false))
	assert.Equal(t, Dark, r.Resolved())
	assert.Equal(t, applied, rec.count(), "ignored signals must not re-apply")

	require.NoError(t, r.SetTheme(context.Background(), PreferenceSystem))
	assert.Equal(t, Light, r.Resolved())
	assert.True(t, r.HandleSignal(true))
	assert.Equal(t, Dark, r.Resolved())
}

func TestSwitchToSystemUsesLatestSnapshotWhenDetectorFails(t *testing.T) {
	sig := &osSignal{dark: false}
	r, _ := newTestResolver(&memStore{value: "light"}, sig)
	r.Initialize(context.Background())

	// Signal changes while light are recorded even though nothing is applied.
	r.HandleSignal(true)
	sig.mu.Lock()
	sig.err = errors.New("gsettings missing")
	sig.mu.Unlock()

	require.NoError(t, r.SetTheme(context.Background(), PreferenceSystem))
	assert.Equal(t, Dark, r.Resolved())
}

func TestStorageUnavailableDegradesToMemory(t *testing.T) {
	store := &memStore{
		loadErr: errors.New("storage disabled"),
		saveErr: errors.New("storage disabled"),
	}
	r, _ := newTestResolver(store, &osSignal{dark: false})
	r.Initialize(context.Background())

	assert.True(t, r.Ready())
	assert.Equal(t, PreferenceSystem, r.Preference())

	require.NoError(t, r.SetTheme(context.Background(), PreferenceDark))
	assert.Equal(t, PreferenceDark, r.Preference())
	assert.Equal(t, Dark, r.Resolved())
	assert.Equal(t, 1, store.saves)
}

func TestNilStoreIsMemoryOnly(t *testing.T) {
	r := NewResolver(nil)
	r.Initialize(context.Background())
	assert.Equal(t, PreferenceSystem, r.Preference())
	assert.Equal(t, Dark, r.Resolved(), "no detector falls back to dark")
	require.NoError(t, r.SetTheme(context.Background(), PreferenceLight))
	assert.Equal(t, Light, r.Resolved())
}

func TestSetThemeRejectsInvalidInputWithoutMutation(t *testing.T) {
	store := &memStore{value: "light"}
	r, rec := newTestResolver(store, &osSignal{dark: true})
	r.Initialize(context.Background())
	before := r.State()
	applied := rec.count()

	err := r.SetTheme(context.Background(), Preference("sepia"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPreference)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidPreference))
	assert.Equal(t, before, r.State())
	assert.Equal(t, applied, rec.count())
	assert.Zero(t, store.saves)
}

func TestSignalBeforeReadyIsNotApplied(t *testing.T) {
	r, rec := newTestResolver(&memStore{}, &osSignal{dark: false})
	assert.False(t, r.HandleSignal(true))
	assert.Zero(t, rec.count())
}

func TestSignalDuringInitializeIsApplied(t *testing.T) {
	sig := &osSignal{dark: false}
	var r *Resolver
	var mu sync.Mutex
	var applied []Resolved
	r = NewResolver(&memStore{}, WithDetector(sig), WithApplier(ApplierFunc(func(v Resolved) {
		mu.Lock()
		first := len(applied) == 0
		applied = append(applied, v)
		mu.Unlock()
		if first {
			sig.set(true)
			assert.False(t, r.HandleSignal(true))
		}
	})))

	r.Initialize(context.Background())

	state := r.State()
	assert.True(t, state.Ready)
	assert.True(t, state.PrefersDark)
	assert.Equal(t, Dark, state.Resolved)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Resolved{Light, Dark}, applied)
}

func TestSignalDuringInitializeIgnoredForExplicitPreference(t *testing.T) {
	sig := &osSignal{dark: false}
	var r *Resolver
	rec := &recorder{}
	r = NewResolver(&memStore{value: "light"}, WithDetector(sig), WithApplier(ApplierFunc(func(v Resolved) {
		first := rec.count() == 0
		rec.Apply(v)
		if first {
			r.HandleSignal(true)
		}
	})))

	r.Initialize(context.Background())

	assert.Equal(t, Light, r.Resolved())
	assert.Equal(t, 1, rec.count())
}

func TestCycleOrder(t *testing.T) {
	store := &memStore{value: "light"}
	r, _ := newTestResolver(store, &osSignal{dark: true})
	r.Initialize(context.Background())

	assert.Equal(t, PreferenceDark, r.Cycle(context.Background()))
	assert.Equal(t, PreferenceSystem, r.Cycle(context.Background()))
	assert.Equal(t, PreferenceLight, r.Cycle(context.Background()))
	assert.Equal(t, "light", store.value)
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	r, _ := newTestResolver(&memStore{}, &osSignal{dark: true})

	var seen []Resolved
	unsubscribe := r.Subscribe(func(v Resolved) {
		// Observers may read the resolver while being notified.
		assert.Equal(t, v, r.Resolved())
		seen = append(seen, v)
	})
	r.Initialize(context.Background())
	require.NoError(t, r.SetTheme(context.Background(), PreferenceLight))
	unsubscribe()
	require.NoError(t, r.SetTheme(context.Background(), PreferenceDark))

	assert.Equal(t, []Resolved{Dark, Light}, seen)
}

func TestConcurrentEventsSettleOnLatestInput(t *testing.T) {
	sig := &osSignal{dark: false}
	r, rec := newTestResolver(&memStore{value: "system"}, sig)
	r.Initialize(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(dark bool) {
			defer wg.Done()
			r.HandleSignal(dark)
		}(i%2 == 0)
		go func() {
			defer wg.Done()
			_ = r.Resolved()
		}()
	}
	wg.Wait()

	r.HandleSignal(true)
	assert.Equal(t, Dark, r.Resolved())
	assert.Equal(t, Dark, rec.last())
}
