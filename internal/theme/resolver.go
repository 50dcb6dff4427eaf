package theme

import (
	"context"
	"fmt"
	"sync"

	"agents/internal/debug"
	apperrors "agents/internal/errors"

	"go.uber.org/zap"
)

// ErrInvalidPreference is returned by SetTheme for values outside
// light/dark/system. It signals a caller bug, not a runtime condition.
var ErrInvalidPreference = apperrors.New(apperrors.CodeInvalidPreference, "invalid theme preference", nil)

var errNoStore = apperrors.New(apperrors.CodeStorageUnavailable, "no preference store configured", nil)

// Store is the durable slot holding the preference string.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, value string) error
}

// Detector reads the host's current color-scheme signal.
type Detector interface {
	PrefersDark() (bool, error)
}

// Applier pushes a resolved theme onto the rendering surface.
type Applier interface {
	Apply(Resolved)
}

// ApplierFunc adapts a function to Applier.
type ApplierFunc func(Resolved)

// Apply calls f(r).
func (f ApplierFunc) Apply(r Resolved) { f(r) }

// State is a consistent snapshot of the resolver.
type State struct {
	Preference  Preference
	Resolved    Resolved
	PrefersDark bool
	Ready       bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDetector sets the OS signal source consulted on Initialize and when
// switching to system.
func WithDetector(d Detector) Option {
	return func(r *Resolver) { r.detector = d }
}

// WithApplier sets the outbound effect run after every recomputation.
func WithApplier(a Applier) Option {
	return func(r *Resolver) { r.applier = a }
}

// WithLogger overrides the debug logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

// Resolver keeps the preference and the resolved theme consistent.
//
// Initialize, SetTheme and HandleSignal may be called from different
// goroutines. Every call recomputes the resolved value from the latest inputs,
// and publishing always applies the state current at publish time, so rapid or
// interleaved events settle on the last input.
type Resolver struct {
	store    Store
	detector Detector
	applier  Applier
	log      *zap.Logger

	mu          sync.Mutex
	preference  Preference
	resolved    Resolved
	prefersDark bool
	ready       bool
	observers   map[int]func(Resolved)
	nextID      int

	publishMu sync.Mutex
}

// NewResolver creates a resolver that is not yet Ready. A nil store makes
// the resolver memory-only.
func NewResolver(store Store, opts ...Option) *Resolver {
	r := &Resolver{
		store:       store,
		preference:  PreferenceSystem,
		prefersDark: true,
		resolved:    Dark,
		observers:   make(map[int]func(Resolved)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = debug.L()
	}
	return r
}

// Initialize loads the stored preference, resolves it against the current
// OS signal, applies the result and marks the resolver Ready. Storage
// failures and invalid stored values fall back to system. Calling it again
// repeats the whole sequence from scratch.
func (r *Resolver) Initialize(ctx context.Context) {
	pref := r.loadPreference(ctx)

	r.mu.Lock()
	r.preference = pref
	r.refreshSignalLocked()
	r.resolved = Resolve(r.preference, r.prefersDark)
	resolved := r.resolved
	r.mu.Unlock()

	r.log.Debug("theme initialized",
		zap.String("preference", pref.String()),
		zap.String("resolved", resolved.String()))
	r.publish()

	// Ready only flips once the theme is on screen, so a consumer that sees
	// Ready never paints with the default. A signal recorded while the first
	// apply ran was not applied, so it is folded in here.
	r.mu.Lock()
	r.ready = true
	current := Resolve(r.preference, r.prefersDark)
	stale := current != r.resolved
	r.resolved = current
	r.mu.Unlock()

	if stale {
		r.log.Debug("os color scheme changed during initialize", zap.String("resolved", current.String()))
		r.publish()
	}
}

// SetTheme records an explicit choice. The in-memory state always changes;
// persisting is best-effort and failures are only logged.
func (r *Resolver) SetTheme(ctx context.Context, p Preference) error {
	if !p.Valid() {
		return fmt.Errorf("set theme %q: %w", string(p), ErrInvalidPreference)
	}

	r.mu.Lock()
	r.preference = p
	if p == PreferenceSystem {
		r.refreshSignalLocked()
	}
	r.resolved = Resolve(r.preference, r.prefersDark)
	resolved := r.resolved
	r.mu.Unlock()

	if err := r.save(ctx, p); err != nil {
		r.log.Warn("theme preference not persisted", zap.String("preference", p.String()), zap.Error(err))
	}
	r.log.Debug("theme set",
		zap.String("preference", p.String()),
		zap.String("resolved", resolved.String()))
	r.publish()
	return nil
}

// Cycle advances light -> dark -> system -> light and returns the new preference.
func (r *Resolver) Cycle(ctx context.Context) Preference {
	next := r.Preference().Next()
	// next is always valid, so SetTheme cannot fail here.
	_ = r.SetTheme(ctx, next)
	return next
}

// HandleSignal receives an OS color-scheme change. The snapshot is always
// recorded, but the theme is only recomputed and re-applied while the
// preference is system and the resolver is Ready. It reports whether the
// signal was applied.
func (r *Resolver) HandleSignal(prefersDark bool) bool {
	r.mu.Lock()
	r.prefersDark = prefersDark
	if !r.ready || r.preference != PreferenceSystem {
		r.mu.Unlock()
		return false
	}
	r.resolved = Resolve(r.preference, r.prefersDark)
	resolved := r.resolved
	r.mu.Unlock()

	r.log.Debug("os color scheme changed", zap.String("resolved", resolved.String()))
	r.publish()
	return true
}

// Resolved returns the current concrete theme.
func (r *Resolver) Resolved() Resolved {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolved
}

// Preference returns the current preference.
func (r *Resolver) Preference() Preference {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.preference
}

// Ready reports whether Initialize has completed. Consumers should not paint
// theme-dependent output before this is true.
func (r *Resolver) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ready
}

// State returns a snapshot of every field at once.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return State{
		Preference:  r.preference,
		Resolved:    r.resolved,
		PrefersDark: r.prefersDark,
		Ready:       r.ready,
	}
}

// Subscribe registers fn to run after each apply. Observers run outside the
// resolver lock and may read it, but must not call SetTheme synchronously.
// The returned function unregisters fn.
func (r *Resolver) Subscribe(fn func(Resolved)) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.observers[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.observers, id)
		r.mu.Unlock()
	}
}

func (r *Resolver) loadPreference(ctx context.Context) Preference {
	if r.store == nil {
		return PreferenceSystem
	}
	raw, err := r.store.Load(ctx)
	if err != nil {
		r.log.Debug("theme preference unavailable", zap.Error(err))
		return PreferenceSystem
	}
	if raw == "" {
		return PreferenceSystem
	}
	p, ok := ParsePreference(raw)
	if !ok {
		r.log.Debug("ignoring invalid stored theme preference", zap.String("value", raw))
		return PreferenceSystem
	}
	return p
}

func (r *Resolver) save(ctx context.Context, p Preference) error {
	if r.store == nil {
		return errNoStore
	}
	return r.store.Save(ctx, p.String())
}

// refreshSignalLocked re-reads the detector, keeping the last snapshot when
// detection fails. r.mu must be held.
func (r *Resolver) refreshSignalLocked() {
	if r.detector == nil {
		return
	}
	dark, err := r.detector.PrefersDark()
	if err != nil {
		r.log.Debug("color scheme detection failed", zap.Error(err))
		return
	}
	r.prefersDark = dark
}

func (r *Resolver) publish() {
	r.publishMu.Lock()
	defer r.publishMu.Unlock()

	r.mu.Lock()
	resolved := r.resolved
	observers := make([]func(Resolved), 0, len(r.observers))
	for _, fn := range r.observers {
		observers = append(observers, fn)
	}
	r.mu.Unlock()

	if r.applier != nil {
		r.applier.Apply(resolved)
	}
	for _, fn := range observers {
		fn(resolved)
	}
}
