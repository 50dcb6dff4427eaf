package appearance

import (
	"context"
	"sync"
	"time"

	"agents/internal/debug"

	"go.uber.org/zap"
)

// DefaultInterval is how often the watcher polls when none is given.
const DefaultInterval = 2 * time.Second

// Watcher polls a Detector and reports transitions. Hosts rarely offer a
// portable change notification, so polling stands in for one.
type Watcher struct {
	detector Detector
	interval time.Duration
	onChange func(prefersDark bool)

	mu    sync.Mutex
	known bool
	last  bool
}

// NewWatcher returns a watcher calling onChange for each observed transition.
func NewWatcher(d Detector, interval time.Duration, onChange func(prefersDark bool)) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{detector: d, interval: interval, onChange: onChange}
}

// Prime records the signal the consumer already acted on, so the first poll
// only reports a real change.
func (w *Watcher) Prime(prefersDark bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.known = true
	w.last = prefersDark
}

// Check polls once. changed is true only when a previous value was known and
// the new one differs; the first successful poll just establishes the baseline.
func (w *Watcher) Check() (prefersDark, changed bool, err error) {
	dark, err := w.detector.PrefersDark()
	if err != nil {
		return false, false, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	changed = w.known && dark != w.last
	w.known = true
	w.last = dark
	return dark, changed, nil
}

// Run polls until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			dark, changed, err := w.Check()
			if err != nil {
				debug.L().Debug("color scheme poll failed", zap.String("detector", w.detector.Name()), zap.Error(err))
				continue
			}
			if changed && w.onChange != nil {
				w.onChange(dark)
			}
		}
	}
}
