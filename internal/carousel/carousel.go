// Package carousel is a Bubble Tea component that rotates through a fixed
// number of slides, pausing auto-advance for a while after manual moves.
package carousel

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultInterval    = 5 * time.Second
	DefaultResumeAfter = 10 * time.Second
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg advances the carousel. Ticks carry the generation they were
// scheduled in; anything scheduled before the latest manual move is dropped,
// so exactly one timer is ever live.
type TickMsg struct {
	ID  int
	gen int
}

// ResumeMsg re-enables auto-advance after a manual move.
type ResumeMsg struct {
	ID  int
	gen int
}

// Option configures a Model.
type Option func(*Model)

// WithInterval sets the auto-advance period.
func WithInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithResumeAfter sets how long manual moves pause auto-advance.
func WithResumeAfter(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.resumeAfter = d
		}
	}
}

// Model is the carousel state.
type Model struct {
	id          int
	index       int
	length      int
	autoPlaying bool
	gen         int
	interval    time.Duration
	resumeAfter time.Duration
}

// New returns a carousel over length slides. It starts on the second slide
// so the first one peeks in from the left, and auto-plays.
func New(length int, opts ...Option) Model {
	m := Model{
		id:          nextID(),
		length:      max(length, 0),
		autoPlaying: true,
		interval:    DefaultInterval,
		resumeAfter: DefaultResumeAfter,
	}
	if m.length > 1 {
		m.index = 1
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID identifies this carousel's messages.
func (m Model) ID() int { return m.id }

// Index is the active slide.
func (m Model) Index() int { return m.index }

// Len is the number of slides.
func (m Model) Len() int { return m.length }

// AutoPlaying reports whether the carousel is currently advancing itself.
func (m Model) AutoPlaying() bool { return m.autoPlaying }

// Init schedules the first auto-advance.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles this carousel's timer messages; other messages pass through.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.ID != m.id || msg.gen != m.gen || !m.autoPlaying || m.length == 0 {
			return m, nil
		}
		m.index = (m.index + 1) % m.length
		return m, m.tick()
	case ResumeMsg:
		if msg.ID != m.id || msg.gen != m.gen {
			return m, nil
		}
		m.autoPlaying = true
		m.gen++
		return m, m.tick()
	}
	return m, nil
}

// Next moves forward one slide and pauses auto-advance.
func (m Model) Next() (Model, tea.Cmd) {
	return m.move(1)
}

// Prev moves back one slide and pauses auto-advance.
func (m Model) Prev() (Model, tea.Cmd) {
	return m.move(-1)
}

func (m Model) move(delta int) (Model, tea.Cmd) {
	if m.length == 0 {
		return m, nil
	}
	m.index = ((m.index+delta)%m.length + m.length) % m.length
	m.autoPlaying = false
	m.gen++
	id, gen := m.id, m.gen
	return m, tea.Tick(m.resumeAfter, func(time.Time) tea.Msg {
		return ResumeMsg{ID: id, gen: gen}
	})
}

func (m Model) tick() tea.Cmd {
	if m.length == 0 {
		return nil
	}
	id, gen := m.id, m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return TickMsg{ID: id, gen: gen}
	})
}
