package carousel

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fast(length int) Model {
	return New(length, WithInterval(time.Millisecond), WithResumeAfter(time.Millisecond))
}

// run executes cmd and returns the message it produces.
func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func TestNewStartsOnSecondSlide(t *testing.T) {
	assert.Equal(t, 1, New(3).Index())
	assert.Equal(t, 0, New(1).Index())
	assert.Equal(t, 0, New(0).Index())
	assert.True(t, New(3).AutoPlaying())
}

func TestAutoAdvanceWraps(t *testing.T) {
	m := fast(3)
	msg := run(t, m.Init())

	var cmd tea.Cmd
	m, cmd = m.Update(msg)
	assert.Equal(t, 2, m.Index())

	m, _ = m.Update(run(t, cmd))
	assert.Equal(t, 0, m.Index())
}

func TestManualMovePausesAndResumes(t *testing.T) {
	m := fast(3)
	staleTick := run(t, m.Init())

	m, resume := m.Next()
	assert.Equal(t, 2, m.Index())
	assert.False(t, m.AutoPlaying())

	// The tick scheduled before the manual move must not fire.
	m, cmd := m.Update(staleTick)
	assert.Nil(t, cmd)
	assert.Equal(t, 2, m.Index())

	m, cmd = m.Update(run(t, resume))
	assert.True(t, m.AutoPlaying())
	m, _ = m.Update(run(t, cmd))
	assert.Equal(t, 0, m.Index())
}

func TestRapidMovesLeaveOneLiveResume(t *testing.T) {
	m := fast(4)
	m, firstResume := m.Prev()
	m, secondResume := m.Prev()
	assert.Equal(t, 3, m.Index())

	m, cmd := m.Update(run(t, firstResume))
	assert.Nil(t, cmd, "superseded resume is ignored")
	assert.False(t, m.AutoPlaying())

	m, cmd = m.Update(run(t, secondResume))
	assert.NotNil(t, cmd)
	assert.True(t, m.AutoPlaying())
}

func TestPrevWrapsBackwards(t *testing.T) {
	m := New(3)
	m, _ = m.Prev()
	m, _ = m.Prev()
	assert.Equal(t, 2, m.Index())
}

func TestEmptyCarouselIsInert(t *testing.T) {
	m := New(0)
	assert.Nil(t, m.Init())

	m, cmd := m.Next()
	assert.Nil(t, cmd)
	m, cmd = m.Update(TickMsg{ID: m.ID()})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.Index())
}

func TestIgnoresOtherCarousels(t *testing.T) {
	a := fast(3)
	b := fast(3)

	a, cmd := a.Update(run(t, b.Init()))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, a.Index())
}
