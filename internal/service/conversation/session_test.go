package conversation

import (
	"errors"
	"testing"
	"time"

	"github.com/sandevgo/butler/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestSessions_BeginReplaces(t *testing.T) {
	m := NewSessions()

	first, replaced := m.Begin(1, FlowManual, core.Interaction{Date: "2024-03-01"})
	assert.False(t, replaced)
	assert.Equal(t, StateManualUsername, first.State)
	assert.NotEmpty(t, first.ID)

	second, replaced := m.Begin(1, FlowForwarded, core.Interaction{ChatName: "Alpha"})
	assert.True(t, replaced)
	assert.NotEqual(t, first.ID, second.ID)

	got, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, FlowForwarded, got.Flow)
	assert.Equal(t, StateForwardCompany, got.State)
	assert.Equal(t, 1, m.ActiveCount())
}

func TestSessions_StepErrorKeepsSession(t *testing.T) {
	m := NewSessions()
	m.Begin(1, FlowManual, core.Interaction{})

	boom := errors.New("boom")
	_, ok, err := m.Step(1, func(s *Session) (bool, error) {
		s.Draft.Username = "half-written"
		return false, boom
	})
	require.True(t, ok)
	require.ErrorIs(t, err, boom)

	got, _ := m.Get(1)
	assert.Empty(t, got.Draft.Username)
}

func TestSessions_StepDoneRemoves(t *testing.T) {
	m := NewSessions()
	m.Begin(1, FlowManual, core.Interaction{})

	snap, ok, err := m.Step(1, func(s *Session) (bool, error) {
		s.Draft.Priority = "2"
		return true, nil
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2", snap.Draft.Priority)

	_, ok = m.Get(1)
	assert.False(t, ok)

	_, ok, _ = m.Step(1, func(s *Session) (bool, error) { return false, nil })
	assert.False(t, ok)
}

func TestSessions_GetReturnsCopy(t *testing.T) {
	m := NewSessions()
	m.Begin(1, FlowManual, core.Interaction{Company: "Acme"})

	got, _ := m.Get(1)
	got.Draft.Company = "mutated"

	again, _ := m.Get(1)
	assert.Equal(t, "Acme", again.Draft.Company)
}

func TestSessions_ExpireIdle(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	m := NewSessions()
	m.now = clock.now

	var hooked []core.UserID
	m.SetExpireHook(func(s Session) { hooked = append(hooked, s.User) })

	m.Begin(1, FlowManual, core.Interaction{})
	clock.advance(20 * time.Minute)
	m.Begin(2, FlowForwarded, core.Interaction{})
	clock.advance(15 * time.Minute)

	expired := m.ExpireIdle(30 * time.Minute)
	require.Len(t, expired, 1)
	assert.Equal(t, core.UserID(1), expired[0].User)
	assert.Equal(t, []core.UserID{1}, hooked)

	_, ok := m.Get(2)
	assert.True(t, ok)

	// activity pushes the deadline
	_, _, err := m.Step(2, func(s *Session) (bool, error) { return false, nil })
	require.NoError(t, err)
	clock.advance(20 * time.Minute)
	assert.Empty(t, m.ExpireIdle(30*time.Minute))
}
