package conversation

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/butler/internal/core"
)

// Session is one user's flow in progress: where it stands and the draft so far.
type Session struct {
	ID             string
	User           core.UserID
	Flow           Flow
	State          State
	Draft          core.Interaction
	StartedAt      time.Time
	LastActivityAt time.Time
}

// Sessions holds at most one session per user. Every read-modify-write of a
// session happens under mu, so users never see each other's drafts.
type Sessions struct {
	mu       sync.Mutex
	sessions map[core.UserID]*Session
	now      func() time.Time
	onExpire func(Session)
}

func NewSessions() *Sessions {
	return &Sessions{
		sessions: make(map[core.UserID]*Session),
		now:      time.Now,
	}
}

// SetExpireHook registers fn to be called, outside the lock, for every
// session dropped by ExpireIdle.
func (m *Sessions) SetExpireHook(fn func(Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpire = fn
}

// Begin replaces whatever the user had in progress with a fresh session.
func (m *Sessions) Begin(user core.UserID, flow Flow, draft core.Interaction) (Session, bool) {
	now := m.now()
	s := &Session{
		ID:             uuid.NewString(),
		User:           user,
		Flow:           flow,
		State:          EntryState(flow),
		Draft:          draft,
		StartedAt:      now,
		LastActivityAt: now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	_, replaced := m.sessions[user]
	m.sessions[user] = s
	return *s, replaced
}

// Step runs fn against a copy of the user's session. The copy replaces the
// session when fn succeeds, and the session is dropped when fn reports done.
// The returned bool is false when the user has no session.
func (m *Sessions) Step(user core.UserID, fn func(s *Session) (done bool, err error)) (Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.sessions[user]
	if !ok {
		return Session{}, false, nil
	}

	next := *cur
	done, err := fn(&next)
	if err != nil {
		return *cur, true, err
	}

	if done {
		delete(m.sessions, user)
		return next, true, nil
	}

	next.LastActivityAt = m.now()
	*cur = next
	return next, true, nil
}

func (m *Sessions) Get(user core.UserID) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[user]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// End drops the user's session without committing it.
func (m *Sessions) End(user core.UserID) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[user]
	if !ok {
		return Session{}, false
	}
	delete(m.sessions, user)
	return *s, true
}

func (m *Sessions) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// ExpireIdle drops sessions untouched for at least timeout.
func (m *Sessions) ExpireIdle(timeout time.Duration) []Session {
	now := m.now()
	var expired []Session

	m.mu.Lock()
	for user, s := range m.sessions {
		if now.Sub(s.LastActivityAt) < timeout {
			continue
		}
		expired = append(expired, *s)
		delete(m.sessions, user)
	}
	hook := m.onExpire
	m.mu.Unlock()

	if hook != nil {
		for _, s := range expired {
			hook(s)
		}
	}
	return expired
}
