package memory

import (
	"context"
	"sync"

	"github.com/sandevgo/butler/internal/core"
	"github.com/sandevgo/butler/pkg/log"
)

// Store keeps committed interactions per user for the lifetime of the process.
type Store struct {
	mu      sync.RWMutex
	records map[core.UserID][]core.Interaction
}

func NewStore() *Store {
	return &Store{
		records: make(map[core.UserID][]core.Interaction),
	}
}

func (s *Store) Append(ctx context.Context, user core.UserID, rec core.Interaction) error {
	s.mu.Lock()
	s.records[user] = append(s.records[user], rec)
	n := len(s.records[user])
	s.mu.Unlock()

	log.FromCtx(ctx).Debug().Int("count", n).Msg("interaction stored")
	return nil
}

// Clear drops the whole sequence of the user, or reports core.ErrNoRecords.
func (s *Store) Clear(ctx context.Context, user core.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records[user]) == 0 {
		return core.ErrNoRecords
	}
	delete(s.records, user)
	return nil
}

// Get returns a copy of the user's records in commit order, nil if there are none.
func (s *Store) Get(ctx context.Context, user core.UserID) ([]core.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.records[user]
	if len(recs) == 0 {
		return nil, nil
	}

	out := make([]core.Interaction, len(recs))
	copy(out, recs)
	return out, nil
}

func (s *Store) Count(ctx context.Context, user core.UserID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records[user])
}
