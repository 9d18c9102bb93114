package syncer

import (
	"github.com/repquest/repquest/internal/badges"
	"github.com/repquest/repquest/internal/game"
)

// Stats recomputes the full progression state from history. Derived state
// is never stored; edits and deletions are reflected immediately.
func (s *Store) Stats() game.Stats {
	return game.ComputeStats(s.history)
}

// Badges evaluates every badge against history.
func (s *Store) Badges() []badges.Badge {
	return badges.Evaluate(s.history)
}
