package syncer

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/repquest/repquest/internal/cache"
	"github.com/repquest/repquest/internal/models"
	"github.com/repquest/repquest/internal/quests"
)

// FinishWorkout finalizes the active day: builds a session from the plan
// and the progress map, flushes any pending body-metric input, inserts the
// session remotely, prepends it to local history, clears the progress map,
// and refetches server state to pick up server-side transformations.
//
// The refetch runs only after a successful insert. Skipping it on failure
// keeps the optimistic local session visible instead of letting a stale
// fetch mask the failed write.
//
// The returned error is ErrRemote-wrapped when only the remote leg failed;
// the local commit has already happened in that case.
func (s *Store) FinishWorkout(ctx context.Context, date, dayKey, note string, pending *models.BodyMetric) (models.Session, error) {
	day, ok := s.plan[dayKey]
	if !ok {
		return models.Session{}, fmt.Errorf("no plan for day %q", dayKey)
	}

	session := models.Session{
		ID:    uuid.New(), // provisional; replaced by the server-assigned id
		Date:  date,
		Label: day.Title,
		Note:  note,
	}
	for i := range day.Exercises {
		key := models.ProgressKey(date, dayKey, i)
		e, ok := s.progress[key]
		if !ok || len(e.Sets) == 0 {
			continue
		}
		session.Exercises = append(session.Exercises, models.SessionExercise{
			Name: s.DisplayName(date, dayKey, i),
			Sets: e.Sets,
			Done: e.Done,
		})
	}

	var remoteFailure error

	if pending != nil {
		if err := s.SaveBodyMetric(ctx, *pending); err != nil {
			remoteFailure = err
		}
	}

	inserted := false
	if s.remote != nil {
		created, err := s.remote.InsertSession(ctx, session)
		if err != nil {
			remoteFailure = remoteErr("insert session", err)
		} else {
			session = created
			inserted = true
		}
	}

	// Optimistic prepend: history is most-recent-first.
	s.history = append([]models.Session{session}, s.history...)
	s.persist(cache.KeyHistory, s.history)

	s.progress = models.ProgressMap{}
	s.persist(cache.KeyProgress, s.progress)

	s.applyQuestCompletion(session)

	if inserted {
		if err := s.Refresh(ctx); err != nil {
			s.log.Warn("post-finalize refresh failed", "error", err)
		}
	}

	return session, remoteFailure
}

// applyQuestCompletion checks today's quests against the finalized
// session's derived metrics.
func (s *Store) applyQuestCompletion(session models.Session) {
	qs := s.DailyQuests()
	updated := quests.Apply(qs, quests.MetricsFor(session, s.now().Hour()))
	s.quests = updated
	s.persist(cache.KeyQuests, s.quests)
}

// SaveBodyMetric upserts a measurement by date: memory and cache first,
// then best-effort remote. A second save for the same date overwrites the
// first entry.
func (s *Store) SaveBodyMetric(ctx context.Context, m models.BodyMetric) error {
	replaced := false
	for i := range s.metrics {
		if s.metrics[i].Date == m.Date {
			s.metrics[i] = m
			replaced = true
			break
		}
	}
	if !replaced {
		// Metrics stay most-recent-first even when backfilling an older
		// date. ISO dates sort lexically.
		i := sort.Search(len(s.metrics), func(i int) bool {
			return s.metrics[i].Date < m.Date
		})
		s.metrics = append(s.metrics, models.BodyMetric{})
		copy(s.metrics[i+1:], s.metrics[i:])
		s.metrics[i] = m
	}
	s.persist(cache.KeyBodyMetrics, s.metrics)

	if s.remote == nil {
		return nil
	}
	if err := s.remote.PutMetric(ctx, m); err != nil {
		return remoteErr("put metric", err)
	}
	return nil
}

// DeleteBodyMetric removes the measurement for a date locally and
// best-effort remotely. Callers confirm with the user before invoking.
func (s *Store) DeleteBodyMetric(ctx context.Context, date string) error {
	kept := s.metrics[:0]
	for _, m := range s.metrics {
		if m.Date != date {
			kept = append(kept, m)
		}
	}
	s.metrics = kept
	s.persist(cache.KeyBodyMetrics, s.metrics)

	if s.remote == nil {
		return nil
	}
	if err := s.remote.DeleteMetric(ctx, date); err != nil {
		return remoteErr("delete metric", err)
	}
	return nil
}

// UpdateSessionNote edits the note of a finalized session.
func (s *Store) UpdateSessionNote(ctx context.Context, id uuid.UUID, note string) error {
	var target *models.Session
	for i := range s.history {
		if s.history[i].ID == id {
			s.history[i].Note = note
			target = &s.history[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("session %s not found", id)
	}
	s.persist(cache.KeyHistory, s.history)

	if s.remote == nil {
		return nil
	}
	if err := s.remote.UpdateSession(ctx, *target); err != nil {
		return remoteErr("update session", err)
	}
	return nil
}

// DeleteSession removes a finalized session by id. Callers confirm with
// the user before invoking.
func (s *Store) DeleteSession(ctx context.Context, id uuid.UUID) error {
	kept := s.history[:0]
	found := false
	for _, h := range s.history {
		if h.ID == id {
			found = true
			continue
		}
		kept = append(kept, h)
	}
	if !found {
		return fmt.Errorf("session %s not found", id)
	}
	s.history = kept
	s.persist(cache.KeyHistory, s.history)

	if s.remote == nil {
		return nil
	}
	if err := s.remote.DeleteSession(ctx, id); err != nil {
		return remoteErr("delete session", err)
	}
	return nil
}
