package syncer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/repquest/repquest/internal/models"
)

func storeWithPlan(t *testing.T, remote Remote) *Store {
	t.Helper()
	clock := func() time.Time { return time.Date(2026, 2, 12, 18, 0, 0, 0, time.UTC) }
	s := New(openCache(t), remote, discardLogger(), WithClock(clock))
	s.plan = testPlan()
	return s
}

// TestFinishWorkout verifies the full finalization path: the session is
// built from logged progress, the server id is adopted, progress clears,
// and history refetches from the server.
func TestFinishWorkout(t *testing.T) {
	remote := &fakeRemote{plan: testPlan()}
	s := storeWithPlan(t, remote)

	s.LogSet("2026-02-12", "monday", 0, 0, models.SetEntry{Weight: "100", Reps: "8", Completed: true})
	s.LogSet("2026-02-12", "monday", 0, 1, models.SetEntry{Weight: "100", Reps: "7", Completed: true})
	s.MarkDone("2026-02-12", "monday", 0, true)
	// Exercise 1 never gets a set and must be dropped from the session.

	session, err := s.FinishWorkout(context.Background(), "2026-02-12", "monday", "felt strong", nil)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}

	if session.Label != "Push Day" {
		t.Errorf("label = %q, want Push Day", session.Label)
	}
	if session.Note != "felt strong" {
		t.Errorf("note = %q", session.Note)
	}
	if len(session.Exercises) != 1 {
		t.Fatalf("exercises = %d, want 1 (setless exercise dropped)", len(session.Exercises))
	}
	if !session.Exercises[0].Done {
		t.Error("exercise done flag lost")
	}
	if session.ID == uuid.Nil {
		t.Error("session id not assigned")
	}
	if remote.insertCalls != 1 {
		t.Errorf("insert calls = %d, want 1", remote.insertCalls)
	}
	if len(s.Progress()) != 0 {
		t.Errorf("progress entries = %d, want 0 after finalize", len(s.Progress()))
	}
	// Successful insert triggers a refetch: Load-free store saw one
	// FetchSessions from the post-finalize refresh.
	if remote.fetchSessionsCalls != 1 {
		t.Errorf("fetch sessions calls = %d, want 1", remote.fetchSessionsCalls)
	}
	if len(s.History()) != 1 {
		t.Errorf("history = %d, want 1", len(s.History()))
	}
}

// TestFinishWorkoutRemoteDown verifies the offline finalization contract:
// the session commits locally under its provisional id, the error is
// ErrRemote, and no refetch runs to mask the optimistic entry.
func TestFinishWorkoutRemoteDown(t *testing.T) {
	remote := &fakeRemote{fail: true}
	s := storeWithPlan(t, remote)

	s.LogSet("2026-02-12", "monday", 0, 0, models.SetEntry{Weight: "100", Reps: "8", Completed: true})

	session, err := s.FinishWorkout(context.Background(), "2026-02-12", "monday", "", nil)
	if !errors.Is(err, ErrRemote) {
		t.Fatalf("err = %v, want ErrRemote", err)
	}
	if len(s.History()) != 1 {
		t.Fatalf("history = %d, want optimistic local entry", len(s.History()))
	}
	if s.History()[0].ID != session.ID {
		t.Error("local history entry does not carry the provisional id")
	}
	if len(s.Progress()) != 0 {
		t.Error("progress must clear even when the remote write fails")
	}
	if remote.fetchSessionsCalls != 0 {
		t.Errorf("fetch sessions calls = %d, want 0 after failed insert", remote.fetchSessionsCalls)
	}
}

// TestFinishWorkoutUnknownDay verifies finalizing a day with no plan fails
// before any state changes.
func TestFinishWorkoutUnknownDay(t *testing.T) {
	s := storeWithPlan(t, nil)
	if _, err := s.FinishWorkout(context.Background(), "2026-02-12", "someday", "", nil); err == nil {
		t.Fatal("expected error for unknown day key")
	}
}

// TestFinishWorkoutPendingMetric verifies the pending body-metric input is
// flushed as part of finalization.
func TestFinishWorkoutPendingMetric(t *testing.T) {
	remote := &fakeRemote{plan: testPlan()}
	s := storeWithPlan(t, remote)
	s.LogSet("2026-02-12", "monday", 0, 0, models.SetEntry{Weight: "60", Reps: "10", Completed: true})

	pending := &models.BodyMetric{Date: "2026-02-12", Weight: "81,5"}
	if _, err := s.FinishWorkout(context.Background(), "2026-02-12", "monday", "", pending); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if remote.putMetricCalls != 1 {
		t.Errorf("put metric calls = %d, want 1", remote.putMetricCalls)
	}
}

// TestFinishWorkoutCompletesQuests verifies a qualifying session marks the
// day's matching quests complete.
func TestFinishWorkoutCompletesQuests(t *testing.T) {
	s := storeWithPlan(t, nil)
	before := s.DailyQuests()

	// 10 heavy sets: 150 kg × 10 reps × 10 = 15000 volume, 100 reps.
	for i := 0; i < 10; i++ {
		s.LogSet("2026-02-12", "monday", 0, i, models.SetEntry{Weight: "150", Reps: "10", Completed: true})
	}
	s.MarkDone("2026-02-12", "monday", 0, true)
	if _, err := s.FinishWorkout(context.Background(), "2026-02-12", "monday", "", nil); err != nil {
		t.Fatalf("finish: %v", err)
	}

	// Which quests complete depends on the day's draw, so assert the
	// invariants instead: the set is stable and completion never regresses.
	after := s.DailyQuests()
	for i := range after {
		if after[i].ID != before[i].ID {
			t.Errorf("quest set changed during finalize: %q vs %q", after[i].ID, before[i].ID)
		}
		if before[i].Completed && !after[i].Completed {
			t.Errorf("quest %q regressed from completed", after[i].ID)
		}
	}
}

// TestSaveBodyMetricUpsert verifies a second save for the same date
// overwrites the first entry instead of appending a duplicate.
func TestSaveBodyMetricUpsert(t *testing.T) {
	s := storeWithPlan(t, nil)
	ctx := context.Background()

	if err := s.SaveBodyMetric(ctx, models.BodyMetric{Date: "2026-01-01", Weight: "80"}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveBodyMetric(ctx, models.BodyMetric{Date: "2026-01-01", Weight: "82"}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveBodyMetric(ctx, models.BodyMetric{Date: "2026-01-02", Weight: "81"}); err != nil {
		t.Fatal(err)
	}

	metrics := s.Metrics()
	if len(metrics) != 2 {
		t.Fatalf("metrics = %d, want 2", len(metrics))
	}
	for _, m := range metrics {
		if m.Date == "2026-01-01" && m.Weight != "82" {
			t.Errorf("2026-01-01 weight = %q, want 82 (second save wins)", m.Weight)
		}
	}
}

// TestSaveBodyMetricBackfillOrder verifies metrics stay most-recent-first
// when a measurement for an older date is saved after newer ones.
func TestSaveBodyMetricBackfillOrder(t *testing.T) {
	s := storeWithPlan(t, nil)
	ctx := context.Background()

	s.SaveBodyMetric(ctx, models.BodyMetric{Date: "2026-01-03", Weight: "81"})
	s.SaveBodyMetric(ctx, models.BodyMetric{Date: "2026-01-05", Weight: "82"})
	s.SaveBodyMetric(ctx, models.BodyMetric{Date: "2026-01-01", Weight: "80"}) // backfill
	s.SaveBodyMetric(ctx, models.BodyMetric{Date: "2026-01-04", Weight: "83"})

	want := []string{"2026-01-05", "2026-01-04", "2026-01-03", "2026-01-01"}
	metrics := s.Metrics()
	if len(metrics) != len(want) {
		t.Fatalf("metrics = %d, want %d", len(metrics), len(want))
	}
	for i, date := range want {
		if metrics[i].Date != date {
			t.Errorf("metrics[%d].Date = %q, want %q", i, metrics[i].Date, date)
		}
	}
}

// TestDeleteBodyMetric verifies removal by date with a committed local leg.
func TestDeleteBodyMetric(t *testing.T) {
	remote := &fakeRemote{}
	s := storeWithPlan(t, remote)
	ctx := context.Background()

	s.SaveBodyMetric(ctx, models.BodyMetric{Date: "2026-01-01", Weight: "80"})
	s.SaveBodyMetric(ctx, models.BodyMetric{Date: "2026-01-02", Weight: "81"})

	if err := s.DeleteBodyMetric(ctx, "2026-01-01"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(s.Metrics()) != 1 || s.Metrics()[0].Date != "2026-01-02" {
		t.Errorf("metrics = %+v, want only 2026-01-02", s.Metrics())
	}
}

// TestUpdateSessionNote verifies note edits land locally and remotely.
func TestUpdateSessionNote(t *testing.T) {
	remote := &fakeRemote{}
	s := storeWithPlan(t, remote)
	id := uuid.New()
	s.history = []models.Session{{ID: id, Date: "2026-02-10", Label: "Push Day"}}

	if err := s.UpdateSessionNote(context.Background(), id, "deload week"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if s.History()[0].Note != "deload week" {
		t.Errorf("note = %q, want deload week", s.History()[0].Note)
	}

	if err := s.UpdateSessionNote(context.Background(), uuid.New(), "x"); err == nil {
		t.Error("expected error for unknown session id")
	}
}

// TestDeleteSession verifies removal by id and the unknown-id error.
func TestDeleteSession(t *testing.T) {
	s := storeWithPlan(t, nil)
	keep, drop := uuid.New(), uuid.New()
	s.history = []models.Session{
		{ID: keep, Date: "2026-02-11"},
		{ID: drop, Date: "2026-02-10"},
	}

	if err := s.DeleteSession(context.Background(), drop); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(s.History()) != 1 || s.History()[0].ID != keep {
		t.Errorf("history = %+v, want only %s", s.History(), keep)
	}

	if err := s.DeleteSession(context.Background(), drop); err == nil {
		t.Error("expected error deleting missing session")
	}
}

// TestStatsRecomputeAfterDelete verifies derived stats shrink immediately
// when history is edited. Nothing is persisted about levels or badges.
func TestStatsRecomputeAfterDelete(t *testing.T) {
	s := storeWithPlan(t, nil)
	id := uuid.New()
	s.history = []models.Session{{
		ID:   id,
		Date: "2026-02-10",
		Exercises: []models.SessionExercise{{
			Name: "Bench Press",
			Sets: []models.SetEntry{{Weight: "100", Reps: "10", Completed: true}},
		}},
	}}

	if got := s.Stats().TotalXP; got != 1000 {
		t.Fatalf("TotalXP = %v, want 1000", got)
	}
	if !s.Badges()[0].Unlocked {
		t.Error("first-blood should unlock with one session")
	}

	if err := s.DeleteSession(context.Background(), id); err != nil {
		t.Fatal(err)
	}
	if got := s.Stats().TotalXP; got != 0 {
		t.Errorf("TotalXP after delete = %v, want 0", got)
	}
	if s.Badges()[0].Unlocked {
		t.Error("first-blood must re-lock after the only session is deleted")
	}
}
