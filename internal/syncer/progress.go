package syncer

import (
	"fmt"

	"github.com/repquest/repquest/internal/cache"
	"github.com/repquest/repquest/internal/models"
)

// entry returns the progress entry for a composite key, creating it lazily
// on first input.
func (s *Store) entry(date, dayKey string, exerciseIndex int) *models.ProgressEntry {
	key := models.ProgressKey(date, dayKey, exerciseIndex)
	e, ok := s.progress[key]
	if !ok {
		e = &models.ProgressEntry{}
		s.progress[key] = e
	}
	return e
}

// LogSet records a set at setIndex for the given exercise, growing the set
// list as needed. Progress is local-only until finalization, so there is no
// remote leg, just memory plus cache.
func (s *Store) LogSet(date, dayKey string, exerciseIndex, setIndex int, set models.SetEntry) {
	e := s.entry(date, dayKey, exerciseIndex)
	for len(e.Sets) <= setIndex {
		e.Sets = append(e.Sets, models.SetEntry{})
	}
	e.Sets[setIndex] = set
	s.persist(cache.KeyProgress, s.progress)
}

// MarkDone flags an exercise as finished for the day.
func (s *Store) MarkDone(date, dayKey string, exerciseIndex int, done bool) {
	e := s.entry(date, dayKey, exerciseIndex)
	e.Done = done
	s.persist(cache.KeyProgress, s.progress)
}

// SetSetCount overrides the planned set count for an exercise.
func (s *Store) SetSetCount(date, dayKey string, exerciseIndex, count int) {
	e := s.entry(date, dayKey, exerciseIndex)
	e.SetCount = count
	s.persist(cache.KeyProgress, s.progress)
}

// DisplayName returns the name currently shown for an exercise: the
// swapped substitute if one is stored, otherwise the plan's original.
func (s *Store) DisplayName(date, dayKey string, exerciseIndex int) string {
	day, ok := s.plan[dayKey]
	if !ok || exerciseIndex >= len(day.Exercises) {
		return ""
	}
	original := day.Exercises[exerciseIndex].Name

	key := models.ProgressKey(date, dayKey, exerciseIndex)
	if e, ok := s.progress[key]; ok && e.SwappedName != "" {
		return e.SwappedName
	}
	return original
}

// SwapExercise advances the displayed name one step through the cycle
// [original, alternatives...], wrapping around. The substitution lives on
// the progress entry; the plan is never mutated, so cycling all the way
// around reverts to the original. Returns the new display name.
func (s *Store) SwapExercise(date, dayKey string, exerciseIndex int) (string, error) {
	day, ok := s.plan[dayKey]
	if !ok {
		return "", fmt.Errorf("no plan for day %q", dayKey)
	}
	if exerciseIndex < 0 || exerciseIndex >= len(day.Exercises) {
		return "", fmt.Errorf("exercise index %d out of range for %q", exerciseIndex, dayKey)
	}

	ex := day.Exercises[exerciseIndex]
	if len(ex.Alternatives) == 0 {
		return ex.Name, nil
	}

	cycle := append([]string{ex.Name}, ex.Alternatives...)
	current := s.DisplayName(date, dayKey, exerciseIndex)

	pos := 0
	for i, name := range cycle {
		if name == current {
			pos = i
			break
		}
	}
	next := cycle[(pos+1)%len(cycle)]

	e := s.entry(date, dayKey, exerciseIndex)
	if next == ex.Name {
		e.SwappedName = ""
	} else {
		e.SwappedName = next
	}
	s.persist(cache.KeyProgress, s.progress)
	return next, nil
}
