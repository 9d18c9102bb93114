package models

import (
	"fmt"

	"github.com/google/uuid"
)

// DayKeys is the fixed weekday set used to index the workout plan.
// Keys are stable identifiers: progress entries reference them directly.
var DayKeys = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Exercise is one planned exercise within a day.
type Exercise struct {
	Name string `json:"name"`
	// Sets encodes either an "NxR" rep scheme ("4x8") or a duration ("10 min").
	Sets         string   `json:"sets"`
	Note         string   `json:"note,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`
}

// Day is one planned training day.
type Day struct {
	Title     string     `json:"title"`
	Focus     string     `json:"focus"`
	Exercises []Exercise `json:"exercises"`
}

// Plan maps day keys to planned days. Exercise order within a day is part
// of progress-entry identity, so it must be preserved.
type Plan map[string]Day

// SetEntry is a single logged set.
type SetEntry struct {
	Weight    string `json:"weight"`
	Reps      string `json:"reps"`
	RPE       string `json:"rpe,omitempty"`
	Completed bool   `json:"completed"`
}

// ProgressEntry is the transient editing state for one exercise on one day.
// Created lazily on first input, cleared when the workout is finalized.
type ProgressEntry struct {
	Sets []SetEntry `json:"sets"`
	Done bool       `json:"done"`
	// SetCount overrides the planned set count when > 0.
	SetCount int `json:"setCount,omitempty"`
	// SwappedName is the substituted display name, empty when showing the
	// plan's original exercise.
	SwappedName string `json:"swappedName,omitempty"`
}

// ProgressKey builds the composite key indexing the progress map.
func ProgressKey(date, dayKey string, exerciseIndex int) string {
	return fmt.Sprintf("%s-%s-%d", date, dayKey, exerciseIndex)
}

// ProgressMap holds all in-flight progress entries keyed by ProgressKey.
type ProgressMap map[string]*ProgressEntry

// SessionExercise is one finalized exercise within a session.
type SessionExercise struct {
	Name string     `json:"name"`
	Sets []SetEntry `json:"sets"`
	Done bool       `json:"done"`
}

// Session is one finalized workout. Immutable after creation except for
// explicit note/exercise edits; deletable by id.
type Session struct {
	ID        uuid.UUID         `json:"id"`
	Date      string            `json:"date"` // YYYY-MM-DD
	Label     string            `json:"label"`
	Note      string            `json:"note,omitempty"`
	Exercises []SessionExercise `json:"exercises"`
}

// BodyMetric is one dated measurement. At most one entry per date: a second
// save for the same date overwrites the first.
type BodyMetric struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Weight string `json:"weight,omitempty"`
	Waist  string `json:"waist,omitempty"`
}

// Quest is one daily objective with a reward and completion state.
type Quest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	XP          int    `json:"xp"`
	Completed   bool   `json:"completed"`
	Date        string `json:"date"` // generation date, YYYY-MM-DD
}
