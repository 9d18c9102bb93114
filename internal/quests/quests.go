// Package quests generates the three daily objectives. Selection is a pure
// function of the calendar date: a date-derived seed drives a mulberry32
// shuffle of the fixed pool, so every device picks the same quests for the
// same day without any network round-trip.
package quests

import (
	"regexp"

	"github.com/repquest/repquest/internal/game"
	"github.com/repquest/repquest/internal/models"
)

// PerDay is how many quests are drawn from the pool each date.
const PerDay = 3

// SessionMetrics are the derived values quest predicates are written
// against, computed once from a finalized session.
type SessionMetrics struct {
	TotalVolume    float64
	TotalReps      float64
	LegSets        int
	PushSets       int
	PullSets       int
	CompletionRate float64 // completed exercises / planned exercises, 0..1
	Hour           int     // local hour the workout was finished
}

var (
	legRe  = regexp.MustCompile(`(?i)squat|lunge|leg|calf|hip thrust|deadlift`)
	pushRe = regexp.MustCompile(`(?i)bench|press|push|dip|fly|tricep`)
	pullRe = regexp.MustCompile(`(?i)row|pull|chin|curl|lat |deadlift|shrug`)
)

// MetricsFor derives quest metrics from a session finished at the given
// local hour.
func MetricsFor(s models.Session, hour int) SessionMetrics {
	m := SessionMetrics{TotalVolume: game.SessionVolume(s), Hour: hour}
	var done int
	for _, ex := range s.Exercises {
		if ex.Done {
			done++
		}
		sets := len(ex.Sets)
		if legRe.MatchString(ex.Name) {
			m.LegSets += sets
		}
		if pushRe.MatchString(ex.Name) {
			m.PushSets += sets
		}
		if pullRe.MatchString(ex.Name) {
			m.PullSets += sets
		}
		for _, set := range ex.Sets {
			m.TotalReps += game.ParseNum(set.Reps)
		}
	}
	if len(s.Exercises) > 0 {
		m.CompletionRate = float64(done) / float64(len(s.Exercises))
	}
	return m
}

// Template is one entry in the fixed quest pool.
type Template struct {
	ID          string
	Title       string
	Description string
	XP          int
	Complete    func(m SessionMetrics) bool
}

// Pool is the fixed ordered quest pool the daily shuffle draws from.
var Pool = []Template{
	{
		ID:          "volume-3k",
		Title:       "Iron Mover",
		Description: "Move at least 3,000 kg of total volume",
		XP:          150,
		Complete:    func(m SessionMetrics) bool { return m.TotalVolume >= 3000 },
	},
	{
		ID:          "volume-5k",
		Title:       "Heavy Hauler",
		Description: "Move at least 5,000 kg of total volume",
		XP:          250,
		Complete:    func(m SessionMetrics) bool { return m.TotalVolume >= 5000 },
	},
	{
		ID:          "reps-100",
		Title:       "Century Club",
		Description: "Complete 100 total reps",
		XP:          100,
		Complete:    func(m SessionMetrics) bool { return m.TotalReps >= 100 },
	},
	{
		ID:          "reps-200",
		Title:       "Rep Machine",
		Description: "Complete 200 total reps",
		XP:          200,
		Complete:    func(m SessionMetrics) bool { return m.TotalReps >= 200 },
	},
	{
		ID:          "leg-sets-8",
		Title:       "Never Skip Leg Day",
		Description: "Log 8 sets of leg work",
		XP:          150,
		Complete:    func(m SessionMetrics) bool { return m.LegSets >= 8 },
	},
	{
		ID:          "push-sets-8",
		Title:       "Push It",
		Description: "Log 8 sets of pushing work",
		XP:          150,
		Complete:    func(m SessionMetrics) bool { return m.PushSets >= 8 },
	},
	{
		ID:          "pull-sets-8",
		Title:       "Back Attack",
		Description: "Log 8 sets of pulling work",
		XP:          150,
		Complete:    func(m SessionMetrics) bool { return m.PullSets >= 8 },
	},
	{
		ID:          "finish-all",
		Title:       "Completionist",
		Description: "Finish every exercise on today's plan",
		XP:          200,
		Complete:    func(m SessionMetrics) bool { return m.CompletionRate >= 1 },
	},
	{
		ID:          "morning-grind",
		Title:       "Morning Grind",
		Description: "Finish a workout before 9am",
		XP:          120,
		Complete:    func(m SessionMetrics) bool { return m.Hour < 9 },
	},
	{
		ID:          "night-owl",
		Title:       "Night Owl",
		Description: "Finish a workout after 8pm",
		XP:          120,
		Complete:    func(m SessionMetrics) bool { return m.Hour >= 20 },
	},
}

// ForDate deterministically selects the day's quests: shuffle the pool with
// the date-seeded generator, take the first PerDay, stamp each with the
// date and an unset completed flag.
func ForDate(date string) []models.Quest {
	order := make([]int, len(Pool))
	for i := range order {
		order[i] = i
	}
	shuffle(order, newRNG(dateSeed(date)))

	out := make([]models.Quest, 0, PerDay)
	for _, idx := range order[:PerDay] {
		t := Pool[idx]
		out = append(out, models.Quest{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			XP:          t.XP,
			Completed:   false,
			Date:        date,
		})
	}
	return out
}

// Apply marks quests completed when the session's metrics satisfy their
// predicates. Already-completed quests stay completed.
func Apply(qs []models.Quest, m SessionMetrics) []models.Quest {
	byID := make(map[string]Template, len(Pool))
	for _, t := range Pool {
		byID[t.ID] = t
	}
	out := make([]models.Quest, len(qs))
	copy(out, qs)
	for i := range out {
		if out[i].Completed {
			continue
		}
		if t, ok := byID[out[i].ID]; ok && t.Complete(m) {
			out[i].Completed = true
		}
	}
	return out
}
