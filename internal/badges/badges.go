// Package badges evaluates achievement predicates over full workout
// history. Unlocks are recomputed on every call and never persisted, so a
// badge can regress only if history itself is edited or deleted.
package badges

import (
	"regexp"

	"github.com/repquest/repquest/internal/game"
	"github.com/repquest/repquest/internal/models"
)

// Definition is one badge: identity, display fields, and a pure unlock
// predicate over history.
type Definition struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Unlocked    func(history []models.Session) bool
}

// Badge is a definition annotated with its evaluated unlock state.
type Badge struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
}

var legDayRe = regexp.MustCompile(`(?i)squat|leg press|lunge|leg curl|leg extension|calf|hip thrust|deadlift`)

// Definitions is the fixed badge list. Order is part of the contract:
// Evaluate preserves it.
var Definitions = []Definition{
	{
		ID:          "first-blood",
		Title:       "First Blood",
		Description: "Finish your first workout",
		Icon:        "sword",
		Unlocked:    sessionCount(1),
	},
	{
		ID:          "regular",
		Title:       "Regular",
		Description: "Finish 10 workouts",
		Icon:        "calendar",
		Unlocked:    sessionCount(10),
	},
	{
		ID:          "veteran",
		Title:       "Veteran",
		Description: "Finish 50 workouts",
		Icon:        "shield",
		Unlocked:    sessionCount(50),
	},
	{
		ID:          "centurion",
		Title:       "Centurion",
		Description: "Finish 100 workouts",
		Icon:        "crown",
		Unlocked:    sessionCount(100),
	},
	{
		ID:          "heavy-lifter",
		Title:       "Heavy Lifter",
		Description: "Move 5,000 kg of volume in a single session",
		Icon:        "dumbbell",
		Unlocked:    anySessionVolume(5000),
	},
	{
		ID:          "one-tonne",
		Title:       "Ten Tonnes",
		Description: "Move 10,000 kg of volume in a single session",
		Icon:        "mountain",
		Unlocked:    anySessionVolume(10000),
	},
	{
		ID:          "leg-day-survivor",
		Title:       "Leg Day Survivor",
		Description: "Move 3,000 kg of leg work in a single session",
		Icon:        "flame",
		Unlocked:    anySessionVolumeMatching(legDayRe, 3000),
	},
	{
		ID:          "apprentice",
		Title:       "Apprentice",
		Description: "Reach 50,000 total XP",
		Icon:        "star",
		Unlocked:    totalXP(50000),
	},
	{
		ID:          "grinder",
		Title:       "Grinder",
		Description: "Reach 250,000 total XP",
		Icon:        "gem",
		Unlocked:    totalXP(250000),
	},
	{
		ID:          "early-bird",
		Title:       "Early Bird",
		Description: "Finish a workout before 7am",
		Icon:        "sunrise",
		// History entries carry a date, not a timestamp, so this predicate
		// cannot be evaluated. Kept as a permanent no-op until sessions
		// record a finish time.
		Unlocked: func([]models.Session) bool { return false },
	},
}

// Evaluate returns every badge with its unlock state, in declared order.
func Evaluate(history []models.Session) []Badge {
	out := make([]Badge, 0, len(Definitions))
	for _, def := range Definitions {
		out = append(out, Badge{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Icon:        def.Icon,
			Unlocked:    def.Unlocked(history),
		})
	}
	return out
}

func sessionCount(n int) func([]models.Session) bool {
	return func(history []models.Session) bool {
		return len(history) >= n
	}
}

func anySessionVolume(threshold float64) func([]models.Session) bool {
	return func(history []models.Session) bool {
		for _, s := range history {
			if game.SessionVolume(s) >= threshold {
				return true
			}
		}
		return false
	}
}

// anySessionVolumeMatching sums only exercises whose name matches re.
func anySessionVolumeMatching(re *regexp.Regexp, threshold float64) func([]models.Session) bool {
	return func(history []models.Session) bool {
		for _, s := range history {
			var vol float64
			for _, ex := range s.Exercises {
				if re.MatchString(ex.Name) {
					vol += game.ExerciseVolume(ex)
				}
			}
			if vol >= threshold {
				return true
			}
		}
		return false
	}
}

func totalXP(threshold float64) func([]models.Session) bool {
	return func(history []models.Session) bool {
		return game.TotalXP(history) >= threshold
	}
}
