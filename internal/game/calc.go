package game

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/repquest/repquest/internal/models"
)

var nonNameChars = regexp.MustCompile(`\(.*?\)|[^a-z0-9 ]`)

// ParseNum parses a numeric string leniently. Empty, malformed, or
// non-finite input yields 0: set fields come straight from user input and
// must never make a calculation blow up.
func ParseNum(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != v || v < 0 {
		return 0
	}
	return v
}

// CanonicalName normalizes an exercise name for matching: lowercase,
// parentheticals and punctuation stripped, hyphens folded to spaces,
// whitespace collapsed.
func CanonicalName(name string) string {
	s := strings.ToLower(strings.ReplaceAll(name, "-", " "))
	s = nonNameChars.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// SameExercise reports whether two display names refer to the same
// exercise after canonicalization.
func SameExercise(a, b string) bool {
	return CanonicalName(a) == CanonicalName(b)
}

// Estimate1RM returns the Epley one-rep-max estimate for a set.
// A single rep is already a max; zero reps or weight estimates 0.
func Estimate1RM(weight, reps float64) float64 {
	if weight <= 0 || reps <= 0 {
		return 0
	}
	if reps == 1 {
		return weight
	}
	return weight * (1 + reps/30)
}

// SuggestNextWeight scans history (most recent first) for the last
// appearance of the exercise and suggests a working weight: +2.5 on top of
// the best completed set when it reached 10 reps, otherwise repeat the
// weight. Returns 0 when the exercise has never been logged.
func SuggestNextWeight(history []models.Session, name string) float64 {
	for _, s := range history {
		for _, ex := range s.Exercises {
			if !SameExercise(ex.Name, name) {
				continue
			}
			var bestWeight, bestReps float64
			for _, set := range ex.Sets {
				w := ParseNum(set.Weight)
				if set.Completed && w > bestWeight {
					bestWeight = w
					bestReps = ParseNum(set.Reps)
				}
			}
			if bestWeight == 0 {
				continue
			}
			if bestReps >= 10 {
				return bestWeight + 2.5
			}
			return bestWeight
		}
	}
	return 0
}

// FormatDuration renders whole seconds as M:SS or H:MM:SS.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
