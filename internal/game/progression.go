// Package game implements the progression engine: XP accumulation from
// workout history, the level curve, rank titles, and per-attribute stats.
// Everything here is a pure function of history; nothing is persisted.
package game

import (
	"math"

	"github.com/repquest/repquest/internal/models"
)

// DifficultyFactor shapes the level curve: level = floor(factor * sqrt(xp)).
// Tuning value with no derivation; changing it rescales every level.
const DifficultyFactor = 0.02

// Rank maps a minimum level to a display title.
type Rank struct {
	Level int
	Title string
}

// Ranks is the ascending rank table. RankTitle picks the highest entry
// whose Level requirement is met.
var Ranks = []Rank{
	{1, "NOOB"},
	{5, "E-RANK HUNTER"},
	{10, "D-RANK HUNTER"},
	{20, "C-RANK HUNTER"},
	{35, "B-RANK HUNTER"},
	{50, "A-RANK HUNTER"},
	{75, "S-RANK HUNTER"},
	{100, "MONARCH"},
}

// SessionVolume returns the total volume (weight × reps summed over every
// set) of a session. Malformed numeric fields count as 0.
func SessionVolume(s models.Session) float64 {
	var total float64
	for _, ex := range s.Exercises {
		for _, set := range ex.Sets {
			total += ParseNum(set.Weight) * ParseNum(set.Reps)
		}
	}
	return total
}

// ExerciseVolume returns the volume of a single finalized exercise.
func ExerciseVolume(ex models.SessionExercise) float64 {
	var total float64
	for _, set := range ex.Sets {
		total += ParseNum(set.Weight) * ParseNum(set.Reps)
	}
	return total
}

// TotalXP sums session volume over all of history. No decay, no cap.
func TotalXP(history []models.Session) float64 {
	var xp float64
	for _, s := range history {
		xp += SessionVolume(s)
	}
	return xp
}

// LevelForXP derives the level from total XP. Always >= 1.
func LevelForXP(xp float64) int {
	if xp <= 0 || math.IsNaN(xp) {
		return 1
	}
	level := int(math.Floor(DifficultyFactor * math.Sqrt(xp)))
	if level < 1 {
		return 1
	}
	return level
}

// RankTitle returns the title for the highest rank threshold at or below
// level. Levels below the first threshold rank as "NOOB".
func RankTitle(level int) string {
	title := "NOOB"
	for _, r := range Ranks {
		if level >= r.Level {
			title = r.Title
		}
	}
	return title
}

// LevelProgress reports where xp sits between the current level's XP
// threshold and the next one.
type LevelProgress struct {
	Percentage  float64 `json:"percentage"`
	XPMissing   float64 `json:"xpMissing"`
	NextLevelXP float64 `json:"nextLevelXP"`
}

// NextLevelProgress inverts the level curve to find the XP bounds of the
// given level and reports fractional progress between them.
func NextLevelProgress(xp float64, level int) LevelProgress {
	currentFloor := math.Pow(float64(level)/DifficultyFactor, 2)
	nextFloor := math.Pow(float64(level+1)/DifficultyFactor, 2)

	pct := (xp - currentFloor) / (nextFloor - currentFloor) * 100
	if pct < 0 || math.IsNaN(pct) {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	missing := nextFloor - xp
	if missing < 0 {
		missing = 0
	}

	return LevelProgress{
		Percentage:  pct,
		XPMissing:   missing,
		NextLevelXP: nextFloor,
	}
}

// Stats is the full derived player state for a history.
type Stats struct {
	TotalXP    float64                `json:"totalXp"`
	Level      int                    `json:"level"`
	Rank       string                 `json:"rank"`
	Progress   LevelProgress          `json:"progress"`
	Sessions   int                    `json:"sessions"`
	Attributes map[string]AttributeXP `json:"attributes"`
}

// ComputeStats derives the complete stat block from history.
func ComputeStats(history []models.Session) Stats {
	xp := TotalXP(history)
	level := LevelForXP(xp)
	return Stats{
		TotalXP:    xp,
		Level:      level,
		Rank:       RankTitle(level),
		Progress:   NextLevelProgress(xp, level),
		Sessions:   len(history),
		Attributes: AttributeStats(history),
	}
}
