package game

import (
	"math"
	"testing"

	"github.com/repquest/repquest/internal/models"
)

func session(exercises ...models.SessionExercise) models.Session {
	return models.Session{Date: "2026-02-12", Label: "Push Day", Exercises: exercises}
}

func exercise(name string, sets ...models.SetEntry) models.SessionExercise {
	return models.SessionExercise{Name: name, Sets: sets, Done: true}
}

func set(weight, reps string) models.SetEntry {
	return models.SetEntry{Weight: weight, Reps: reps, Completed: true}
}

// TestSessionVolume verifies weight × reps summed over every set,
// including sets the lifter never checked off.
func TestSessionVolume(t *testing.T) {
	s := session(
		exercise("Bench Press", set("100", "10"), models.SetEntry{Weight: "80", Reps: "5"}),
		exercise("Lateral Raise", set("10", "15")),
	)
	got := SessionVolume(s)
	want := 100*10 + 80*5 + 10*15.0
	if got != want {
		t.Errorf("SessionVolume = %v, want %v", got, want)
	}
}

// TestSessionVolumeMalformed verifies malformed numeric fields count as zero
// instead of poisoning the total.
func TestSessionVolumeMalformed(t *testing.T) {
	s := session(exercise("Squat", set("abc", "10"), set("100", ""), set("60", "8")))
	if got := SessionVolume(s); got != 480 {
		t.Errorf("SessionVolume = %v, want 480", got)
	}
}

// TestLevelForXP walks the level curve at its inversion points:
// level N starts exactly at (N / 0.02)² XP.
func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   float64
		want int
	}{
		{0, 1},
		{-500, 1},
		{math.NaN(), 1},
		{1000, 1},    // 0.02 * sqrt(1000) ≈ 0.63, floored below 1
		{9999, 1},    // just under the level-2 threshold
		{10000, 2},   // (2/0.02)²
		{62500, 5},   // (5/0.02)²
		{250000, 10}, // (10/0.02)²
	}
	for _, tt := range tests {
		if got := LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%v) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

// TestLevelMonotonic verifies the level never decreases as XP grows.
func TestLevelMonotonic(t *testing.T) {
	prev := 0
	for xp := 0.0; xp <= 1_000_000; xp += 12345 {
		level := LevelForXP(xp)
		if level < prev {
			t.Fatalf("LevelForXP(%v) = %d, below previous level %d", xp, level, prev)
		}
		prev = level
	}
}

// TestRankTitle verifies threshold boundaries and the sub-threshold default.
func TestRankTitle(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{0, "NOOB"},
		{1, "NOOB"},
		{4, "NOOB"},
		{5, "E-RANK HUNTER"},
		{34, "C-RANK HUNTER"},
		{35, "B-RANK HUNTER"},
		{99, "S-RANK HUNTER"},
		{100, "MONARCH"},
		{250, "MONARCH"},
	}
	for _, tt := range tests {
		if got := RankTitle(tt.level); got != tt.want {
			t.Errorf("RankTitle(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

// TestNextLevelProgress verifies the progress fraction between the XP floor
// of the current level and the next.
func TestNextLevelProgress(t *testing.T) {
	// Level 2 spans 10000..22500. Halfway is 16250.
	p := NextLevelProgress(16250, 2)
	if math.Abs(p.Percentage-50) > 1e-9 {
		t.Errorf("Percentage = %v, want 50", p.Percentage)
	}
	if p.NextLevelXP != 22500 {
		t.Errorf("NextLevelXP = %v, want 22500", p.NextLevelXP)
	}
	if p.XPMissing != 6250 {
		t.Errorf("XPMissing = %v, want 6250", p.XPMissing)
	}
}

// TestNextLevelProgressClamped verifies percentage stays in [0, 100] for XP
// outside the level's bounds.
func TestNextLevelProgressClamped(t *testing.T) {
	if p := NextLevelProgress(0, 1); p.Percentage != 0 {
		t.Errorf("Percentage below floor = %v, want 0", p.Percentage)
	}
	if p := NextLevelProgress(1e9, 2); p.Percentage != 100 {
		t.Errorf("Percentage above ceiling = %v, want 100", p.Percentage)
	}
	if p := NextLevelProgress(1e9, 2); p.XPMissing != 0 {
		t.Errorf("XPMissing above ceiling = %v, want 0", p.XPMissing)
	}
}

// TestComputeStatsEmpty verifies the zero-history stat block: a fresh
// account is level 1 NOOB with 0 XP and all attributes at level 1.
func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats.TotalXP != 0 {
		t.Errorf("TotalXP = %v, want 0", stats.TotalXP)
	}
	if stats.Level != 1 {
		t.Errorf("Level = %d, want 1", stats.Level)
	}
	if stats.Rank != "NOOB" {
		t.Errorf("Rank = %q, want NOOB", stats.Rank)
	}
	if stats.Sessions != 0 {
		t.Errorf("Sessions = %d, want 0", stats.Sessions)
	}
	if len(stats.Attributes) != 4 {
		t.Fatalf("attributes = %d, want 4", len(stats.Attributes))
	}
	for name, attr := range stats.Attributes {
		if attr.Level != 1 || attr.XP != 0 {
			t.Errorf("attribute %s = %+v, want level 1 at 0 XP", name, attr)
		}
	}
}

// TestComputeStats verifies the derived block for a single modest session.
func TestComputeStats(t *testing.T) {
	history := []models.Session{session(exercise("Bench Press", set("100", "10")))}
	stats := ComputeStats(history)
	if stats.TotalXP != 1000 {
		t.Errorf("TotalXP = %v, want 1000", stats.TotalXP)
	}
	if stats.Level != 1 {
		t.Errorf("Level = %d, want 1", stats.Level)
	}
	if stats.Sessions != 1 {
		t.Errorf("Sessions = %d, want 1", stats.Sessions)
	}
	// 1000 volume × 0.05 = 50 attribute XP on strength.
	if got := stats.Attributes[AttrStrength].XP; got != 50 {
		t.Errorf("strength XP = %v, want 50", got)
	}
}
