package game

import (
	"math"
	"sort"
	"strings"

	"github.com/repquest/repquest/internal/models"
)

// Attribute names. Every exercise maps to exactly one.
const (
	AttrStrength   = "strength"
	AttrTechnique  = "technique"
	AttrStamina    = "stamina"
	AttrAesthetics = "aesthetics"
)

// AttributeXPRate converts exercise volume into attribute XP.
const AttributeXPRate = 0.05

// AttributeDivisor flattens the attribute level curve:
// level = floor(sqrt(xp/divisor)) + 1. Tuning value.
const AttributeDivisor = 100

// attributeTable maps canonical exercise names to attributes. Configuration
// data, not behavior; unmapped exercises default to strength.
var attributeTable = map[string]string{
	"squat":             AttrStrength,
	"back squat":        AttrStrength,
	"front squat":       AttrStrength,
	"deadlift":          AttrStrength,
	"romanian deadlift": AttrStrength,
	"bench press":       AttrStrength,
	"overhead press":    AttrStrength,
	"barbell row":       AttrStrength,
	"leg press":         AttrStrength,
	"hip thrust":        AttrStrength,

	"pull up":           AttrTechnique,
	"chin up":           AttrTechnique,
	"dip":               AttrTechnique,
	"muscle up":         AttrTechnique,
	"pistol squat":      AttrTechnique,
	"handstand push up": AttrTechnique,
	"clean and jerk":    AttrTechnique,
	"snatch":            AttrTechnique,

	"running":      AttrStamina,
	"rowing":       AttrStamina,
	"cycling":      AttrStamina,
	"burpee":       AttrStamina,
	"jump rope":    AttrStamina,
	"farmer carry": AttrStamina,
	"sled push":    AttrStamina,
	"plank":        AttrStamina,

	"bicep curl":       AttrAesthetics,
	"hammer curl":      AttrAesthetics,
	"tricep extension": AttrAesthetics,
	"lateral raise":    AttrAesthetics,
	"cable fly":        AttrAesthetics,
	"leg extension":    AttrAesthetics,
	"leg curl":         AttrAesthetics,
	"calf raise":       AttrAesthetics,
	"crunch":           AttrAesthetics,
}

// attributeKeys holds the table keys sorted longest first so partial
// matching is stable and the most specific key wins.
var attributeKeys = func() []string {
	keys := make([]string, 0, len(attributeTable))
	for k := range attributeTable {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// AttributeXP is the accumulated XP and derived level for one attribute.
type AttributeXP struct {
	XP    float64 `json:"xp"`
	Level int     `json:"level"`
}

// AttributeFor maps an exercise name to its attribute, defaulting to
// strength when no table entry matches.
func AttributeFor(name string) string {
	canon := CanonicalName(name)
	if attr, ok := attributeTable[canon]; ok {
		return attr
	}
	// Partial match: "dumbbell bicep curl" still counts as a curl.
	for _, key := range attributeKeys {
		if strings.Contains(canon, key) {
			return attributeTable[key]
		}
	}
	return AttrStrength
}

// AttributeLevel derives an attribute level from its XP.
func AttributeLevel(xp float64) int {
	if xp <= 0 || math.IsNaN(xp) {
		return 1
	}
	return int(math.Floor(math.Sqrt(xp/AttributeDivisor))) + 1
}

// AttributeStats accumulates per-attribute XP across history. Each
// exercise's session volume contributes volume × AttributeXPRate to its
// mapped attribute.
func AttributeStats(history []models.Session) map[string]AttributeXP {
	xp := map[string]float64{
		AttrStrength:   0,
		AttrTechnique:  0,
		AttrStamina:    0,
		AttrAesthetics: 0,
	}
	for _, s := range history {
		for _, ex := range s.Exercises {
			xp[AttributeFor(ex.Name)] += ExerciseVolume(ex) * AttributeXPRate
		}
	}

	out := make(map[string]AttributeXP, len(xp))
	for attr, v := range xp {
		out[attr] = AttributeXP{XP: v, Level: AttributeLevel(v)}
	}
	return out
}
