package models

import (
	"encoding/json"
	"testing"
)

// TestProgressKey pins the composite key format. Cached progress maps are
// keyed by this string, so the format can never change silently.
func TestProgressKey(t *testing.T) {
	if got := ProgressKey("2026-02-12", "monday", 0); got != "2026-02-12-monday-0" {
		t.Errorf("ProgressKey = %q, want 2026-02-12-monday-0", got)
	}
	if got := ProgressKey("2026-02-12", "monday", 11); got != "2026-02-12-monday-11" {
		t.Errorf("ProgressKey = %q, want 2026-02-12-monday-11", got)
	}
}

// TestPlanJSONRoundTrip verifies the plan shape survives serialization,
// since plans live as JSON blobs in both the cache and the server store.
func TestPlanJSONRoundTrip(t *testing.T) {
	plan := Plan{
		"monday": {
			Title: "Push Day",
			Focus: "chest",
			Exercises: []Exercise{
				{Name: "Bench Press", Sets: "4x8", Note: "pause reps", Alternatives: []string{"Dumbbell Press"}},
			},
		},
	}
	data, err := json.Marshal(plan)
	if err != nil {
		t.Fatal(err)
	}
	var got Plan
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	ex := got["monday"].Exercises[0]
	if ex.Name != "Bench Press" || ex.Sets != "4x8" || ex.Note != "pause reps" {
		t.Errorf("exercise = %+v", ex)
	}
	if len(ex.Alternatives) != 1 || ex.Alternatives[0] != "Dumbbell Press" {
		t.Errorf("alternatives = %v", ex.Alternatives)
	}
}
