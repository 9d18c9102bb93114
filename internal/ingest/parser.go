// Package ingest parses training-log exports into normalized sessions.
// The accepted format is the semicolon-delimited export produced by most
// log apps:
//
//	"Push Day";"2026-02-12"
//	"1. Bench Press"
//	#;KG;REPS;RPE
//	1;80;8;7
//	2;80;7;8
//
// Blank lines separate sessions. Weight, reps, and RPE are kept as the
// raw strings from the file; downstream volume math coerces malformed
// values to 0 rather than rejecting the import.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/repquest/repquest/internal/models"
)

var (
	// sessionHeaderRe matches: "Push Day";"2026-02-12"
	sessionHeaderRe = regexp.MustCompile(`^"(.+)";"(\d{4}-\d{2}-\d{2})"$`)

	// exerciseHeaderRe matches: "1. Bench Press"
	exerciseHeaderRe = regexp.MustCompile(`^"(\d+)\.\s+(.+)"$`)

	// setDataRe matches: 1;80;8;7 (RPE optional)
	setDataRe = regexp.MustCompile(`^(\d+);([^;]*);([^;]*)(?:;([^;]*))?$`)

	// columnHeaderRe matches: #;KG;REPS or #;KG;REPS;RPE
	columnHeaderRe = regexp.MustCompile(`^#;KG;REPS(;RPE)?$`)
)

// Parse reads an export and returns the sessions it contains. Lines that
// match no known shape are an error: silently dropping data from an import
// is worse than rejecting the file.
func Parse(r io.Reader) ([]models.Session, error) {
	scanner := bufio.NewScanner(r)
	var sessions []models.Session
	var current *models.Session
	var exercise *models.SessionExercise

	flushExercise := func() {
		if current != nil && exercise != nil {
			exercise.Done = len(exercise.Sets) > 0
			current.Exercises = append(current.Exercises, *exercise)
			exercise = nil
		}
	}
	flushSession := func() {
		flushExercise()
		if current != nil {
			sessions = append(sessions, *current)
			current = nil
		}
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			flushSession()
			continue
		}
		if columnHeaderRe.MatchString(line) {
			continue
		}

		if m := sessionHeaderRe.FindStringSubmatch(line); m != nil {
			flushSession()
			current = &models.Session{Label: m[1], Date: m[2]}
			continue
		}

		if m := exerciseHeaderRe.FindStringSubmatch(line); m != nil {
			if current == nil {
				return nil, fmt.Errorf("line %d: exercise without session: %q", lineNo, line)
			}
			flushExercise()
			exercise = &models.SessionExercise{Name: strings.TrimSpace(m[2])}
			continue
		}

		if m := setDataRe.FindStringSubmatch(line); m != nil {
			if exercise == nil {
				return nil, fmt.Errorf("line %d: set without exercise: %q", lineNo, line)
			}
			exercise.Sets = append(exercise.Sets, models.SetEntry{
				Weight:    strings.TrimSpace(m[2]),
				Reps:      strings.TrimSpace(m[3]),
				RPE:       strings.TrimSpace(m[4]),
				Completed: true,
			})
			continue
		}

		return nil, fmt.Errorf("line %d: unrecognized line: %q", lineNo, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}
	flushSession()

	return sessions, nil
}
