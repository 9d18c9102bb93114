package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/repquest/repquest/internal/models"
)

// InsertSession inserts a finalized session and returns it with the
// server-assigned id filled in. Exercises are stored as a JSON document: the
// session is the unit of retrieval, never individual sets.
func (db *DB) InsertSession(ctx context.Context, userID int, s models.Session) (models.Session, error) {
	exercises, err := json.Marshal(s.Exercises)
	if err != nil {
		return s, fmt.Errorf("encoding exercises: %w", err)
	}

	s.ID = uuid.New()
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO sessions (id, user_id, session_date, label, note, exercises)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, s.ID, userID, s.Date, s.Label, s.Note, exercises)
	if err != nil {
		return s, fmt.Errorf("inserting session: %w", err)
	}
	return s, nil
}

// QuerySessions retrieves a user's full history, most recent first.
func (db *DB) QuerySessions(ctx context.Context, userID int) ([]models.Session, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, to_char(session_date, 'YYYY-MM-DD'), label, note, exercises
		FROM sessions
		WHERE user_id = $1
		ORDER BY session_date DESC, created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.Session
	for rows.Next() {
		var s models.Session
		var exercises []byte
		if err := rows.Scan(&s.ID, &s.Date, &s.Label, &s.Note, &exercises); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		if err := json.Unmarshal(exercises, &s.Exercises); err != nil {
			return nil, fmt.Errorf("decoding exercises: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// UpdateSession applies a user edit (note and/or exercises) to an existing
// session. Returns false when the session does not exist for this user.
func (db *DB) UpdateSession(ctx context.Context, userID int, s models.Session) (bool, error) {
	exercises, err := json.Marshal(s.Exercises)
	if err != nil {
		return false, fmt.Errorf("encoding exercises: %w", err)
	}
	tag, err := db.Pool.Exec(ctx, `
		UPDATE sessions SET note = $1, exercises = $2
		WHERE id = $3 AND user_id = $4
	`, s.Note, exercises, s.ID, userID)
	if err != nil {
		return false, fmt.Errorf("updating session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteSession removes a session by id. Returns false when nothing was
// deleted.
func (db *DB) DeleteSession(ctx context.Context, userID int, id uuid.UUID) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM sessions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("deleting session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
