package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/repquest/repquest/internal/models"
	"github.com/repquest/repquest/internal/storage"
)

// Stats summarizes an import run.
type Stats struct {
	Parsed   int
	Inserted int
	Skipped  int
}

// SessionStore is the storage surface the importer needs. *storage.DB
// satisfies it.
type SessionStore interface {
	QuerySessions(ctx context.Context, userID int) ([]models.Session, error)
	InsertSession(ctx context.Context, userID int, s models.Session) (models.Session, error)
}

var _ SessionStore = (*storage.DB)(nil)

// Importer inserts parsed sessions into the server store.
type Importer struct {
	db     SessionStore
	log    *slog.Logger
	dryRun bool
}

// NewImporter creates an Importer. In dry-run mode sessions are parsed and
// counted but nothing is written.
func NewImporter(db SessionStore, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, log: log, dryRun: dryRun}
}

// Import inserts sessions for the user, skipping any whose date and label
// already exist so re-running an import cannot duplicate history.
func (imp *Importer) Import(ctx context.Context, userID int, sessions []models.Session) (*Stats, error) {
	stats := &Stats{Parsed: len(sessions)}

	existing, err := imp.db.QuerySessions(ctx, userID)
	if err != nil {
		return stats, fmt.Errorf("querying existing sessions: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[s.Date+"|"+s.Label] = true
	}

	for _, s := range sessions {
		if seen[s.Date+"|"+s.Label] {
			stats.Skipped++
			imp.log.Info("skipping existing session", "date", s.Date, "label", s.Label)
			continue
		}
		if imp.dryRun {
			stats.Inserted++
			continue
		}
		if _, err := imp.db.InsertSession(ctx, userID, s); err != nil {
			return stats, fmt.Errorf("inserting session %s %q: %w", s.Date, s.Label, err)
		}
		stats.Inserted++
	}
	return stats, nil
}
