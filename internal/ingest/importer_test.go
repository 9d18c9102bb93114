package ingest

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/repquest/repquest/internal/models"
)

// fakeStore records inserts against a fixed set of existing sessions.
type fakeStore struct {
	existing []models.Session
	inserted []models.Session
}

func (f *fakeStore) QuerySessions(context.Context, int) ([]models.Session, error) {
	return f.existing, nil
}

func (f *fakeStore) InsertSession(_ context.Context, _ int, s models.Session) (models.Session, error) {
	s.ID = uuid.New()
	f.inserted = append(f.inserted, s)
	return s, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestImportSkipsExisting verifies re-running an import cannot duplicate
// history: sessions matching an existing date and label are skipped.
func TestImportSkipsExisting(t *testing.T) {
	store := &fakeStore{existing: []models.Session{
		{ID: uuid.New(), Date: "2026-02-12", Label: "Push Day"},
	}}
	imp := NewImporter(store, testLogger(), false)

	stats, err := imp.Import(context.Background(), 1, []models.Session{
		{Date: "2026-02-12", Label: "Push Day"}, // duplicate
		{Date: "2026-02-14", Label: "Leg Day"},  // new
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if stats.Parsed != 2 {
		t.Errorf("Parsed = %d, want 2", stats.Parsed)
	}
	if stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", stats.Skipped)
	}
	if stats.Inserted != 1 {
		t.Errorf("Inserted = %d, want 1", stats.Inserted)
	}
	if len(store.inserted) != 1 || store.inserted[0].Label != "Leg Day" {
		t.Errorf("inserted = %+v, want only Leg Day", store.inserted)
	}
}

// TestImportDryRun verifies dry-run counts inserts without writing.
func TestImportDryRun(t *testing.T) {
	store := &fakeStore{}
	imp := NewImporter(store, testLogger(), true)

	stats, err := imp.Import(context.Background(), 1, []models.Session{
		{Date: "2026-02-14", Label: "Leg Day"},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if stats.Inserted != 1 {
		t.Errorf("Inserted = %d, want 1", stats.Inserted)
	}
	if len(store.inserted) != 0 {
		t.Errorf("dry run wrote %d sessions", len(store.inserted))
	}
}

// TestImportSameLabelDifferentDate verifies the dedupe key is date plus
// label, not label alone.
func TestImportSameLabelDifferentDate(t *testing.T) {
	store := &fakeStore{existing: []models.Session{
		{ID: uuid.New(), Date: "2026-02-12", Label: "Push Day"},
	}}
	imp := NewImporter(store, testLogger(), false)

	stats, err := imp.Import(context.Background(), 1, []models.Session{
		{Date: "2026-02-19", Label: "Push Day"},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if stats.Inserted != 1 {
		t.Errorf("Inserted = %d, want 1", stats.Inserted)
	}
}
