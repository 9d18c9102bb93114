package mcp

import (
	"context"

	"github.com/repquest/repquest/internal/models"
	"github.com/repquest/repquest/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB
// (local) and HTTPSource (remote via REST API) satisfy this interface.
type DataSource interface {
	QuerySessions(ctx context.Context, userID int) ([]models.Session, error)
	QueryBodyMetrics(ctx context.Context, userID int) ([]models.BodyMetric, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
