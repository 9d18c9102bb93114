package mcp

import (
	"context"

	"github.com/repquest/repquest/internal/models"
	"github.com/repquest/repquest/internal/remote"
)

// HTTPSource implements DataSource by calling the RepQuest REST API. Used
// for remote MCP mode where the binary runs locally (stdio) but data lives
// on the server. The REST client already scopes requests to a user, so the
// userID arguments are ignored.
type HTTPSource struct {
	client *remote.Client
}

// Compile-time check: *HTTPSource satisfies DataSource.
var _ DataSource = (*HTTPSource)(nil)

// NewHTTPSource wraps a REST client as a DataSource.
func NewHTTPSource(client *remote.Client) *HTTPSource {
	return &HTTPSource{client: client}
}

func (h *HTTPSource) QuerySessions(ctx context.Context, _ int) ([]models.Session, error) {
	return h.client.FetchSessions(ctx)
}

func (h *HTTPSource) QueryBodyMetrics(ctx context.Context, _ int) ([]models.BodyMetric, error) {
	return h.client.FetchMetrics(ctx)
}
