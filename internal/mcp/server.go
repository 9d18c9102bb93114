// Package mcp exposes RepQuest data to LLM agents over the Model Context
// Protocol. Tools run against a DataSource so the same server works in
// local mode (direct database) and remote mode (REST API over the wire).
package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("RepQuest", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("RepQuest gamified workout tracker. Query workout history, body metrics, XP/level/rank stats, badges, and the deterministic daily quests. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetStats, Handler: h.getStats},
		server.ServerTool{Tool: toolGetHistory, Handler: h.getHistory},
		server.ServerTool{Tool: toolGetBadges, Handler: h.getBadges},
		server.ServerTool{Tool: toolGetDailyQuests, Handler: h.getDailyQuests},
		server.ServerTool{Tool: toolGetBodyMetrics, Handler: h.getBodyMetrics},
		server.ServerTool{Tool: toolEstimate1RM, Handler: h.estimate1RM},
	)

	s.AddResources(
		server.ServerResource{Resource: resStatSheet, Handler: h.statSheet},
		server.ServerResource{Resource: resQuestBoard, Handler: h.questBoard},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resStatSheet = mcp.NewResource(
	"repquest://stat_sheet",
	"Stat Sheet",
	mcp.WithResourceDescription("Current level, rank, XP, next-level progress, and per-attribute stats derived from full history"),
	mcp.WithMIMEType("application/json"),
)

var resQuestBoard = mcp.NewResource(
	"repquest://quest_board",
	"Quest Board",
	mcp.WithResourceDescription("Today's three deterministic daily quests"),
	mcp.WithMIMEType("application/json"),
)
