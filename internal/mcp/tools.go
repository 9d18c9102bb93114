package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/repquest/repquest/internal/badges"
	"github.com/repquest/repquest/internal/game"
	"github.com/repquest/repquest/internal/quests"
)

// --- Tool definitions ---

var toolGetStats = mcp.NewTool("get_stats",
	mcp.WithDescription("Current progression state: total XP, level, rank title, next-level progress, session count, and per-attribute (strength/technique/stamina/aesthetics) XP and levels. Always computed fresh from full history."),
)

var toolGetHistory = mcp.NewTool("get_history",
	mcp.WithDescription("Finalized workout sessions, most recent first. Each session has a date, label, note, and exercises with per-set weight/reps/RPE."),
	mcp.WithNumber("limit", mcp.Description("Maximum sessions to return. Defaults to 20, 0 means all.")),
)

var toolGetBadges = mcp.NewTool("get_badges",
	mcp.WithDescription("All badges with their unlock state, evaluated against full history."),
)

var toolGetDailyQuests = mcp.NewTool("get_daily_quests",
	mcp.WithDescription("The three deterministic daily quests for a date. Selection depends only on the date, so every device agrees."),
	mcp.WithString("date", mcp.Description("Calendar date (YYYY-MM-DD). Defaults to today.")),
)

var toolGetBodyMetrics = mcp.NewTool("get_body_metrics",
	mcp.WithDescription("Body measurements (weight, waist) by date, most recent first. At most one entry per date."),
)

var toolEstimate1RM = mcp.NewTool("estimate_1rm",
	mcp.WithDescription("Epley one-rep-max estimate for a weight and rep count."),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight lifted")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Reps performed")),
)

// --- Tool handlers ---

func (h *handlers) getStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	history, err := h.ds.QuerySessions(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(game.ComputeStats(history))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	history, err := h.ds.QuerySessions(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	limit := req.GetInt("limit", 20)
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}

	result, err := mcp.NewToolResultJSON(history)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getBadges(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	history, err := h.ds.QuerySessions(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_badges", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(badges.Evaluate(history))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDailyQuests(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := req.GetString("date", time.Now().Format("2006-01-02"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return mcp.NewToolResultError("date must be YYYY-MM-DD"), nil
	}

	result, err := mcp.NewToolResultJSON(quests.ForDate(date))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getBodyMetrics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	metrics, err := h.ds.QueryBodyMetrics(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_body_metrics", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(metrics)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) estimate1RM(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	reps, err := req.RequireFloat("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]float64{
		"estimated_1rm": game.Estimate1RM(weight, reps),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// --- Resource handlers ---

func (h *handlers) statSheet(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	history, err := h.ds.QuerySessions(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(game.ComputeStats(history))
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) questBoard(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(quests.ForDate(time.Now().Format("2006-01-02")))
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
