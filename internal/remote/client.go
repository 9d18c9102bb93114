// Package remote is the HTTP client for the RepQuest server. The syncer
// treats every call here as best-effort: a failure is terminal for that
// attempt and the local cache carries the session.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/repquest/repquest/internal/models"
)

// Client sends data to the RepQuest server over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	user       string
	httpClient *http.Client
}

// New creates a client for the given server. user scopes all requests;
// empty means the server's default single-user identity.
func New(baseURL, apiKey, user string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		user:       user,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	if c.user != "" {
		req.Header.Set("X-User", c.user)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s returned %d: %s", method, path, resp.StatusCode, msg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s response: %w", path, err)
		}
	}
	return nil
}

// FetchPlan retrieves the stored workout plan.
func (c *Client) FetchPlan(ctx context.Context) (models.Plan, error) {
	var plan models.Plan
	if err := c.do(ctx, http.MethodGet, "/api/v1/plan", nil, &plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// PutPlan replaces the stored workout plan.
func (c *Client) PutPlan(ctx context.Context, plan models.Plan) error {
	return c.do(ctx, http.MethodPut, "/api/v1/plan", plan, nil)
}

// FetchSessions retrieves full history, most recent first.
func (c *Client) FetchSessions(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	if err := c.do(ctx, http.MethodGet, "/api/v1/sessions", nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// InsertSession stores a finalized session and returns it with the
// server-assigned id.
func (c *Client) InsertSession(ctx context.Context, s models.Session) (models.Session, error) {
	var created models.Session
	if err := c.do(ctx, http.MethodPost, "/api/v1/sessions", s, &created); err != nil {
		return models.Session{}, err
	}
	return created, nil
}

// UpdateSession applies a note/exercise edit to an existing session.
func (c *Client) UpdateSession(ctx context.Context, s models.Session) error {
	return c.do(ctx, http.MethodPatch, "/api/v1/sessions/"+s.ID.String(), s, nil)
}

// DeleteSession removes a session by id.
func (c *Client) DeleteSession(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/sessions/"+id.String(), nil, nil)
}

// FetchMetrics retrieves body metrics, most recent first.
func (c *Client) FetchMetrics(ctx context.Context) ([]models.BodyMetric, error) {
	var metrics []models.BodyMetric
	if err := c.do(ctx, http.MethodGet, "/api/v1/metrics", nil, &metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}

// PutMetric upserts the measurement for its date.
func (c *Client) PutMetric(ctx context.Context, m models.BodyMetric) error {
	return c.do(ctx, http.MethodPut, "/api/v1/metrics", m, nil)
}

// DeleteMetric removes the measurement for a date.
func (c *Client) DeleteMetric(ctx context.Context, date string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/metrics/"+date, nil, nil)
}
