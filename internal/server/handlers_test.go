package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

// withURLParam attaches a chi route parameter so handlers can be invoked
// without the full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// TestCreateSessionRejectsBadJSON verifies malformed request bodies fail
// with 400 before any database access.
func TestCreateSessionRejectsBadJSON(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	s.handleCreateSession(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestCreateSessionRejectsBadDate verifies the date must be YYYY-MM-DD.
func TestCreateSessionRejectsBadDate(t *testing.T) {
	s := &Server{}
	body := `{"date":"12.02.2026","label":"Push Day","exercises":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleCreateSession(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestUpdateSessionRejectsBadID verifies a non-UUID id fails with 400.
func TestUpdateSessionRejectsBadID(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/not-a-uuid", strings.NewReader("{}"))
	req = withURLParam(req, "id", "not-a-uuid")
	rec := httptest.NewRecorder()

	s.handleUpdateSession(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestDeleteSessionRejectsBadID verifies deletion validates the id shape.
func TestDeleteSessionRejectsBadID(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/42", nil)
	req = withURLParam(req, "id", "42")
	rec := httptest.NewRecorder()

	s.handleDeleteSession(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestPutMetricRejectsBadDate verifies metric upserts validate the date key.
func TestPutMetricRejectsBadDate(t *testing.T) {
	s := &Server{}
	body := `{"date":"February 12","weight":"80"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/metrics", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handlePutMetric(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestDeleteMetricRejectsBadDate verifies the path date is validated.
func TestDeleteMetricRejectsBadDate(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/metrics/yesterday", nil)
	req = withURLParam(req, "date", "yesterday")
	rec := httptest.NewRecorder()

	s.handleDeleteMetric(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestDateRe pins the accepted date shape.
func TestDateRe(t *testing.T) {
	valid := []string{"2026-02-12", "1999-12-31"}
	invalid := []string{"2026-2-12", "12.02.2026", "2026-02-12T10:00", ""}
	for _, d := range valid {
		if !dateRe.MatchString(d) {
			t.Errorf("dateRe rejected %q", d)
		}
	}
	for _, d := range invalid {
		if dateRe.MatchString(d) {
			t.Errorf("dateRe accepted %q", d)
		}
	}
}
