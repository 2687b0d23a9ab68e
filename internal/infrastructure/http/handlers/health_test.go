package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestLiveness(t *testing.T) {
	started := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	h := NewHealthHandler(started)
	h.now = func() time.Time { return started.Add(90 * time.Second) }

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/health", nil), rec)

	if err := h.Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Success bool             `json:"success"`
		Data    livenessResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !body.Success || body.Data.Status != "ok" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Data.Uptime != 90 {
		t.Fatalf("expected uptime 90, got %v", body.Data.Uptime)
	}
	if body.Data.Timestamp != "2024-01-01T12:01:30Z" {
		t.Fatalf("unexpected timestamp %q", body.Data.Timestamp)
	}
}

type stubPinger struct {
	name string
	err  error
}

func (s stubPinger) Name() string                 { return s.name }
func (s stubPinger) Ping(_ context.Context) error { return s.err }

func TestReadiness(t *testing.T) {
	tests := []struct {
		name     string
		deps     []Pinger
		wantCode int
		want     string
	}{
		{"no dependencies", nil, http.StatusOK, "ok"},
		{"all healthy", []Pinger{stubPinger{name: "postgres"}, stubPinger{name: "redis"}}, http.StatusOK, "ok"},
		{"one down", []Pinger{stubPinger{name: "postgres"}, stubPinger{name: "redis", err: errors.New("refused")}}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/health/ready", nil), rec)

			if err := NewReadinessHandler(tt.deps...).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}

			var body struct {
				Data readinessResponse `json:"data"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Data.Status != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, body.Data.Status)
			}
			if len(body.Data.Dependencies) != len(tt.deps) {
				t.Fatalf("expected %d dependency entries, got %d", len(tt.deps), len(body.Data.Dependencies))
			}
		})
	}
}
