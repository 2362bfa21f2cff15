package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// mockHealthChecker はHealthCheckerのモック実装。
type mockHealthChecker struct {
	pingFunc func(ctx context.Context) error
}

func (m *mockHealthChecker) PingContext(ctx context.Context) error {
	return m.pingFunc(ctx)
}

func TestHealthHandler_Connected_Returns200(t *testing.T) {
	h := NewHealthHandler(&mockHealthChecker{
		pingFunc: func(ctx context.Context) error { return nil },
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Success   bool   `json:"success"`
		Database  string `json:"database"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !resp.Success {
		t.Error("expected success=true")
	}
	if resp.Database != "connected" {
		t.Errorf("database = %q, want connected", resp.Database)
	}
	if _, err := time.Parse(time.RFC3339, resp.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", resp.Timestamp, err)
	}
}

func TestHealthHandler_Disconnected_Returns500(t *testing.T) {
	h := NewHealthHandler(&mockHealthChecker{
		pingFunc: func(ctx context.Context) error { return errors.New("connection refused") },
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}

	var resp struct {
		Success  bool   `json:"success"`
		Database string `json:"database"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Database != "disconnected" {
		t.Errorf("database = %q, want disconnected", resp.Database)
	}
}

// pingにタイムアウト付きコンテキストが渡されること
func TestHealthHandler_PingReceivesDeadline(t *testing.T) {
	h := NewHealthHandler(&mockHealthChecker{
		pingFunc: func(ctx context.Context) error {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("expected a deadline on the ping context")
			}
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)
}
