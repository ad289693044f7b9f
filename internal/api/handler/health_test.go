package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/health", "")
	if err := NewHealthHandler(nil).Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := CheckFunc(func(context.Context) error { return nil })
	down := CheckFunc(func(context.Context) error { return errors.New("connection refused") })

	t.Run("all up", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/health/ready", "")
		h := NewHealthHandler(map[string]Checker{"postgres": ok, "redis": ok})
		if err := h.Readiness(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("one down", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/health/ready", "")
		h := NewHealthHandler(map[string]Checker{"postgres": ok, "mongodb": down})
		if err := h.Readiness(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}

		var resp readinessResponse
		decode(t, rec, &resp)
		if resp.Status != "degraded" {
			t.Fatalf("expected degraded, got %s", resp.Status)
		}
		if resp.Dependencies["mongodb"].Error != "connection refused" || resp.Dependencies["postgres"].Status != "ok" {
			t.Fatalf("unexpected dependencies: %+v", resp.Dependencies)
		}
	})
}
