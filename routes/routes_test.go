package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"maskon/ratelim"
)

func TestNotFoundEnvelope(t *testing.T) {
	router := NewRouter(ratelim.NewRateLimiter())

	req := httptest.NewRequest("GET", "/api/v1/spaceships", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("404 body is not json: %v", err)
	}
	if body["success"] != false {
		t.Error("expected success=false")
	}
	if body["error"] != "Route /api/v1/spaceships not found" {
		t.Errorf("unexpected error message %q", body["error"])
	}
}

func TestHealthRoute(t *testing.T) {
	router := NewRouter(ratelim.NewRateLimiter())

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "ok" {
		t.Errorf("unexpected health body %v", body)
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	router := NewRouter(ratelim.NewRateLimiter())

	req := httptest.NewRequest("POST", "/api/v1/meals", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "Not authorized to access this route" {
		t.Errorf("unexpected error message %q", body["error"])
	}
}
