package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestRespondWithError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, 404, "Meal not found")

	if rec.Code != 404 {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected json content type, got %q", ct)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if body["success"] != false {
		t.Errorf("expected success=false, got %v", body["success"])
	}
	if body["error"] != "Meal not found" {
		t.Errorf("unexpected error message %q", body["error"])
	}
}

func TestRespondWithFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithFieldErrors(rec, []FieldError{
		{Field: "name", Message: "Name is required"},
		{Field: "rating", Message: "Rating must be between 1 and 5"},
	})

	if rec.Code != 400 {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body struct {
		Success bool         `json:"success"`
		Errors  []FieldError `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if body.Success {
		t.Error("expected success=false")
	}
	if len(body.Errors) != 2 || body.Errors[0].Field != "name" {
		t.Errorf("unexpected errors payload %+v", body.Errors)
	}
}

func TestRespondServerError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondServerError(rec)

	if rec.Code != 500 {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}

	var body map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "Server Error" {
		t.Errorf("expected generic message, got %q", body["error"])
	}
}

func TestParseHelpers(t *testing.T) {
	if got := ParseFloat("3.5"); got != 3.5 {
		t.Errorf("ParseFloat(3.5) = %v", got)
	}
	if got := ParseFloat("abc"); got != 0 {
		t.Errorf("ParseFloat(abc) = %v, want 0", got)
	}
	if got := ParseInt("42"); got != 42 {
		t.Errorf("ParseInt(42) = %v", got)
	}
	if got := ParseInt(""); got != 0 {
		t.Errorf("ParseInt('') = %v, want 0", got)
	}

	if d := ParseDate("2024-03-15"); d == nil || d.Year() != 2024 || d.Month() != 3 {
		t.Errorf("ParseDate(2024-03-15) = %v", d)
	}
	if d := ParseDate("not-a-date"); d != nil {
		t.Errorf("ParseDate(not-a-date) = %v, want nil", d)
	}
	if d := ParseDate(""); d != nil {
		t.Errorf("ParseDate('') = %v, want nil", d)
	}
}
