package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, http.StatusUnauthorized, "unauthorized", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	if got := rec.Body.String(); got != `{"error":"unauthorized"}` {
		t.Fatalf("body = %s", got)
	}
}

func TestJSONUnencodable(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]any{"f": func() {}})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	ok := Check{Name: "sessions", Probe: func(context.Context) error { return nil }}
	down := Check{Name: "sessions", Probe: func(context.Context) error { return errors.New("db closed") }}

	rec := httptest.NewRecorder()
	Health(time.Second, ok)(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthy code = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	Health(time.Second, down)(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("unhealthy code = %d", rec.Code)
	}
	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Details["sessions"] != "db closed" {
		t.Fatalf("details = %v", body.Details)
	}
}
