// Package httpx holds the few JSON responses the web front serves itself.
package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON writes payload with status. Encoding happens before the header is
// sent, so a payload that cannot be encoded yields a clean 500.
func JSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// Check is one named dependency probe of the health endpoint.
type Check struct {
	Name  string
	Probe func(context.Context) error
}

// Health answers 200 {"status":"ok"} when every probe passes within
// timeout, otherwise 503 with the failing probes.
func Health(timeout time.Duration, checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		failed := map[string]string{}
		for _, c := range checks {
			if err := c.Probe(ctx); err != nil {
				failed[c.Name] = err.Error()
			}
		}
		if len(failed) > 0 {
			JSONError(w, http.StatusServiceUnavailable, "unavailable", failed)
			return
		}
		JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
