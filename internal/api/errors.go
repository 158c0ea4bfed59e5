package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnauthorized matches any 401 from the backend. Callers are expected to
// drop the session and send the browser to /login.
var ErrUnauthorized = errors.New("api: unauthorized")

// Error is a non-2xx backend response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// IsValidation reports whether err carries an expected, user-facing message
// (a 4xx other than 401) as opposed to an unexpected failure.
func IsValidation(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status >= 400 && apiErr.Status < 500 && apiErr.Status != http.StatusUnauthorized
}

// Message returns the backend's message for err when it has one.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

func decodeError(status int, body []byte) *Error {
	e := &Error{Status: status}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Msg     string `json:"msg"`
		Errors  []struct {
			Msg     string `json:"msg"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Message != "":
			e.Message = payload.Message
		case payload.Error != "":
			e.Message = payload.Error
		case payload.Msg != "":
			e.Message = payload.Msg
		case len(payload.Errors) > 0:
			msgs := make([]string, 0, len(payload.Errors))
			for _, item := range payload.Errors {
				if item.Msg != "" {
					msgs = append(msgs, item.Msg)
				} else if item.Message != "" {
					msgs = append(msgs, item.Message)
				}
			}
			e.Message = strings.Join(msgs, "; ")
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}
