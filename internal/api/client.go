// Package api is the typed client for the rental backend's REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nethal17/Ramanayake-Travels-sub001/internal/logger"
)

const maxResponseBytes = 4 << 20

// Credentials supplies the headers that authenticate a call. A session
// implements it; Anonymous sends nothing.
type Credentials interface {
	AuthHeaders() map[string]string
}

type anonymous struct{}

func (anonymous) AuthHeaders() map[string]string { return map[string]string{} }

// Anonymous is used for public endpoints.
var Anonymous Credentials = anonymous{}

// Bearer is a Credentials built from a raw token.
type Bearer string

func (b Bearer) AuthHeaders() map[string]string {
	if b == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + string(b)}
}

// Client talks to the backend. It never retries: a failed call is surfaced
// to the caller unchanged.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.ILogger
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithLogger(l logger.ILogger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New builds a client for baseURL (e.g. http://localhost:5000/api).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// doJSON sends body (if any) as JSON and decodes the response into out.
// keys name the envelope fields the payload may be wrapped in.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, creds Credentials, body, out any, keys ...string) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.send(req, creds, out, keys...)
}

func (c *Client) send(req *http.Request, creds Credentials, out any, keys ...string) error {
	if creds == nil {
		creds = Anonymous
	}
	for k, v := range creds.AuthHeaders() {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("backend request failed",
			logger.String("method", req.Method),
			logger.String("path", req.URL.Path),
			logger.Error(err))
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s %s: %w", req.Method, req.URL.Path, err)
	}
	c.log.Debug("backend request",
		logger.String("method", req.Method),
		logger.String("path", req.URL.Path),
		logger.Int("status", resp.StatusCode),
		logger.Duration("took", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp.StatusCode, payload)
		if resp.StatusCode >= 500 {
			c.log.Warning("backend error response",
				logger.String("path", req.URL.Path),
				logger.Int("status", resp.StatusCode),
				logger.String("message", apiErr.Message))
		}
		return apiErr
	}
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := unwrap(payload, out, keys...); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// unwrap decodes raw into out, descending through envelope objects such as
// {"data": ...} or {"vehicles": [...]} when present.
func unwrap(raw []byte, out any, keys ...string) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '{' {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return err
		}
		candidates := append(append([]string{}, keys...), "data")
		for _, key := range candidates {
			if inner, ok := envelope[key]; ok && !isJSONNull(inner) {
				return unwrap(inner, out, keys...)
			}
		}
	}
	return json.Unmarshal(trimmed, out)
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// messageResponse is the common {"message": "..."} acknowledgement.
type messageResponse struct {
	Message string `json:"message"`
}

var errEmptyID = errors.New("api: empty id")

func escapeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errEmptyID
	}
	return url.PathEscape(id), nil
}
