package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/nethal17/Ramanayake-Travels-sub001/httpx"
	"github.com/nethal17/Ramanayake-Travels-sub001/session"
)

type ctxKey string

const (
	CookieName    = "rt_session"
	sessionCtxKey = ctxKey("session")
)

// Cookies signs and reads the session cookie. The cookie carries only the
// session id; everything else lives in the session store.
type Cookies struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewCookies(secret string, ttl time.Duration, secure bool) *Cookies {
	return &Cookies{secret: []byte(secret), ttl: ttl, secure: secure}
}

func (c *Cookies) sign(id string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// SetCookie writes the signed cookie for the session id.
func (c *Cookies) SetCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sessionID + "." + c.sign(sessionID),
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(c.ttl),
	})
}

// ClearCookie deletes the session cookie.
func (c *Cookies) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1, HttpOnly: true, Secure: c.secure, SameSite: http.SameSiteLaxMode})
}

// ParseCookie validates the cookie and returns the session id.
func (c *Cookies) ParseCookie(r *http.Request) (string, bool) {
	ck, err := r.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return "", false
	}
	id, sig, ok := strings.Cut(ck.Value, ".")
	if !ok || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(c.sign(id))) {
		return "", false
	}
	return id, true
}

// WithSession stores the session in ctx.
func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, s)
}

// FromContext returns the request's session, if any.
func FromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionCtxKey).(*session.Session)
	return s, ok && s != nil
}

// SessionID returns the id of the request's session, or "".
func SessionID(ctx context.Context) string {
	if s, ok := FromContext(ctx); ok {
		return s.ID
	}
	return ""
}

// Middleware attaches the live session to the request context. A cookie that
// points at a missing or expired session is cleared.
func Middleware(cookies *Cookies, manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := cookies.ParseCookie(r); ok {
				s, err := manager.Current(r.Context(), id)
				switch {
				case err == nil:
					r = r.WithContext(WithSession(r.Context(), s))
				case errors.Is(err, session.ErrNotFound):
					cookies.ClearCookie(w)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

// RequireAuth redirects to /login if not authenticated (HTML) or returns 401 JSON.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s, ok := FromContext(r.Context()); !ok || !s.Authenticated() {
			Unauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Unauthorized answers a request that needs a session it does not have.
func Unauthorized(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
