package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/nethal17/Ramanayake-Travels-sub001/auth"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/api"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/logger"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/middleware"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/policy"
	"github.com/nethal17/Ramanayake-Travels-sub001/session"
	"github.com/nethal17/Ramanayake-Travels-sub001/view"
)

// Base carries what every handler needs.
type Base struct {
	API      *api.Client
	Sessions *session.Manager
	Cookies  *auth.Cookies
	View     *view.Renderer
	Gate     *policy.AuthGate
	Log      logger.ILogger
	Now      func() time.Time
}

func (b *Base) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// creds returns the request's backend credentials.
func creds(r *http.Request) api.Credentials {
	if s, ok := auth.FromContext(r.Context()); ok {
		return s
	}
	return api.Anonymous
}

func currentUser(r *http.Request) (models.User, bool) {
	s, ok := auth.FromContext(r.Context())
	if !ok || !s.Authenticated() {
		return models.User{}, false
	}
	return s.User, true
}

// render fills the shell data (flash, navigation, user) and renders name.
func (b *Base) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	b.renderStatus(w, r, http.StatusOK, name, data)
}

func (b *Base) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if f := middleware.PopFlash(w, r); f != nil {
		data["Flash"] = f
	}
	if u, ok := currentUser(r); ok {
		data["Nav"] = policy.NavFor(u.Role)
	}
	data["Path"] = r.URL.Path
	if err := b.View.RenderStatus(w, r, status, name, data); err != nil {
		b.Log.Error("render failed", logger.String("template", name), logger.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// expire ends the session after the backend rejected its token and sends
// the browser to /login.
func (b *Base) expire(w http.ResponseWriter, r *http.Request) {
	if id := auth.SessionID(r.Context()); id != "" {
		if err := b.Sessions.Logout(r.Context(), id); err != nil {
			b.Log.Warning("logout after 401", logger.Error(err))
		}
	}
	b.Cookies.ClearCookie(w)
	middleware.Flash(w, r, middleware.FlashError, "flash.session_expired")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// fail reports a failed mutation: 401 ends the session, a backend
// validation message is flashed as is, anything else gets a generic flash.
// The browser returns to back either way.
func (b *Base) fail(w http.ResponseWriter, r *http.Request, err error, back string) {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		b.expire(w, r)
		return
	case api.IsValidation(err):
		middleware.FlashText(w, middleware.FlashError, api.Message(err))
	default:
		b.Log.Error("backend call failed", logger.String("path", r.URL.Path), logger.Error(err))
		middleware.Flash(w, r, middleware.FlashError, "flash.unexpected")
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// loadError handles a failed page load. It returns true when the response
// was already written (401), otherwise the message to show on the page.
func (b *Base) loadError(w http.ResponseWriter, r *http.Request, err error) (string, bool) {
	if errors.Is(err, api.ErrUnauthorized) {
		b.expire(w, r)
		return "", true
	}
	if api.IsValidation(err) {
		return api.Message(err), false
	}
	b.Log.Error("backend load failed", logger.String("path", r.URL.Path), logger.Error(err))
	return "", false
}

func (b *Base) success(w http.ResponseWriter, r *http.Request, code, to string) {
	middleware.Flash(w, r, middleware.FlashSuccess, code)
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// NotFound renders the 404 page.
func (b *Base) NotFound(w http.ResponseWriter, r *http.Request) {
	b.renderStatus(w, r, http.StatusNotFound, "error.html", map[string]any{"Status": http.StatusNotFound, "Message": "flash.not_found"})
}
