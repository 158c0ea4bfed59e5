package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nethal17/Ramanayake-Travels-sub001/i18n"
)

type ctxKey string

const (
	ctxLang    ctxKey = "pref_lang"
	flashName         = "flash"
	langCookie        = "lang"
)

// Prefs resolves the UI language (query > cookie > Accept-Language) and
// stores it in context. A language picked through ?lang= is kept for 30 days.
func Prefs(defaultLang string) func(http.Handler) http.Handler {
	if !i18n.Supports(defaultLang) {
		defaultLang = i18n.DefaultLang
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if c, err := r.Cookie(langCookie); err == nil && i18n.Supports(c.Value) {
				lang = c.Value
			}
			if ql := r.URL.Query().Get("lang"); i18n.Supports(ql) {
				lang = ql
				http.SetCookie(w, &http.Cookie{Name: langCookie, Value: lang, Path: "/", MaxAge: 86400 * 30, SameSite: http.SameSiteLaxMode})
			}
			if lang == "" && r.Header.Get("Accept-Language") != "" {
				lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
			}
			if lang == "" {
				lang = defaultLang
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxLang, lang)))
		})
	}
}

// LangFrom returns language preference from context or fallback.
func LangFrom(r *http.Request) string {
	if v, ok := r.Context().Value(ctxLang).(string); ok && v != "" {
		return v
	}
	return i18n.DefaultLang
}

// FlashMessage is a one-shot notice shown on the next rendered page.
type FlashMessage struct {
	Kind    string
	Message string
}

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash sets a translated flash message cookie using translation code (or literal if missing).
func Flash(w http.ResponseWriter, r *http.Request, kind, code string) {
	FlashText(w, kind, i18n.T(LangFrom(r), code))
}

// FlashText sets a flash with a message used as is, such as one returned by the backend.
func FlashText(w http.ResponseWriter, kind, msg string) {
	http.SetCookie(w, &http.Cookie{Name: flashName, Value: url.QueryEscape(kind + ":" + msg), Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// PopFlash reads and clears the flash cookie.
func PopFlash(w http.ResponseWriter, r *http.Request) *FlashMessage {
	c, err := r.Cookie(flashName)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		raw = c.Value
	}
	kind, msg, ok := strings.Cut(raw, ":")
	if !ok {
		return &FlashMessage{Kind: FlashSuccess, Message: raw}
	}
	return &FlashMessage{Kind: kind, Message: msg}
}
