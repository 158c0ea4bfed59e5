// Package view renders the embedded HTML templates inside their shell
// layout (public, customer or admin).
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/nethal17/Ramanayake-Travels-sub001/auth"
	"github.com/nethal17/Ramanayake-Travels-sub001/gate"
	"github.com/nethal17/Ramanayake-Travels-sub001/i18n"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
)

//go:embed templates
var embedded embed.FS

// Templates is the embedded template tree rooted at templates/.
func Templates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer parses templates once and executes them per request with
// request-bound helpers.
type Renderer struct {
	fsys  fs.FS
	dev   bool
	lang  func(*http.Request) string
	can   func(*http.Request, string, string) bool
	asset func(string) string

	mu    sync.RWMutex
	cache map[string]*template.Template
}

type Option func(*Renderer)

// WithFS replaces the embedded templates (tests, custom themes).
func WithFS(fsys fs.FS) Option {
	return func(v *Renderer) { v.fsys = fsys }
}

// WithDev disables the template cache.
func WithDev(dev bool) Option {
	return func(v *Renderer) { v.dev = dev }
}

func WithLangResolver(f func(*http.Request) string) Option {
	return func(v *Renderer) {
		if f != nil {
			v.lang = f
		}
	}
}

// WithCanResolver lets templates check profile permissions with `can`.
func WithCanResolver(f func(*http.Request, string, string) bool) Option {
	return func(v *Renderer) {
		if f != nil {
			v.can = f
		}
	}
}

// WithAssetResolver maps a static path to its versioned URL.
func WithAssetResolver(f func(string) string) Option {
	return func(v *Renderer) {
		if f != nil {
			v.asset = f
		}
	}
}

func New(opts ...Option) *Renderer {
	v := &Renderer{
		fsys:  Templates(),
		lang:  func(*http.Request) string { return i18n.DefaultLang },
		can:   func(*http.Request, string, string) bool { return false },
		asset: func(p string) string { return "/static/" + strings.TrimPrefix(p, "/") },
		cache: map[string]*template.Template{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Shell returns the layout a page is wrapped in, from its directory.
func Shell(name string) string {
	dir, _, ok := strings.Cut(name, "/")
	if ok && (dir == "admin" || dir == "customer") {
		return dir
	}
	return "public"
}

// Funcs returns the standard func map including i18n and simple helpers.
func (v *Renderer) Funcs(r *http.Request) template.FuncMap {
	lang := i18n.DefaultLang
	if r != nil {
		lang = v.lang(r)
	}
	return template.FuncMap{
		"t":    func(code string) string { return i18n.T(lang, code) },
		"lang": func() string { return lang },
		// can checks profile-level permission (resource, action) -> bool
		"can": func(resource, action string) bool {
			if r == nil {
				return false
			}
			return v.can(r, resource, action)
		},
		"hasAction": func(actions []gate.Action, action string) bool {
			for _, a := range actions {
				if string(a) == action {
					return true
				}
			}
			return false
		},
		"money":    Money,
		"date":     func(d any) string { return formatTime(d, "2006-01-02") },
		"datetime": func(d any) string { return formatTime(d, "2006-01-02 15:04") },
		"year":     func() int { return time.Now().Year() },
		"asset":    func(path string) string { return v.asset(path) },
		"join":     strings.Join,
		"list":     func(values ...string) []string { return values },
		// dict creates a map from key-value pairs for passing to sub-templates.
		// Usage: {{ template "partial" (dict "Key1" val1 "Key2" val2) }}
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// Money formats an amount in rupees with thousands separators.
func Money(amount float64) string {
	neg := amount < 0
	cents := int64(math.Round(math.Abs(amount) * 100))
	whole := fmt.Sprintf("%d", cents/100)
	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	s := fmt.Sprintf("LKR %s.%02d", b.String(), cents%100)
	if neg {
		return "-" + s
	}
	return s
}

func formatTime(d any, layout string) string {
	var t time.Time
	switch x := d.(type) {
	case time.Time:
		t = x
	case *time.Time:
		if x != nil {
			t = *x
		}
	case models.Timestamp:
		t = x.Time
	case *models.Timestamp:
		if x != nil {
			t = x.Time
		}
	}
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}

func (v *Renderer) parse(name string) (*template.Template, error) {
	if !v.dev {
		v.mu.RLock()
		t, ok := v.cache[name]
		v.mu.RUnlock()
		if ok {
			return t, nil
		}
	}
	if _, err := fs.Stat(v.fsys, name); err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	patterns := []string{"layouts/" + Shell(name) + ".html", name}
	if matches, _ := fs.Glob(v.fsys, "partials/*.html"); len(matches) > 0 {
		patterns = append(patterns, "partials/*.html")
	}
	t, err := template.New(name).Funcs(v.Funcs(nil)).ParseFS(v.fsys, patterns...)
	if err != nil {
		return nil, err
	}
	if !v.dev {
		v.mu.Lock()
		v.cache[name] = t
		v.mu.Unlock()
	}
	return t, nil
}

// Render executes page name (e.g. "admin/dashboard.html") in its shell. The
// output is buffered so a template error never leaves a half-written page.
func (v *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	return v.RenderStatus(w, r, http.StatusOK, name, data)
}

// RenderStatus is Render with an explicit status code.
func (v *Renderer) RenderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) error {
	base, err := v.parse(name)
	if err != nil {
		return err
	}
	t, err := base.Clone()
	if err != nil {
		return err
	}
	t.Funcs(v.Funcs(r))

	// Ensure data map exists and inject common defaults to avoid template errors.
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	if _, exists := data["IsLoggedIn"]; !exists {
		s, ok := auth.FromContext(r.Context())
		data["IsLoggedIn"] = ok && s.Authenticated()
		if ok {
			data["User"] = s.User
		}
	}
	data["Lang"] = v.lang(r)

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}
