// Package assets serves the embedded stylesheet, scripts and the Lottie
// animation under /static/.
package assets

import (
	"crypto/sha1"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"sync"
)

//go:embed static
var embedded embed.FS

// FS is the static tree rooted at static/.
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var (
	versionsMu sync.RWMutex
	versions   = map[string]string{}
)

// URL returns /static/<rel>?v=<hash> so a changed file gets a new URL.
// Absolute URLs are returned as is.
func URL(rel string) string {
	if strings.HasPrefix(rel, "http://") || strings.HasPrefix(rel, "https://") || strings.HasPrefix(rel, "//") {
		return rel
	}
	rel = strings.TrimPrefix(rel, "/")
	versionsMu.RLock()
	v, ok := versions[rel]
	versionsMu.RUnlock()
	if !ok {
		b, err := fs.ReadFile(FS(), rel)
		if err != nil {
			return "/static/" + rel
		}
		h := sha1.Sum(b)
		v = fmt.Sprintf("%x", h[:8])
		versionsMu.Lock()
		versions[rel] = v
		versionsMu.Unlock()
	}
	return "/static/" + rel + "?v=" + v
}

// Handler serves the static tree. Versioned requests are cached for a year,
// the rest for an hour.
func Handler() http.Handler {
	files := http.StripPrefix("/static/", http.FileServer(http.FS(FS())))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") != "" {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		files.ServeHTTP(w, r)
	})
}
