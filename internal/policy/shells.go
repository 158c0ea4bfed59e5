package policy

import (
	"net/http"

	"github.com/nethal17/Ramanayake-Travels-sub001/auth"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
)

// RequireAdminShell guards admin pages: anonymous users go to /login and
// everyone else to their own landing page.
func RequireAdminShell(next http.Handler) http.Handler {
	return requireShell(ShellAdmin, next)
}

// RequireCustomerShell guards the customer-side pages; admins are sent to
// their dashboard.
func RequireCustomerShell(next http.Handler) http.Handler {
	return requireShell(ShellCustomer, next)
}

func requireShell(want Shell, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := auth.FromContext(r.Context())
		if !ok || !s.Authenticated() {
			auth.Unauthorized(w, r)
			return
		}
		if ShellFor(s.User.Role) != want {
			http.Redirect(w, r, LandingPath(s.User.Role), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole lets only the listed roles through; others are sent to their
// landing page.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := auth.FromContext(r.Context())
			if !ok || !s.Authenticated() {
				auth.Unauthorized(w, r)
				return
			}
			for _, role := range roles {
				if s.User.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Redirect(w, r, LandingPath(s.User.Role), http.StatusSeeOther)
		})
	}
}
