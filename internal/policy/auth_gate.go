package policy

import (
	"context"
	"net/http"

	"github.com/nethal17/Ramanayake-Travels-sub001/auth"
	"github.com/nethal17/Ramanayake-Travels-sub001/gate"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
)

// Resource types known to the gate.
const (
	ResourceVehicle     = "vehicle"
	ResourceReservation = "reservation"
	ResourceDriver      = "driver"
	ResourceInquiry     = "inquiry"
	ResourceUser        = "user"
)

// Subject is who the gate authorizes: the signed-in user's id and role.
type Subject struct {
	ID   string
	Role models.Role
}

// SubjectFrom returns the subject of the request's session, or the zero
// Subject for anonymous requests.
func SubjectFrom(ctx context.Context) Subject {
	s, ok := auth.FromContext(ctx)
	if !ok || !s.Authenticated() {
		return Subject{}
	}
	return Subject{ID: s.User.ID, Role: s.User.Role}
}

func browse() []gate.Permission {
	return []gate.Permission{
		gate.NewPermission(ResourceVehicle, gate.ActionList),
		gate.NewPermission(ResourceVehicle, gate.ActionView),
	}
}

// RoleProfiles returns the permission set of every role.
func RoleProfiles() *gate.StaticResolver[models.Role] {
	booking := append(browse(),
		gate.NewPermission(ResourceReservation, gate.ActionList),
		gate.NewPermission(ResourceReservation, gate.ActionView),
		gate.NewPermission(ResourceReservation, gate.ActionCreate),
		gate.NewPermission(ResourceReservation, gate.ActionCancel),
	)
	r := gate.NewStaticResolver[models.Role]()
	r.Set(models.RoleAdmin, gate.NewStaticProfile(string(models.RoleAdmin), gate.PermissionAll))
	r.Set(models.RoleCustomer, gate.NewStaticProfile(string(models.RoleCustomer), booking...))
	r.Set(models.RoleVehicleOwner, gate.NewStaticProfile(string(models.RoleVehicleOwner), booking...))
	r.Set(models.RoleDriver, gate.NewStaticProfile(string(models.RoleDriver), append(browse(),
		gate.NewPermission(ResourceReservation, gate.ActionList),
		gate.NewPermission(ResourceReservation, gate.ActionView),
		gate.NewPermission(ResourceReservation, gate.ActionStartTrip),
		gate.NewPermission(ResourceReservation, gate.ActionEndTrip),
		gate.NewPermission(ResourceInquiry, gate.ActionCreate),
	)...))
	r.Set(models.RoleTechnician, gate.NewStaticProfile(string(models.RoleTechnician), browse()...))
	return r
}

// AuthGate is the application's authorization point.
type AuthGate struct {
	Gate *gate.HybridGate[Subject]
}

func NewAuthGate() *AuthGate {
	profiles := RoleProfiles()
	g := gate.NewHybridGate[Subject](gate.ResolverFunc[Subject](func(ctx context.Context, s Subject) (gate.Profile, error) {
		return profiles.Resolve(ctx, s.Role)
	}))
	g.Register(ResourceReservation, ReservationOwnership{})
	return &AuthGate{Gate: g}
}

// Allowed checks a subject directly, for code that already holds one.
func (ag *AuthGate) Allowed(ctx context.Context, s Subject, action gate.Action, resourceType string, resource any) bool {
	return ag.Gate.Can(ctx, s, action, resourceType, resource)
}

// CanProfile checks the permission only, without ownership.
func (ag *AuthGate) CanProfile(ctx context.Context, action gate.Action, resourceType string) bool {
	return ag.Gate.CanProfile(ctx, SubjectFrom(ctx), action, resourceType)
}

// RequirePermission answers 403 when the subject's profile lacks resource:action.
func (ag *AuthGate) RequirePermission(resourceType string, action gate.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !ag.CanProfile(r.Context(), action, resourceType) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
