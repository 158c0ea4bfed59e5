package gate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nethal17/Ramanayake-Travels-sub001/gate"
)

type subject struct {
	id   string
	role string
}

type booking struct {
	ownerID string
}

func roleResolver(profiles *gate.StaticResolver[string]) gate.ProfileResolver[subject] {
	return gate.ResolverFunc[subject](func(ctx context.Context, s subject) (gate.Profile, error) {
		return profiles.Resolve(ctx, s.role)
	})
}

func newGate() *gate.HybridGate[subject] {
	profiles := gate.NewStaticResolver[string]()
	profiles.Set("admin", gate.NewStaticProfile("admin", gate.PermissionAll))
	profiles.Set("customer", gate.NewStaticProfile("customer",
		gate.NewPermission("reservation", gate.ActionList),
		gate.NewPermission("reservation", gate.ActionCancel),
	))
	g := gate.NewHybridGate(roleResolver(profiles))
	g.Register("reservation", gate.PolicyFunc[subject](func(_ context.Context, s subject, _ gate.Action, resource any) bool {
		if s.role == "admin" {
			return true
		}
		b, ok := resource.(*booking)
		return ok && b.ownerID == s.id
	}))
	return g
}

func TestHybridGate_ProfileOnly(t *testing.T) {
	g := newGate()
	ctx := context.Background()
	customer := subject{id: "u1", role: "customer"}

	if !g.Can(ctx, customer, gate.ActionCancel, "reservation", nil) {
		t.Error("customer should cancel with no resource loaded")
	}
	if g.Can(ctx, customer, gate.ActionConfirm, "reservation", nil) {
		t.Error("customer must not confirm")
	}
	if g.Can(ctx, subject{id: "x", role: "stranger"}, gate.ActionList, "reservation", nil) {
		t.Error("unknown role should be denied")
	}
	if err := g.Authorize(ctx, subject{}, gate.ActionList, "reservation", nil); !errors.Is(err, gate.ErrUnauthorized) {
		t.Errorf("zero subject: %v", err)
	}
}

func TestHybridGate_WithOwnershipPolicy(t *testing.T) {
	g := newGate()
	ctx := context.Background()
	mine := &booking{ownerID: "u1"}

	if !g.Can(ctx, subject{id: "u1", role: "customer"}, gate.ActionCancel, "reservation", mine) {
		t.Error("owner should be allowed")
	}
	if g.Can(ctx, subject{id: "u2", role: "customer"}, gate.ActionCancel, "reservation", mine) {
		t.Error("non-owner should be denied even with profile permission")
	}
	if !g.Can(ctx, subject{id: "a1", role: "admin"}, gate.ActionConfirm, "reservation", mine) {
		t.Error("admin should pass both checks")
	}
}

func TestHybridGate_CanProfile(t *testing.T) {
	g := newGate()
	ctx := context.Background()
	if !g.CanProfile(ctx, subject{id: "u2", role: "customer"}, gate.ActionCancel, "reservation") {
		t.Error("CanProfile ignores ownership")
	}
	if g.CanProfile(ctx, subject{id: "u2", role: "customer"}, gate.ActionDelete, "vehicle") {
		t.Error("CanProfile should deny a missing permission")
	}
}

func TestStaticResolverUnknownKey(t *testing.T) {
	r := gate.NewStaticResolver[string]()
	if _, err := r.Resolve(context.Background(), "nobody"); !errors.Is(err, gate.ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}
}

func TestStaticProfilePermissionsSorted(t *testing.T) {
	p := gate.NewStaticProfile("driver",
		gate.NewPermission("reservation", gate.ActionStartTrip),
		gate.NewPermission("reservation", gate.ActionEndTrip),
		gate.NewPermission("inquiry", gate.ActionCreate),
	)
	got := p.Permissions()
	want := []gate.Permission{"inquiry:create", "reservation:end_trip", "reservation:start_trip"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
