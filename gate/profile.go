package gate

import (
	"context"
	"sort"
)

// Profile is a named set of permissions, one per role.
type Profile interface {
	Name() string
	HasPermission(permission Permission) bool
	Permissions() []Permission
}

// ProfileResolver finds the profile of a subject.
type ProfileResolver[U any] interface {
	Resolve(ctx context.Context, user U) (Profile, error)
}

// ResolverFunc adapts a function to ProfileResolver.
type ResolverFunc[U any] func(ctx context.Context, user U) (Profile, error)

func (f ResolverFunc[U]) Resolve(ctx context.Context, user U) (Profile, error) {
	return f(ctx, user)
}

// StaticProfile is an in-memory profile.
type StaticProfile struct {
	name        string
	permissions map[Permission]bool
}

func NewStaticProfile(name string, permissions ...Permission) *StaticProfile {
	p := &StaticProfile{name: name, permissions: make(map[Permission]bool, len(permissions))}
	for _, perm := range permissions {
		p.permissions[perm] = true
	}
	return p
}

func (p *StaticProfile) Name() string { return p.name }

// Permissions returns the granted permissions, sorted.
func (p *StaticProfile) Permissions() []Permission {
	perms := make([]Permission, 0, len(p.permissions))
	for perm := range p.permissions {
		perms = append(perms, perm)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}

func (p *StaticProfile) HasPermission(requested Permission) bool {
	for perm := range p.permissions {
		if perm.Matches(requested) {
			return true
		}
	}
	return false
}

// StaticResolver maps keys (roles, ids) to profiles.
type StaticResolver[K comparable] struct {
	profiles map[K]Profile
}

func NewStaticResolver[K comparable]() *StaticResolver[K] {
	return &StaticResolver[K]{profiles: make(map[K]Profile)}
}

func (r *StaticResolver[K]) Set(key K, profile Profile) {
	r.profiles[key] = profile
}

// Resolve returns ErrNoProfile for unknown keys.
func (r *StaticResolver[K]) Resolve(_ context.Context, key K) (Profile, error) {
	if profile, ok := r.profiles[key]; ok {
		return profile, nil
	}
	return nil, ErrNoProfile
}
