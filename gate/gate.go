// Package gate authorizes subjects in two steps: the subject's profile must
// grant "resource:action", then the resource's policy (if one is registered
// and a resource is given) must allow it. U is the subject type.
package gate

import "context"

type HybridGate[U comparable] struct {
	resolver ProfileResolver[U]
	policies map[string]Policy[U]
}

func NewHybridGate[U comparable](resolver ProfileResolver[U]) *HybridGate[U] {
	return &HybridGate[U]{
		resolver: resolver,
		policies: make(map[string]Policy[U]),
	}
}

// Register sets the policy for a resource type, replacing any previous one.
func (g *HybridGate[U]) Register(resourceType string, p Policy[U]) {
	g.policies[resourceType] = p
}

// Authorize returns ErrUnauthorized for the zero subject, a subject without
// profile, a missing permission or a policy refusal.
func (g *HybridGate[U]) Authorize(ctx context.Context, user U, action Action, resourceType string, resource any) error {
	if !g.CanProfile(ctx, user, action, resourceType) {
		return ErrUnauthorized
	}
	if resource == nil {
		return nil
	}
	if policy, ok := g.policies[resourceType]; ok && !policy.Can(ctx, user, action, resource) {
		return ErrUnauthorized
	}
	return nil
}

func (g *HybridGate[U]) Can(ctx context.Context, user U, action Action, resourceType string, resource any) bool {
	return g.Authorize(ctx, user, action, resourceType, resource) == nil
}

// CanProfile checks the profile permission only. Views use it to decide
// which links to show before a resource is loaded.
func (g *HybridGate[U]) CanProfile(ctx context.Context, user U, action Action, resourceType string) bool {
	var zero U
	if user == zero {
		return false
	}
	profile, err := g.resolver.Resolve(ctx, user)
	if err != nil || profile == nil {
		return false
	}
	return profile.HasPermission(NewPermission(resourceType, action))
}
