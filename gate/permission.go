package gate

import "strings"

// Permission grants an action on a resource type, written "resource:action"
// (e.g. "reservation:cancel"). Either half may be the wildcard "*".
type Permission string

const (
	Wildcard                 = "*"
	PermissionAll Permission = "*:*"
)

func NewPermission(resourceType string, action Action) Permission {
	return Permission(resourceType + ":" + string(action))
}

// Parse splits the permission; malformed values yield empty parts.
func (p Permission) Parse() (resourceType string, action Action) {
	res, act, ok := strings.Cut(string(p), ":")
	if !ok || res == "" || act == "" {
		return "", ""
	}
	return res, Action(act)
}

// Matches reports whether p grants requested.
func (p Permission) Matches(requested Permission) bool {
	if p == PermissionAll || p == requested {
		return true
	}
	res, act := p.Parse()
	reqRes, reqAct := requested.Parse()
	if res == "" || reqRes == "" {
		return false
	}
	resOK := res == Wildcard || res == reqRes
	actOK := string(act) == Wildcard || act == reqAct
	return resOK && actOK
}
