package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
)

// Claims is what the web front reads out of the backend's access token.
type Claims struct {
	UserID    string
	Role      models.Role
	Name      string
	Email     string
	ExpiresAt time.Time
}

// ParseClaims decodes the token payload without checking the signature: the
// signing key belongs to the backend, which verifies every call anyway.
func ParseClaims(token string) (Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return Claims{}, fmt.Errorf("parse token: %w", err)
	}
	c := Claims{
		Role:  models.Role(claimString(mc, "role")),
		Name:  claimString(mc, "name"),
		Email: claimString(mc, "email"),
	}
	for _, key := range []string{"id", "_id", "userId", "sub"} {
		if v := claimString(mc, key); v != "" {
			c.UserID = v
			break
		}
	}
	exp, err := mc.GetExpirationTime()
	if err != nil {
		return Claims{}, fmt.Errorf("token exp: %w", err)
	}
	if exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}

// User builds a minimal user from the claims, for logins whose response
// carried only a token.
func (c Claims) User() models.User {
	return models.User{ID: c.UserID, Name: c.Name, Email: c.Email, Role: c.Role}
}

func claimString(mc jwt.MapClaims, key string) string {
	v, ok := mc[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return fmt.Sprintf("%.0f", s)
	default:
		return fmt.Sprint(s)
	}
}
