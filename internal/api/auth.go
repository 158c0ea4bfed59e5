package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
)

// LoginResult is what a successful POST /auth/login yields. User is nil when
// the backend only returned a token.
type LoginResult struct {
	Token string
	User  *models.User
}

type loginResponse struct {
	Token       string       `json:"token"`
	AccessToken string       `json:"accessToken"`
	User        *models.User `json:"user"`
}

// Login posts credentials and returns the access token.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out loginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, Anonymous, body, &out); err != nil {
		return LoginResult{}, err
	}
	token := out.Token
	if token == "" {
		token = out.AccessToken
	}
	if token == "" {
		return LoginResult{}, errors.New("api: login response carried no token")
	}
	return LoginResult{Token: token, User: out.User}, nil
}

// Registration is the sign-up form payload.
type Registration struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Password string      `json:"password"`
	Role     models.Role `json:"role,omitempty"`
}

// Register creates an account and returns the backend's confirmation message.
func (c *Client) Register(ctx context.Context, reg Registration) (string, error) {
	var out messageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", nil, Anonymous, reg, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ForgotPassword asks the backend to email a reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var out messageResponse
	body := map[string]string{"email": email}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/forgot-password", nil, Anonymous, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ResetPassword completes a reset using the emailed token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) (string, error) {
	id, err := escapeID(token)
	if err != nil {
		return "", err
	}
	var out messageResponse
	body := map[string]string{"password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/reset-password/"+id, nil, Anonymous, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// AllUsers lists every account (admin only).
func (c *Client) AllUsers(ctx context.Context, creds Credentials) ([]models.User, error) {
	var out []models.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/allUsers", nil, creds, nil, &out, "users"); err != nil {
		return nil, err
	}
	return out, nil
}
