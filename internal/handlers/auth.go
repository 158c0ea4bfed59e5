package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/nethal17/Ramanayake-Travels-sub001/auth"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/api"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/logger"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/middleware"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/policy"
	"github.com/nethal17/Ramanayake-Travels-sub001/validation"
)

type AuthHandler struct {
	*Base
}

func NewAuthHandler(b *Base) *AuthHandler {
	return &AuthHandler{Base: b}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		if u, ok := currentUser(r); ok {
			http.Redirect(w, r, policy.LandingPath(u.Role), http.StatusSeeOther)
			return
		}
		h.render(w, r, "login.html", nil)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	v := validation.Violations{}
	validation.Email("email", email, v)
	validation.Required("password", password, v)
	if !v.Empty() {
		h.renderStatus(w, r, http.StatusUnprocessableEntity, "login.html", map[string]any{"Errors": v, "Email": email})
		return
	}

	res, err := h.API.Login(r.Context(), email, password)
	if err != nil {
		msg := "flash.unexpected"
		if api.IsValidation(err) || errors.Is(err, api.ErrUnauthorized) {
			msg = api.Message(err)
		} else {
			h.Log.Error("login failed", logger.Error(err))
		}
		h.renderStatus(w, r, http.StatusUnauthorized, "login.html", map[string]any{"Error": msg, "Email": email})
		return
	}

	s, err := h.Sessions.Login(r.Context(), auth.SessionID(r.Context()), res.Token, res.User)
	if err != nil {
		h.Log.Error("session login failed", logger.Error(err))
		h.renderStatus(w, r, http.StatusUnauthorized, "login.html", map[string]any{"Error": "flash.unexpected", "Email": email})
		return
	}
	h.Cookies.SetCookie(w, s.ID)
	h.Log.Info("signed in", logger.String("user", s.User.ID), logger.String("role", string(s.User.Role)))
	h.success(w, r, "flash.login_ok", policy.LandingPath(s.User.Role))
}

// Register creates a customer account. Staff roles are created by admins.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, r, "register.html", nil)
		return
	}

	reg := api.Registration{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Phone:    strings.TrimSpace(r.FormValue("phone")),
		Password: r.FormValue("password"),
		Role:     models.RoleCustomer,
	}
	if r.FormValue("role") == string(models.RoleVehicleOwner) {
		reg.Role = models.RoleVehicleOwner
	}

	v := validation.Violations{}
	validation.Required("name", reg.Name, v)
	validation.Email("email", reg.Email, v)
	validation.Phone("phone", reg.Phone, v)
	validation.MinLength("password", reg.Password, 6, v)
	if reg.Password != r.FormValue("confirm") {
		v["confirm"] = "passwords_differ"
	}
	if !v.Empty() {
		h.renderStatus(w, r, http.StatusUnprocessableEntity, "register.html", map[string]any{"Errors": v, "Form": reg})
		return
	}

	if _, err := h.API.Register(r.Context(), reg); err != nil {
		msg := "flash.unexpected"
		if api.IsValidation(err) {
			msg = api.Message(err)
		} else {
			h.Log.Error("register failed", logger.Error(err))
		}
		h.renderStatus(w, r, http.StatusUnprocessableEntity, "register.html", map[string]any{"Error": msg, "Form": reg})
		return
	}
	h.success(w, r, "flash.registered", "/login")
}

func (h *AuthHandler) Forgot(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, r, "forgot.html", nil)
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	v := validation.Violations{}
	validation.Email("email", email, v)
	if !v.Empty() {
		h.renderStatus(w, r, http.StatusUnprocessableEntity, "forgot.html", map[string]any{"Errors": v, "Email": email})
		return
	}
	// The answer is the same whether or not the address exists.
	if _, err := h.API.ForgotPassword(r.Context(), email); err != nil && !api.IsValidation(err) {
		h.Log.Warning("forgot password failed", logger.Error(err))
	}
	h.success(w, r, "flash.reset_sent", "/login")
}

func (h *AuthHandler) Reset(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if r.Method == http.MethodGet {
		h.render(w, r, "reset.html", map[string]any{"Token": token})
		return
	}
	password := r.FormValue("password")
	v := validation.Violations{}
	validation.MinLength("password", password, 6, v)
	if password != r.FormValue("confirm") {
		v["confirm"] = "passwords_differ"
	}
	if !v.Empty() {
		h.renderStatus(w, r, http.StatusUnprocessableEntity, "reset.html", map[string]any{"Token": token, "Errors": v})
		return
	}
	if _, err := h.API.ResetPassword(r.Context(), token, password); err != nil {
		h.fail(w, r, err, r.URL.Path)
		return
	}
	h.success(w, r, "flash.password_reset", "/login")
}

// Logout drops the local session. The backend keeps no server-side state to
// revoke.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id := auth.SessionID(r.Context()); id != "" {
		if err := h.Sessions.Logout(r.Context(), id); err != nil {
			h.Log.Warning("logout failed", logger.Error(err))
		}
	}
	h.Cookies.ClearCookie(w)
	middleware.Flash(w, r, middleware.FlashSuccess, "flash.logged_out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
