package handlers

import (
	"errors"
	"net/http"

	"github.com/SauravKesari/billify/internal/httpx"
	"github.com/SauravKesari/billify/internal/services"
	"github.com/SauravKesari/billify/internal/validation"
)

// AuthHandler exposes registration, login and session restore.
type AuthHandler struct {
	Identity *services.IdentityService
}

func NewAuthHandler(identity *services.IdentityService) *AuthHandler {
	return &AuthHandler{Identity: identity}
}

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/signup", h.signup)
	mux.HandleFunc("/api/login", h.login)
	mux.HandleFunc("/api/logout", h.logout)
	mux.HandleFunc("/api/session", h.session)
}

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	ShopName string `json:"shopName,omitempty"`
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var req credentialsReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("email", req.Email, v)
	validation.Required("password", req.Password, v)
	validation.Required("shopName", req.ShopName, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	user, err := h.Identity.Register(req.Email, req.Password, req.ShopName)
	if errors.Is(err, services.ErrEmailTaken) {
		httpx.JSONError(w, http.StatusConflict, "email_taken", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "signup_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var req credentialsReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	user, err := h.Identity.Login(req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		// Same message for bad email and bad password.
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "login_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	if err := h.Identity.Logout(); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "logout_failed", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) session(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	user, err := h.Identity.Current()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "session_failed", nil)
		return
	}
	if user == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

// requireScope resolves the active user's scope or writes a 401.
func requireScope(w http.ResponseWriter, identity *services.IdentityService) (string, bool) {
	user, err := identity.Current()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "session_failed", nil)
		return "", false
	}
	if user == nil {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return "", false
	}
	return user.ID, true
}
