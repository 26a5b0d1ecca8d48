package handler

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vitraworks/vitra/internal/middleware"
	"github.com/vitraworks/vitra/internal/service"
	"github.com/vitraworks/vitra/internal/telemetry"
)

// AuthHandler handles staff login and logout.
type AuthHandler struct {
	users    *service.UserService
	metrics  *telemetry.BusinessMetrics
	validate *validator.Validate
	secure   bool // set Secure on session cookies (prod)
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(users *service.UserService, metrics *telemetry.BusinessMetrics, validate *validator.Validate, secure bool) *AuthHandler {
	return &AuthHandler{
		users:    users,
		metrics:  metrics,
		validate: validate,
		secure:   secure,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := DecodeValid(r, h.validate, &req); err != nil {
		Error(w, r, err)
		return
	}

	user, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.metrics.LoginFailed.Inc()
		Error(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	h.metrics.Logins.Inc()
	RespondJSON(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil && cookie.Value != "" {
		if err := h.users.Logout(r.Context(), cookie.Value); err != nil {
			Error(w, r, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/auth/me, returning the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	RespondJSON(w, http.StatusOK, user)
}
