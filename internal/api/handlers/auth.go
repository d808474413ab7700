package handlers

import (
	"net/http"
	"time"

	"github.com/gymdesk/gymdesk/internal/api/dto"
	"github.com/gymdesk/gymdesk/internal/api/middleware"
	"github.com/gymdesk/gymdesk/internal/auth"
	"github.com/gymdesk/gymdesk/internal/domain/admin"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
	"github.com/gymdesk/gymdesk/internal/pkg/utils"
	"github.com/gymdesk/gymdesk/internal/pkg/validator"
)

const refreshTokenCookie = "refreshToken"

// AuthHandler serves admin account endpoints
type AuthHandler struct {
	service   admin.Service
	validator *validator.Validator
	secure    bool
}

// NewAuthHandler creates a new auth handler. secure marks the auth cookies
// Secure, which should be on everywhere except local development.
func NewAuthHandler(service admin.Service, v *validator.Validator, secure bool) *AuthHandler {
	return &AuthHandler{service: service, validator: v, secure: secure}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	a, err := h.service.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, toAdminResponse(a))
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	a, pair, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(w, err)
		return
	}

	h.setAuthCookies(w, pair)
	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"admin":        toAdminResponse(a),
		"access_token": pair.AccessToken,
	})
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(refreshTokenCookie)
	if err != nil || c.Value == "" {
		utils.WriteError(w, errors.Unauthorized("refresh token missing"))
		return
	}

	pair, err := h.service.Refresh(r.Context(), c.Value)
	if err != nil {
		respondErr(w, err)
		return
	}

	h.setAuthCookies(w, pair)
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"access_token": pair.AccessToken,
	})
}

// Logout handles POST /auth/logout by expiring the auth cookies
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearCookie(w, middleware.AccessTokenCookie)
	h.clearCookie(w, refreshTokenCookie)
	utils.WriteSuccessWithMessage(w, http.StatusOK, "logged out", nil)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.AdminID(r.Context())
	if !ok {
		utils.WriteError(w, errors.Unauthorized("authentication required"))
		return
	}

	a, err := h.service.GetByID(r.Context(), adminID)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toAdminResponse(a))
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, pair auth.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/api/v1/auth",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.secure,
	})
}

func toAdminResponse(a *admin.Admin) dto.AdminResponse {
	return dto.AdminResponse{
		ID:       a.ID,
		Email:    a.Email,
		FullName: a.FullName,
		Role:     a.Role,
	}
}
