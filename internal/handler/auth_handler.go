package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/svuportal/portal-backend/internal/middleware"
	"github.com/svuportal/portal-backend/internal/model"
	"github.com/svuportal/portal-backend/internal/response"
	"github.com/svuportal/portal-backend/internal/service"
	"github.com/svuportal/portal-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	sessions    *service.SessionStore
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, sessions *service.SessionStore) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// Login godoc
// POST /api/v1/auth/login
// Validates email + password + role against the credential table, persists
// the session record and returns a JWT. The failure response never says
// which field was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	identity, err := h.authService.Authenticate(c.Request.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLoginInFlight):
			response.Fail(c, http.StatusConflict, response.ErrLoginInFlight)
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	token, err := h.authService.GenerateToken(identity)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if err := h.sessions.Save(c.Request.Context(), identity); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, model.LoginResponse{
		Token: token,
		User:  *identity,
	})
}

// Logout godoc
// POST /api/v1/auth/logout
// Clears the persisted session record. Idempotent.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.sessions.Clear(c.Request.Context()); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the identity held by the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	identity, err := h.sessions.Load(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if identity == nil || identity.ID != claims.Subject {
		response.Fail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": identity})
}
