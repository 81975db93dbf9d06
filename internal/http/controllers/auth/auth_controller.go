// Package auth contiene los controllers de autenticación.
package auth

import (
	"net/http"
	"time"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
	dto "github.com/dropDatabas3/boardz/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/boardz/internal/http/errors"
	"github.com/dropDatabas3/boardz/internal/http/helpers"
	"github.com/dropDatabas3/boardz/internal/http/middlewares"
	svc "github.com/dropDatabas3/boardz/internal/http/services/auth"
	"github.com/dropDatabas3/boardz/internal/observability/logger"
)

// Controller maneja las rutas /v1/auth
type Controller struct {
	service svc.Service
}

// NewController crea el controller de auth.
func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Signup maneja POST /v1/auth/signup
func (c *Controller) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("AuthController.Signup"),
	)

	var req dto.SignupRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	result, err := c.service.Signup(ctx, req.Email, req.Password)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	log.Info("signup completed", logger.UserID(result.User.ID))
	helpers.WriteJSON(w, http.StatusCreated, toAuthResponse(result))
}

// Login maneja POST /v1/auth/login
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.LoginRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	result, err := c.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, toAuthResponse(result))
}

// Logout maneja POST /v1/auth/logout. Requiere sesión.
func (c *Controller) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, ok := middlewares.GetSession(ctx)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	if err := c.service.Logout(ctx, sess); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me maneja GET /v1/auth/me. Requiere sesión.
func (c *Controller) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, ok := middlewares.GetSession(ctx)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	user, err := c.service.Me(ctx, sess)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func toAuthResponse(result *svc.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Token:     result.Token,
		ExpiresIn: int64(time.Until(result.Session.ExpiresAt).Seconds()),
		User:      toUserResponse(result.User),
	}
}

func toUserResponse(u *repository.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
