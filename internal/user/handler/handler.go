// Package handler exposes account registration and login.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tanchhohang/airlines-api/internal/platform/middleware"
	"github.com/tanchhohang/airlines-api/internal/transport/http/shared"
	"github.com/tanchhohang/airlines-api/internal/user"
	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

var validate = validator.New()

// Service defines the account operations the handlers depend on.
type Service interface {
	Register(ctx context.Context, in user.RegisterInput) (user.User, error)
	Login(ctx context.Context, username, password string) (user.LoginResult, error)
}

// Handler handles the authentication endpoints.
type Handler struct {
	logger *slog.Logger
	svc    Service
}

// New creates a new auth Handler.
func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, svc: svc}
}

// Register registers the auth routes with the chi router. These endpoints
// are the only unauthenticated surface.
func (h *Handler) Register(r chi.Router) {
	authRouter := chi.NewRouter()
	authRouter.Use(middleware.Recovery(h.logger))
	authRouter.Use(middleware.RequestID)
	authRouter.Use(middleware.Logger(h.logger))
	authRouter.Use(middleware.Timeout(10 * time.Second))
	authRouter.Use(middleware.ContentTypeJSON)

	authRouter.Post("/auth/login", h.handleLogin)
	authRouter.Post("/users", h.handleRegister)

	r.Mount("/", authRouter)
}

type registerRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=64"`
	Password    string `json:"password" validate:"required,min=8"`
	UserID      string `json:"user_id" validate:"required"`
	APIPassword string `json:"api_password" validate:"required"`
	AgencyID    string `json:"agency_id" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func fieldErrors(err error) map[string]string {
	fields := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	return fields
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := validate.Struct(&req); err != nil {
		shared.WriteValidationError(w, fieldErrors(err))
		return
	}

	created, err := h.svc.Register(ctx, user.RegisterInput{
		Username:            req.Username,
		Password:            req.Password,
		UpstreamUserID:      req.UserID,
		UpstreamAPIPassword: req.APIPassword,
		AgencyID:            req.AgencyID,
	})
	if err != nil {
		if dErrors.ToHTTPStatus(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "failed to register user",
				"request_id", middleware.GetRequestID(ctx),
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := validate.Struct(&req); err != nil {
		shared.WriteValidationError(w, fieldErrors(err))
		return
	}

	result, err := h.svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeUnauthorized) {
			h.logger.WarnContext(ctx, "login rejected",
				"request_id", middleware.GetRequestID(ctx),
				"username", req.Username,
			)
		} else {
			h.logger.ErrorContext(ctx, "login failed",
				"request_id", middleware.GetRequestID(ctx),
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, result)
}
