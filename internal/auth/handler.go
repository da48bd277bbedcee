// AngelaMos | 2026
// handler.go

package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

// RegisterRoutes mounts the credential endpoints. limiter guards the
// unauthenticated endpoints against credential stuffing.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	limiter func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(limiter)
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	r.With(authenticator).Post("/logout", h.Logout)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			core.JSONError(w, core.ConflictError(
				"User with email "+req.Email+" already exists",
			))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, "Registration done successfully", toUserResponse(user))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, "Email and Password are required, please try again")
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownEmail):
			core.JSONError(w, core.NewAppError(
				err,
				"User not found, please register first",
				http.StatusNotFound,
				"NOT_FOUND",
			))
		case errors.Is(err, ErrInvalidCredentials):
			core.Unauthorized(w, "Invalid credentials!")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, "Logged in successfully", resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), middleware.GetIdentity(r.Context())); err != nil {
		core.Fail(w, err, "")
		return
	}

	core.OK(w, "Logged out successfully", nil)
}
