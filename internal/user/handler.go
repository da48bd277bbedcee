// AngelaMos | 2026
// handler.go

package user

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/me", h.GetMe)
		r.With(adminOnly).Get("/getAllUsers", h.GetAllUsers)
	})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetMe(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.Fail(w, err, "")
		return
	}

	core.OK(w, "User fetched successfully", ToUserResponse(user))
}

func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	params := ListUsersParams{
		PageParams: core.PageFromRequest(r),
		Search:     strings.TrimSpace(r.URL.Query().Get("search")),
		Role:       r.URL.Query().Get("role"),
	}

	users, total, err := h.service.ListUsers(r.Context(), params)
	if err != nil {
		core.Fail(w, err, "No users found")
		return
	}

	core.Paginated(
		w,
		"Users fetched successfully",
		ToUserResponseList(users),
		params.Page,
		params.PageSize,
		total,
	)
}
