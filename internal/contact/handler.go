// AngelaMos | 2026
// handler.go

package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Post("/", h.Create)
	r.Post("/create", h.Create)
	r.With(authenticator, adminOnly).Get("/", h.List)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	m, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	core.Created(w, "Message sent successfully", ToMessageResponse(m))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	out := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, ToMessageResponse(&messages[i]))
	}

	core.OK(w, "Fetched all contact messages successfully", out)
}
