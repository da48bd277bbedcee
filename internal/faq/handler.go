// AngelaMos | 2026
// handler.go

package faq

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
	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(authenticator, adminOnly)
		r.Post("/add", h.Add)
		r.Put("/update/{id}", h.Update)
		r.Delete("/delete/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context())
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	core.OK(w, "All FAQ fetched successfully", ToEntryResponseList(entries))
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	e, err := h.service.Add(r.Context(), req)
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	core.Created(w, "Question is added successfully", ToEntryResponse(e))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	e, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	core.OK(w, "FAQ updated successfully", ToEntryResponse(e))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.SoftDelete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	core.OK(w, "Question deleted successfully", ToEntryResponse(e))
}
