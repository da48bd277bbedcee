// AngelaMos | 2026
// handler.go

package category

import (
	"fmt"
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
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authenticator, adminOnly)
		r.Post("/add", h.Add)
		r.Put("/update/{id}", h.Update)
		r.Delete("/delete/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	msg := "All categories fetched successfully"
	if len(categories) == 0 {
		msg = "No categories found"
	}

	core.OK(w, msg, ToCategoryResponseList(categories))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		core.Fail(w, err, fmt.Sprintf("Category with id %s not found", id))
		return
	}

	core.OK(w, "Category found successfully", ToCategoryResponse(c))
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddCategoryRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, restored, err := h.service.AddCategory(r.Context(), req)
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	if restored {
		core.OK(w, c.Name+" category restored successfully", ToCategoryResponse(c))
		return
	}

	core.Created(w, c.Name+" category added successfully", ToCategoryResponse(c))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateCategoryRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.UpdateCategory(r.Context(), id, req)
	if err != nil {
		core.Fail(w, err, fmt.Sprintf("Category with id %s not found", id))
		return
	}

	core.OK(w, "Category updated successfully", ToCategoryResponse(c))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.service.SoftDeleteCategory(r.Context(), id)
	if err != nil {
		core.Fail(w, err, fmt.Sprintf("Category with id %s not found", id))
		return
	}

	core.OK(w, "Category deleted successfully", ToCategoryResponse(c))
}
