// AngelaMos | 2026
// handler.go

package cart

import (
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

// RegisterRoutes mounts the cart endpoints. Every route needs a signed-in
// user; the summary is restricted to admins.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.Get)
		r.Post("/add", h.Add)
		r.Delete("/delete/{id}", h.Remove)
		r.Put("/updateQuantity/{id}", h.UpdateQuantity)
		r.Delete("/clear", h.Clear)
		r.With(adminOnly).Get("/summary", h.Summary)
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCart(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	core.OK(w, "Cart is fetched successfully", ToCartResponse(c))
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.AddItem(r.Context(), middleware.GetUserID(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	core.OK(w, "Product added to cart successfully", ToCartResponse(c))
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.RemoveItem(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	if c == nil {
		core.OK(w, "Cart is now empty and has been removed", nil)
		return
	}

	core.OK(w, "Product removed from cart successfully", ToCartResponse(c))
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	c, err := h.service.UpdateQuantity(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "id"),
		req.Action,
	)
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	if c == nil {
		core.OK(w, "Cart is now empty and has been removed", nil)
		return
	}

	core.OK(w, "Quantity updated successfully", ToCartResponse(c))
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		core.Fail(w, err, "")
		return
	}

	core.OK(w, "Cart cleared successfully", nil)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	core.OK(w, "Fetched Cart summary successfully", summary)
}
