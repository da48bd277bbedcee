// AngelaMos | 2026
// handler.go

package order

import (
	"fmt"
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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/create", h.Create)
		r.Get("/mine", h.ListMine)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", h.List)
			r.Put("/updateStatus/{id}", h.UpdateStatus)
			r.Delete("/delete/{id}", h.Delete)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	if len(req.Products) == 0 {
		core.JSONError(w, errNoProducts)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	o, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req.LineItems())
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	core.Created(w, "Order created successfully", ToOrderResponse(o))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	core.OK(w, "All orders fetched successfully", ToOrderResponseList(orders))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListMine(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	msg := "Your orders fetched successfully"
	if len(orders) == 0 {
		msg = "You have no orders yet"
	}

	core.OK(w, msg, ToOrderResponseList(orders))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	identity := middleware.GetIdentity(r.Context())

	o, err := h.service.Get(r.Context(), id, identity.UserID, identity.IsAdmin())
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	core.OK(w, fmt.Sprintf("Order with id %s fetched successfully", id), ToOrderResponse(o))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	o, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	core.OK(w, "Order status updated successfully to "+o.Status, ToOrderResponse(o))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	core.OK(w, "Order deleted successfully", ToOrderResponse(o))
}
