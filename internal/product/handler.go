// AngelaMos | 2026
// handler.go

package product

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

const imageField = "image"

type Handler struct {
	service      *Service
	validator    *validator.Validate
	maxImageSize int64
	publicURL    string
}

// NewHandler wires product routes. publicURL prefixes image links; when
// empty the link is derived from the incoming request.
func NewHandler(service *Service, maxImageSize int64, publicURL string) *Handler {
	return &Handler{
		service:      service,
		validator:    core.NewValidator(),
		maxImageSize: maxImageSize,
		publicURL:    publicURL,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Get("/", h.List)
	r.Post("/filter", h.Filter)
	r.Get("/search/{productName}/{categoryName}", h.Search)
	r.Get("/filterByCategory/{categoryName}", h.FilterByCategory)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authenticator, adminOnly)
		r.Post("/add", h.Add)
		r.Put("/update/{id}", h.Update)
		r.Delete("/delete/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := core.PageFromRequest(r)

	products, total, err := h.service.ListProducts(r.Context(), page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	msg := "All products fetched successfully"
	if total == 0 {
		msg = "No products found"
	}

	core.Paginated(w, msg, ToProductResponseList(products), page.Page, page.PageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		core.Fail(w, err, fmt.Sprintf("Product with id %s not found", id))
		return
	}

	core.OK(w, fmt.Sprintf("Product with id %s fetched successfully", id), ToProductResponse(p))
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	image, err := h.decodeProductRequest(w, r, &req, createFromForm)
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.AddProduct(r.Context(), req, image, h.baseURL(r))
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	core.Created(w, "Product added successfully", ToProductResponse(p))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateProductRequest
	image, err := h.decodeProductRequest(w, r, &req, updateFromForm)
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.UpdateProduct(r.Context(), id, req, image, h.baseURL(r))
	if err != nil {
		core.Fail(w, err, fmt.Sprintf("Product with id %s not found", id))
		return
	}

	core.OK(w, "Product updated successfully", ToProductResponse(p))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.service.SoftDeleteProduct(r.Context(), id)
	if err != nil {
		core.Fail(w, err, fmt.Sprintf("Product with id %s not found", id))
		return
	}

	core.OK(w, fmt.Sprintf("Product with id %s deleted successfully", id), ToProductResponse(p))
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.SearchByName(
		r.Context(),
		chi.URLParam(r, "productName"),
		chi.URLParam(r, "categoryName"),
	)
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	core.OK(w, "Products fetched successfully", ToProductResponseList(products))
}

func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	products, err := h.service.Filter(r.Context(), req)
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	core.OK(w, "Filtration done successfully", ToProductResponseList(products))
}

func (h *Handler) FilterByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListByCategory(r.Context(), chi.URLParam(r, "categoryName"))
	if err != nil {
		core.Fail(w, err, "")
		return
	}

	core.OK(w, "Products filtered successfully", ToProductResponseList(products))
}

// decodeProductRequest fills dst from a JSON body, or from multipart form
// fields via fromForm, and returns the optional uploaded image.
func (h *Handler) decodeProductRequest(
	w http.ResponseWriter,
	r *http.Request,
	dst any,
	fromForm func(form formValues, dst any) error,
) (*ImageUpload, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		if err := core.DecodeJSON(w, r, dst); err != nil {
			return nil, core.ValidationError(err.Error())
		}
		return nil, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxImageSize+(1<<20))
	if err := r.ParseMultipartForm(h.maxImageSize); err != nil {
		return nil, core.ValidationError("invalid multipart form or image too large")
	}

	if err := fromForm(formValues{r}, dst); err != nil {
		return nil, err
	}

	file, header, err := r.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, core.ValidationError("invalid image upload")
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, h.maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	return &ImageUpload{Filename: header.Filename, Content: content}, nil
}

func (h *Handler) baseURL(r *http.Request) string {
	if h.publicURL != "" {
		return h.publicURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}

	return scheme + "://" + r.Host
}

type formValues struct {
	r *http.Request
}

func (f formValues) has(key string) bool {
	_, ok := f.r.MultipartForm.Value[key]
	return ok
}

func (f formValues) get(key string) string {
	return strings.TrimSpace(f.r.FormValue(key))
}

func (f formValues) decimal(key string) (*decimal.Decimal, error) {
	if !f.has(key) {
		return nil, nil
	}
	d, err := decimal.NewFromString(f.get(key))
	if err != nil {
		return nil, core.ValidationError(key + " must be a number")
	}
	return &d, nil
}

func (f formValues) int(key string) (*int, error) {
	if !f.has(key) {
		return nil, nil
	}
	n, err := strconv.Atoi(f.get(key))
	if err != nil {
		return nil, core.ValidationError(key + " must be an integer")
	}
	return &n, nil
}

func (f formValues) str(key string) *string {
	if !f.has(key) {
		return nil
	}
	v := f.get(key)
	return &v
}

func createFromForm(form formValues, dst any) error {
	req, ok := dst.(*CreateProductRequest)
	if !ok {
		return fmt.Errorf("create form: unexpected target %T", dst)
	}

	price, err := form.decimal("price")
	if err != nil {
		return err
	}
	stock, err := form.int("stock")
	if err != nil {
		return err
	}

	req.Name = form.get("name")
	req.Description = form.get("description")
	req.Price = price
	req.Stock = stock
	req.Category = form.get("category")
	req.SubCategory = form.get("subCategory")
	return nil
}

func updateFromForm(form formValues, dst any) error {
	req, ok := dst.(*UpdateProductRequest)
	if !ok {
		return fmt.Errorf("update form: unexpected target %T", dst)
	}

	price, err := form.decimal("price")
	if err != nil {
		return err
	}
	stock, err := form.int("stock")
	if err != nil {
		return err
	}

	req.Name = form.str("name")
	req.Description = form.str("description")
	req.Price = price
	req.Stock = stock
	req.Category = form.str("category")
	req.SubCategory = form.str("subCategory")
	return nil
}
