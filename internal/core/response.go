// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
)

const maxJSONBodyBytes = 1 << 20

// Envelope is the uniform response body of every API endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type PageData struct {
	Items any      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

var exposeErrors atomic.Bool

// ExposeErrorDetail toggles echoing raw error text in the envelope's
// error field.
func ExposeErrorDetail(enabled bool) {
	exposeErrors.Store(enabled)
}

func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func OK(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

func Paginated(
	w http.ResponseWriter,
	message string,
	items any,
	page, pageSize, total int,
) {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	OK(w, message, PageData{
		Items: items,
		Meta: PageMeta{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		InternalServerError(w, err)
		return
	}

	body := Envelope{
		Success: false,
		Message: appErr.Message,
		Code:    appErr.Code,
	}
	if exposeErrors.Load() && appErr.Err != nil &&
		appErr.Err.Error() != appErr.Message {
		body.Error = appErr.Err.Error()
	}

	JSON(w, appErr.StatusCode, body)
}

// Fail renders a service error, falling back to 500 for anything outside
// the taxonomy. notFound replaces the generic text of a bare ErrNotFound.
func Fail(w http.ResponseWriter, err error, notFound string) {
	appErr := FromError(err)
	if appErr == nil {
		InternalServerError(w, err)
		return
	}

	if notFound != "" && appErr.Code == "NOT_FOUND" && !IsAppError(err) {
		appErr = NotFoundMessage(notFound)
	}

	JSONError(w, appErr)
}

func BadRequest(w http.ResponseWriter, message string) {
	JSONError(w, ValidationError(message))
}

func NotFound(w http.ResponseWriter, resource string) {
	JSONError(w, NotFoundError(resource))
}

func Unauthorized(w http.ResponseWriter, message string) {
	JSONError(w, UnauthorizedError(message))
}

func Forbidden(w http.ResponseWriter, message string) {
	JSONError(w, ForbiddenError(message))
}

func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("unexpected error", "error", err)

	body := Envelope{
		Success: false,
		Message: "Something went wrong",
		Code:    "INTERNAL_ERROR",
	}
	if exposeErrors.Load() && err != nil {
		body.Error = err.Error()
	}

	JSON(w, http.StatusInternalServerError, body)
}

// DecodeJSON reads a single JSON object into dst, rejecting unknown fields
// and trailing data.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty: %w", ErrInvalidInput)
		}
		return fmt.Errorf("invalid request body: %w", ErrInvalidInput)
	}

	if dec.More() {
		return fmt.Errorf("request body must contain a single object: %w", ErrInvalidInput)
	}

	return nil
}

func FormatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid input"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}

	return strings.Join(msgs, "; ")
}

func describeField(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "uuid4", "uuid":
		return field + " must be a valid id"
	}

	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
