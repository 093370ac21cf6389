package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

const statusError = "error"

type urlRequest struct {
	OriginalURL string `json:"original_url"`
}

type categoryIDsRequest struct {
	CategoryIDs []uuid.UUID `json:"category_ids"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// urlResponse represents a shortened URL without its statistics.
type urlResponse struct {
	ID          uuid.UUID  `json:"id"`
	ShortCode   string     `json:"short_code"`
	OriginalURL string     `json:"original_url"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toURLResponse(url *entity.URL) urlResponse {
	return urlResponse{
		ID:          url.ID,
		ShortCode:   url.ShortCode,
		OriginalURL: url.OriginalURL,
		UserID:      url.UserID,
		CreatedAt:   url.CreatedAt,
		UpdatedAt:   url.UpdatedAt,
	}
}

func toURLListResponse(urls []entity.URL) []urlResponse {
	res := make([]urlResponse, 0, len(urls))
	for i := range urls {
		res = append(res, toURLResponse(&urls[i]))
	}
	return res
}

type urlStats struct {
	AccessCount int64 `json:"access_count"`
}

type urlStatsResponse struct {
	urlResponse
	Stats urlStats `json:"stats"`
}

func toURLStatsResponse(url *entity.URL) urlStatsResponse {
	return urlStatsResponse{
		urlResponse: toURLResponse(url),
		Stats: urlStats{
			AccessCount: url.AccessCount,
		},
	}
}

type accessResponse struct {
	ShortCode   string `json:"short_code"`
	AccessCount int64  `json:"access_count"`
}

type categoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCategoryResponse(c *entity.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		Color:       c.Color,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type categoryWithCountResponse struct {
	categoryResponse
	URLCount int64 `json:"url_count"`
}

func toCategoryListResponse(categories []entity.CategoryWithCount) []categoryWithCountResponse {
	res := make([]categoryWithCountResponse, 0, len(categories))
	for i := range categories {
		res = append(res, categoryWithCountResponse{
			categoryResponse: toCategoryResponse(&categories[i].Category),
			URLCount:         categories[i].URLCount,
		})
	}
	return res
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// validationError represents an individual validation error.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse represents a structured error response.
type errorResponse struct {
	Status  string            `json:"status"`
	Kind    entity.Kind       `json:"kind"`
	Message string            `json:"message"`
	Errors  []validationError `json:"errors,omitempty"`
}

var (
	emptyRequestBodyResponse = errorResponse{
		Status:  statusError,
		Kind:    entity.KindValidationFailed,
		Message: "empty request body",
	}

	invalidRequestBodyResponse = errorResponse{
		Status:  statusError,
		Kind:    entity.KindValidationFailed,
		Message: "invalid request body",
	}

	unauthorizedResponse = errorResponse{
		Status:  statusError,
		Kind:    entity.KindUnauthorized,
		Message: "authentication required",
	}

	invalidTokenResponse = errorResponse{
		Status:  statusError,
		Kind:    entity.KindUnauthorized,
		Message: "invalid access token",
	}
)

const serverErrorMessage = "server error occurred"

var statusByKind = map[entity.Kind]int{
	entity.KindValidationFailed: http.StatusBadRequest,
	entity.KindUnauthorized:     http.StatusUnauthorized,
	entity.KindForbidden:        http.StatusForbidden,
	entity.KindNotFound:         http.StatusNotFound,
	entity.KindDuplicateCode:    http.StatusConflict,
	entity.KindDuplicateEmail:   http.StatusConflict,
	entity.KindDuplicateName:    http.StatusConflict,
}

// publicErrors are the errors whose text is safe to show to clients.
var publicErrors = []error{
	entity.ErrURLNotFound,
	entity.ErrUserNotFound,
	entity.ErrCategoryNotFound,
	entity.ErrShortCodeExists,
	entity.ErrEmailExists,
	entity.ErrCategoryExists,
	entity.ErrForbidden,
	entity.ErrInvalidCredentials,
}

func toErrorResponse(err error) (int, errorResponse) {
	kind := entity.KindOf(err)

	status, ok := statusByKind[kind]
	if !ok {
		return http.StatusInternalServerError, errorResponse{
			Status:  statusError,
			Kind:    kind,
			Message: serverErrorMessage,
		}
	}

	resp := errorResponse{
		Status: statusError,
		Kind:   kind,
	}

	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		resp.Message = "validation error"
		for _, v := range verr.Violations {
			resp.Errors = append(resp.Errors, validationError{
				Field:   v.Field,
				Message: v.Message,
			})
		}
		return status, resp
	}

	resp.Message = string(kind)
	for _, pub := range publicErrors {
		if errors.Is(err, pub) {
			resp.Message = pub.Error()
			break
		}
	}

	return status, resp
}

// renderError writes the error envelope matching err. Server errors are
// attached to the request log line.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := toErrorResponse(err)
	if status >= http.StatusInternalServerError {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}
