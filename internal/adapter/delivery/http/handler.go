// Package http provides the HTTP delivery layer for the URL shortener service.
// It maps requests onto the use cases and their errors onto a uniform JSON envelope.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
	"github.com/vadimbarashkov/shortlinks/internal/usecase"
)

type urlUseCase interface {
	Shorten(ctx context.Context, originalURL string, ownerID *uuid.UUID) (*entity.URL, error)
	GetURL(ctx context.Context, shortCode string) (*entity.URL, error)
	Update(ctx context.Context, shortCode, originalURL string, requesterID *uuid.UUID) (*entity.URL, error)
	Delete(ctx context.Context, shortCode string, requesterID *uuid.UUID) error
	RecordAccess(ctx context.Context, shortCode string) (int64, error)
	ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.URL, error)
}

type categoryUseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, in usecase.CategoryInput) (*entity.Category, error)
	Get(ctx context.Context, id, requesterID uuid.UUID) (*entity.Category, error)
	Update(ctx context.Context, id, requesterID uuid.UUID, in usecase.CategoryInput) (*entity.Category, error)
	Delete(ctx context.Context, id, requesterID uuid.UUID) error
	ListURLs(ctx context.Context, id, requesterID uuid.UUID) ([]entity.URL, error)
	ListWithCounts(ctx context.Context, ownerID uuid.UUID) ([]entity.CategoryWithCount, error)
	AttachCategories(ctx context.Context, shortCode string, categoryIDs []uuid.UUID, requesterID uuid.UUID) error
	DetachCategories(ctx context.Context, shortCode string, categoryIDs []uuid.UUID, requesterID uuid.UUID) error
}

type authUseCase interface {
	Register(ctx context.Context, email, password string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type tokenParser interface {
	Parse(tokenStr string) (uuid.UUID, error)
}

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}

// decodeJSON decodes the request body into v. On failure it writes the error
// response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		render.Status(r, http.StatusBadRequest)

		if errors.Is(err, io.EOF) {
			render.JSON(w, r, emptyRequestBodyResponse)
			return false
		}

		render.JSON(w, r, invalidRequestBodyResponse)
		return false
	}

	return true
}
