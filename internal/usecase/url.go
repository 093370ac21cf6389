// Package usecase holds the business operations of the shortener: allocating
// short codes, enforcing ownership, organizing links into categories and
// managing accounts. Storage is reached through narrow repository interfaces.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

// maxShortenAttempts bounds the collision retry loop of Shorten.
const maxShortenAttempts = 10

type urlRepository interface {
	CreateURL(ctx context.Context, url *entity.URL) (*entity.URL, error)
	GetURLByCode(ctx context.Context, shortCode string) (*entity.URL, error)
	UpdateURL(ctx context.Context, shortCode, originalURL string) (*entity.URL, error)
	DeleteURL(ctx context.Context, shortCode string) error
	IncrementAccessCount(ctx context.Context, shortCode string) (*entity.URL, error)
	ListURLsByOwner(ctx context.Context, userID uuid.UUID) ([]entity.URL, error)
}

type codeGenerator interface {
	Generate() (string, error)
}

type URLUseCase struct {
	urlRepo urlRepository
	codeGen codeGenerator
}

func NewURLUseCase(urlRepo urlRepository, codeGen codeGenerator) *URLUseCase {
	return &URLUseCase{
		urlRepo: urlRepo,
		codeGen: codeGen,
	}
}

func validateURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	return rawURL, entity.NewValidationError(urlViolations("original_url", rawURL))
}

// Shorten stores originalURL under a freshly generated short code. Only confirmed
// collisions are retried.
func (uc *URLUseCase) Shorten(ctx context.Context, originalURL string, ownerID *uuid.UUID) (*entity.URL, error) {
	const op = "usecase.URLUseCase.Shorten"

	originalURL, err := validateURL(originalURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := 0; i < maxShortenAttempts; i++ {
		shortCode, err := uc.codeGen.Generate()
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate short code: %w", op, err)
		}

		url, err := uc.urlRepo.CreateURL(ctx, &entity.URL{
			ShortCode:   shortCode,
			OriginalURL: originalURL,
			UserID:      ownerID,
		})
		if err != nil {
			if errors.Is(err, entity.ErrShortCodeExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		return url, nil
	}

	return nil, fmt.Errorf("%s: %d attempts collided: %w", op, maxShortenAttempts, entity.ErrCodeSpaceExhausted)
}

func (uc *URLUseCase) GetURL(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.GetURL"

	url, err := uc.urlRepo.GetURLByCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url: %w", op, err)
	}

	return url, nil
}

// authorize loads the URL and fails with ErrForbidden when it has an owner other
// than requesterID. Ownerless URLs are open to everybody.
func (uc *URLUseCase) authorize(ctx context.Context, shortCode string, requesterID *uuid.UUID) (*entity.URL, error) {
	url, err := uc.urlRepo.GetURLByCode(ctx, shortCode)
	if err != nil {
		return nil, err
	}

	if url.HasOwner() && !url.OwnedBy(requesterID) {
		return nil, entity.ErrForbidden
	}

	return url, nil
}

func (uc *URLUseCase) Update(ctx context.Context, shortCode, originalURL string, requesterID *uuid.UUID) (*entity.URL, error) {
	const op = "usecase.URLUseCase.Update"

	originalURL, err := validateURL(originalURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := uc.authorize(ctx, shortCode, requesterID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	url, err := uc.urlRepo.UpdateURL(ctx, shortCode, originalURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to update url: %w", op, err)
	}

	return url, nil
}

func (uc *URLUseCase) Delete(ctx context.Context, shortCode string, requesterID *uuid.UUID) error {
	const op = "usecase.URLUseCase.Delete"

	if _, err := uc.authorize(ctx, shortCode, requesterID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := uc.urlRepo.DeleteURL(ctx, shortCode); err != nil {
		return fmt.Errorf("%s: failed to delete url: %w", op, err)
	}

	return nil
}

// RecordAccess counts one access of shortCode and returns the new total.
func (uc *URLUseCase) RecordAccess(ctx context.Context, shortCode string) (int64, error) {
	const op = "usecase.URLUseCase.RecordAccess"

	url, err := uc.urlRepo.IncrementAccessCount(ctx, shortCode)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to record access: %w", op, err)
	}

	return url.AccessCount, nil
}

// ResolveShortCode counts one access and returns the URL to redirect to.
func (uc *URLUseCase) ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ResolveShortCode"

	url, err := uc.urlRepo.IncrementAccessCount(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	return url, nil
}

func (uc *URLUseCase) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.URL, error) {
	const op = "usecase.URLUseCase.ListByOwner"

	urls, err := uc.urlRepo.ListURLsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list urls: %w", op, err)
	}

	return urls, nil
}
