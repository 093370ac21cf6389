package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

type URLRepository struct {
	s *Store
}

func NewURLRepository(s *Store) *URLRepository {
	return &URLRepository{s: s}
}

func (r *URLRepository) CreateURL(ctx context.Context, url *entity.URL) (*entity.URL, error) {
	const op = "adapter.repository.memory.URLRepository.CreateURL"

	if err := checkContext(ctx, op); err != nil {
		return nil, err
	}

	now := entity.Timestamp()
	rec := copyURL(url)
	rec.ID = uuid.New()
	rec.AccessCount = 0
	rec.CreatedAt = now
	rec.UpdatedAt = now

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.urls[rec.ShortCode]; ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrShortCodeExists)
	}
	if rec.UserID != nil {
		if _, ok := r.s.users[*rec.UserID]; !ok {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
		}
	}

	r.s.urls[rec.ShortCode] = rec
	r.s.codes[rec.ID] = rec.ShortCode

	return copyURL(rec), nil
}

func (r *URLRepository) GetURLByCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "adapter.repository.memory.URLRepository.GetURLByCode"

	if err := checkContext(ctx, op); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	url, ok := r.s.urls[shortCode]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	return copyURL(url), nil
}

func (r *URLRepository) UpdateURL(ctx context.Context, shortCode, originalURL string) (*entity.URL, error) {
	const op = "adapter.repository.memory.URLRepository.UpdateURL"

	if err := checkContext(ctx, op); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	url, ok := r.s.urls[shortCode]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	url.OriginalURL = originalURL
	url.UpdatedAt = entity.Timestamp()

	return copyURL(url), nil
}

func (r *URLRepository) DeleteURL(ctx context.Context, shortCode string) error {
	const op = "adapter.repository.memory.URLRepository.DeleteURL"

	if err := checkContext(ctx, op); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	url, ok := r.s.urls[shortCode]
	if !ok {
		return fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	delete(r.s.urls, shortCode)
	delete(r.s.codes, url.ID)
	delete(r.s.links, url.ID)

	return nil
}

func (r *URLRepository) IncrementAccessCount(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "adapter.repository.memory.URLRepository.IncrementAccessCount"

	if err := checkContext(ctx, op); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	url, ok := r.s.urls[shortCode]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	url.AccessCount++

	return copyURL(url), nil
}

func (r *URLRepository) ListURLsByOwner(ctx context.Context, userID uuid.UUID) ([]entity.URL, error) {
	const op = "adapter.repository.memory.URLRepository.ListURLsByOwner"

	if err := checkContext(ctx, op); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	urls := make([]entity.URL, 0)
	for _, url := range r.s.urls {
		if url.UserID != nil && *url.UserID == userID {
			urls = append(urls, *copyURL(url))
		}
	}
	r.s.mu.RUnlock()

	sortNewestFirst(urls)

	return urls, nil
}

func sortNewestFirst(urls []entity.URL) {
	sort.Slice(urls, func(i, j int) bool {
		if urls[i].CreatedAt.Equal(urls[j].CreatedAt) {
			return urls[i].ShortCode < urls[j].ShortCode
		}
		return urls[i].CreatedAt.After(urls[j].CreatedAt)
	})
}
