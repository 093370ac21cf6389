package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

type CategoryRepository struct {
	s *Store
}

func NewCategoryRepository(s *Store) *CategoryRepository {
	return &CategoryRepository{s: s}
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	const op = "adapter.repository.memory.CategoryRepository.CreateCategory"

	if err := checkContext(ctx, op); err != nil {
		return nil, err
	}

	now := entity.Timestamp()
	rec := *copyCategory(*c)
	rec.ID = uuid.New()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[rec.UserID]; !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
	}

	key := categoryName{userID: rec.UserID, name: rec.Name}
	if _, ok := r.s.catNames[key]; ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrCategoryExists)
	}

	r.s.cats[rec.ID] = rec
	r.s.catNames[key] = rec.ID

	return copyCategory(rec), nil
}

func (r *CategoryRepository) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	const op = "adapter.repository.memory.CategoryRepository.GetCategory"

	if err := checkContext(ctx, op); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.cats[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrCategoryNotFound)
	}

	return copyCategory(c), nil
}

// UpdateCategory replaces name, description, icon and color of the category with c.ID.
func (r *CategoryRepository) UpdateCategory(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	const op = "adapter.repository.memory.CategoryRepository.UpdateCategory"

	if err := checkContext(ctx, op); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.cats[c.ID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrCategoryNotFound)
	}

	oldKey := categoryName{userID: cur.UserID, name: cur.Name}
	newKey := categoryName{userID: cur.UserID, name: c.Name}
	if id, ok := r.s.catNames[newKey]; ok && id != cur.ID {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrCategoryExists)
	}

	upd := *copyCategory(*c)
	cur.Name = upd.Name
	cur.Description = upd.Description
	cur.Icon = upd.Icon
	cur.Color = upd.Color
	cur.UpdatedAt = entity.Timestamp()

	delete(r.s.catNames, oldKey)
	r.s.catNames[newKey] = cur.ID
	r.s.cats[cur.ID] = cur

	return copyCategory(cur), nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	const op = "adapter.repository.memory.CategoryRepository.DeleteCategory"

	if err := checkContext(ctx, op); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.deleteCategoryLocked(id) {
		return fmt.Errorf("%s: %w", op, entity.ErrCategoryNotFound)
	}

	return nil
}

// deleteCategoryLocked removes a category and its associations. The caller must hold s.mu.
func (s *Store) deleteCategoryLocked(id uuid.UUID) bool {
	c, ok := s.cats[id]
	if !ok {
		return false
	}

	delete(s.cats, id)
	delete(s.catNames, categoryName{userID: c.UserID, name: c.Name})

	for urlID, cats := range s.links {
		delete(cats, id)
		if len(cats) == 0 {
			delete(s.links, urlID)
		}
	}

	return true
}

func (r *CategoryRepository) ListCategoriesWithURLCount(ctx context.Context, userID uuid.UUID) ([]entity.CategoryWithCount, error) {
	const op = "adapter.repository.memory.CategoryRepository.ListCategoriesWithURLCount"

	if err := checkContext(ctx, op); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[uuid.UUID]int64)
	for _, cats := range r.s.links {
		for catID := range cats {
			counts[catID]++
		}
	}

	res := make([]entity.CategoryWithCount, 0)
	for _, c := range r.s.cats {
		if c.UserID != userID {
			continue
		}
		res = append(res, entity.CategoryWithCount{
			Category: *copyCategory(c),
			URLCount: counts[c.ID],
		})
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].Name < res[j].Name
	})

	return res, nil
}

func (r *CategoryRepository) OwnedCategoryIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	const op = "adapter.repository.memory.CategoryRepository.OwnedCategoryIDs"

	if err := checkContext(ctx, op); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	owned := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if c, ok := r.s.cats[id]; ok && c.UserID == userID {
			owned = append(owned, id)
		}
	}

	return owned, nil
}

func (r *CategoryRepository) AttachCategories(ctx context.Context, urlID uuid.UUID, categoryIDs []uuid.UUID) error {
	const op = "adapter.repository.memory.CategoryRepository.AttachCategories"

	if err := checkContext(ctx, op); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.codes[urlID]; !ok {
		return fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}
	for _, id := range categoryIDs {
		if _, ok := r.s.cats[id]; !ok {
			return fmt.Errorf("%s: %w", op, entity.ErrCategoryNotFound)
		}
	}

	cats, ok := r.s.links[urlID]
	if !ok {
		cats = make(map[uuid.UUID]struct{}, len(categoryIDs))
		r.s.links[urlID] = cats
	}
	for _, id := range categoryIDs {
		cats[id] = struct{}{}
	}

	return nil
}

func (r *CategoryRepository) DetachCategories(ctx context.Context, urlID uuid.UUID, categoryIDs []uuid.UUID) error {
	const op = "adapter.repository.memory.CategoryRepository.DetachCategories"

	if err := checkContext(ctx, op); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cats, ok := r.s.links[urlID]
	if !ok {
		return nil
	}
	for _, id := range categoryIDs {
		delete(cats, id)
	}
	if len(cats) == 0 {
		delete(r.s.links, urlID)
	}

	return nil
}

func (r *CategoryRepository) ListURLsByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.URL, error) {
	const op = "adapter.repository.memory.CategoryRepository.ListURLsByCategory"

	if err := checkContext(ctx, op); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	urls := make([]entity.URL, 0)
	for urlID, cats := range r.s.links {
		if _, ok := cats[categoryID]; !ok {
			continue
		}
		if url, ok := r.s.urls[r.s.codes[urlID]]; ok {
			urls = append(urls, *copyURL(url))
		}
	}
	r.s.mu.RUnlock()

	sortNewestFirst(urls)

	return urls, nil
}
