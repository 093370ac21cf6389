package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

type categoryRepository interface {
	CreateCategory(ctx context.Context, c *entity.Category) (*entity.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	UpdateCategory(ctx context.Context, c *entity.Category) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategoriesWithURLCount(ctx context.Context, userID uuid.UUID) ([]entity.CategoryWithCount, error)
	OwnedCategoryIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error)
	AttachCategories(ctx context.Context, urlID uuid.UUID, categoryIDs []uuid.UUID) error
	DetachCategories(ctx context.Context, urlID uuid.UUID, categoryIDs []uuid.UUID) error
	ListURLsByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.URL, error)
}

type urlGetter interface {
	GetURLByCode(ctx context.Context, shortCode string) (*entity.URL, error)
}

// CategoryInput holds the editable fields of a category.
type CategoryInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Icon        string  `json:"icon" validate:"omitempty,max=50"`
	Color       string  `json:"color" validate:"omitempty,max=50"`
}

func (in CategoryInput) normalize() CategoryInput {
	in.Name = strings.TrimSpace(in.Name)
	if in.Icon == "" {
		in.Icon = entity.DefaultCategoryIcon
	}
	if in.Color == "" {
		in.Color = entity.DefaultCategoryColor
	}
	return in
}

type CategoryUseCase struct {
	categoryRepo categoryRepository
	urlRepo      urlGetter
}

func NewCategoryUseCase(categoryRepo categoryRepository, urlRepo urlGetter) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		urlRepo:      urlRepo,
	}
}

func (uc *CategoryUseCase) Create(ctx context.Context, ownerID uuid.UUID, in CategoryInput) (*entity.Category, error) {
	const op = "usecase.CategoryUseCase.Create"

	in = in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c, err := uc.categoryRepo.CreateCategory(ctx, &entity.Category{
		UserID:      ownerID,
		Name:        in.Name,
		Description: in.Description,
		Icon:        in.Icon,
		Color:       in.Color,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create category: %w", op, err)
	}

	return c, nil
}

// owned loads the category and fails with ErrForbidden unless requesterID owns it.
func (uc *CategoryUseCase) owned(ctx context.Context, id, requesterID uuid.UUID) (*entity.Category, error) {
	c, err := uc.categoryRepo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.UserID != requesterID {
		return nil, entity.ErrForbidden
	}

	return c, nil
}

func (uc *CategoryUseCase) Get(ctx context.Context, id, requesterID uuid.UUID) (*entity.Category, error) {
	const op = "usecase.CategoryUseCase.Get"

	c, err := uc.owned(ctx, id, requesterID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, id, requesterID uuid.UUID, in CategoryInput) (*entity.Category, error) {
	const op = "usecase.CategoryUseCase.Update"

	in = in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c, err := uc.owned(ctx, id, requesterID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.Name = in.Name
	c.Description = in.Description
	c.Icon = in.Icon
	c.Color = in.Color

	updated, err := uc.categoryRepo.UpdateCategory(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to update category: %w", op, err)
	}

	return updated, nil
}

func (uc *CategoryUseCase) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	const op = "usecase.CategoryUseCase.Delete"

	if _, err := uc.owned(ctx, id, requesterID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := uc.categoryRepo.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("%s: failed to delete category: %w", op, err)
	}

	return nil
}

func (uc *CategoryUseCase) ListURLs(ctx context.Context, id, requesterID uuid.UUID) ([]entity.URL, error) {
	const op = "usecase.CategoryUseCase.ListURLs"

	if _, err := uc.owned(ctx, id, requesterID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	urls, err := uc.categoryRepo.ListURLsByCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list urls: %w", op, err)
	}

	return urls, nil
}

// ListWithCounts returns the owner's categories with the number of URLs in each.
func (uc *CategoryUseCase) ListWithCounts(ctx context.Context, ownerID uuid.UUID) ([]entity.CategoryWithCount, error) {
	const op = "usecase.CategoryUseCase.ListWithCounts"

	categories, err := uc.categoryRepo.ListCategoriesWithURLCount(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list categories: %w", op, err)
	}

	return categories, nil
}

// authorizeAssociation returns the URL behind shortCode together with the
// deduplicated category ids once both are known to belong to requesterID.
func (uc *CategoryUseCase) authorizeAssociation(
	ctx context.Context,
	shortCode string,
	categoryIDs []uuid.UUID,
	requesterID uuid.UUID,
) (*entity.URL, []uuid.UUID, error) {
	ids := uniqueIDs(categoryIDs)
	if len(ids) == 0 {
		return nil, nil, entity.NewValidationError([]entity.Violation{
			{Field: "category_ids", Message: "this field is required"},
		})
	}

	url, err := uc.urlRepo.GetURLByCode(ctx, shortCode)
	if err != nil {
		return nil, nil, err
	}

	// Ownerless URLs cannot be categorized.
	if !url.OwnedBy(&requesterID) {
		return nil, nil, entity.ErrForbidden
	}

	owned, err := uc.categoryRepo.OwnedCategoryIDs(ctx, requesterID, ids)
	if err != nil {
		return nil, nil, err
	}
	if len(owned) != len(ids) {
		return nil, nil, entity.ErrForbidden
	}

	return url, ids, nil
}

// AttachCategories associates the URL with every category. Existing associations are kept.
func (uc *CategoryUseCase) AttachCategories(ctx context.Context, shortCode string, categoryIDs []uuid.UUID, requesterID uuid.UUID) error {
	const op = "usecase.CategoryUseCase.AttachCategories"

	url, ids, err := uc.authorizeAssociation(ctx, shortCode, categoryIDs, requesterID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := uc.categoryRepo.AttachCategories(ctx, url.ID, ids); err != nil {
		return fmt.Errorf("%s: failed to attach categories: %w", op, err)
	}

	return nil
}

// DetachCategories removes the associations. Missing associations are ignored.
func (uc *CategoryUseCase) DetachCategories(ctx context.Context, shortCode string, categoryIDs []uuid.UUID, requesterID uuid.UUID) error {
	const op = "usecase.CategoryUseCase.DetachCategories"

	url, ids, err := uc.authorizeAssociation(ctx, shortCode, categoryIDs, requesterID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := uc.categoryRepo.DetachCategories(ctx, url.ID, ids); err != nil {
		return fmt.Errorf("%s: failed to detach categories: %w", op, err)
	}

	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	res := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}
