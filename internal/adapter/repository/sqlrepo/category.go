package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

const (
	categoryColumns = `id, user_id, name, description, icon, color, created_at, updated_at`

	insertCategoryQuery = `INSERT INTO categories (id, user_id, name, description, icon, color, created_at, updated_at)
		VALUES (:id, :user_id, :name, :description, :icon, :color, :created_at, :updated_at)`
	selectCategoryQuery = `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`
	updateCategoryQuery = `UPDATE categories SET name = ?, description = ?, icon = ?, color = ?, updated_at = ? WHERE id = ?`
	deleteCategoryQuery = `DELETE FROM categories WHERE id = ?`

	selectCategoriesWithCountQuery = `SELECT c.id, c.user_id, c.name, c.description, c.icon, c.color, c.created_at, c.updated_at,
			COUNT(DISTINCT uc.url_id) AS url_count
		FROM categories c
		LEFT JOIN url_categories uc ON uc.category_id = c.id
		WHERE c.user_id = ?
		GROUP BY c.id
		ORDER BY c.name`
	selectOwnedCategoryIDsQuery = `SELECT id FROM categories WHERE user_id = ? AND id IN (?)`
	detachCategoriesQuery       = `DELETE FROM url_categories WHERE url_id = ? AND category_id IN (?)`
	selectURLsByCategoryQuery   = `SELECT u.id, u.short_code, u.original_url, u.user_id, u.access_count, u.created_at, u.updated_at
		FROM urls u
		JOIN url_categories uc ON uc.url_id = u.id
		WHERE uc.category_id = ?
		ORDER BY u.created_at DESC, u.short_code`
)

type categoryRecord struct {
	ID          uuid.UUID      `db:"id"`
	UserID      uuid.UUID      `db:"user_id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Icon        string         `db:"icon"`
	Color       string         `db:"color"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (c *categoryRecord) toEntity() *entity.Category {
	cat := &entity.Category{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Icon:      c.Icon,
		Color:     c.Color,
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
	if c.Description.Valid {
		d := c.Description.String
		cat.Description = &d
	}
	return cat
}

type categoryCountRecord struct {
	categoryRecord
	URLCount int64 `db:"url_count"`
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

type CategoryRepository struct {
	repo
}

func NewCategoryRepository(db *sqlx.DB, dialect Dialect, opts ...Option) *CategoryRepository {
	return &CategoryRepository{repo: newRepo(db, dialect, opts...)}
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	const op = "adapter.repository.sqlrepo.CategoryRepository.CreateCategory"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	now := entity.Timestamp()
	rec := categoryRecord{
		ID:          uuid.New(),
		UserID:      c.UserID,
		Name:        c.Name,
		Description: toNullString(c.Description),
		Icon:        c.Icon,
		Color:       c.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.db.NamedExecContext(ctx, insertCategoryQuery, rec); err != nil {
		if r.dialect.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrCategoryExists)
		}
		if r.dialect.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
		}

		return nil, wrapErr(op, "failed to insert into categories table", err)
	}

	return rec.toEntity(), nil
}

func (r *CategoryRepository) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	const op = "adapter.repository.sqlrepo.CategoryRepository.GetCategory"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rec categoryRecord

	if err := r.db.GetContext(ctx, &rec, r.db.Rebind(selectCategoryQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrCategoryNotFound)
		}

		return nil, wrapErr(op, "failed to get row from categories table", err)
	}

	return rec.toEntity(), nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	const op = "adapter.repository.sqlrepo.CategoryRepository.UpdateCategory"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rec categoryRecord

	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(updateCategoryQuery),
			c.Name, toNullString(c.Description), c.Icon, c.Color, entity.Timestamp(), c.ID)
		if err != nil {
			if r.dialect.IsUniqueViolation(err) {
				return entity.ErrCategoryExists
			}
			return err
		}

		ok, err := affectedOne(res)
		if err != nil {
			return err
		}
		if !ok {
			return entity.ErrCategoryNotFound
		}

		return tx.GetContext(ctx, &rec, tx.Rebind(selectCategoryQuery), c.ID)
	})
	if err != nil {
		if errors.Is(err, entity.ErrCategoryNotFound) || errors.Is(err, entity.ErrCategoryExists) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return nil, wrapErr(op, "failed to update categories table row", err)
	}

	return rec.toEntity(), nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	const op = "adapter.repository.sqlrepo.CategoryRepository.DeleteCategory"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(deleteCategoryQuery), id)
	if err != nil {
		return wrapErr(op, "failed to delete from categories table", err)
	}

	ok, err := affectedOne(res)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", op, entity.ErrCategoryNotFound)
	}

	return nil
}

func (r *CategoryRepository) ListCategoriesWithURLCount(ctx context.Context, userID uuid.UUID) ([]entity.CategoryWithCount, error) {
	const op = "adapter.repository.sqlrepo.CategoryRepository.ListCategoriesWithURLCount"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var recs []categoryCountRecord

	if err := r.db.SelectContext(ctx, &recs, r.db.Rebind(selectCategoriesWithCountQuery), userID); err != nil {
		return nil, wrapErr(op, "failed to select from categories table", err)
	}

	res := make([]entity.CategoryWithCount, 0, len(recs))
	for i := range recs {
		res = append(res, entity.CategoryWithCount{
			Category: *recs[i].toEntity(),
			URLCount: recs[i].URLCount,
		})
	}

	return res, nil
}

func (r *CategoryRepository) OwnedCategoryIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	const op = "adapter.repository.sqlrepo.CategoryRepository.OwnedCategoryIDs"

	if len(ids) == 0 {
		return []uuid.UUID{}, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query, args, err := sqlx.In(selectOwnedCategoryIDsQuery, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	owned := make([]uuid.UUID, 0, len(ids))

	if err := r.db.SelectContext(ctx, &owned, r.db.Rebind(query), args...); err != nil {
		return nil, wrapErr(op, "failed to select from categories table", err)
	}

	return owned, nil
}

func (r *CategoryRepository) AttachCategories(ctx context.Context, urlID uuid.UUID, categoryIDs []uuid.UUID) error {
	const op = "adapter.repository.sqlrepo.CategoryRepository.AttachCategories"

	if len(categoryIDs) == 0 {
		return nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		query := tx.Rebind(r.dialect.AttachQuery)

		for _, id := range categoryIDs {
			if _, err := tx.ExecContext(ctx, query, urlID, id); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if r.dialect.IsForeignKeyViolation(err) {
			return fmt.Errorf("%s: %w", op, entity.ErrNotFound)
		}

		return wrapErr(op, "failed to insert into url_categories table", err)
	}

	return nil
}

func (r *CategoryRepository) DetachCategories(ctx context.Context, urlID uuid.UUID, categoryIDs []uuid.UUID) error {
	const op = "adapter.repository.sqlrepo.CategoryRepository.DetachCategories"

	if len(categoryIDs) == 0 {
		return nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query, args, err := sqlx.In(detachCategoriesQuery, urlID, categoryIDs)
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return wrapErr(op, "failed to delete from url_categories table", err)
	}

	return nil
}

func (r *CategoryRepository) ListURLsByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.URL, error) {
	const op = "adapter.repository.sqlrepo.CategoryRepository.ListURLsByCategory"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var recs []urlRecord

	if err := r.db.SelectContext(ctx, &recs, r.db.Rebind(selectURLsByCategoryQuery), categoryID); err != nil {
		return nil, wrapErr(op, "failed to select from urls table", err)
	}

	return toURLEntities(recs), nil
}
