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
	urlColumns = `id, short_code, original_url, user_id, access_count, created_at, updated_at`

	insertURLQuery = `INSERT INTO urls (id, short_code, original_url, user_id, access_count, created_at, updated_at)
		VALUES (:id, :short_code, :original_url, :user_id, :access_count, :created_at, :updated_at)`
	selectURLByCodeQuery = `SELECT ` + urlColumns + ` FROM urls WHERE short_code = ?`
	updateURLQuery       = `UPDATE urls SET original_url = ?, updated_at = ? WHERE short_code = ?`
	incrementURLQuery    = `UPDATE urls SET access_count = access_count + 1 WHERE short_code = ?`
	deleteURLQuery       = `DELETE FROM urls WHERE short_code = ?`
	selectURLsByOwner    = `SELECT ` + urlColumns + ` FROM urls WHERE user_id = ? ORDER BY created_at DESC, short_code`
)

type urlRecord struct {
	ID          uuid.UUID     `db:"id"`
	ShortCode   string        `db:"short_code"`
	OriginalURL string        `db:"original_url"`
	UserID      uuid.NullUUID `db:"user_id"`
	AccessCount int64         `db:"access_count"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

func (u *urlRecord) toEntity() *entity.URL {
	url := &entity.URL{
		ID:          u.ID,
		ShortCode:   u.ShortCode,
		OriginalURL: u.OriginalURL,
		URLStats: entity.URLStats{
			AccessCount: u.AccessCount,
		},
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
	if u.UserID.Valid {
		id := u.UserID.UUID
		url.UserID = &id
	}
	return url
}

func toURLEntities(recs []urlRecord) []entity.URL {
	urls := make([]entity.URL, 0, len(recs))
	for i := range recs {
		urls = append(urls, *recs[i].toEntity())
	}
	return urls
}

func toNullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

type URLRepository struct {
	repo
}

func NewURLRepository(db *sqlx.DB, dialect Dialect, opts ...Option) *URLRepository {
	return &URLRepository{repo: newRepo(db, dialect, opts...)}
}

func (r *URLRepository) CreateURL(ctx context.Context, url *entity.URL) (*entity.URL, error) {
	const op = "adapter.repository.sqlrepo.URLRepository.CreateURL"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	now := entity.Timestamp()
	rec := urlRecord{
		ID:          uuid.New(),
		ShortCode:   url.ShortCode,
		OriginalURL: url.OriginalURL,
		UserID:      toNullUUID(url.UserID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.db.NamedExecContext(ctx, insertURLQuery, rec); err != nil {
		if r.dialect.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrShortCodeExists)
		}
		if r.dialect.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
		}

		return nil, wrapErr(op, "failed to insert into urls table", err)
	}

	return rec.toEntity(), nil
}

func (r *URLRepository) GetURLByCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "adapter.repository.sqlrepo.URLRepository.GetURLByCode"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rec urlRecord

	if err := r.db.GetContext(ctx, &rec, r.db.Rebind(selectURLByCodeQuery), shortCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
		}

		return nil, wrapErr(op, "failed to get row from urls table", err)
	}

	return rec.toEntity(), nil
}

func (r *URLRepository) UpdateURL(ctx context.Context, shortCode, originalURL string) (*entity.URL, error) {
	const op = "adapter.repository.sqlrepo.URLRepository.UpdateURL"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rec urlRecord

	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(updateURLQuery), originalURL, entity.Timestamp(), shortCode)
		if err != nil {
			return err
		}

		ok, err := affectedOne(res)
		if err != nil {
			return err
		}
		if !ok {
			return entity.ErrURLNotFound
		}

		return tx.GetContext(ctx, &rec, tx.Rebind(selectURLByCodeQuery), shortCode)
	})
	if err != nil {
		if errors.Is(err, entity.ErrURLNotFound) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return nil, wrapErr(op, "failed to update urls table row", err)
	}

	return rec.toEntity(), nil
}

func (r *URLRepository) DeleteURL(ctx context.Context, shortCode string) error {
	const op = "adapter.repository.sqlrepo.URLRepository.DeleteURL"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(deleteURLQuery), shortCode)
	if err != nil {
		return wrapErr(op, "failed to delete from urls table", err)
	}

	ok, err := affectedOne(res)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	return nil
}

// IncrementAccessCount bumps the counter with a single UPDATE and reads the row
// back in the same transaction, while the row lock is still held.
func (r *URLRepository) IncrementAccessCount(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "adapter.repository.sqlrepo.URLRepository.IncrementAccessCount"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rec urlRecord

	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(incrementURLQuery), shortCode)
		if err != nil {
			return err
		}

		ok, err := affectedOne(res)
		if err != nil {
			return err
		}
		if !ok {
			return entity.ErrURLNotFound
		}

		return tx.GetContext(ctx, &rec, tx.Rebind(selectURLByCodeQuery), shortCode)
	})
	if err != nil {
		if errors.Is(err, entity.ErrURLNotFound) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return nil, wrapErr(op, "failed to increment access count", err)
	}

	return rec.toEntity(), nil
}

func (r *URLRepository) ListURLsByOwner(ctx context.Context, userID uuid.UUID) ([]entity.URL, error) {
	const op = "adapter.repository.sqlrepo.URLRepository.ListURLsByOwner"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var recs []urlRecord

	if err := r.db.SelectContext(ctx, &recs, r.db.Rebind(selectURLsByOwner), userID); err != nil {
		return nil, wrapErr(op, "failed to select from urls table", err)
	}

	return toURLEntities(recs), nil
}
