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
	userColumns = `id, email, password_hash, created_at, updated_at`

	insertUserQuery = `INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES (:id, :email, :password_hash, :created_at, :updated_at)`
	selectUserByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	selectUserByIDQuery    = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	deleteUserQuery        = `DELETE FROM users WHERE id = ?`
)

type userRecord struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *userRecord) toEntity() *entity.User {
	return &entity.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	}
}

type UserRepository struct {
	repo
}

func NewUserRepository(db *sqlx.DB, dialect Dialect, opts ...Option) *UserRepository {
	return &UserRepository{repo: newRepo(db, dialect, opts...)}
}

func (r *UserRepository) CreateUser(ctx context.Context, email, passwordHash string) (*entity.User, error) {
	const op = "adapter.repository.sqlrepo.UserRepository.CreateUser"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	now := entity.Timestamp()
	rec := userRecord{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := r.db.NamedExecContext(ctx, insertUserQuery, rec); err != nil {
		if r.dialect.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrEmailExists)
		}

		return nil, wrapErr(op, "failed to insert into users table", err)
	}

	return rec.toEntity(), nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	const op = "adapter.repository.sqlrepo.UserRepository.GetUserByEmail"

	return r.getUser(ctx, op, selectUserByEmailQuery, email)
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	const op = "adapter.repository.sqlrepo.UserRepository.GetUserByID"

	return r.getUser(ctx, op, selectUserByIDQuery, id)
}

func (r *UserRepository) getUser(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rec userRecord

	if err := r.db.GetContext(ctx, &rec, r.db.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
		}

		return nil, wrapErr(op, "failed to get row from users table", err)
	}

	return rec.toEntity(), nil
}

// DeleteUser removes the user. The schema nulls urls.user_id and cascades to categories.
func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	const op = "adapter.repository.sqlrepo.UserRepository.DeleteUser"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(deleteUserQuery), id)
	if err != nil {
		return wrapErr(op, "failed to delete from users table", err)
	}

	ok, err := affectedOne(res)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
	}

	return nil
}
