// Package postgres wires the relational repositories to PostgreSQL through pgx.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/shortlinks/internal/adapter/repository/sqlrepo"
)

const (
	uniqueViolationErrCode     = "23505"
	foreignKeyViolationErrCode = "23503"
)

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == code
}

func isUniqueViolationError(err error) bool {
	return hasSQLState(err, uniqueViolationErrCode)
}

func isForeignKeyViolationError(err error) bool {
	return hasSQLState(err, foreignKeyViolationErrCode)
}

// Dialect returns the PostgreSQL flavour of the shared repositories.
func Dialect() sqlrepo.Dialect {
	return sqlrepo.Dialect{
		Name:                  "postgres",
		IsUniqueViolation:     isUniqueViolationError,
		IsForeignKeyViolation: isForeignKeyViolationError,
		AttachQuery:           `INSERT INTO url_categories (url_id, category_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
	}
}

func NewURLRepository(db *sqlx.DB, opts ...sqlrepo.Option) *sqlrepo.URLRepository {
	return sqlrepo.NewURLRepository(db, Dialect(), opts...)
}

func NewCategoryRepository(db *sqlx.DB, opts ...sqlrepo.Option) *sqlrepo.CategoryRepository {
	return sqlrepo.NewCategoryRepository(db, Dialect(), opts...)
}

func NewUserRepository(db *sqlx.DB, opts ...sqlrepo.Option) *sqlrepo.UserRepository {
	return sqlrepo.NewUserRepository(db, Dialect(), opts...)
}
