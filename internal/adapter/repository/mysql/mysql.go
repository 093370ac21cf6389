// Package mysql wires the relational repositories to MySQL.
package mysql

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/shortlinks/internal/adapter/repository/sqlrepo"
)

const (
	duplicateEntryErrNumber = 1062
	// Cannot add or update a child row: a foreign key constraint fails.
	noReferencedRowErrNumber = 1452
)

func hasErrNumber(err error, number uint16) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == number
}

func isUniqueViolationError(err error) bool {
	return hasErrNumber(err, duplicateEntryErrNumber)
}

func isForeignKeyViolationError(err error) bool {
	return hasErrNumber(err, noReferencedRowErrNumber)
}

// Dialect returns the MySQL flavour of the shared repositories.
func Dialect() sqlrepo.Dialect {
	return sqlrepo.Dialect{
		Name:                  "mysql",
		IsUniqueViolation:     isUniqueViolationError,
		IsForeignKeyViolation: isForeignKeyViolationError,
		AttachQuery:           `INSERT INTO url_categories (url_id, category_id) VALUES (?, ?) ON DUPLICATE KEY UPDATE url_id = url_id`,
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
