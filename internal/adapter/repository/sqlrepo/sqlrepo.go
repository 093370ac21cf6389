// Package sqlrepo implements the URL, category and user repositories for
// relational databases accessed through sqlx. Queries are written once with `?`
// placeholders and rebound for the driver; engine differences are supplied by a
// Dialect.
package sqlrepo

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

const defaultTimeout = 3 * time.Second

// Dialect describes what differs between relational engines.
type Dialect struct {
	// Name identifies the engine in logs and errors.
	Name string
	// IsUniqueViolation reports whether err is a unique constraint violation.
	IsUniqueViolation func(err error) bool
	// IsForeignKeyViolation reports whether err is a foreign key violation.
	IsForeignKeyViolation func(err error) bool
	// AttachQuery inserts a (url_id, category_id) pair, skipping existing pairs.
	AttachQuery string
}

type options struct {
	timeout time.Duration
}

type Option func(*options)

// WithTimeout bounds every repository operation. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

type repo struct {
	db      *sqlx.DB
	dialect Dialect
	timeout time.Duration
}

func newRepo(db *sqlx.DB, dialect Dialect, opts ...Option) repo {
	o := options{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	return repo{
		db:      db,
		dialect: dialect,
		timeout: o.timeout,
	}
}

func (r *repo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// inTx runs fn in a transaction, committing when fn succeeds.
func (r *repo) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// wrapErr attaches op to err, marking connectivity failures as ErrStorageUnavailable.
func wrapErr(op, msg string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, entity.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %s: %w", op, msg, err)
}

func affectedOne(res sql.Result) (bool, error) {
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get number of affected rows: %w", err)
	}
	return rowsAffected > 0, nil
}
