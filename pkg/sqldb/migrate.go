package sqldb

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"

	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies the migrations found at sourceURL to the database at databaseURL.
// The scheme of databaseURL (postgres://, mysql://) selects the migrate driver.
func RunMigrations(sourceURL, databaseURL string) error {
	const op = "sqldb.RunMigrations"

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("%s: failed to initialize migrations: %w", op, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	return nil
}
