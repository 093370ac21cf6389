//go:build integration

package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vadimbarashkov/shortlinks/internal/adapter/repository/repotest"
	"github.com/vadimbarashkov/shortlinks/internal/config"
	"github.com/vadimbarashkov/shortlinks/pkg/sqldb"
)

func setupMySQL(t testing.TB) config.MySQL {
	t.Helper()

	ctx := context.Background()

	myUser := "test"
	myPassword := "test"
	myDB := "url_shortener"

	myCont, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: "mysql:8.4",
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": myPassword,
				"MYSQL_USER":          myUser,
				"MYSQL_PASSWORD":      myPassword,
				"MYSQL_DATABASE":      myDB,
			},
			ExposedPorts: []string{"3306/tcp"},
			WaitingFor:   wait.ForLog("ready for connections").WithOccurrence(2),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start mysql container: %v", err)
	}
	t.Cleanup(func() {
		if err := myCont.Terminate(ctx); err != nil {
			t.Fatalf("Failed to terminate mysql container: %v", err)
		}
	})

	myHost, err := myCont.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	myPort, err := myCont.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	return config.MySQL{
		User:     myUser,
		Password: myPassword,
		Host:     myHost,
		Port:     myPort.Int(),
		DB:       myDB,
	}
}

func TestRepositories(t *testing.T) {
	cfg := setupMySQL(t)

	if err := sqldb.RunMigrations("file://../../../../migrations/mysql", cfg.MigrationURL()); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	db, err := sqldb.New(context.Background(), sqldb.DriverMySQL, cfg.DSN())
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	suite.Run(t, &repotest.Suite{
		NewRepos: func() repotest.Repos {
			return repotest.Repos{
				URLs:       NewURLRepository(db),
				Categories: NewCategoryRepository(db),
				Users:      NewUserRepository(db),
			}
		},
	})
}
