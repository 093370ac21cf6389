// Package app wires the configured storage backend, use cases and HTTP server
// together and runs the server until the context is canceled.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/shortlinks/internal/adapter/repository/memory"
	"github.com/vadimbarashkov/shortlinks/internal/adapter/repository/mysql"
	"github.com/vadimbarashkov/shortlinks/internal/adapter/repository/postgres"
	"github.com/vadimbarashkov/shortlinks/internal/adapter/repository/sqlrepo"
	"github.com/vadimbarashkov/shortlinks/internal/config"
	"github.com/vadimbarashkov/shortlinks/internal/shortcode"
	"github.com/vadimbarashkov/shortlinks/internal/token"
	"github.com/vadimbarashkov/shortlinks/internal/usecase"
	"github.com/vadimbarashkov/shortlinks/pkg/sqldb"
	"golang.org/x/sync/errgroup"

	delivery "github.com/vadimbarashkov/shortlinks/internal/adapter/delivery/http"
)

const shutdownTimeout = 10 * time.Second

type useCases struct {
	urls       *usecase.URLUseCase
	categories *usecase.CategoryUseCase
	auth       *usecase.AuthUseCase
}

// NewLogger returns the service logger: JSON in prod, text otherwise.
func NewLogger(cfg *config.Config) *httplog.Logger {
	level := slog.LevelDebug
	if cfg.Env == config.EnvProd {
		level = slog.LevelInfo
	}

	return httplog.NewLogger("url-shortener", httplog.Options{
		JSON:     cfg.Env == config.EnvProd,
		LogLevel: level,
		Concise:  cfg.Env != config.EnvProd,
		Tags: map[string]string{
			"env": cfg.Env,
		},
	})
}

func Run(ctx context.Context, cfg *config.Config, logger *httplog.Logger) error {
	const op = "app.Run"

	handler, cleanup, err := newHandler(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer cleanup()

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        handler,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", slog.String("addr", server.Addr))

		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}

// newHandler builds the storage backend, the use cases and the router for cfg.
// cleanup releases the storage connection.
func newHandler(ctx context.Context, cfg *config.Config, logger *httplog.Logger) (http.Handler, func(), error) {
	codeGen, err := shortcode.New(cfg.ShortCodeLength)
	if err != nil {
		return nil, nil, err
	}

	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	cleanup := func() {}

	var uc useCases

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		uc = newMemoryUseCases(codeGen, tokens)
	case config.StoragePostgres, config.StorageMySQL:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() {
			if err := db.Close(); err != nil {
				logger.Error("failed to close database", slog.Any("err", err))
			}
		}

		dialect := postgres.Dialect()
		if cfg.Storage.Driver == config.StorageMySQL {
			dialect = mysql.Dialect()
		}

		uc = newSQLUseCases(db, dialect, cfg.Storage.Timeout, codeGen, tokens)
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	logger.Info("storage initialized", slog.String("driver", cfg.Storage.Driver))

	return delivery.NewRouter(logger, uc.urls, uc.categories, uc.auth, tokens), cleanup, nil
}

// openDB connects to the configured relational backend and migrates its schema.
func openDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	var driver, dsn, migrationURL string
	var pool config.Pool

	switch cfg.Storage.Driver {
	case config.StorageMySQL:
		driver, dsn, migrationURL, pool = sqldb.DriverMySQL, cfg.MySQL.DSN(), cfg.MySQL.MigrationURL(), cfg.MySQL.Pool
	default:
		driver, dsn, migrationURL, pool = sqldb.DriverPostgres, cfg.Postgres.DSN(), cfg.Postgres.DSN(), cfg.Postgres.Pool
	}

	db, err := sqldb.New(
		ctx,
		driver,
		dsn,
		sqldb.WithConnMaxIdleTime(pool.ConnMaxIdleTime),
		sqldb.WithConnMaxLifetime(pool.ConnMaxLifetime),
		sqldb.WithMaxIdleConns(pool.MaxIdleConns),
		sqldb.WithMaxOpenConns(pool.MaxOpenConns),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := sqldb.RunMigrations(cfg.Storage.MigrationsSource(), migrationURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func newMemoryUseCases(codeGen *shortcode.Generator, tokens *token.Manager) useCases {
	s := memory.NewStore()
	urlRepo := memory.NewURLRepository(s)

	return useCases{
		urls:       usecase.NewURLUseCase(urlRepo, codeGen),
		categories: usecase.NewCategoryUseCase(memory.NewCategoryRepository(s), urlRepo),
		auth:       usecase.NewAuthUseCase(memory.NewUserRepository(s), tokens),
	}
}

func newSQLUseCases(
	db *sqlx.DB,
	dialect sqlrepo.Dialect,
	timeout time.Duration,
	codeGen *shortcode.Generator,
	tokens *token.Manager,
) useCases {
	urlRepo := sqlrepo.NewURLRepository(db, dialect, sqlrepo.WithTimeout(timeout))

	return useCases{
		urls:       usecase.NewURLUseCase(urlRepo, codeGen),
		categories: usecase.NewCategoryUseCase(sqlrepo.NewCategoryRepository(db, dialect, sqlrepo.WithTimeout(timeout)), urlRepo),
		auth:       usecase.NewAuthUseCase(sqlrepo.NewUserRepository(db, dialect, sqlrepo.WithTimeout(timeout)), tokens),
	}
}
