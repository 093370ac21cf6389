package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vadimbarashkov/shortlinks/internal/app"
	"github.com/vadimbarashkov/shortlinks/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to load .env file", slog.Any("err", err))
		os.Exit(1)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if err := app.Run(ctx, cfg, logger); err != nil {
		logger.Error("application stopped", slog.Any("err", err))
		os.Exit(1)
	}
}
