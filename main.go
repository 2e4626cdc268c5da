package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"todo-be/internal/cache"
	"todo-be/internal/config"
	"todo-be/internal/database"
	"todo-be/internal/entities"
	"todo-be/internal/jwt"
	"todo-be/internal/logging"
	"todo-be/internal/repository"
	"todo-be/internal/server"
	"todo-be/internal/service"
	"todo-be/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.IsProduction())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	todoRepo, userRepo, closeStore, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Redis is optional; the todo service runs uncached without it.
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, continuing without cache", "error", err)
			cacheClient = nil
		} else {
			logger.Info("connected to redis cache")
			defer cacheClient.Close()
		}
	}

	jwtService := jwt.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	services := server.Services{
		Auth: service.NewAuthService(userRepo, jwtService),
		Todo: service.NewTodoService(todoRepo, cacheClient, cfg.CacheTTL, logger),
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      server.NewRouter(ctx, cfg, services, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Env, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}

// openRepositories builds the repositories for the configured storage driver
func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.TodoRepository, repository.UserRepository, func(), error) {
	if cfg.StorageDriver == config.DriverPostgres {
		db, err := database.NewConnection(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.RunMigrations(ctx, db, logger); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return repository.NewPGTodoRepository(db), repository.NewPGUserRepository(db), closer(db), nil
	}

	todoStore, err := storage.NewJSONStore[entities.Todo](
		filepath.Join(cfg.StorageDir, "todos.json"), "todos",
		storage.WithSchema("todo.json", storage.TodoSchema),
	)
	if err != nil {
		return nil, nil, nil, err
	}
	userStore, err := storage.NewJSONStore[entities.User](
		filepath.Join(cfg.StorageDir, "auth.json"), "users",
		storage.WithSchema("user.json", storage.UserSchema),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	logger.Info("using file storage", "dir", cfg.StorageDir)
	return repository.NewTodoRepository(todoStore), repository.NewUserRepository(userStore), func() {}, nil
}

func closer(db *sql.DB) func() {
	return func() { db.Close() }
}
