package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lunch-voting-api/config"
	"lunch-voting-api/guard"
	"lunch-voting-api/handlers"
	"lunch-voting-api/logging"
	"lunch-voting-api/middleware"
	"lunch-voting-api/routes"
	"lunch-voting-api/storage"
	"lunch-voting-api/store"
	"lunch-voting-api/voting"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return err
	}

	logger := logging.New(cfg.App.LogLevel, cfg.App.LogFormat)
	slog.SetDefault(logger)
	gin.SetMode(cfg.App.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.OpenDB(cfg.DB)
	if err != nil {
		return err
	}
	if err := config.Migrate(db); err != nil {
		return err
	}
	logger.Info("database connected and migrated", slog.String("driver", cfg.DB.Driver))

	clock, err := buildClock(cfg)
	if err != nil {
		return err
	}

	files, mediaRoot, err := buildFileStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	opts := []voting.Option{
		voting.WithLogger(logger),
		voting.WithMaxUploadBytes(cfg.Storage.MaxUploadBytes),
	}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, relying on database constraints only", slog.String("error", err.Error()))
		}
		opts = append(opts, voting.WithGuard(guard.NewRedisGuard(rdb, cfg.Redis.GuardTTL)))
	}

	st := store.New(db)
	svc := voting.NewService(st, st, files, clock, opts...)
	tokens := middleware.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		created, err := store.EnsureAdmin(ctx, db, cfg.Admin.Email, cfg.Admin.Username, cfg.Admin.Password)
		if err != nil {
			return err
		}
		if created {
			logger.Info("admin account created", slog.String("email", cfg.Admin.Email))
		}
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.CORS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Lunch Voting API",
			"docs":    "/api/state-machine/",
			"health":  "/health",
		})
	})

	routes.SetupRoutes(r, handlers.New(db, svc, tokens, logger), tokens, routes.Options{
		MediaRoot: mediaRoot,
		MediaPath: cfg.Storage.PublicPath,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr), slog.String("today", svc.Today()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func buildClock(cfg *config.Config) (voting.Clock, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	day, pinned, err := cfg.ReferenceDate()
	if err != nil {
		return nil, err
	}
	if pinned {
		return voting.PinnedDateClock(day, loc), nil
	}
	return voting.SystemClock(loc), nil
}

// buildFileStore returns the configured store and, for the local backend,
// the directory to serve.
func buildFileStore(ctx context.Context, cfg config.StorageConfig) (voting.FileStore, string, error) {
	switch cfg.Backend {
	case "s3":
		s, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:      cfg.Bucket,
			Endpoint:    cfg.Endpoint,
			AccountID:   cfg.AccountID,
			Region:      cfg.Region,
			AccessKeyID: cfg.AccessKeyID,
			SecretKey:   cfg.SecretKey,
			PublicURL:   cfg.PublicURL,
		})
		if err != nil {
			return nil, "", err
		}
		return s, "", nil
	default:
		s, err := storage.NewLocalStore(cfg.LocalDir, cfg.PublicPath)
		if err != nil {
			return nil, "", err
		}
		return s, s.Root(), nil
	}
}
