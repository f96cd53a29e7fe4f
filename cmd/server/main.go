package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/api"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/auth"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/config"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/dedupe"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/notify"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/pkg/logger"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/repository/postgres"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/service/application"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/service/contact"
)

// checkPortAvailable verifies the target port is not already in use, so a
// stale process never silently shadows this server.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %w", port, addr, err)
	}
	ln.Close()
	return nil
}

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync() //nolint:errcheck

	if err := checkPortAvailable(cfg.Server.Host, cfg.Server.Port); err != nil {
		log.Fatal("pre-flight check failed", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		cancel()
		log.Fatal("failed to ping database", zap.Error(err))
	}
	cancel()
	log.Info("connected to database")

	// Redis is optional; without it duplicate checks fall back to the
	// database window query.
	var rdb *redis.Client
	var window application.DuplicateWindow
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn("redis unavailable, using database-only duplicate checks", zap.Error(err))
		} else {
			window = dedupe.NewWindow(rdb)
			log.Info("redis duplicate window enabled", zap.String("addr", cfg.Redis.Addr))
		}
	}

	var notifier *notify.Notifier
	if cfg.SES.Enabled && cfg.SES.FromEmail != "" {
		sender := notify.NewSESSender(cfg.SES.Region, cfg.SES.AccessKey, cfg.SES.SecretKey)
		notifier, err = notify.New(sender, cfg.SES.FromEmail, cfg.SES.AdminEmail, log)
		if err != nil {
			log.Fatal("failed to initialize notifier", zap.Error(err))
		}
		defer notifier.Close()
		log.Info("email notifications enabled", zap.String("region", cfg.SES.Region))
	} else {
		log.Info("email notifications disabled")
	}

	store := auth.NewMemoryStore()
	if err := store.SeedDemoUsers(cfg.Auth.AdminPassword); err != nil {
		log.Fatal("failed to seed admin users", zap.Error(err))
	}
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	apps := application.NewService(postgres.NewApplicationRepo(db), window, log)
	contacts := contact.NewService(postgres.NewContactRepo(db), window, log)

	handlers := api.NewHandlers(apps, contacts, store, tokens, notifier, db, rdb, log)
	router := api.NewRouter(handlers, api.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimiter:    api.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, log),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
