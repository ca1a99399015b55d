// Package main is the entry point for the Lux Rentals booking API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/mgirard/lux-rentals/api/internal/catalog"
	"github.com/mgirard/lux-rentals/api/internal/config"
	"github.com/mgirard/lux-rentals/api/internal/domain"
	"github.com/mgirard/lux-rentals/api/internal/handler"
	"github.com/mgirard/lux-rentals/api/internal/middleware"
	"github.com/mgirard/lux-rentals/api/internal/service"
	"github.com/mgirard/lux-rentals/api/internal/store"
	"github.com/mgirard/lux-rentals/api/spec"
)

// maxBodyBytes caps incoming request bodies; the largest legitimate payload
// (a booking create) is well under 1 KiB.
const maxBodyBytes = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Blob store -------------------------------------------------------
	// Redis holds the snapshot blobs (bookings, users) and session records.
	blob, err := store.NewRedisBlobStore(context.Background(), cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer blob.Close()
	slog.Info("redis connection established", "addr", cfg.RedisAddr)

	// --- Stores -----------------------------------------------------------
	ledger := store.NewBookingLedger(blob)
	if err := ledger.Load(context.Background()); err != nil {
		slog.Error("failed to load booking ledger", "error", err)
		os.Exit(1)
	}
	users := store.NewUserDirectory(blob)
	if err := users.Load(context.Background()); err != nil {
		slog.Error("failed to load user directory", "error", err)
		os.Exit(1)
	}
	if err := seedAdmin(context.Background(), users, cfg); err != nil {
		slog.Error("failed to seed administrator account", "error", err)
		os.Exit(1)
	}
	sessions := store.NewSessions(blob)

	// --- Catalog ----------------------------------------------------------
	cat, err := catalog.Load()
	if err != nil {
		slog.Error("failed to load vehicle catalog", "error", err)
		os.Exit(1)
	}

	// --- Services ---------------------------------------------------------
	bookingSvc := service.NewBookingService(ledger, users, cat)
	authSvc := service.NewAuthService(users, sessions, cfg.JWTSecret, cfg.SessionTTL)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit → token authenticator.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))
	r.Use(middleware.NewAuthenticator(authSvc))

	srvHandler := handler.NewServer(bookingSvc, authSvc, cat, spec.OpenAPI)
	r.Mount("/", srvHandler.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// seedAdmin creates the administrator account on first boot, when the user
// directory snapshot is empty. Seeding is skipped when ADMIN_PASSWORD is not
// set; registration then remains the only way to create accounts.
func seedAdmin(ctx context.Context, users *store.UserDirectory, cfg config.Config) error {
	if users.Count() > 0 || cfg.AdminPassword == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin, err := users.Create(ctx, domain.Account{
		Name:         "Admin",
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		JoinDate:     time.Now().UTC().Truncate(24 * time.Hour),
	})
	if err != nil {
		return err
	}

	slog.Info("seeded administrator account", "id", admin.ID, "email", admin.Email)
	return nil
}
