package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/AbhishekS200607/quickaid/internal/config"
	"github.com/AbhishekS200607/quickaid/internal/handler"
	"github.com/AbhishekS200607/quickaid/internal/logging"
	"github.com/AbhishekS200607/quickaid/internal/middleware"
	"github.com/AbhishekS200607/quickaid/internal/service"
	"github.com/AbhishekS200607/quickaid/internal/utils"

	"github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logging.Log.WithError(err).Fatal("failed to load config")
	}
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logging.Log.WithError(err).Fatal("invalid configuration")
	}

	// --- Store ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := config.OpenStore(ctx, cfg)
	if err != nil {
		logging.Log.WithError(err).WithField("driver", cfg.StoreDriver).Fatal("failed to open store")
	}
	defer store.Close()

	// --- Services ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpiration)
	contactService := service.NewContactService(store.Contacts)
	authService := service.NewAuthService(cfg.AdminPasswordHash, jwtUtil)

	// --- Router ---
	router, err := handler.NewRouter(handler.RouterDeps{
		Contacts:       contactService,
		Auth:           authService,
		JWT:            jwtUtil,
		AllowedOrigins: cfg.AllowedOrigins,
		TrustedProxies: cfg.TrustedProxies,
		SubmitLimiter:  middleware.NewRateLimiter(cfg.SubmitRateLimit, cfg.RateLimitWindow, "Too many submissions. Please try again later."),
		LoginLimiter:   middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.RateLimitWindow, "Too many login attempts. Please try again later."),
		AdminLimiter:   middleware.NewRateLimiter(cfg.AdminRateLimit, cfg.RateLimitWindow, "Too many admin requests. Please try again later."),
		StaticDir:      cfg.StaticDir,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	})
	if err != nil {
		logging.Log.WithError(err).Fatal("failed to build router")
	}

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Log.WithFields(logrus.Fields{"port": cfg.ServerPort, "store": cfg.StoreDriver}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Log.WithError(err).Fatal("listen failed")
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	logging.Log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Log.WithError(err).Fatal("server forced to shutdown")
	}

	logging.Log.Info("server exiting")
}
