package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/storefront/shop-api/internal/api"
	"github.com/storefront/shop-api/internal/core/service"
	"github.com/storefront/shop-api/internal/pkg/config"
	"github.com/storefront/shop-api/pkg/logger"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 15 * time.Second
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "shop-api",
	})

	if cfg.AdminJWTSecret == "" {
		log.Warn().Msg("ADMIN_JWT_SECRET is empty, admin routes will reject every request")
	}

	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	b, err := openBackends(startCtx, cfg, logger.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage backends")
	}

	users := service.NewUserService(b.users, b.sessions, cfg.BcryptCost, logger.Component("users"))
	products := service.NewProductService(b.products, b.index, logger.Component("catalog"))

	if err := products.RebuildIndex(startCtx); err != nil {
		log.Fatal().Err(err).Msg("failed to rebuild category index")
	}
	if cfg.SeedSampleData {
		if _, err := service.SeedSampleCatalog(startCtx, products); err != nil {
			log.Fatal().Err(err).Msg("failed to seed sample catalog")
		}
	}

	e := api.NewRouter(api.Deps{
		Users:          users,
		Products:       products,
		Health:         b.pingers,
		AdminJWTSecret: cfg.AdminJWTSecret,
		CORSOrigins:    cfg.CORSOrigins,
		Logger:         logger.Component("http"),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Str("storage", cfg.Storage.Driver).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	b.close(shutdownCtx, log)
	log.Info().Msg("server stopped")
}
