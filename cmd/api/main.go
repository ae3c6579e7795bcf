package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	identityadapter "pet-donor-connect/internal/adapters/auth/identity"
	geocodeadapter "pet-donor-connect/internal/adapters/geocode"
	pg "pet-donor-connect/internal/adapters/storage/postgres"
	"pet-donor-connect/internal/config"
	"pet-donor-connect/internal/platform/logger"
	"pet-donor-connect/internal/ports/auth"
	"pet-donor-connect/internal/ports/geocode"
	"pet-donor-connect/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("invalid configuration", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	// Postgres (opcional: sin DSN los repos quedan en memoria).
	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres connection failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
	}

	// Geocoder, con cache Redis si hay REDIS_URL.
	var gc geocode.Geocoder
	client, err := geocodeadapter.NewClient(cfg.GeocodeBaseURL, cfg.GeocodeTimeout)
	if err != nil {
		log.Error("invalid geocode base url", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	gc = client
	if cfg.RedisURL != "" {
		cached, err := geocodeadapter.NewCachedGeocoder(context.Background(), cfg.RedisURL, client)
		if err != nil {
			// La cache es una optimización: sin Redis se sigue directo.
			log.Warn("redis unavailable, geocoding without cache", map[string]any{"error": err.Error()})
		} else {
			gc = cached
			defer cached.Close()
		}
	}

	// Verifier real solo con credenciales; si no, modo dev (X-Debug-User-ID).
	var verifier auth.AuthVerifier
	if cfg.IdentityConfigured() {
		idClient, err := identityadapter.NewClient(identityadapter.Config{
			BaseURL: cfg.IdentityBaseURL,
			APIKey:  cfg.IdentityAPIKey,
			Timeout: cfg.IdentityTimeout,
		})
		if err != nil {
			log.Error("invalid identity configuration", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = identityadapter.NewVerifier(idClient)
	} else {
		log.Warn("identity service not configured, running in dev auth mode", nil)
	}

	handler := router.NewRouter(router.Options{
		AuthVerifier:    verifier,
		DB:              db,
		Geocoder:        gc,
		Log:             log,
		DefaultRadiusKm: cfg.DefaultRadiusKm,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr(), "env": cfg.AppEnv})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down", nil)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", map[string]any{"error": err.Error()})
	}
}
