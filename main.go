package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plantreport/config"
	"plantreport/database"
	"plantreport/loader"
)

func main() {
	logger := config.GetLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf("Failed to load config file: %v. Using defaults.", err)
	}

	logger.Infof("Connecting to database (%s)...", cfg.DBDriver)
	dbConn, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()

	if err := loader.InitDatabase(dbConn, "stock_seed.csv"); err != nil {
		logger.Fatalf("Database initialization failed: %v", err)
	}
	if err := loader.SeedAdmin(dbConn, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Fatalf("Admin seeding failed: %v", err)
	}
	logger.Info("Database initialization complete.")

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           NewRouter(dbConn, nil),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", cfg.ListenAddr)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server start error: %v", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("graceful shutdown failed: %v", err)
		}
	}
}
