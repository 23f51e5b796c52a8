// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/ecocupon/ecocanasta-api/internal/config"
	"github.com/ecocupon/ecocanasta-api/internal/database"
	"github.com/ecocupon/ecocanasta-api/internal/i18n"
	"github.com/ecocupon/ecocanasta-api/internal/knasta"
	"github.com/ecocupon/ecocanasta-api/internal/router"
	"github.com/ecocupon/ecocanasta-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logrus.SetLevel(level)
	}

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close(db)

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	// Make sure the admin panel is reachable on a fresh database
	if err := database.BootstrapAdmin(db, cfg.Admin); err != nil {
		logrus.WithError(err).Fatal("Failed to bootstrap admin account")
	}

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.LocalesPath); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}

	// Pick the comparison-price source
	fetcher := newPriceFetcher(cfg)

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := router.Initialize(db, cfg, fetcher)

	// Scheduled comparison-price refresh, disabled unless configured
	if cfg.Knasta.RefreshCron != "" {
		scheduler := cron.New()
		knastaService := services.NewKnastaService(db, fetcher)

		_, err := scheduler.AddFunc(cfg.Knasta.RefreshCron, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			report, err := knastaService.RefreshAll(ctx)
			if err != nil {
				logrus.WithError(err).Error("Scheduled price refresh failed")
				return
			}
			logrus.WithFields(logrus.Fields{
				"total":   report.Total,
				"updated": report.Updated,
				"failed":  len(report.Failed),
			}).Info("Scheduled price refresh completed")
		})
		if err != nil {
			logrus.WithError(err).Fatal("Invalid KNASTA_REFRESH_CRON expression")
		}

		scheduler.Start()
		defer scheduler.Stop()
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("Server forced to shutdown")
	}

	logrus.Info("Server exited")
}

func newPriceFetcher(cfg *config.Config) knasta.PriceFetcher {
	if cfg.Knasta.Mode == "live" {
		return knasta.NewHTTPFetcher(cfg.Knasta.BaseURL, time.Duration(cfg.Knasta.Timeout)*time.Second)
	}

	logrus.Warn("Using simulated comparison-price source")
	return knasta.NewSimulatedFetcher(cfg.Knasta.BaseURL)
}
