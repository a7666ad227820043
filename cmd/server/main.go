package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wealthpulse/wealthpulse/internal/adapter/api"
	"github.com/wealthpulse/wealthpulse/internal/adapter/render"
	"github.com/wealthpulse/wealthpulse/internal/adapter/repository/postgres"
	"github.com/wealthpulse/wealthpulse/internal/config"
	"github.com/wealthpulse/wealthpulse/internal/usecase/ingest"
	"github.com/wealthpulse/wealthpulse/internal/usecase/timeseries"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Setup database and apply migrations
	db, err := postgres.NewDB(cfg.Database.ConnStr)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize repositories
	cryptoRepo := postgres.NewCryptoSampleRepository(db)
	financeRepo := postgres.NewFinanceStatementRepository(db)

	// Initialize services (use cases)
	renderer := render.NewRenderer()
	seriesService := timeseries.NewSeriesService(cryptoRepo, financeRepo, renderer, logger)
	ingestService := ingest.NewIngestService(cryptoRepo, financeRepo, logger)

	// Start HTTP server
	apiServer := api.NewServer(seriesService, ingestService, logger)
	router := apiServer.Router(cfg.APIToken, cfg.CORS.AllowedOrigins)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("HTTP server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to serve: %v", err)
		}
	}()

	waitForShutdown(server, logger)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *http.Server, logger *logrus.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Infof("Received signal: %v. Shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("HTTP server stopped")
}
