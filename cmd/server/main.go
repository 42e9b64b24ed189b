package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-ledger/internal/app"
	"github.com/segyhp/lending-ledger/internal/config"
	"github.com/segyhp/lending-ledger/internal/handler"
	"github.com/segyhp/lending-ledger/pkg/logger"
	"github.com/segyhp/lending-ledger/pkg/response"
)

func main() {
	// Optional .env for local runs
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.SetReportCaller(cfg.IsDevelopment())

	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize application")
	}
	defer a.Close()

	// Setup routes
	router := setupRoutes(a)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server exited")
}

func setupRoutes(a *app.App) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = response.NotFoundHandler()
	router.Use(response.CORSMiddleware)
	router.Use(response.LoggingMiddleware(a.Logger))

	// Health check
	handler.NewHealthHandler(a.DB, a.RedisClient(), a.Config.Health.Timeout).RegisterRoutes(router)

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(handler.AuthMiddleware(a.Auth))

	handler.NewPartyHandler(a.Parties, a.Ledger).RegisterRoutes(api)
	handler.NewBankHandler(a.Banks).RegisterRoutes(api)

	return router
}
