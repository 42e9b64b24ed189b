package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-ledger/internal/app"
	"github.com/segyhp/lending-ledger/internal/config"
	"github.com/segyhp/lending-ledger/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.SetReportCaller(cfg.IsDevelopment())
	log.Info("Starting accrual scheduler...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize application")
	}
	defer a.Close()

	// Initialize cron scheduler
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(cfg.SchedulerLocation()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	if err := setupCronJobs(ctx, c, a); err != nil {
		log.WithError(err).Fatal("Failed to schedule jobs")
	}

	c.Start()
	log.WithField("spec", cfg.Scheduler.Spec).Info("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down scheduler...")
	cancel()
	<-c.Stop().Done()
	log.Info("Scheduler stopped")
}

func setupCronJobs(ctx context.Context, c *cron.Cron, a *app.App) error {
	_, err := c.AddFunc(a.Config.Scheduler.Spec, func() {
		start := time.Now()
		a.Logger.Info("Running scheduled interest accrual...")

		if err := a.AccrualJob.Run(ctx); err != nil {
			a.Logger.WithError(err).Error("Scheduled interest accrual finished with errors")
			return
		}

		a.Logger.WithField("duration", time.Since(start).String()).Info("Scheduled interest accrual finished")
	})
	return err
}
