// Package app wires configuration, storage and services for the binaries.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/segyhp/lending-ledger/internal/cache"
	"github.com/segyhp/lending-ledger/internal/config"
	"github.com/segyhp/lending-ledger/internal/documents"
	"github.com/segyhp/lending-ledger/internal/repository"
	"github.com/segyhp/lending-ledger/internal/service"
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
	DB     *sqlx.DB
	// Redis is nil when REDIS_HOST is empty.
	Redis *redis.Client

	Store      repository.Store
	Auth       *service.AuthService
	Ledger     *service.LedgerService
	Parties    *service.PartyService
	Banks      *service.BankService
	AccrualJob *service.AccrualJob
}

// New connects to the database, applies the schema and builds the services.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*App, error) {
	db, err := initDB(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	if err := repository.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	a := &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Store:  repository.NewStore(db, logger),
	}

	lock := cache.NewNoopLock()
	if cfg.Redis.Host != "" {
		a.Redis = initRedis(cfg)
		lock = cache.NewRedisLock(a.Redis, cfg.Redis.LockTTL)
	} else {
		logger.Warn("REDIS_HOST is empty, batch accrual runs without a distributed lock")
	}

	docs := documents.NewStore(afero.NewOsFs(), cfg.Storage.UploadDir, logger)

	a.Auth = service.NewAuthService(a.Store, cfg.Auth.JWTSecret, logger)
	a.Ledger = service.NewLedgerService(a.Store, lock, logger)
	a.Parties = service.NewPartyService(a.Store, a.Auth, docs, logger)
	a.Banks = service.NewBankService(a.Store, logger)
	a.AccrualJob = service.NewAccrualJob(a.Store, a.Ledger, logger)

	return a, nil
}

// RedisClient returns the redis client as an interface, nil when disabled.
func (a *App) RedisClient() redis.UniversalClient {
	if a.Redis == nil {
		return nil
	}
	return a.Redis
}

func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.WithError(err).Warn("Failed to close redis client")
		}
	}
	if err := a.DB.Close(); err != nil {
		a.Logger.WithError(err).Warn("Failed to close database")
	}
}

func initDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// SQLite allows one writer at a time.
	if cfg.Database.Driver == repository.DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
