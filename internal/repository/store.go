package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

type sqlStore struct {
	db     *sqlx.DB
	logger *logrus.Logger
}

// NewStore returns a Store backed by db. Both postgres and sqlite3 handles are
// supported; queries are rebound to the driver's placeholder style.
func NewStore(db *sqlx.DB, logger *logrus.Logger) Store {
	return &sqlStore{db: db, logger: logger}
}

func (s *sqlStore) Repos() Repositories {
	return newRepositories(s.db)
}

func (s *sqlStore) RunInTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(ctx, newRepositories(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.WithError(err).Error("transaction commit failed")
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func newRepositories(q sqlx.ExtContext) Repositories {
	return Repositories{
		Parties:      &partyRepository{db: q},
		BankAccounts: &bankAccountRepository{db: q},
		Transactions: &transactionRepository{db: q},
		Users:        &userRepository{db: q},
		Companies:    &companyRepository{db: q},
	}
}

// forUpdate returns the row-lock suffix for drivers that support it. SQLite
// serializes writers at the database level, so it needs none.
func forUpdate(q sqlx.ExtContext) string {
	if q.DriverName() == DriverPostgres {
		return " FOR UPDATE"
	}
	return ""
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "unique_violation"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
