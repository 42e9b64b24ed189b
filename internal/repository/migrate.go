package repository

import (
	"context"
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate creates the schema for db's driver if it does not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	name := "migrations/postgres.sql"
	if db.DriverName() == DriverSQLite {
		name = "migrations/sqlite.sql"
	}

	schema, err := migrations.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("apply %s: %w", name, err)
	}
	return nil
}
