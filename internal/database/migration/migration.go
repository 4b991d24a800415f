package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"customerlib/internal/database"
)

type migrationStep struct {
	Name string
	SQL  string
}

var postgresSteps = []migrationStep{
	{
		Name: "create_table_customers",
		SQL: `CREATE TABLE IF NOT EXISTS customers (
  customer_id            BIGSERIAL      PRIMARY KEY,
  first_name             TEXT           NOT NULL,
  last_name              TEXT           NOT NULL,
  phone_number           TEXT           NOT NULL DEFAULT '',
  email                  TEXT           NOT NULL DEFAULT '',
  total_purchases_amount NUMERIC        NOT NULL DEFAULT 0
);`,
	},
	{
		Name: "create_index_customers_email",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_customers_email ON customers (email);`,
	},
}

// Amounts are kept as text on SQLite; NUMERIC affinity would coerce them to REAL.
var sqliteSteps = []migrationStep{
	{
		Name: "create_table_customers",
		SQL: `CREATE TABLE IF NOT EXISTS customers (
  customer_id            INTEGER PRIMARY KEY AUTOINCREMENT,
  first_name             TEXT    NOT NULL,
  last_name              TEXT    NOT NULL,
  phone_number           TEXT    NOT NULL DEFAULT '',
  email                  TEXT    NOT NULL DEFAULT '',
  total_purchases_amount TEXT    NOT NULL DEFAULT '0'
);`,
	},
	{
		Name: "create_index_customers_email",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_customers_email ON customers (email);`,
	},
}

func stepsFor(d database.Dialect) ([]migrationStep, string, error) {
	switch d {
	case database.DialectPostgres:
		return postgresSteps, "SELECT to_regclass('public.customers') IS NOT NULL", nil
	case database.DialectSQLite:
		return sqliteSteps, "SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'customers')", nil
	default:
		return nil, "", fmt.Errorf("no migrations for dialect %q", d)
	}
}

// EnsureMigrated checks if the 'customers' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, dialect database.Dialect, log *zap.Logger) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("dialect", string(dialect)))

	steps, sentinel, err := stepsFor(dialect)
	if err != nil {
		return err
	}

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	if err := db.QueryRowContext(ctx, sentinel).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("detail", "schema already exists, skipping migration"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
