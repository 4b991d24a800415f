// Command reset deletes every customer row. It is meant for test
// environments and refuses to run in production unless -force is given.
package main

import (
	"context"
	"flag"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"customerlib/internal/config"
	"customerlib/internal/database"
	"customerlib/internal/database/migration"
	"customerlib/internal/logger"
	"customerlib/internal/repository/sqlrepo"
)

func main() {
	force := flag.Bool("force", false, "allow running when APP_ENV=production")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	cfg := config.Load()
	log := logger.Must(cfg.Log)
	defer log.Sync()

	if cfg.AppEnv == "production" && !*force {
		log.Fatal("refusing to reset customers in production without -force")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, dialect, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db.DB, dialect, log); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	n, err := sqlrepo.NewCustomerSQL(db).DeleteAll(ctx)
	if err != nil {
		log.Fatal("failed to delete customers", zap.Error(err))
	}
	log.Info("customers deleted", zap.Int64("deleted", n), zap.String("dialect", string(dialect)))
}
