package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"customerlib/docs"
	"customerlib/internal/config"
	"customerlib/internal/database"
	"customerlib/internal/database/migration"
	handlers "customerlib/internal/http/handler"
	"customerlib/internal/http/middleware"
	"customerlib/internal/logger"
	"customerlib/internal/otel"
	"customerlib/internal/repository/sqlrepo"
	"customerlib/internal/service"
)

// @title Customer API
// @version 1.0
// @BasePath /
func main() {
	cfg := config.Load()
	if cfg.IsDevelopment() && os.Getenv("LOG_ENCODING") == "" {
		cfg.Log.Encoding = "console"
	}

	log := logger.Must(cfg.Log)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	db, dialect, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err), zap.String("driver", cfg.Database.Driver))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db.DB, dialect, log); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	custRepo := sqlrepo.NewCustomerSQL(db)
	custSvc := service.NewCustomerService(custRepo, log.Named("customer"))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, string(dialect)),
	)
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal("failed to register metrics", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: !cfg.IsDevelopment(),
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(promMW.Handler())
	app.Use(middleware.Logger(log.Named("http")))

	handlers.RegisterRoutes(app, db.DB, custSvc, handlers.Options{
		AdminResetEnabled: cfg.AdminResetEnabled,
		Gatherer:          reg,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server shutdown", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server starting", zap.String("addr", addr), zap.String("dialect", string(dialect)))

	if err := app.Listen(addr); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
