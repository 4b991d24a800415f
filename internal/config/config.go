package config

import (
	"os"
	"strconv"
)

const (
	// DriverPostgres selects the pgx-backed PostgreSQL store.
	DriverPostgres = "postgres"
	// DriverSQLite selects the go-sqlite3 store.
	DriverSQLite = "sqlite3"
)

// DatabaseConfig holds relational store connection settings.
type DatabaseConfig struct {
	Driver             string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	SQLitePath         string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// LogConfig controls the zap logger built by internal/logger.
type LogConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppEnv            string
	AppHost           string
	Port              string
	AdminResetEnabled bool
	Database          DatabaseConfig
	Log               LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppEnv:            getEnv("APP_ENV", "production"),
		AppHost:           getEnv("APP_HOST", "localhost:8080"),
		Port:              getEnv("PORT", "8080"),
		AdminResetEnabled: getEnvBool("ADMIN_RESET_ENABLED", false),
		Database: DatabaseConfig{
			Driver:             getEnv("DB_DRIVER", DriverPostgres),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			SQLitePath:         getEnv("DB_SQLITE_PATH", "data/customers.db"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Log: LogConfig{
			Level:             getEnv("LOG_LEVEL", "info"),
			Encoding:          getEnv("LOG_ENCODING", "json"),
			DisableCaller:     getEnvBool("LOG_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOG_DISABLE_STACKTRACE", true),
		},
	}
}

// IsDevelopment reports whether the app runs in a local development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
