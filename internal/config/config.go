// Package config provides application configuration loaded from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const devSessionSecret = "devsessionsecret"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Session  SessionConfig
	Database DatabaseConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// BackendConfig points at the rental REST API.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig controls browser sessions.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
	// Driver is one of memory, sqlite, postgres.
	Driver        string
	SQLitePath    string
	SweepSchedule string
	SecureCookie  bool
}

// DatabaseConfig holds PostgreSQL connection settings for the postgres session driver.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// AppConfig holds application-level settings.
type AppConfig struct {
	ServiceName string
	Dev         bool
	LogLevel    string
	DefaultLang string
}

// DSN returns the PostgreSQL connection string in key=value format.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (s ServerConfig) HTTPAddress() string {
	return ":" + s.Port
}

// Load reads .env (if present) and the environment, applying development defaults.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		Server: ServerConfig{
			Port:         cast.ToString(getOrReturnDefault("PORT", "8080")),
			ReadTimeout:  seconds("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: seconds("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  seconds("SERVER_IDLE_TIMEOUT", 60),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(cast.ToString(getOrReturnDefault("API_BASE_URL", "http://localhost:5000/api")), "/"),
			Timeout: seconds("API_TIMEOUT", 10),
		},
		Session: SessionConfig{
			Secret:        cast.ToString(getOrReturnDefault("SESSION_SECRET", "")),
			TTL:           time.Duration(cast.ToInt(getOrReturnDefault("SESSION_TTL_HOURS", 24))) * time.Hour,
			Driver:        strings.ToLower(cast.ToString(getOrReturnDefault("SESSION_DRIVER", "sqlite"))),
			SQLitePath:    cast.ToString(getOrReturnDefault("SESSION_SQLITE_PATH", "sessions.db")),
			SweepSchedule: cast.ToString(getOrReturnDefault("SESSION_SWEEP_SCHEDULE", "@every 10m")),
			SecureCookie:  cast.ToBool(getOrReturnDefault("SESSION_SECURE_COOKIE", false)),
		},
		Database: DatabaseConfig{
			Host:     cast.ToString(getOrReturnDefault("DB_HOST", "localhost")),
			Port:     cast.ToInt(getOrReturnDefault("DB_PORT", 5432)),
			User:     cast.ToString(getOrReturnDefault("DB_USER", "travels")),
			Password: cast.ToString(getOrReturnDefault("DB_PASSWORD", "travels")),
			DBName:   cast.ToString(getOrReturnDefault("DB_NAME", "travels_web")),
			SSLMode:  cast.ToString(getOrReturnDefault("DB_SSLMODE", "disable")),
		},
		App: AppConfig{
			ServiceName: cast.ToString(getOrReturnDefault("SERVICE_NAME", "travels-web")),
			Dev:         cast.ToBool(getOrReturnDefault("DEV", true)),
			LogLevel:    cast.ToString(getOrReturnDefault("LOG_LEVEL", "info")),
			DefaultLang: cast.ToString(getOrReturnDefault("DEFAULT_LANG", "en")),
		},
	}

	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = 24 * time.Hour
	}
	if cfg.Session.Secret == "" {
		if !cfg.App.Dev {
			return nil, errors.New("SESSION_SECRET is required outside development")
		}
		cfg.Session.Secret = devSessionSecret
	}
	switch cfg.Session.Driver {
	case "memory", "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unknown SESSION_DRIVER %q", cfg.Session.Driver)
	}
	if cfg.Backend.BaseURL == "" {
		return nil, errors.New("API_BASE_URL is required")
	}
	return cfg, nil
}

func seconds(key string, def int) time.Duration {
	return time.Duration(cast.ToInt(getOrReturnDefault(key, def))) * time.Second
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := strings.TrimSpace(os.Getenv(key))
	if value != "" {
		return value
	}
	return defaultValue
}
