// Package db opens the database that holds browser sessions.
package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nethal17/Ramanayake-Travels-sub001/internal/config"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/logger"
)

const (
	connectAttempts = 5
	retryDelay      = 2 * time.Second
)

// Open connects to the session database chosen by cfg.Session.Driver. The
// memory driver needs no database and yields nil.
func Open(cfg *config.Config, log logger.ILogger) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	switch cfg.Session.Driver {
	case "memory":
		return nil, nil
	case "sqlite":
		conn, err := gorm.Open(sqlite.Open(cfg.Session.SQLitePath), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.Session.SQLitePath, err)
		}
		return conn, nil
	case "postgres":
		return connectWithRetry(postgres.Open(cfg.Database.DSN()), gcfg, log)
	default:
		return nil, fmt.Errorf("unknown session driver %q", cfg.Session.Driver)
	}
}

// connectWithRetry gives a freshly started Postgres container time to accept
// connections.
func connectWithRetry(dialector gorm.Dialector, gcfg *gorm.Config, log logger.ILogger) (*gorm.DB, error) {
	var (
		conn *gorm.DB
		err  error
	)
	for i := 1; i <= connectAttempts; i++ {
		conn, err = gorm.Open(dialector, gcfg)
		if err == nil {
			return conn, nil
		}
		log.Warning("database not ready",
			logger.Int("attempt", i),
			logger.Int("of", connectAttempts),
			logger.Error(err))
		if i < connectAttempts {
			time.Sleep(retryDelay)
		}
	}
	return nil, fmt.Errorf("connect postgres: %w", err)
}

// Ping reports whether conn still answers. A nil conn always does.
func Ping(conn *gorm.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		if conn == nil {
			return nil
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

// Close releases the underlying pool.
func Close(conn *gorm.DB) error {
	if conn == nil {
		return nil
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
