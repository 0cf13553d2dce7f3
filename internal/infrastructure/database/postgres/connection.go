// internal/infrastructure/database/postgres/connection.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/ecommerce-platform/internal/config"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB wraps the pooled gorm connection
type DB struct {
	gorm *gorm.DB
}

// NewConnection opens the connection pool and verifies it with a ping
func NewConnection(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*DB, error) {
	return Open(ctx, cfg.DSN(), cfg.Database, log)
}

// Open opens a pool for an explicit DSN. Pool limits come from dbCfg.
func Open(ctx context.Context, dsn string, dbCfg config.DatabaseConfig, log *logrus.Logger) (*DB, error) {
	gormDB, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	if dbCfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
	}
	if dbCfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
	}
	if dbCfg.MaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(dbCfg.MaxLifetime)
	}

	db := &DB{gorm: gormDB}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Health(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.WithFields(logrus.Fields{
		"database":       dbCfg.Name,
		"max_open_conns": dbCfg.MaxOpenConns,
	}).Info("✅ Database connected")

	return db, nil
}

// GetDB returns the gorm handle shared by every component
func (db *DB) GetDB() *gorm.DB {
	return db.gorm
}

// Health pings the database
func (db *DB) Health(ctx context.Context) error {
	sqlDB, err := db.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the pool
func (db *DB) Close() error {
	sqlDB, err := db.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
