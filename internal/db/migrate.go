package db

import (
	"fmt"  // Error formatting
	"time" // UTC clock for gorm

	"feedback_system/internal/config" // Application configuration
	"feedback_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"     // Logging
	"gorm.io/driver/mysql"           // MySQL driver for GORM
	"gorm.io/driver/postgres"        // PostgreSQL driver for GORM
	"gorm.io/driver/sqlite"          // SQLite driver for GORM
	"gorm.io/gorm"                   // GORM ORM library
	gormlogger "gorm.io/gorm/logger" // GORM logger levels
)

// Dialector returns the gorm dialector for a driver name
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql", "":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// OpenDialector opens a gorm connection with the settings every store relies on:
// duplicate-key translation and UTC timestamps
func OpenDialector(d gorm.Dialector, quiet bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if quiet {
		level = gormlogger.Silent
	}
	gdb, err := gorm.Open(d, &gorm.Config{
		TranslateError: true,                                         // Map unique violations to gorm.ErrDuplicatedKey
		NowFunc:        func() time.Time { return time.Now().UTC() }, // Store timestamps in UTC
		Logger:         gormlogger.Default.LogMode(level),            // Only slow queries and errors
	})
	if err != nil {
		return nil, err
	}
	if d.Name() == "sqlite" {
		// One writer at a time; also keeps a ":memory:" database alive and shared
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return gdb, nil
}

// Open connects to the configured database
func Open(cfg *config.Config) (*gorm.DB, error) {
	d, err := Dialector(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, err
	}
	gdb, err := OpenDialector(d, cfg.IsProd)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}
	return gdb, nil
}

// Migrate performs automatic migration for the database schema
func Migrate(gdb *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := gdb.AutoMigrate(&domain.User{}, &domain.Feedback{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.WithField("driver", gdb.Dialector.Name()).Info("Migration completed.") // Log successful migration
	return nil
}
