// Package database opens and owns the process-wide storage handle.
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrUnavailable is returned when no storage handle can be obtained.
var ErrUnavailable = errors.New("database unavailable")

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds connection settings.
type Config struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	AutoMigrate  bool
	Logger       zerolog.Logger
}

// Provider hands out a storage handle bound to ctx.
type Provider interface {
	DB(ctx context.Context) (*gorm.DB, error)
}

// Open connects to the configured database.
func Open(cfg Config) (*gorm.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))

	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite, "":
		driver = DriverSQLite
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "catalog.db"
		}
		dialector = sqlite.Open(sqliteDSN(dsn))
	case DriverPostgres, "postgresql":
		driver = DriverPostgres
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(cfg.Logger),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	if driver == DriverSQLite {
		// one connection keeps in-memory databases alive and serializes writers
		sqlDB.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}
	return db, nil
}

// sqliteDSN turns on foreign key enforcement for every connection the pool
// opens, not just the first one.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// Migrate creates or updates the catalog tables and indexes.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Category{},
		&models.GroupCategory{},
		&models.GroupCategoryMember{},
		&models.Product{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.Warn().Str("component", "gorm").Msgf(format, args...)
}

func newGormLogger(log zerolog.Logger) gormlogger.Interface {
	return gormlogger.New(gormWriter{log: log}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
