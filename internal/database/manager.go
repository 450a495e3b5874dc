package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"
)

var errClosed = errors.New("manager closed")

// Manager opens the database on first use and caches the handle until Close.
// A failed open is not cached, the next call tries again.
type Manager struct {
	cfg    Config
	open   func(Config) (*gorm.DB, error)
	mu     sync.Mutex
	db     *gorm.DB
	closed bool
}

// NewManager creates a new Manager. No connection is made until DB is called.
func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg, open: Open}
}

// DB returns the shared handle bound to ctx, connecting if needed.
func (m *Manager) DB(ctx context.Context) (*gorm.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, errClosed)
	}
	if m.db == nil {
		db, err := m.open(m.cfg)
		if err != nil {
			m.cfg.Logger.Error().Err(err).Str("driver", m.cfg.Driver).Msg("database connection failed")
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		m.cfg.Logger.Info().Str("driver", m.cfg.Driver).Msg("database connected")
		m.db = db
	}
	return m.db.WithContext(ctx), nil
}

// Ping checks that the database answers.
func (m *Manager) Ping(ctx context.Context) error {
	db, err := m.DB(ctx)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Close releases the connection pool. The manager cannot be reused afterwards.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	if m.db == nil {
		return nil
	}
	sqlDB, err := m.db.DB()
	m.db = nil
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	m.cfg.Logger.Info().Msg("database disconnected")
	return nil
}

// Static is a Provider over an already open handle.
type Static struct {
	db *gorm.DB
}

// NewStatic creates a Provider that always returns db.
func NewStatic(db *gorm.DB) Static {
	return Static{db: db}
}

// DB returns the wrapped handle bound to ctx.
func (s Static) DB(ctx context.Context) (*gorm.DB, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}
	return s.db.WithContext(ctx), nil
}
