// Package db provides the blob backends the snapshot is persisted to.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/diewo77/go-cotizaciones/internal/config"
	"github.com/diewo77/go-cotizaciones/internal/store"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
)

// Backend is a store.Backend that owns a connection.
type Backend interface {
	store.Backend
	Close() error
}

type memory struct{ data map[string][]byte }

func (m *memory) Load(_ context.Context, key string) ([]byte, error) {
	b, ok := m.data[key]
	if !ok {
		return nil, store.ErrBlobNotFound
	}
	return b, nil
}

func (m *memory) Save(_ context.Context, key string, data []byte) error {
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *memory) Close() error { return nil }

// NewMemory returns a process-local backend, used by the memory driver and tests.
func NewMemory() Backend {
	return &memory{data: map[string][]byte{}}
}

// Open builds the backend selected by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (Backend, error) {
	switch cfg.Storage.Driver {
	case "file":
		return NewFileStore(cfg.Storage.Path)
	case "sqlite":
		if _, err := NewFileStore(cfg.Storage.Path); err != nil {
			return nil, err
		}
		dsn := filepath.Join(cfg.Storage.Path, "cotizaciones.db")
		conn, err := ConnectAndMigrate(sqlite.Open(dsn), cfg.Storage.Debug, log)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(conn), nil
	case "postgres":
		log.Info("connecting to database",
			"host", cfg.Database.Host, "port", cfg.Database.Port,
			"dbname", cfg.Database.DBName, "user", cfg.Database.User)
		conn, err := ConnectAndMigrate(postgres.Open(cfg.Database.DSN()), cfg.Storage.Debug, log)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(conn), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return NewRedisStore(client), nil
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
