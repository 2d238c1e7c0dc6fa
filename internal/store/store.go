// Package store persists the salon document as a single value under a fixed
// key, on SQLite, Postgres, Redis or in memory.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/salon/internal/database"
)

// ErrNotFound is returned by KV.Get when nothing is stored under a key.
var ErrNotFound = errors.New("not found")

// KV is a minimal key/value store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

const (
	DriverSQLite   = database.DriverSQLite
	DriverPostgres = database.DriverPostgres
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

type Config struct {
	Driver string
	// Path is the SQLite file.
	Path string
	// DSN is the Postgres connection string.
	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open returns the KV backend selected by cfg.Driver.
func Open(ctx context.Context, cfg Config) (KV, error) {
	switch cfg.Driver {
	case DriverSQLite:
		db, err := database.Open(DriverSQLite, cfg.Path)
		if err != nil {
			return nil, err
		}

		return NewSQL(db, DriverSQLite), nil
	case DriverPostgres:
		db, err := database.Open(DriverPostgres, cfg.DSN)
		if err != nil {
			return nil, err
		}

		return NewSQL(db, DriverPostgres), nil
	case DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("pinging redis: %w", err)
		}

		return NewRedis(rdb), nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}
