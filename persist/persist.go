// Package persist provides whole-snapshot persistence adapters for the
// asset ledger engine. The engine treats an adapter as an injected
// capability: Load returns (nil, nil) when no usable snapshot exists, and
// the engine then seeds a fresh one.
package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lab_asset_ledger/models"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

type Adapter interface {
	// Load returns the last saved snapshot, or (nil, nil) when absent or
	// unreadable.
	Load(ctx context.Context) (*models.Snapshot, error)
	// Save writes the whole snapshot.
	Save(ctx context.Context, snap *models.Snapshot) error
	Close() error
}

// Config selects and parameterizes a driver.
type Config struct {
	Driver string // file|postgres|redis|memory (default file)

	DataFile string // driver=file

	PostgresDSN string // driver=postgres

	RedisAddr     string // driver=redis
	RedisPassword string
	RedisKey      string
}

// Open returns the adapter named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Adapter, error) {
	switch cfg.Driver {
	case "", DriverFile:
		return NewFile(cfg.DataFile)
	case DriverPostgres:
		db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return NewGorm(db)
	case DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return NewRedis(client, cfg.RedisKey), nil
	case DriverMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
