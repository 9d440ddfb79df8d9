package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/amirhosseinghanipour/todoapi/internal/infrastructure/persistence/db"
)

// PoolConfig tunes the pgx pool and the startup retry loop.
type PoolConfig struct {
	URL           string
	MaxConns      int32
	RetryAttempts int
	RetryInterval time.Duration
}

// Store bundles the pool, its database/sql view and the repositories built on it.
type Store struct {
	Pool  *pgxpool.Pool
	DB    *sql.DB
	Users *UserRepository
	Todos *TodoRepository
}

// Open connects with linear backoff and builds the repositories.
func Open(ctx context.Context, cfg PoolConfig) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var pool *pgxpool.Pool
	for i := 0; i < attempts; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
			pool = nil
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
			}
		}
	}
	if pool == nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	q := db.New(sqlDB)
	return &Store{
		Pool:  pool,
		DB:    sqlDB,
		Users: NewUserRepository(q),
		Todos: NewTodoRepository(q),
	}, nil
}

func (s *Store) Close() {
	_ = s.DB.Close()
	s.Pool.Close()
}
