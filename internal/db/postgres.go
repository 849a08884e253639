package db

import (
	"context"
	"time"

	"backend-workoutmap/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationName = "workoutmap"

var (
	newPoolFn  = pgxpool.NewWithConfig
	pingPoolFn = func(ctx context.Context, pool *pgxpool.Pool) error { return pool.Ping(ctx) }
)

// ConnectPostgres dials the workout store's database. It returns a nil pool
// and no error when the configured storage driver is not postgres.
func ConnectPostgres(cfg config.Config) (*pgxpool.Pool, error) {
	if cfg.StorageDriver != config.DriverPostgres {
		return nil, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresURL)
	if err != nil {
		return nil, err
	}
	// The whole list lives in one row; a handful of connections is plenty.
	if cfg.PostgresConns > 0 {
		poolCfg.MaxConns = cfg.PostgresConns
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := newPoolFn(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pingPoolFn(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
