// Package database opens connections to the configured storage backend:
// PostgreSQL through pgx, or MongoDB through the official driver.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/hackhub/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const retryDelay = 2 * time.Second

// NewPool creates and validates a pgxpool connection pool.
// It retries cfg.ConnectAttempts times to accommodate containers starting up.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	attempts := max(cfg.ConnectAttempts, 1)
	var pool *pgxpool.Pool
	for attempt := 1; attempt <= attempts; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		logger.Warn().Err(err).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Msg("postgres connect failed")
		if attempt < attempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}
	return nil, fmt.Errorf("connect to postgres: %w", err)
}

// NewPoolFromDSN opens a pool on a ready connection string without retries.
func NewPoolFromDSN(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// NewMongo connects to MongoDB and returns the client together with the
// configured database handle. Callers must Disconnect the client.
func NewMongo(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("create mongo client: %w", err)
	}

	attempts := max(cfg.ConnectAttempts, 1)
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = client.Ping(ctx, nil); err == nil {
			return client, client.Database(cfg.MongoDatabase), nil
		}
		logger.Warn().Err(err).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Msg("mongo ping failed")
		if attempt < attempts {
			select {
			case <-ctx.Done():
				_ = client.Disconnect(context.Background())
				return nil, nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}
	_ = client.Disconnect(context.Background())
	return nil, nil, fmt.Errorf("connect to mongo: %w", err)
}
