package main

import (
	"context"
	"fmt"

	"github.com/Shivanand-hulikatti/hackhub/internal/config"
	"github.com/Shivanand-hulikatti/hackhub/internal/database"
	"github.com/Shivanand-hulikatti/hackhub/internal/repository"
	"github.com/rs/zerolog"
)

type stores struct {
	hackathons repository.HackathonStore
	feedback   repository.FeedbackStore
	close      func()
}

// openStores connects the configured backend and prepares its schema or
// indexes. The returned close func releases the connection.
func openStores(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*stores, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info().Str("host", cfg.Host).Str("database", cfg.Name).Msg("connected to PostgreSQL")
		return &stores{
			hackathons: repository.NewPostgresHackathonStore(pool),
			feedback:   repository.NewPostgresFeedbackStore(pool),
			close:      pool.Close,
		}, nil

	case config.DriverMongo:
		client, db, err := database.NewMongo(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		disconnect := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn().Err(err).Msg("mongo disconnect")
			}
		}
		hackathons := repository.NewMongoHackathonStore(db)
		if err := hackathons.EnsureIndexes(ctx); err != nil {
			disconnect()
			return nil, err
		}
		logger.Info().Str("database", cfg.MongoDatabase).Msg("connected to MongoDB")
		return &stores{
			hackathons: hackathons,
			feedback:   repository.NewMongoFeedbackStore(db),
			close:      disconnect,
		}, nil

	case config.DriverMemory:
		logger.Warn().Msg("using in-memory storage, data is lost on exit")
		return &stores{
			hackathons: repository.NewMemoryHackathonStore(),
			feedback:   repository.NewMemoryFeedbackStore(),
			close:      func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}
