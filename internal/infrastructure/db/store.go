// Package db opens the credential store backend named by configuration.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/leadsite/marketing-api/internal/core/ports"
	"github.com/leadsite/marketing-api/internal/infrastructure/config"
	"github.com/leadsite/marketing-api/internal/infrastructure/db/memory"
	"github.com/leadsite/marketing-api/internal/infrastructure/db/mongo"
	"github.com/leadsite/marketing-api/internal/infrastructure/db/postgres"
)

// Pinger is a dependency the readiness probe can check.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// Store bundles the repositories of one backend.
type Store struct {
	Users    ports.UserRepository
	Contacts ports.ContactRepository
	Pingers  []Pinger

	close func(context.Context)
}

// Close releases the backend connection. Safe on a memory store.
func (s *Store) Close(ctx context.Context) {
	if s.close != nil {
		s.close(ctx)
	}
}

// Open connects to the configured backend and bootstraps its schema.
func Open(ctx context.Context, cfg config.StoreConfig, log zerolog.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Str("driver", cfg.Driver).Msg("connected to postgres")
		return &Store{
			Users:    postgres.NewUserRepository(pool),
			Contacts: postgres.NewContactRepository(pool),
			Pingers:  []Pinger{postgres.NewPinger(pool)},
			close:    func(context.Context) { pool.Close() },
		}, nil

	case config.DriverMongo:
		client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongo.EnsureIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("driver", cfg.Driver).Str("db", cfg.Mongo.Database).Msg("connected to mongodb")
		return &Store{
			Users:    mongo.NewUserRepository(database),
			Contacts: mongo.NewContactRepository(database),
			Pingers:  []Pinger{mongo.NewPinger(database)},
			close: func(ctx context.Context) {
				if err := client.Disconnect(ctx); err != nil {
					log.Error().Err(err).Msg("mongo disconnect")
				}
			},
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *Store {
	return &Store{
		Users:    memory.NewUserRepository(),
		Contacts: memory.NewContactRepository(),
	}
}
