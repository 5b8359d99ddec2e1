package main

import (
	"context"
	"fmt"
	"os"

	"gourmetgo/internal/config"
	"gourmetgo/internal/database"
	"gourmetgo/internal/store"
	"gourmetgo/internal/store/file"
	"gourmetgo/internal/store/mongo"
	"gourmetgo/internal/store/postgres"
	"gourmetgo/internal/store/redis"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gourmetgo",
	Short: "GourmetGo catering marketplace backend",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

// openStore builds the storage backend selected by STORAGE_BACKEND.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (store.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		return file.New(cfg.Storage.Path, logger)

	case config.BackendRedis:
		return redis.New(ctx, cfg.Redis.Addr, cfg.Redis.Prefix, logger)

	case config.BackendMongo:
		return mongo.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database, logger)

	case config.BackendPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		st, err := postgres.New(ctx, pool, logger)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return poolStore{Store: st, pool: pool}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// poolStore ties the pgx pool's lifetime to the store handed to callers.
type poolStore struct {
	store.Store
	pool interface{ Close() }
}

func (p poolStore) Close(ctx context.Context) error {
	err := p.Store.Close(ctx)
	p.pool.Close()
	return err
}
