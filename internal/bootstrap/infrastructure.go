package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"portfolio-chat-be/internal/config"
	"portfolio-chat-be/internal/repository/unitofwork"
	"portfolio-chat-be/pkg/database"
	"portfolio-chat-be/pkg/store"
	"portfolio-chat-be/pkg/store/supabase"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// storage is what the selected driver provides. db is nil for drivers
// without a gorm connection; the dashboard stats and knowledge retrieval
// need one.
type storage struct {
	store store.Store
	db    *gorm.DB
}

func openStorage(cfg *config.Config) (*storage, error) {
	switch cfg.Database.StoreDriver {
	case store.DriverPostgres:
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			return nil, fmt.Errorf("unable to connect to postgres: %w", err)
		}
		return &storage{store: store.NewGormStore(unitofwork.NewRepositoryFactory(db)), db: db}, nil

	case store.DriverSQLite:
		db, err := database.NewSQLiteDB(cfg.Database.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("unable to open sqlite: %w", err)
		}
		if err := database.Migrate(db, false); err != nil {
			return nil, err
		}
		return &storage{store: store.NewGormStore(unitofwork.NewRepositoryFactory(db)), db: db}, nil

	case store.DriverSupabase:
		s, err := supabase.New(supabase.Config{URL: cfg.Supabase.URL, APIKey: cfg.Supabase.ServiceKey})
		if err != nil {
			return nil, err
		}
		return &storage{store: s}, nil

	case store.DriverMemory:
		log.Println("[WARN] Using in-memory store, data is lost on restart")
		return &storage{store: store.NewMemoryStore()}, nil
	}

	return nil, fmt.Errorf("unsupported store driver: %s", cfg.Database.StoreDriver)
}

// openRedis returns nil when no URL is configured or the server is down.
func openRedis(url string) *redis.Client {
	if url == "" {
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}
