package main

import (
	"flag"
	"os"

	"portfolio-chat-be/internal/config"
	"portfolio-chat-be/pkg/database"
	"portfolio-chat-be/pkg/store"

	"github.com/fatih/color"
	"gorm.io/gorm"
)

func main() {
	withVectors := flag.Bool("vectors", true, "enable pgvector and create knowledge_chunks (postgres only)")
	flag.Parse()

	cfg := config.Load()

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Database.StoreDriver {
	case store.DriverPostgres:
		if cfg.Database.Connection == "" {
			color.Red("Error: DB_CONNECTION_STRING is not set")
			os.Exit(1)
		}
		db, err = database.NewGormDBFromDSN(cfg.Database.Connection)
	case store.DriverSQLite:
		db, err = database.NewSQLiteDB(cfg.Database.SQLitePath)
		*withVectors = false
	default:
		color.Yellow("Store driver %q has no schema to migrate from here", cfg.Database.StoreDriver)
		return
	}
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Running migration (driver: %s, vectors: %t)", cfg.Database.StoreDriver, *withVectors)

	if err := database.Migrate(db, *withVectors); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	color.Green("✅ Success: Database migration completed")
}
