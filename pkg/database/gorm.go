package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func getLogger(level logger.LogLevel) logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true, // keep visitor content out of SQL logs
			Colorful:                  true,
		},
	)
}

type poolConfig struct {
	maxIdle     int
	maxOpen     int
	maxLifetime time.Duration
}

var (
	postgresPool = poolConfig{maxIdle: 10, maxOpen: 100, maxLifetime: time.Hour}
	// sqlite serialises writers, and ":memory:" lives exactly as long as its
	// one connection, so that connection is never recycled.
	sqlitePool = poolConfig{maxIdle: 1, maxOpen: 1, maxLifetime: 0}
)

func configureConnectionPool(db *gorm.DB, pool poolConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(pool.maxIdle)
	sqlDB.SetMaxOpenConns(pool.maxOpen)
	sqlDB.SetConnMaxLifetime(pool.maxLifetime)

	return nil
}

func NewGormDBFromDSN(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: getLogger(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := configureConnectionPool(db, postgresPool); err != nil {
		return nil, err
	}

	return db, nil
}

// NewSQLiteDB opens a local database file (or ":memory:") for development
// and tests. Vector search is not available on this driver.
func NewSQLiteDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: getLogger(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := configureConnectionPool(db, sqlitePool); err != nil {
		return nil, err
	}

	return db, nil
}
