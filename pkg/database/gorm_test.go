package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolConfig(t *testing.T) {
	tests := []struct {
		name         string
		pool         poolConfig
		wantOpen     int
		wantLifetime time.Duration
	}{
		{"postgres recycles connections", postgresPool, 100, time.Hour},
		{"sqlite keeps its only connection", sqlitePool, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantOpen, tt.pool.maxOpen)
			assert.Equal(t, tt.wantLifetime, tt.pool.maxLifetime)
			assert.LessOrEqual(t, tt.pool.maxIdle, tt.pool.maxOpen)
		})
	}
}

func TestNewSQLiteDBSharesMemoryDatabase(t *testing.T) {
	db, err := NewSQLiteDB(":memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Migrate(db, false))
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	require.NoError(t, db.Exec("INSERT INTO chat_sessions (id, visitor_id, created_at) VALUES (?, ?, ?)",
		"6f1c7d3e-2b1a-4c55-9d0e-0d8f6f2b9a11", "visitor-a", time.Now().UTC()).Error)

	var count int64
	require.NoError(t, db.Table("chat_sessions").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
