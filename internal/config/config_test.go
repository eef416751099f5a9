package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mall-pos/pkg/database"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_TTL_HOURS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, database.DriverPostgres, cfg.Database.Driver)
	assert.Contains(t, cfg.Database.DSN, "host=db.internal")
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_SQLiteAndOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", "8081")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SQLITE_PATH", "/tmp/pos.db")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("LOW_STOCK_THRESHOLD", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, database.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/pos.db", cfg.Database.SQLitePath)
	assert.Empty(t, cfg.Database.DSN)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 3, cfg.LowStockThreshold)
}

func TestLoad_RejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "http")

	_, err := Load()
	assert.Error(t, err)
}
