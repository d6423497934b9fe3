package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.Driver())
	assert.Equal(t, SQLiteDSN("/tmp/test.db"), cfg.DSN())
	assert.Equal(t, 60*time.Second, cfg.CacheTTL())
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/garage")
	t.Setenv("CACHE_TTL_SECONDS", "5")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.Driver())
	assert.Equal(t, "postgresql://u:p@localhost:5432/garage", cfg.DSN())
	assert.Equal(t, 5*time.Second, cfg.CacheTTL())
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_ClampsBcryptCost(t *testing.T) {
	clearEnv(t)
	t.Setenv("BCRYPT_COST", "99")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:/data/app.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", SQLiteDSN("/data/app.db"))
}
