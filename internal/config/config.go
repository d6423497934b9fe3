package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port            string `mapstructure:"PORT"`
	DatabaseURL     string `mapstructure:"DATABASE_URL"` // Postgres DSN, empty falls back to SQLite
	SQLitePath      string `mapstructure:"SQLITE_PATH"`
	RedisURL        string `mapstructure:"REDIS_URL"` // Optional, empty disables the response cache
	CacheTTLSeconds int    `mapstructure:"CACHE_TTL_SECONDS"`
	BcryptCost      int    `mapstructure:"BCRYPT_COST"`
	AppEnv          string `mapstructure:"APP_ENV"`
}

var keys = []string{"PORT", "DATABASE_URL", "SQLITE_PATH", "REDIS_URL", "CACHE_TTL_SECONDS", "BCRYPT_COST", "APP_ENV"}

func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	v := viper.New()
	v.SetDefault("PORT", "3000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SQLITE_PATH", "/tmp/test.db")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CACHE_TTL_SECONDS", 60)
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("APP_ENV", "development")

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	return &cfg, nil
}

// Driver reports which relational engine the DSN targets.
func (c *Config) Driver() string {
	if c.DatabaseURL == "" {
		return DriverSQLite
	}
	return DriverPostgres
}

func (c *Config) DSN() string {
	if c.Driver() == DriverSQLite {
		return SQLiteDSN(c.SQLitePath)
	}
	// Some providers still hand out the legacy scheme
	if strings.HasPrefix(c.DatabaseURL, "postgres://") {
		return "postgresql://" + strings.TrimPrefix(c.DatabaseURL, "postgres://")
	}
	return c.DatabaseURL
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// SQLiteDSN builds a modernc.org/sqlite DSN with foreign keys enforced.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
