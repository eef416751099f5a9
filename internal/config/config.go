package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm/logger"

	"mall-pos/pkg/database"
)

// Config holds application configuration values
type Config struct {
	Env  string
	Port string

	Database database.Config

	JWTSecret string
	JWTTTL    time.Duration

	RedisURL      string
	RedisPassword string
	RedisDB       int

	LowStockThreshold int
	LowStockSchedule  string
}

// Load reads an optional .env file, then the process environment
func Load() (*Config, error) {
	// Missing .env is fine; the process environment still applies
	_ = godotenv.Load()

	cfg := &Config{
		Env:               getEnv("APP_ENV", "production"),
		Port:              getEnv("PORT", "3000"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTTTL:            time.Duration(getEnvAsInt("JWT_TTL_HOURS", 24)) * time.Hour,
		RedisURL:          os.Getenv("REDIS_URL"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		LowStockThreshold: getEnvAsInt("LOW_STOCK_THRESHOLD", 10),
		LowStockSchedule:  getEnv("LOW_STOCK_SCHEDULE", "@every 15m"),
	}

	cfg.Database = database.Config{
		Driver:     getEnv("DB_DRIVER", database.DriverPostgres),
		DSN:        os.Getenv("DATABASE_URL"),
		SQLitePath: getEnv("SQLITE_PATH", "pos_system.db"),
		LogLevel:   logger.Warn,
	}
	if cfg.IsDevelopment() {
		cfg.Database.LogLevel = logger.Info
	}

	if cfg.Database.Driver == database.DriverPostgres && cfg.Database.DSN == "" {
		cfg.Database.DSN = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			os.Getenv("DB_PASSWORD"),
			getEnv("DB_NAME", "mall_pos"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_SSLMODE", "disable"),
		)
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT value %q", cfg.Port)
	}
	if cfg.LowStockThreshold < 0 {
		return nil, fmt.Errorf("invalid LOW_STOCK_THRESHOLD value %d", cfg.LowStockThreshold)
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
