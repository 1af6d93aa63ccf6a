package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config groups the settings read from the environment at startup.
type Config struct {
	Env            string
	Port           string
	AllowedOrigins string
	JWTSecret      string
	LogLevel       string
	LogFormat      string

	Database DatabaseConfig
	Redis    RedisConfig

	ReportCacheTTL    time.Duration
	GeneratorProfile  string
	DefaultSeed       uint64
	MaxGeneratedDays  int
	SeedDatasetOnBoot bool
}

// DatabaseConfig holds Postgres connection and pool settings.
// An empty Host disables the transaction store.
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// RedisConfig holds report cache connection settings.
// An empty Host disables caching.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the full configuration from the environment.
func Load() *Config {
	return &Config{
		Env:            GetEnv("ENV", "development"),
		Port:           GetEnv("PORT", "3000"),
		AllowedOrigins: GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		JWTSecret:      GetEnv("JWT_SECRET", ""),
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
		LogFormat:      GetEnv("LOG_FORMAT", ""),
		Database: DatabaseConfig{
			Host:            GetEnv("DB_HOST", ""),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "posreport"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", ""),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
		},
		ReportCacheTTL:    GetDurationEnv("REPORT_CACHE_TTL", 5*time.Minute),
		GeneratorProfile:  GetEnv("GENERATOR_PROFILE", ""),
		DefaultSeed:       uint64(GetIntEnv("GENERATOR_SEED", 1)),
		MaxGeneratedDays:  GetIntEnv("GENERATOR_MAX_DAYS", 366),
		SeedDatasetOnBoot: GetEnv("SEED_DATASET_ON_BOOT", "true") == "true",
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
