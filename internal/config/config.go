package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cache backends supported by CACHE_BACKEND.
const (
	CacheBackendPostgres = "postgres"
	CacheBackendRedis    = "redis"
	CacheBackendMemory   = "memory"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	FDC       FDCConfig
	Cache     CacheConfig
	Aggregate AggregateConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
	S3        S3Config
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds token signing configuration.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// FDCConfig holds settings for the USDA FoodData Central API.
type FDCConfig struct {
	APIKey         string
	BaseURL        string
	Timeout        time.Duration
	SearchPageSize int
	SearchLimit    int
}

// CacheConfig selects and tunes the nutrient cache.
type CacheConfig struct {
	Backend       string
	MemorySize    int // entries kept in the in-process tier, 0 disables it
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// AggregateConfig tunes nutrition aggregation.
type AggregateConfig struct {
	Concurrency int
}

// RateLimitConfig holds per-client request budgets.
type RateLimitConfig struct {
	PerHour         int
	PerDay          int // 0 disables the daily budget
	SearchPerMinute int
	TrustProxy      bool
}

// SeedConfig controls nutrient cache warm-up at startup.
type SeedConfig struct {
	Enabled bool
	Files   []string
}

// S3Config holds AWS S3 configuration for seed files.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "seeds/")
}

// Load loads configuration from environment variables. A .env file in the
// working directory is applied first when present; real environment
// variables take precedence over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "nutricalc"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  time.Duration(getEnvAsInt("JWT_TTL_MINUTES", 60)) * time.Minute,
		},
		FDC: FDCConfig{
			APIKey:         getEnv("USDA_API_KEY", ""),
			BaseURL:        getEnv("FDC_BASE_URL", "https://api.nal.usda.gov/fdc/v1"),
			Timeout:        time.Duration(getEnvAsInt("FDC_TIMEOUT_SECONDS", 5)) * time.Second,
			SearchPageSize: getEnvAsInt("FDC_SEARCH_PAGE_SIZE", 15),
			SearchLimit:    getEnvAsInt("FDC_SEARCH_LIMIT", 10),
		},
		Cache: CacheConfig{
			Backend:       getEnv("CACHE_BACKEND", CacheBackendPostgres),
			MemorySize:    getEnvAsInt("CACHE_MEMORY_SIZE", 1024),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			RedisPrefix:   getEnv("REDIS_KEY_PREFIX", "nutrients:"),
		},
		Aggregate: AggregateConfig{
			Concurrency: getEnvAsInt("AGGREGATE_CONCURRENCY", 4),
		},
		RateLimit: RateLimitConfig{
			PerHour:         getEnvAsInt("RATE_LIMIT_PER_HOUR", 50),
			PerDay:          getEnvAsInt("RATE_LIMIT_PER_DAY", 200),
			SearchPerMinute: getEnvAsInt("SEARCH_RATE_LIMIT_PER_MINUTE", 10),
			TrustProxy:      getEnvAsBool("RATE_LIMIT_TRUST_PROXY", false),
		},
		Seed: SeedConfig{
			Enabled: getEnvAsBool("SEED_ENABLED", false),
			Files:   getEnvAsList("SEED_FILES", nil),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "us-east-1"),
			Prefix:  getEnv("S3_PREFIX", "seeds/"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT TTL must be positive")
	}

	if c.FDC.APIKey == "" {
		return fmt.Errorf("USDA API key is required")
	}

	if c.FDC.BaseURL == "" {
		return fmt.Errorf("FDC base URL is required")
	}

	if c.FDC.Timeout <= 0 {
		return fmt.Errorf("FDC timeout must be positive")
	}

	if c.FDC.SearchPageSize < 1 || c.FDC.SearchLimit < 1 {
		return fmt.Errorf("FDC search page size and limit must be at least 1")
	}

	switch c.Cache.Backend {
	case CacheBackendPostgres, CacheBackendMemory:
	case CacheBackendRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("redis address is required when cache backend is redis")
		}
	default:
		return fmt.Errorf("invalid cache backend: %s (must be postgres, redis, or memory)", c.Cache.Backend)
	}

	if c.Cache.MemorySize < 0 {
		return fmt.Errorf("cache memory size cannot be negative")
	}

	if c.Cache.Backend == CacheBackendMemory && c.Cache.MemorySize == 0 {
		return fmt.Errorf("cache memory size must be positive for the memory backend")
	}

	if c.Aggregate.Concurrency < 1 {
		return fmt.Errorf("aggregate concurrency must be at least 1")
	}

	if c.RateLimit.PerHour < 1 || c.RateLimit.SearchPerMinute < 1 {
		return fmt.Errorf("rate limits must be at least 1")
	}

	if c.RateLimit.PerDay < 0 {
		return fmt.Errorf("daily rate limit cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Seed.Enabled && len(c.Seed.Files) == 0 {
		return fmt.Errorf("seed files are required when seeding is enabled")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
		sslMode,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable, dropping blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
