// Package config provides configuration management for the uiforge service.
// It handles loading configuration from environment variables with sensible
// defaults and validates the configuration to ensure the service starts safely.
//
// The package supports multiple storage backends (MongoDB and SQLite), Redis
// for the session cache mirror and distributed rate limiting, JWT
// authentication, and the upstream generative AI API.
//
// Environment Variables:
//
// Application Settings:
//   - PORT: Server port (default: 8080)
//   - LOG_LEVEL: Logging level (default: info)
//   - LOG_FILE: Log file path (default: stdout)
//   - TLS_CERT / TLS_KEY: Optional TLS certificate pair
//
// Storage Configuration:
//   - STORAGE_TYPE: Storage backend - "mongo" or "sqlite" (default: mongo)
//   - MONGO_URI: MongoDB connection URI (default: mongodb://localhost:27017)
//   - MONGO_DATABASE: MongoDB database name (default: uiforge)
//   - SQLITE_PATH: SQLite database file path (default: ./uiforge.db)
//
// Redis Configuration (optional - absence disables the cache mirror):
//   - REDIS_ADDRESS: Redis server address (default: localhost:6379)
//   - REDIS_PASSWORD: Redis password
//   - REDIS_DB: Redis database number 0-15 (default: 0)
//   - REDIS_POOL_SIZE: Redis connection pool size (default: 10)
//   - SESSION_CACHE_TTL: TTL for cached session documents (default: 1h)
//
// Security Configuration:
//   - JWT_SECRET: JWT signing secret (required, minimum 32 characters)
//   - TOKEN_TTL: Lifetime of issued tokens (default: 24h)
//
// AI Upstream:
//   - AI_API_URL: Chat completions endpoint (default: OpenAI v1)
//   - AI_API_KEY: Upstream API key (required)
//   - AI_MODEL: Model identifier (default: gpt-4o-mini)
//   - AI_TIMEOUT: Per-request timeout (default: 60s)
//   - AI_MAX_TOKENS: Completion token cap (default: 4096)
//   - AI_RATE_LIMIT: Per-user requests per minute on AI routes (default: 10)
//
// Rate Limiting:
//   - RATE_LIMIT_ENABLED: Enable rate limiting (default: true)
//   - RATE_LIMIT_DEFAULT: Default rate limit per window (default: 100)
//   - RATE_LIMIT_WINDOW: Rate limit time window (default: 60s)
//
// Maintenance:
//   - TRASH_RETENTION_DAYS: Days before soft-deleted sessions are purged (default: 30)
//   - MAINTENANCE_SCHEDULE: Cron spec for the maintenance job (default: @hourly)
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"os"
)

// Config holds all configuration values for the uiforge service.
// All fields correspond to environment variables that can be set to
// override the default values.
//
// The configuration is loaded using the Load() function and should be
// validated using the Validate() method before use.
type Config struct {
	// Application settings
	Port     string // Server port number
	LogLevel string // Logging level (debug, info, warn, error)
	LogFile  string // Log file path, empty for stdout
	TLSCert  string // TLS certificate file
	TLSKey   string // TLS key file

	// Storage configuration
	StorageType   string // Storage backend: "mongo" or "sqlite"
	MongoURI      string // MongoDB connection URI
	MongoDatabase string // MongoDB database name
	SQLitePath    string // Path to SQLite database file

	// Redis configuration for the session cache mirror
	RedisAddress    string        // Redis server address (host:port), empty disables Redis
	RedisPassword   string        // Redis authentication password
	RedisDB         string        // Redis database number (0-15)
	RedisPoolSize   string        // Redis connection pool size
	SessionCacheTTL time.Duration // TTL for cached session documents

	// JWT authentication configuration
	JWTSecret string        // Secret key for JWT token signing (required)
	TokenTTL  time.Duration // Lifetime of issued tokens

	// AI upstream configuration
	AIAPIURL    string        // Chat completions endpoint URL
	AIAPIKey    string        // Upstream API key (required)
	AIModel     string        // Model identifier
	AITimeout   time.Duration // Per-request timeout for upstream calls
	AIMaxTokens int           // Completion token cap
	AIRateLimit int           // Per-user requests per minute on AI routes

	// Rate limiting configuration
	RateLimitEnabled bool   // Whether rate limiting is enabled
	RateLimitDefault string // Default requests per window
	RateLimitWindow  string // Rate limiting time window (e.g., "60s", "1m")

	// Maintenance configuration
	TrashRetentionDays  int    // Days before soft-deleted sessions are purged
	MaintenanceSchedule string // Cron spec for the maintenance job
}

// Load creates a new Config instance with values loaded from environment
// variables. If an environment variable is not set, the corresponding default
// value is used.
//
// This function does not validate the configuration - call Validate() on the
// returned Config to ensure all required values are properly set and valid.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
		TLSCert:  getEnv("TLS_CERT", ""),
		TLSKey:   getEnv("TLS_KEY", ""),

		// Storage configuration
		StorageType:   getEnv("STORAGE_TYPE", "mongo"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "uiforge"),
		SQLitePath:    getEnv("SQLITE_PATH", "./uiforge.db"),

		// Redis configuration
		RedisAddress:    getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnv("REDIS_DB", "0"),
		RedisPoolSize:   getEnv("REDIS_POOL_SIZE", "10"),
		SessionCacheTTL: getDurationEnv("SESSION_CACHE_TTL", time.Hour),

		// JWT configuration
		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  getDurationEnv("TOKEN_TTL", 24*time.Hour),

		// AI upstream configuration
		AIAPIURL:    getEnv("AI_API_URL", "https://api.openai.com/v1/chat/completions"),
		AIAPIKey:    getEnv("AI_API_KEY", ""),
		AIModel:     getEnv("AI_MODEL", "gpt-4o-mini"),
		AITimeout:   getDurationEnv("AI_TIMEOUT", 60*time.Second),
		AIMaxTokens: getIntEnv("AI_MAX_TOKENS", 4096),
		AIRateLimit: getIntEnv("AI_RATE_LIMIT", 10),

		// Rate limiting configuration
		RateLimitEnabled: getBoolEnv("RATE_LIMIT_ENABLED", true),
		RateLimitDefault: getEnv("RATE_LIMIT_DEFAULT", "100"),
		RateLimitWindow:  getEnv("RATE_LIMIT_WINDOW", "60s"),

		// Maintenance configuration
		TrashRetentionDays:  getIntEnv("TRASH_RETENTION_DAYS", 30),
		MaintenanceSchedule: getEnv("MAINTENANCE_SCHEDULE", "@hourly"),
	}
}

// getEnv retrieves an environment variable value or returns a default value if not set.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBoolEnv retrieves a boolean environment variable value or returns a default value.
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getIntEnv retrieves an integer environment variable value or returns a default value.
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getDurationEnv retrieves a duration environment variable value or returns a default value.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Validate performs comprehensive validation on the configuration to ensure
// all required fields are present and all values are valid.
//
// This method checks:
//   - Required fields (JWT_SECRET, AI_API_KEY)
//   - Field format validation (ports, durations, etc.)
//   - Cross-field dependencies (storage backend requirements)
//   - Security requirements (key lengths, valid ranges)
//
// The service should call this method after loading configuration and
// before starting to ensure safe operation.
func (c *Config) Validate() error {
	// Validate required fields
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	// Validate JWT secret length
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long for security")
	}

	if c.AIAPIKey == "" {
		return fmt.Errorf("AI_API_KEY environment variable is required")
	}

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a valid port number between 1 and 65535")
	}

	// Validate storage type
	switch c.StorageType {
	case "mongo", "mongodb", "sqlite":
		// Valid storage backends
	default:
		return fmt.Errorf("STORAGE_TYPE must be 'mongo' or 'sqlite'")
	}

	// Validate MongoDB config if using MongoDB
	if c.StorageType == "mongo" || c.StorageType == "mongodb" {
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when using MongoDB")
		}
		if !strings.HasPrefix(c.MongoURI, "mongodb://") && !strings.HasPrefix(c.MongoURI, "mongodb+srv://") {
			return fmt.Errorf("MONGO_URI must be a mongodb:// or mongodb+srv:// URI")
		}
		if c.MongoDatabase == "" {
			return fmt.Errorf("MONGO_DATABASE is required when using MongoDB")
		}
	}

	// Validate SQLite config if using SQLite
	if c.StorageType == "sqlite" && c.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH is required when using SQLite")
	}

	// Validate Redis config if provided
	if c.RedisAddress != "" {
		if db, err := strconv.Atoi(c.RedisDB); err != nil || db < 0 || db > 15 {
			return fmt.Errorf("REDIS_DB must be a number between 0 and 15")
		}
		if poolSize, err := strconv.Atoi(c.RedisPoolSize); err != nil || poolSize < 1 {
			return fmt.Errorf("REDIS_POOL_SIZE must be a positive number")
		}
	}

	if c.SessionCacheTTL <= 0 {
		return fmt.Errorf("SESSION_CACHE_TTL must be a positive duration")
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be a positive duration")
	}

	// Validate AI upstream config
	if !strings.HasPrefix(c.AIAPIURL, "http://") && !strings.HasPrefix(c.AIAPIURL, "https://") {
		return fmt.Errorf("AI_API_URL must be an http or https URL")
	}
	if c.AITimeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be a positive duration")
	}
	if c.AIMaxTokens < 1 {
		return fmt.Errorf("AI_MAX_TOKENS must be a positive number")
	}
	if c.AIRateLimit < 1 {
		return fmt.Errorf("AI_RATE_LIMIT must be a positive number")
	}

	// Validate rate limit config
	if c.RateLimitEnabled {
		if limit, err := strconv.Atoi(c.RateLimitDefault); err != nil || limit < 1 {
			return fmt.Errorf("RATE_LIMIT_DEFAULT must be a positive number")
		}
		// Validate rate limit window format
		if _, err := time.ParseDuration(c.RateLimitWindow); err != nil {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be a valid duration (e.g., '60s', '1m')")
		}
	}

	if c.TrashRetentionDays < 1 {
		return fmt.Errorf("TRASH_RETENTION_DAYS must be a positive number")
	}

	return nil
}
