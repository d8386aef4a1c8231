package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Resilience ResilienceConfig
	Offline    OfflineConfig
	OTEL       OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ResilienceConfig holds retry and circuit breaker configuration
type ResilienceConfig struct {
	MaxRetries        int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
	AttemptTimeout    time.Duration
	FailureThreshold  int
	BreakerCooldown   time.Duration
	ErrorHistorySize  int
}

// OfflineConfig holds network monitoring and offline fallback configuration
type OfflineConfig struct {
	Enabled              bool
	ProbeURL             string
	ProbeTimeout         time.Duration
	RetryOnlineInterval  time.Duration
	SlowDetectionEnabled bool
	SlowThreshold        time.Duration
	CacheTimeout         time.Duration
	OfflineDataTTL       time.Duration
	TelemetryRefresh     time.Duration
	EnableRandomization  bool
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "hospital_ops"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Resilience: ResilienceConfig{
			MaxRetries:        getEnvAsInt("RESILIENCE_MAX_RETRIES", 3),
			BaseDelay:         getEnvAsMillis("RESILIENCE_BASE_DELAY_MS", 1000),
			MaxDelay:          getEnvAsMillis("RESILIENCE_MAX_DELAY_MS", 10000),
			BackoffMultiplier: getEnvAsFloat("RESILIENCE_BACKOFF_MULTIPLIER", 2.0),
			AttemptTimeout:    getEnvAsMillis("RESILIENCE_ATTEMPT_TIMEOUT_MS", 15000),
			FailureThreshold:  getEnvAsInt("CB_FAILURE_THRESHOLD", 3),
			BreakerCooldown:   getEnvAsMillis("CB_COOLDOWN_MS", 30000),
			ErrorHistorySize:  getEnvAsInt("ERROR_HISTORY_SIZE", 100),
		},
		Offline: OfflineConfig{
			Enabled:              getEnvAsBool("OFFLINE_MODE_ENABLED", true),
			ProbeURL:             getEnv("OFFLINE_PROBE_URL", "http://localhost:8080/health"),
			ProbeTimeout:         getEnvAsMillis("OFFLINE_PROBE_TIMEOUT_MS", 10000),
			RetryOnlineInterval:  getEnvAsMillis("OFFLINE_RETRY_INTERVAL_MS", 5000),
			SlowDetectionEnabled: getEnvAsBool("SLOW_CONNECTION_DETECTION", true),
			SlowThreshold:        getEnvAsMillis("SLOW_CONNECTION_THRESHOLD_MS", 5000),
			CacheTimeout:         getEnvAsMillis("CACHE_TIMEOUT_MS", 300000),
			OfflineDataTTL:       getEnvAsMillis("OFFLINE_DATA_TTL_MS", 300000),
			TelemetryRefresh:     getEnvAsMillis("TELEMETRY_REFRESH_MS", 5000),
			EnableRandomization:  getEnvAsBool("FALLBACK_RANDOMIZATION", true),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "hospital-ops-dashboard"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsMillis(key string, defaultValue int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultValue)) * time.Millisecond
}
