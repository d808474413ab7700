package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Feed     FeedConfig
	Logging  LoggingConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	Environment     string
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// For SQLite
	Path string
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BCryptCost         int
}

// FeedConfig contains notification feed configuration
type FeedConfig struct {
	PollInterval      time.Duration
	HeartbeatInterval time.Duration
	TickTimeout       time.Duration
	MaxAlerts         int
	MarkerTTL         time.Duration
	// Thresholds used by the alert predicates
	ExpiryWindowDays   int
	LowAttendanceDays  int
	InactiveDays       int
	HighValueAmount    float64
	SalesDeltaPercent  float64
	GrowthTargetPct    float64
	PlanImbalanceRatio float64
	LargeTableBytes    int64
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 0),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
			Environment:     getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "gymdesk"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Path:            getEnv("DB_PATH", "./gymdesk.db"),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", ""),
			AccessTokenExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshTokenExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
			BCryptCost:         getEnvAsInt("BCRYPT_COST", 12),
		},
		Feed: FeedConfig{
			PollInterval:       getEnvAsDuration("FEED_POLL_INTERVAL", 3*time.Second),
			HeartbeatInterval:  getEnvAsDuration("FEED_HEARTBEAT_INTERVAL", 30*time.Second),
			TickTimeout:        getEnvAsDuration("FEED_TICK_TIMEOUT", 5*time.Second),
			MaxAlerts:          getEnvAsInt("FEED_MAX_ALERTS", 20),
			MarkerTTL:          getEnvAsDuration("FEED_MARKER_TTL", 90*24*time.Hour),
			ExpiryWindowDays:   getEnvAsInt("FEED_EXPIRY_WINDOW_DAYS", 7),
			LowAttendanceDays:  getEnvAsInt("FEED_LOW_ATTENDANCE_DAYS", 14),
			InactiveDays:       getEnvAsInt("FEED_INACTIVE_DAYS", 30),
			HighValueAmount:    getEnvAsFloat("FEED_HIGH_VALUE_AMOUNT", 1000),
			SalesDeltaPercent:  getEnvAsFloat("FEED_SALES_DELTA_PERCENT", 20),
			GrowthTargetPct:    getEnvAsFloat("FEED_GROWTH_TARGET_PERCENT", 10),
			PlanImbalanceRatio: getEnvAsFloat("FEED_PLAN_IMBALANCE_RATIO", 5),
			LargeTableBytes:    int64(getEnvAsInt("FEED_LARGE_TABLE_BYTES", 50*1024*1024)),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Feed.PollInterval <= 0 {
		return fmt.Errorf("feed poll interval must be positive")
	}

	if c.Feed.MaxAlerts < 1 {
		return fmt.Errorf("feed max alerts must be at least 1")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
