package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Mail     MailConfig
	Nats     NatsConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// SQLEcho switches gorm into Info log mode so every statement is logged.
	SQLEcho bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessExpiration  time.Duration
	RefreshExpiration time.Duration
}

type AuthConfig struct {
	// Login attempts allowed per username within LoginRateWindow.
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

type MailConfig struct {
	SendgridAPIKey string
	FromName       string
	FromAddress    string
}

type NatsConfig struct {
	URL string
}

type LogConfig struct {
	Level string
}

// Load reads configuration from the environment. A .env file is applied
// first when present; real environment variables take precedence over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            GetEnvAsString("APP_PORT", "8080"),
			ShutdownTimeout: GetEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     GetEnvAsString("DB_HOST", "localhost"),
			Port:     GetEnvAsString("DB_PORT", "5432"),
			User:     GetEnvAsString("DB_USER", "postgres"),
			Password: GetEnvAsString("DB_PASSWORD", ""),
			Name:     GetEnvAsString("DB_NAME", "users"),
			SSLMode:  GetEnvAsString("DB_SSL_MODE", "disable"),
			SQLEcho:  GetEnvAsBool("SQL_ECHO", false),
		},
		Redis: RedisConfig{
			Addr:     GetEnvAsString("REDIS_ADDR", ""),
			Password: GetEnvAsString("REDIS_PASSWORD", ""),
			DB:       GetEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            os.Getenv("JWT_SECRET"),
			AccessExpiration:  GetEnvAsDuration("JWT_EXPIRATION", 15*time.Minute),
			RefreshExpiration: GetEnvAsDuration("JWT_REFRESH_EXPIRATION", 24*time.Hour),
		},
		Auth: AuthConfig{
			LoginRateLimit:  GetEnvAsInt("LOGIN_RATE_LIMIT", 5),
			LoginRateWindow: GetEnvAsDuration("LOGIN_RATE_WINDOW", time.Minute),
		},
		Mail: MailConfig{
			SendgridAPIKey: GetEnvAsString("SENDGRID_API_KEY", ""),
			FromName:       GetEnvAsString("MAIL_FROM_NAME", "User API"),
			FromAddress:    GetEnvAsString("MAIL_FROM_ADDRESS", "no-reply@example.com"),
		},
		Nats: NatsConfig{
			URL: GetEnvAsString("NATS_URL", ""),
		},
		Log: LogConfig{
			Level: GetEnvAsString("LOG_LEVEL", "info"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	return cfg, nil
}

// DSN builds the postgres connection string for gorm.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// GetEnvAsString gets environment variable as string with default value
func GetEnvAsString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets environment variable as int with default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvAsDuration gets environment variable as duration with default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetEnvAsBool gets environment variable as bool with default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
