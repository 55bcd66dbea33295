package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded once at startup.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Mail     MailConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

type SessionConfig struct {
	Secret string
	Name   string
	MaxAge int // seconds
}

type MailConfig struct {
	FromEmail string
	FromName  string
}

// ErrMissingConfig indicates a required connection parameter is absent.
// The server must refuse normal operation and serve the configuration-error
// state instead.
var ErrMissingConfig = errors.New("missing required configuration: DATABASE_URL and SESSION_SECRET must be set")

// Load reads configuration from .env files and the environment.
// DATABASE_URL and SESSION_SECRET are hard startup preconditions.
func Load() (*Config, error) {
	// .env.local wins over .env when both exist.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "localhost"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		},
		Session: SessionConfig{
			Secret: os.Getenv("SESSION_SECRET"),
			Name:   getEnv("SESSION_NAME", "narah_session"),
			MaxAge: getEnvAsInt("SESSION_MAX_AGE", 86400*30),
		},
		Mail: MailConfig{
			FromEmail: getEnv("FROM_EMAIL", "noreply@narah.com"),
			FromName:  getEnv("FROM_NAME", "Narah"),
		},
	}

	if cfg.Database.URL == "" || cfg.Session.Secret == "" {
		return cfg, ErrMissingConfig
	}

	return cfg, nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
