// Package config defines the process-wide configuration for the CO₂
// forecast platform. Values are loaded once at startup from the OS
// environment, with a best-effort .env file for local development.
//
// Generative-AI and SMTP credentials are deliberately not validated at
// startup: their absence surfaces at call time as degraded content or a
// delivery error, never as a boot failure.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the top-level configuration struct, populated once during
// process initialization and never modified.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Forecast ForecastConfig
	Gemini   GeminiConfig
	SMTP     SMTPConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port         int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"120s"`
	IdleTimeout  time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
}

// DatabaseConfig holds PostgreSQL connection and pool tuning parameters.
type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" default:"postgres"`
	Password        string        `envconfig:"DB_PASSWORD" default:"postgres"`
	Database        string        `envconfig:"DB_NAME" default:"co2_platform"`
	SSLMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	ConnMaxIdleTime time.Duration `envconfig:"DB_CONN_MAX_IDLE_TIME" default:"5m"`
}

// ForecastConfig holds the read-only model artifact locations.
type ForecastConfig struct {
	ModelPath   string `envconfig:"FORECAST_MODEL_PATH" default:"artifacts/model_final.json"`
	ScalerPath  string `envconfig:"FORECAST_SCALER_PATH" default:"artifacts/scaler_final.json"`
	DatasetPath string `envconfig:"FORECAST_DATASET_PATH" default:"artifacts/co2_mm_mlo.csv"`
}

// GeminiConfig holds the generative text provider settings.
type GeminiConfig struct {
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	Model   string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	BaseURL string `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
}

// SMTPConfig holds the outbound email relay settings.
type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Address  string `envconfig:"GMAIL_ADDRESS"`
	Password string `envconfig:"GMAIL_PASSWORD"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig loads configuration from the environment. A .env file in the
// working directory is applied first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration invariants that must hold at startup.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host must not be empty")
	}

	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("invalid max open connections: %d", c.Database.MaxOpenConns)
	}

	if c.Forecast.ModelPath == "" || c.Forecast.ScalerPath == "" || c.Forecast.DatasetPath == "" {
		return fmt.Errorf("forecast artifact paths must not be empty")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}
