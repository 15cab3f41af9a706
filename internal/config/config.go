// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/diewo77/go-cotizaciones/internal/logging"
	"github.com/go-playground/validator/v10"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      logging.Config
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string `validate:"required"`
	ReadTimeout  int    `validate:"min=1"` // seconds
	WriteTimeout int    `validate:"min=1"` // seconds
	IdleTimeout  int    `validate:"min=1"` // seconds
}

// StorageConfig selects where the snapshot blob lives.
type StorageConfig struct {
	Driver string `validate:"oneof=file sqlite postgres redis memory"`
	Path   string `validate:"required_if=Driver file,required_if=Driver sqlite"`
	Key    string `validate:"required"`
	Debug  bool
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds the redis connection used by the redis driver.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int `validate:"min=0"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev          bool
	Numbering    string  `validate:"oneof=count max"`
	DefaultTax   float64 `validate:"min=0"`
	ValidityDays int     `validate:"min=0"`
}

// DSN returns the PostgreSQL connection string in key=value format.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", "file"),
			Path:   getEnv("STORAGE_PATH", "data"),
			Key:    getEnv("STORAGE_KEY", "cotizaciones_app_data"),
			Debug:  getEnvBool("STORAGE_DEBUG", false),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "cotizaciones"),
			Password: getEnv("DB_PASSWORD", "cotizaciones"),
			DBName:   getEnv("DB_NAME", "cotizaciones"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Log: logging.Config{
			Level:   getEnv("LOG_LEVEL", "info"),
			Format:  getEnv("LOG_FORMAT", "json"),
			Service: "cotizaciones",
			File: logging.FileConfig{
				Enabled:    getEnvBool("LOG_FILE_ENABLED", false),
				Path:       getEnv("LOG_FILE_PATH", "logs/cotizaciones.log"),
				MaxSizeMB:  getEnvInt("LOG_FILE_MAX_SIZE_MB", 10),
				MaxBackups: getEnvInt("LOG_FILE_MAX_BACKUPS", 3),
				MaxAgeDays: getEnvInt("LOG_FILE_MAX_AGE_DAYS", 28),
				Compress:   getEnvBool("LOG_FILE_COMPRESS", false),
			},
		},
		App: AppConfig{
			Dev:          getEnvBool("DEV", true),
			Numbering:    strings.ToLower(getEnv("NUMBERING", "count")),
			DefaultTax:   getEnvFloat("DEFAULT_IVA", 16),
			ValidityDays: getEnvInt("VALIDITY_DAYS", 30),
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the loaded values and reports every problem at once.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	parts := strings.Split(e.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	field := strings.ToLower(strings.Join(parts, "."))

	switch e.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
