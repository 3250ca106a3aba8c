package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Engine   EngineConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// EngineConfig holds summary engine tunables.
type EngineConfig struct {
	// BulkWorkerCount bounds the bulk orchestrator's concurrency.
	BulkWorkerCount int
	// DefaultOTThresholdHours applies when a rate policy carries no
	// overtime threshold.
	DefaultOTThresholdHours float64
	// DefaultTaxPercentage applies when a rate policy carries no tax rate.
	DefaultTaxPercentage float64
	// DefaultExpectedWorkingDays applies when a rate policy carries no
	// expected-working-days figure.
	DefaultExpectedWorkingDays int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "workforce"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Engine configuration
	workerCount, err := strconv.Atoi(getEnv("BULK_WORKER_COUNT", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid BULK_WORKER_COUNT: %w", err)
	}

	otThreshold, err := strconv.ParseFloat(getEnv("DEFAULT_OT_THRESHOLD_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_OT_THRESHOLD_HOURS: %w", err)
	}

	taxPercentage, err := strconv.ParseFloat(getEnv("DEFAULT_TAX_PERCENTAGE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_TAX_PERCENTAGE: %w", err)
	}

	expectedDays, err := strconv.Atoi(getEnv("DEFAULT_EXPECTED_WORKING_DAYS", "22"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_EXPECTED_WORKING_DAYS: %w", err)
	}

	config.Engine = EngineConfig{
		BulkWorkerCount:            workerCount,
		DefaultOTThresholdHours:    otThreshold,
		DefaultTaxPercentage:       taxPercentage,
		DefaultExpectedWorkingDays: expectedDays,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Engine.BulkWorkerCount < 1 {
		return fmt.Errorf("BULK_WORKER_COUNT must be at least 1")
	}
	if c.Engine.DefaultOTThresholdHours <= 0 {
		return fmt.Errorf("DEFAULT_OT_THRESHOLD_HOURS must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
