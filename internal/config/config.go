package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"smsbridge/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      *AppConfig      `yaml:"app" validate:"required"`
	Telegram *TelegramConfig `yaml:"telegram" validate:"required"`
	SMS      *SMSConfig      `yaml:"sms" validate:"required"`
	Redis    *RedisConfig    `yaml:"redis" validate:"required"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
	Port        int    `yaml:"port" validate:"min=1,max=65535"`
	Host        string `yaml:"host"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format" validate:"oneof=json text"`
	LogOutput   string `yaml:"log_output"`
	LogPretty   bool   `yaml:"log_pretty"`
}

// Load reads the process environment (and an optional .env file) once.
// The returned Config is treated as read-only for the process lifetime.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		App:      loadAppConfig(),
		Telegram: loadTelegramConfig(),
		SMS:      loadSMSConfig(),
		Redis:    loadRedisConfig(),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks struct tags and the provider specific requirements.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch c.SMS.Provider {
	case ProviderTwilio:
		if err := validate.Struct(c.SMS.Twilio); err != nil {
			return fmt.Errorf("invalid twilio config: %w", err)
		}
	case ProviderSNS:
		if err := validate.Struct(c.SMS.AWS); err != nil {
			return fmt.Errorf("invalid aws sns config: %w", err)
		}
	}

	return nil
}

func loadAppConfig() *AppConfig {
	return &AppConfig{
		Name:        getEnv("APP_NAME", utils.AppName),
		Version:     getEnv("APP_VERSION", utils.AppVersion),
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnvAsInt("APP_PORT", 8080),
		Host:        getEnv("APP_HOST", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogOutput:   getEnv("LOG_OUTPUT", "stdout"),
		LogPretty:   getEnvAsBool("LOG_PRETTY", false),
	}
}

func (a *AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvTrimmed is getEnv for identity values where stray whitespace from
// a hosting dashboard must not change the comparison.
func getEnvTrimmed(key, defaultValue string) string {
	return strings.TrimSpace(getEnv(key, defaultValue))
}

func IsProduction() bool {
	return getEnv("APP_ENV", "development") == "production"
}
