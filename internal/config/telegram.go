package config

import "time"

type TelegramConfig struct {
	BotToken      string        `yaml:"bot_token" validate:"required"`
	APIBaseURL    string        `yaml:"api_base_url" validate:"required,url"`
	AllowedUserID string        `yaml:"allowed_user_id"`
	WebhookSecret string        `yaml:"webhook_secret"`
	Timeout       time.Duration `yaml:"timeout"`
}

func loadTelegramConfig() *TelegramConfig {
	return &TelegramConfig{
		BotToken:      getEnv("TELEGRAM_TOKEN", ""),
		APIBaseURL:    getEnv("TELEGRAM_API_BASE_URL", "https://api.telegram.org"),
		AllowedUserID: getEnvTrimmed("ALLOWED_USER_ID", ""),
		WebhookSecret: getEnv("TELEGRAM_WEBHOOK_SECRET", ""),
		Timeout:       getEnvAsDuration("TELEGRAM_TIMEOUT", 10*time.Second),
	}
}
