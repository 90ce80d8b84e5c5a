package config

import "time"

const (
	ProviderTwilio = "twilio"
	ProviderSNS    = "sns"
)

type SMSConfig struct {
	Provider             string        `yaml:"provider" validate:"oneof=twilio sns"`
	Twilio               *TwilioConfig `yaml:"twilio" validate:"-"`
	AWS                  *AWSSNSConfig `yaml:"aws" validate:"-"`
	FallbackFrom         string        `yaml:"fallback_from"`
	CountryCode          string        `yaml:"country_code" validate:"required,numeric"`
	SendTimeout          time.Duration `yaml:"send_timeout"`
	RejectInvalidNumbers bool          `yaml:"reject_invalid_numbers"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid" validate:"required"`
	AuthToken  string `yaml:"auth_token" validate:"required"`
	FromNumber string `yaml:"from_number"`
}

type AWSSNSConfig struct {
	Region string `yaml:"region" validate:"required"`
}

func loadSMSConfig() *SMSConfig {
	twilio := &TwilioConfig{
		AccountSID: getEnv("TWILIO_SID", getEnv("TWILIO_ACCOUNT_SID", "")),
		AuthToken:  getEnv("TWILIO_AUTH", getEnv("TWILIO_AUTH_TOKEN", "")),
		FromNumber: getEnv("TWILIO_NUMBER", getEnv("TWILIO_FROM_NUMBER", "")),
	}

	return &SMSConfig{
		Provider: getEnv("SMS_PROVIDER", ProviderTwilio),
		Twilio:   twilio,
		AWS: &AWSSNSConfig{
			Region: getEnv("AWS_REGION", "us-east-1"),
		},
		FallbackFrom:         getEnvTrimmed("SMS_FALLBACK_FROM", twilio.FromNumber),
		CountryCode:          getEnv("SMS_COUNTRY_CODE", "995"),
		SendTimeout:          getEnvAsDuration("SMS_SEND_TIMEOUT", 15*time.Second),
		RejectInvalidNumbers: getEnvAsBool("SMS_REJECT_INVALID_NUMBERS", false),
	}
}
