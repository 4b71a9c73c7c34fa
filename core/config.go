package core

import (
	"fmt"
	"strings"
)

type AnalyticsConfig struct {
	FlushMaxAttempts int `koanf:"flush_max_attempts" mapstructure:"flush_max_attempts"`
}

type Config struct {
	SDKName               string          `koanf:"sdk_name" mapstructure:"sdk_name"`
	AppToken              string          `koanf:"app_token" mapstructure:"app_token"`
	BaseURL               string          `koanf:"base_url" mapstructure:"base_url"`
	SessionNamespace      string          `koanf:"session_namespace" mapstructure:"session_namespace"`
	RequestTimeoutSeconds int             `koanf:"request_timeout_seconds" mapstructure:"request_timeout_seconds"`
	Analytics             AnalyticsConfig `koanf:"analytics" mapstructure:"analytics"`
}

func DefaultConfig() Config {
	return Config{
		SDKName:          "social-sdk",
		SessionNamespace: "social_sdk",
		Analytics:        AnalyticsConfig{},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.SDKName) == "" {
		return fmt.Errorf("core: sdk_name is required")
	}
	if strings.TrimSpace(c.SessionNamespace) == "" {
		return fmt.Errorf("core: session_namespace is required")
	}
	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("core: request_timeout_seconds must not be negative")
	}
	return nil
}
