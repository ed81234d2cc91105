package config

import (
	"fmt"
	"strings"
)

// Validate checks the config for:
//   - The webhook URL secret being present
//   - A usable poll interval
//   - Translation being enabled without an API key
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Webhook.URL == "" {
		errs = append(errs, fmt.Sprintf("%s must be set", EnvWebhookURL))
	}
	if cfg.Poll.Interval <= 0 {
		errs = append(errs, "poll.interval must be positive")
	}
	if cfg.Translate.Enabled && cfg.Translate.APIKey == "" {
		errs = append(errs, fmt.Sprintf("translate.enabled requires %s", EnvDeeplAPIKey))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
