package config

import "fmt"

// DefaultBaseURL is the cloud agent API base used when none is configured.
const DefaultBaseURL = "https://api.timeweb.cloud"

// DefaultTimeoutSeconds bounds a single agent call.
const DefaultTimeoutSeconds = 30

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with defaults applied. Credential fields stay
// empty: an unconfigured plume must load cleanly and fail only at use time.
func Defaults() Config {
	cfg := Config{}
	applyDefaults(&cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Agent.BaseURL == "" {
		cfg.Agent.BaseURL = DefaultBaseURL
	}
	if cfg.Agent.TimeoutSeconds == 0 {
		cfg.Agent.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.History.Store == "" {
		cfg.History.Store = "sqlite"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
