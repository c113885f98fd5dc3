package config

import (
	"fmt"
	"net/url"
	"slices"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
// Token and agent ID are deliberately not required here: an unconfigured
// plume still loads, and the transform workflow warns at use time.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.Agent.TimeoutSeconds < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "agent.timeoutSeconds",
			Message: fmt.Sprintf("must be positive, got %d", cfg.Agent.TimeoutSeconds),
		})
	}
	if cfg.Agent.BaseURL != "" {
		if u, err := url.Parse(cfg.Agent.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			issues = append(issues, ValidationIssue{
				Path:    "agent.baseUrl",
				Message: fmt.Sprintf("must be an absolute URL, got %q", cfg.Agent.BaseURL),
			})
		}
	}

	validStores := []string{"sqlite", "memory"}
	if cfg.History.Store != "" && !slices.Contains(validStores, cfg.History.Store) {
		issues = append(issues, ValidationIssue{
			Path:    "history.store",
			Message: fmt.Sprintf("must be one of %v, got %q", validStores, cfg.History.Store),
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	for _, group := range []struct {
		path    string
		entries []HookEntry
	}{
		{"hooks.transformStarted", cfg.Hooks.TransformStarted},
		{"hooks.transformCompleted", cfg.Hooks.TransformCompleted},
		{"hooks.transformFailed", cfg.Hooks.TransformFailed},
	} {
		for i, h := range group.entries {
			if h.Command == "" {
				issues = append(issues, ValidationIssue{
					Path:    fmt.Sprintf("%s[%d].command", group.path, i),
					Message: "command is required",
				})
			}
			if h.Timeout < 0 {
				issues = append(issues, ValidationIssue{
					Path:    fmt.Sprintf("%s[%d].timeout", group.path, i),
					Message: fmt.Sprintf("must be positive, got %d", h.Timeout),
				})
			}
		}
	}

	return issues
}
