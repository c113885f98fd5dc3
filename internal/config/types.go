// Package config loads and persists plume settings.
package config

// Config is the root configuration for plume.
type Config struct {
	Agent   AgentConfig   `yaml:"agent,omitempty"`
	History HistoryConfig `yaml:"history,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Hooks   HooksConfig   `yaml:"hooks,omitempty"`
}

// AgentConfig identifies the remote cloud agent and how to reach it.
// Token and AgentID default to empty strings; whether they are set is
// checked at use time, not at load time.
type AgentConfig struct {
	Token          string `yaml:"token,omitempty"`          // bearer token, may be "${ENV_VAR}"
	AgentID        string `yaml:"agentId,omitempty"`        // opaque agent identifier
	BaseURL        string `yaml:"baseUrl,omitempty"`        // API base, default https://api.timeweb.cloud
	TimeoutSeconds int    `yaml:"timeoutSeconds,omitempty"` // request deadline, default 30
}

// HistoryConfig controls the local transform history.
type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"` // default true
	Store   string `yaml:"store,omitempty"`   // "sqlite" | "memory"
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	File  string `yaml:"file,omitempty"`  // log file path; empty means stderr (or the default file under the TUI)
}

// HooksConfig attaches shell commands to transform lifecycle events.
type HooksConfig struct {
	TransformStarted   []HookEntry `yaml:"transformStarted,omitempty"`
	TransformCompleted []HookEntry `yaml:"transformCompleted,omitempty"`
	TransformFailed    []HookEntry `yaml:"transformFailed,omitempty"`
}

// HookEntry is a single hook command.
type HookEntry struct {
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout,omitempty"` // milliseconds
}

// HistoryEnabled reports whether transform history should be recorded.
func (c Config) HistoryEnabled() bool {
	if c.History.Enabled == nil {
		return true
	}
	return *c.History.Enabled
}
