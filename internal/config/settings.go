package config

import "sync"

// Store binds the settings panel to the config file. Every edit persists
// immediately; writes go through the raw map so keys the struct doesn't
// know about survive a round trip.
type Store struct {
	mu   sync.Mutex
	path string
	cfg  Config
}

// NewStore loads the config at path and returns a live settings store.
func NewStore(path string) (*Store, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, cfg: cfg}, nil
}

// Get returns the current config snapshot.
func (s *Store) Get() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Agent returns the current agent settings.
func (s *Store) Agent() AgentConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Agent
}

// Path returns the backing config file path.
func (s *Store) Path() string {
	return s.path
}

// SetToken updates the agent token and persists immediately.
func (s *Store) SetToken(token string) error {
	return s.set([]string{"agent", "token"}, token, func(c *Config) {
		c.Agent.Token = token
	})
}

// SetAgentID updates the agent identifier and persists immediately.
func (s *Store) SetAgentID(id string) error {
	return s.set([]string{"agent", "agentId"}, id, func(c *Config) {
		c.Agent.AgentID = id
	})
}

func (s *Store) set(path []string, value string, apply func(*Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := LoadRaw(s.path)
	if err != nil {
		return err
	}
	SetValueAtPath(raw, path, value)
	if err := SaveRaw(s.path, raw); err != nil {
		return err
	}
	apply(&s.cfg)
	return nil
}
