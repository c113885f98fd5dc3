// Package hooks dispatches transform lifecycle events to registered
// handlers, including shell-command hooks declared in config.
package hooks

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/plumehq/plume/internal/config"
	"github.com/plumehq/plume/internal/logging"
)

// Event names.
const (
	EventTransformStarted   = "transform_started"
	EventTransformCompleted = "transform_completed"
	EventTransformFailed    = "transform_failed"
)

// Payload carries event data to handlers.
type Payload struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data,omitempty"`
}

// Handler handles one event. A returned error is logged but does not stop
// other handlers.
type Handler func(ctx context.Context, p Payload) error

// Manager holds hook registrations and dispatches events.
type Manager struct {
	mu       sync.RWMutex
	handlers map[string][]namedHandler
	log      *logging.Logger
}

type namedHandler struct {
	name    string
	handler Handler
}

// NewManager creates an empty hook manager.
func NewManager(log *logging.Logger) *Manager {
	return &Manager{
		handlers: make(map[string][]namedHandler),
		log:      log.Sub("hooks"),
	}
}

// On registers a handler for the given event under a name used in logs.
func (m *Manager) On(event, name string, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[event] = append(m.handlers[event], namedHandler{name: name, handler: handler})
	m.log.Debug().Str("event", event).Str("handler", name).Msg("hook registered")
}

// Count returns the number of handlers registered for an event.
func (m *Manager) Count(event string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers[event])
}

// Emit dispatches an event to all handlers in registration order.
// A nil Manager is a no-op, so callers don't have to guard every emit.
func (m *Manager) Emit(ctx context.Context, event string, data map[string]any) {
	if m == nil {
		return
	}
	m.mu.RLock()
	handlers := make([]namedHandler, len(m.handlers[event]))
	copy(handlers, m.handlers[event])
	m.mu.RUnlock()

	payload := Payload{Event: event, Data: data}
	for _, h := range handlers {
		if err := h.handler(ctx, payload); err != nil {
			m.log.Warn().
				Err(err).
				Str("event", event).
				Str("handler", h.name).
				Msg("hook handler error")
		}
	}
}

// RegisterConfigHooks attaches the shell-command hooks declared in config.
func (m *Manager) RegisterConfigHooks(cfg config.HooksConfig) {
	for i, h := range cfg.TransformStarted {
		m.On(EventTransformStarted, hookName("started", i), CommandHandler(h))
	}
	for i, h := range cfg.TransformCompleted {
		m.On(EventTransformCompleted, hookName("completed", i), CommandHandler(h))
	}
	for i, h := range cfg.TransformFailed {
		m.On(EventTransformFailed, hookName("failed", i), CommandHandler(h))
	}
}

func hookName(event string, i int) string {
	return fmt.Sprintf("config.%s.%d", event, i)
}

const defaultCommandTimeout = 10 * time.Second

// CommandHandler wraps a config hook entry as a Handler. The command runs
// through the shell with the JSON payload on stdin.
func CommandHandler(entry config.HookEntry) Handler {
	timeout := defaultCommandTimeout
	if entry.Timeout > 0 {
		timeout = time.Duration(entry.Timeout) * time.Millisecond
	}
	return func(ctx context.Context, p Payload) error {
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		cctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		cmd := exec.CommandContext(cctx, "sh", "-c", entry.Command)
		cmd.Stdin = strings.NewReader(string(data))
		return cmd.Run()
	}
}
