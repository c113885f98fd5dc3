// Package workflow coordinates the end-to-end transform flow: capture the
// selection, collect an instruction, call the remote agent, and write the
// reply back into the document.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/plumehq/plume/internal/agent"
	"github.com/plumehq/plume/internal/config"
	"github.com/plumehq/plume/internal/editor"
	"github.com/plumehq/plume/internal/hooks"
	"github.com/plumehq/plume/internal/logging"
)

// DefaultInstruction is sent when the user typed the text itself instead
// of selecting existing text.
const DefaultInstruction = "process the text"

// FallbackReply is inserted when the agent's response has no message field.
const FallbackReply = "No response from agent."

// Modal placeholders, chosen by whether a selection exists.
const (
	placeholderSelection = "Describe what to do with the selected text"
	placeholderFreeText  = "Type the text to send to the agent"
)

// Sentinel errors for aborted runs. A cancelled modal is not an error.
var (
	ErrBusy          = errors.New("a transform is already in progress")
	ErrNotConfigured = errors.New("agent token or agent ID not configured")
	ErrNoDocument    = errors.New("no active document")
)

// Prompter collects a freeform instruction from the user. It blocks until
// the prompt is submitted or dismissed; ok is false when dismissed.
type Prompter interface {
	Prompt(ctx context.Context, placeholder string) (value string, ok bool, err error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(ctx context.Context, placeholder string) (string, bool, error)

func (f PrompterFunc) Prompt(ctx context.Context, placeholder string) (string, bool, error) {
	return f(ctx, placeholder)
}

// CallerFactory builds an agent caller from the settings current at
// invocation time, so settings edits apply without a restart.
type CallerFactory func(cfg config.AgentConfig) agent.Caller

// Transformer runs the transform workflow. At most one run may be in
// flight; further invocations are rejected with ErrBusy.
type Transformer struct {
	settings  func() config.AgentConfig
	newCaller CallerFactory
	prompter  Prompter
	notifier  editor.Notifier
	hooks     *hooks.Manager
	log       *logging.Logger

	timeout  time.Duration // overrides the configured timeout when set
	inFlight atomic.Bool
}

// Option customizes a Transformer.
type Option func(*Transformer)

// WithHooks attaches a hook manager for lifecycle events.
func WithHooks(m *hooks.Manager) Option {
	return func(t *Transformer) { t.hooks = m }
}

// WithCallerFactory replaces how agent callers are built. Used by tests
// and the pipe mode.
func WithCallerFactory(f CallerFactory) Option {
	return func(t *Transformer) { t.newCaller = f }
}

// WithTimeout overrides the configured request timeout.
func WithTimeout(d time.Duration) Option {
	return func(t *Transformer) { t.timeout = d }
}

// New creates a Transformer. settings is re-read on every run.
func New(
	settings func() config.AgentConfig,
	prompter Prompter,
	notifier editor.Notifier,
	log *logging.Logger,
	opts ...Option,
) *Transformer {
	t := &Transformer{
		settings: settings,
		prompter: prompter,
		notifier: notifier,
		log:      log.Sub("workflow"),
	}
	t.newCaller = func(cfg config.AgentConfig) agent.Caller {
		return agent.NewClient(cfg.BaseURL, cfg.Token, cfg.AgentID, log)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run executes one transform against the given document surface.
//
// The selection is captured before the prompt opens and restored after it
// closes: the interactive prompt may have altered focus or selection
// state in the meantime. Every failure ends in a user-visible notice; a
// dismissed or empty prompt aborts silently.
func (t *Transformer) Run(ctx context.Context, surf editor.Surface) error {
	if !t.inFlight.CompareAndSwap(false, true) {
		t.notifier.Warn("A transform is already in progress")
		return ErrBusy
	}
	defer t.inFlight.Store(false)

	cfg := t.settings()
	if cfg.Token == "" || cfg.AgentID == "" {
		t.notifier.Warn("Set the agent token and agent ID in settings first")
		return ErrNotConfigured
	}
	if surf == nil {
		t.notifier.Warn("No active document")
		return ErrNoDocument
	}

	sel := surf.Selection()
	selected := surf.SelectedText()

	placeholder := placeholderFreeText
	if selected != "" {
		placeholder = placeholderSelection
	}

	value, ok, err := t.prompter.Prompt(ctx, placeholder)
	if err != nil {
		return fmt.Errorf("prompt: %w", err)
	}
	if !ok || strings.TrimSpace(value) == "" {
		t.log.Debug().Msg("prompt dismissed, aborting")
		return nil
	}

	surf.SetSelection(sel)

	instruction, text := value, selected
	if selected == "" {
		instruction, text = DefaultInstruction, value
	}
	message := composeMessage(instruction, text)

	timeout := t.timeout
	if timeout == 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	runID := uuid.New().String()
	t.hooks.Emit(ctx, hooks.EventTransformStarted, map[string]any{
		"id":          runID,
		"agentId":     cfg.AgentID,
		"instruction": instruction,
		"text":        text,
	})

	dismiss := t.notifier.Persistent("Contacting agent...")
	defer dismiss()

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	reply, err := t.newCaller(cfg).Call(cctx, message)
	if err != nil {
		dismiss()
		t.notifyCallError(err, timeout)
		t.log.Warn().Err(err).Str("id", runID).Msg("agent call failed")
		t.hooks.Emit(ctx, hooks.EventTransformFailed, map[string]any{
			"id":          runID,
			"agentId":     cfg.AgentID,
			"instruction": instruction,
			"text":        text,
			"error":       err.Error(),
		})
		return err
	}

	replaceWith := FallbackReply
	if reply.Message != nil {
		replaceWith = *reply.Message
	}
	surf.Replace(sel, replaceWith)

	dismiss()
	t.notifier.Info("Agent response inserted")
	t.log.Info().
		Str("id", runID).
		Dur("duration", time.Since(start)).
		Int("replyLen", len(replaceWith)).
		Msg("transform complete")
	t.hooks.Emit(ctx, hooks.EventTransformCompleted, map[string]any{
		"id":          runID,
		"agentId":     cfg.AgentID,
		"instruction": instruction,
		"text":        text,
		"reply":       replaceWith,
	})
	return nil
}

func (t *Transformer) notifyCallError(err error, timeout time.Duration) {
	var se *agent.StatusError
	if errors.As(err, &se) {
		t.notifier.Error(fmt.Sprintf("Agent request failed with status %d", se.Code))
		return
	}
	t.notifier.Error(fmt.Sprintf("Agent request failed or timed out after %s", timeout))
}

// composeMessage joins the instruction and text into the single message
// the agent endpoint expects.
func composeMessage(instruction, text string) string {
	return fmt.Sprintf("Instruction:\n%s\n\nText:\n%s", instruction, text)
}
