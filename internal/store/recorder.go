package store

import (
	"context"

	"github.com/plumehq/plume/internal/hooks"
)

// CompletedHook returns a hook handler that records a successful transform.
func CompletedHook(hs HistoryStore) hooks.Handler {
	return func(ctx context.Context, p hooks.Payload) error {
		return hs.Record(TransformRecord{
			ID:          str(p.Data, "id"),
			AgentID:     str(p.Data, "agentId"),
			Instruction: str(p.Data, "instruction"),
			SentText:    str(p.Data, "text"),
			Reply:       str(p.Data, "reply"),
			Status:      StatusOK,
		})
	}
}

// FailedHook returns a hook handler that records a failed transform.
func FailedHook(hs HistoryStore) hooks.Handler {
	return func(ctx context.Context, p hooks.Payload) error {
		return hs.Record(TransformRecord{
			ID:          str(p.Data, "id"),
			AgentID:     str(p.Data, "agentId"),
			Instruction: str(p.Data, "instruction"),
			SentText:    str(p.Data, "text"),
			Status:      StatusError,
			Error:       str(p.Data, "error"),
		})
	}
}

func str(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}
