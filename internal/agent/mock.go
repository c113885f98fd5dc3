package agent

import "context"

// MockCaller is a test double for Caller.
type MockCaller struct {
	CallFunc func(ctx context.Context, message string) (*Reply, error)

	// Calls records every message sent.
	Calls []string
}

func (m *MockCaller) Call(ctx context.Context, message string) (*Reply, error) {
	m.Calls = append(m.Calls, message)
	if m.CallFunc != nil {
		return m.CallFunc(ctx, message)
	}
	msg := "mock reply"
	return &Reply{Message: &msg}, nil
}
