package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/plumehq/plume/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallSendsWellFormedRequest(t *testing.T) {
	var gotMethod, gotPath, gotAuth, gotContentType string
	var gotBody callRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"message": "done"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-123", "agent-1", logging.Nop())
	reply, err := c.Call(context.Background(), "Instruction:\nfix\n\nText:\nhello")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/v1/cloud-ai/agents/agent-1/call", gotPath)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Instruction:\nfix\n\nText:\nhello", gotBody.Message)

	require.NotNil(t, reply.Message)
	assert.Equal(t, "done", *reply.Message)
}

func TestCallTrimsTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "t", "a", logging.Nop())
	_, err := c.Call(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/cloud-ai/agents/a/call", gotPath)
}

func TestCallStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t", "a", logging.Nop())
	_, err := c.Call(context.Background(), "x")
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 500, se.Code)
	assert.Contains(t, err.Error(), "500")
}

func TestCallMissingMessageField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t", "a", logging.Nop())
	reply, err := c.Call(context.Background(), "x")
	require.NoError(t, err)
	assert.Nil(t, reply.Message)
}

func TestCallNonJSONBodyDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t", "a", logging.Nop())
	reply, err := c.Call(context.Background(), "x")
	require.NoError(t, err)
	assert.Nil(t, reply.Message)
}

func TestCallEmptyMessageIsPresent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": ""}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t", "a", logging.Nop())
	reply, err := c.Call(context.Background(), "x")
	require.NoError(t, err)
	require.NotNil(t, reply.Message)
	assert.Equal(t, "", *reply.Message)
}

func TestCallContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t", "a", logging.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Call(ctx, "x")
	require.Error(t, err)

	var se *StatusError
	assert.False(t, errors.As(err, &se), "deadline must not look like an HTTP status error")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
