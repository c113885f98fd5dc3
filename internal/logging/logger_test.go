package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")
	require.NotNil(t, log)

	log.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestNewDefaultWriter(t *testing.T) {
	log := New(nil, "info")
	require.NotNil(t, log)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Debug().Msg("quiet")
	log.Info().Msg("quiet too")
	log.Warn().Msg("loud")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
}

func TestSub(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug")

	log.Sub("editor").Info().Msg("sub message")
	out := buf.String()
	assert.Contains(t, out, "sub message")
	assert.Contains(t, out, "editor")
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug")

	log.With("agent", "abc-123").Info().Msg("tagged")
	out := buf.String()
	assert.Contains(t, out, "abc-123")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "plume.log")
	log, err := NewFile(path, "info")
	require.NoError(t, err)

	log.Info().Msg("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error().Msg("dropped")
}
