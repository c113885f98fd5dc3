package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/plumehq/plume/internal/config"
	"github.com/plumehq/plume/internal/editor"
	"github.com/plumehq/plume/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T, content string) *App {
	t.Helper()
	st, err := config.NewStore(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	return NewApp(editor.NewBuffer(content), "", st, logging.Nop())
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestTypingInsertsIntoBuffer(t *testing.T) {
	a := testApp(t, "")

	a.Update(keyRunes("h"))
	a.Update(keyRunes("i"))
	a.Update(key(tea.KeyEnter))
	a.Update(keyRunes("x"))

	assert.Equal(t, "hi\nx", a.buf.String())
	assert.True(t, a.dirty)
}

func TestBackspaceDeletes(t *testing.T) {
	a := testApp(t, "ab")
	a.buf.MoveTo(2)
	a.Update(key(tea.KeyBackspace))
	assert.Equal(t, "a", a.buf.String())
}

func TestMarkAndArrowsSelect(t *testing.T) {
	a := testApp(t, "hello world")

	a.Update(key(tea.KeyCtrlAt)) // ctrl+space sets the mark
	for i := 0; i < 5; i++ {
		a.Update(key(tea.KeyRight))
	}

	assert.Equal(t, "hello", a.buf.SelectedText())

	a.Update(key(tea.KeyEsc))
	assert.False(t, a.buf.HasMark())
}

func TestSelectAllKey(t *testing.T) {
	a := testApp(t, "abc")
	a.Update(key(tea.KeyCtrlA))
	assert.Equal(t, "abc", a.buf.SelectedText())
}

func TestSettingsViewToggle(t *testing.T) {
	a := testApp(t, "")

	a.Update(key(tea.KeyCtrlE))
	assert.Equal(t, viewSettings, a.view)

	a.Update(key(tea.KeyEsc))
	assert.Equal(t, viewDocument, a.view)
}

func TestSettingsEditPersistsImmediately(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	st, err := config.NewStore(cfgPath)
	require.NoError(t, err)

	a := NewApp(editor.NewBuffer(""), "", st, logging.Nop())
	a.Update(key(tea.KeyCtrlE))

	// Type into the token field; each keystroke hits disk.
	a.Update(keyRunes("t"))
	a.Update(keyRunes("o"))
	a.Update(keyRunes("k"))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "tok", cfg.Agent.Token)

	// Move to the agent ID field and type there.
	a.Update(key(tea.KeyTab))
	a.Update(keyRunes("a"))
	a.Update(keyRunes("1"))

	cfg, err = config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "tok", cfg.Agent.Token)
	assert.Equal(t, "a1", cfg.Agent.AgentID)
}

func TestPromptRequestOpensModal(t *testing.T) {
	a := testApp(t, "")
	reply := make(chan promptResult, 1)

	a.Update(promptRequest{placeholder: "do what?", reply: reply})
	require.NotNil(t, a.modal)
	assert.Equal(t, "do what?", a.modal.ta.Placeholder)
}

func TestModalSubmitResolvesPrompt(t *testing.T) {
	a := testApp(t, "")
	reply := make(chan promptResult, 1)
	a.Update(promptRequest{placeholder: "p", reply: reply})

	a.Update(keyRunes("f"))
	a.Update(keyRunes("i"))
	a.Update(keyRunes("x"))
	a.Update(key(tea.KeyEnter))

	assert.Nil(t, a.modal)
	res := <-reply
	assert.True(t, res.ok)
	assert.Equal(t, "fix", res.value)
}

func TestModalCancelResolvesEmpty(t *testing.T) {
	a := testApp(t, "")
	reply := make(chan promptResult, 1)
	a.Update(promptRequest{placeholder: "p", reply: reply})

	a.Update(key(tea.KeyEsc))

	assert.Nil(t, a.modal)
	res := <-reply
	assert.False(t, res.ok)
	assert.Empty(t, res.value)
}

func TestNoticeBoardShowAndExpire(t *testing.T) {
	var nb noticeBoard

	cmd := nb.show(noticeShowMsg{notice: notice{text: "hello"}, ttl: infoNoticeTTL})
	assert.NotNil(t, cmd)
	assert.Contains(t, nb.View(), "hello")

	id := nb.items[0].id
	nb.expire(id)
	assert.NotContains(t, nb.View(), "hello")
}

func TestStickyNoticeHasNoExpiryCmd(t *testing.T) {
	var nb noticeBoard
	cmd := nb.show(noticeShowMsg{notice: notice{text: "working", sticky: true}})
	assert.Nil(t, cmd)
	assert.Contains(t, nb.View(), "working")
}

func TestRenderDocumentShowsSelection(t *testing.T) {
	buf := editor.NewBuffer("hello world")
	buf.SetSelection(editor.Range{Start: 0, End: 5})
	out := renderDocument(buf)
	assert.Contains(t, out, "h")
	assert.Contains(t, out, "world")
}

func TestTransformDoneClearsBusy(t *testing.T) {
	a := testApp(t, "")
	a.busy = true
	a.Update(transformDoneMsg{})
	assert.False(t, a.busy)
	assert.True(t, a.dirty)
}
