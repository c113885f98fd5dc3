package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer("hello")
	assert.Equal(t, "hello", b.String())
	assert.Equal(t, 0, b.Cursor())
	assert.False(t, b.HasMark())
	assert.True(t, b.Selection().IsEmpty())
}

func TestSelectionBetweenMarkAndCursor(t *testing.T) {
	b := NewBuffer("hello world")
	b.MoveTo(6)
	b.SetMark()
	b.Move(5)

	assert.Equal(t, Range{Start: 6, End: 11}, b.Selection())
	assert.Equal(t, "world", b.SelectedText())
}

func TestSelectionOrderedWhenCursorBeforeMark(t *testing.T) {
	b := NewBuffer("hello world")
	b.MoveTo(5)
	b.SetMark()
	b.MoveTo(0)

	assert.Equal(t, Range{Start: 0, End: 5}, b.Selection())
	assert.Equal(t, "hello", b.SelectedText())
}

func TestReplaceSelection(t *testing.T) {
	b := NewBuffer("hello world")
	b.Replace(Range{Start: 6, End: 11}, "plume")

	assert.Equal(t, "hello plume", b.String())
	assert.Equal(t, 11, b.Cursor())
	assert.False(t, b.HasMark())
}

func TestReplaceEmptyRangeInserts(t *testing.T) {
	b := NewBuffer("ab")
	b.Replace(Range{Start: 1, End: 1}, "XY")
	assert.Equal(t, "aXYb", b.String())
	assert.Equal(t, 3, b.Cursor())
}

func TestReplaceClampsOutOfBounds(t *testing.T) {
	b := NewBuffer("abc")
	b.Replace(Range{Start: -4, End: 99}, "z")
	assert.Equal(t, "z", b.String())
}

func TestSetSelectionClamped(t *testing.T) {
	b := NewBuffer("abc")
	b.SetSelection(Range{Start: 1, End: 99})
	assert.Equal(t, Range{Start: 1, End: 3}, b.Selection())
}

func TestSetSelectionEmptyClearsMark(t *testing.T) {
	b := NewBuffer("abc")
	b.SetMark()
	b.Move(2)
	require.False(t, b.Selection().IsEmpty())

	b.SetSelection(Range{Start: 1, End: 1})
	assert.False(t, b.HasMark())
	assert.Equal(t, 1, b.Cursor())
}

func TestInsertReplacesActiveSelection(t *testing.T) {
	b := NewBuffer("one two three")
	b.MoveTo(4)
	b.SetMark()
	b.Move(3)
	b.Insert("2")
	assert.Equal(t, "one 2 three", b.String())
}

func TestBackspace(t *testing.T) {
	b := NewBuffer("abc")
	b.MoveTo(3)
	b.Backspace()
	assert.Equal(t, "ab", b.String())

	b.MoveTo(0)
	b.Backspace() // no-op at start
	assert.Equal(t, "ab", b.String())
}

func TestSelectAll(t *testing.T) {
	b := NewBuffer("abc\ndef")
	b.SelectAll()
	assert.Equal(t, "abc\ndef", b.SelectedText())
}

func TestMoveLine(t *testing.T) {
	b := NewBuffer("short\na longer line\nend")
	b.MoveTo(2) // "sh|ort"
	b.MoveLine(1)
	assert.Equal(t, 8, b.Cursor()) // "a |longer line"

	b.MoveLine(1)
	assert.Equal(t, 22, b.Cursor()) // "en|d"

	b.MoveLine(-2)
	assert.Equal(t, 2, b.Cursor())
}

func TestMoveLineClampsColumn(t *testing.T) {
	b := NewBuffer("a longer line\nab")
	b.MoveTo(10)
	b.MoveLine(1)
	// Column clamps to the shorter line's end.
	assert.Equal(t, 16, b.Cursor())
}

func TestLineStartEnd(t *testing.T) {
	b := NewBuffer("abc\ndef")
	b.MoveTo(5)
	b.LineStart()
	assert.Equal(t, 4, b.Cursor())
	b.LineEnd()
	assert.Equal(t, 7, b.Cursor())
}

func TestUnicodeOffsetsAreRunes(t *testing.T) {
	b := NewBuffer("héllo")
	b.MoveTo(1)
	b.SetMark()
	b.Move(1)
	assert.Equal(t, "é", b.SelectedText())

	b.Replace(Range{Start: 1, End: 2}, "e")
	assert.Equal(t, "hello", b.String())
}
