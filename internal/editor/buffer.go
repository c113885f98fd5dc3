package editor

import (
	"strings"
	"sync"
)

// Buffer is an in-memory text document with a cursor and an optional mark.
// The selection is the span between mark and cursor. All methods are safe
// for concurrent use; the transform workflow runs off the UI goroutine.
type Buffer struct {
	mu     sync.Mutex
	text   []rune
	cursor int
	mark   int // -1 when no mark is set
}

// NewBuffer creates a buffer holding s with the cursor at the start.
func NewBuffer(s string) *Buffer {
	return &Buffer{text: []rune(s), mark: -1}
}

// String returns the full document text.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.text)
}

// Len returns the document length in runes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.text)
}

// Cursor returns the cursor offset.
func (b *Buffer) Cursor() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor
}

// Selection returns the span between mark and cursor, ordered. Without a
// mark it is the empty range at the cursor.
func (b *Buffer) Selection() Range {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selectionLocked()
}

func (b *Buffer) selectionLocked() Range {
	if b.mark < 0 {
		return Range{Start: b.cursor, End: b.cursor}
	}
	if b.mark <= b.cursor {
		return Range{Start: b.mark, End: b.cursor}
	}
	return Range{Start: b.cursor, End: b.mark}
}

// SelectedText returns the text under the selection.
func (b *Buffer) SelectedText() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	r := b.clampLocked(b.selectionLocked())
	return string(b.text[r.Start:r.End])
}

// SetSelection restores a selection range, clamped to the document.
// An empty range clears the mark and just moves the cursor.
func (b *Buffer) SetSelection(r Range) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r = b.clampLocked(r)
	if r.IsEmpty() {
		b.mark = -1
		b.cursor = r.Start
		return
	}
	b.mark = r.Start
	b.cursor = r.End
}

// Replace substitutes the text in r with s. The cursor ends up after the
// inserted text and the mark is cleared.
func (b *Buffer) Replace(r Range, s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r = b.clampLocked(r)
	ins := []rune(s)
	out := make([]rune, 0, len(b.text)-r.Len()+len(ins))
	out = append(out, b.text[:r.Start]...)
	out = append(out, ins...)
	out = append(out, b.text[r.End:]...)
	b.text = out
	b.cursor = r.Start + len(ins)
	b.mark = -1
}

// Insert types s at the cursor, replacing the selection if one is active.
func (b *Buffer) Insert(s string) {
	b.mu.Lock()
	r := b.clampLocked(b.selectionLocked())
	b.mu.Unlock()
	b.Replace(r, s)
}

// Backspace deletes the selection, or the rune before the cursor.
func (b *Buffer) Backspace() {
	b.mu.Lock()
	r := b.clampLocked(b.selectionLocked())
	b.mu.Unlock()
	if r.IsEmpty() {
		if r.Start == 0 {
			return
		}
		r = Range{Start: r.Start - 1, End: r.Start}
	}
	b.Replace(r, "")
}

// SetMark anchors the selection at the cursor.
func (b *Buffer) SetMark() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mark = b.cursor
}

// ClearMark drops the selection anchor.
func (b *Buffer) ClearMark() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mark = -1
}

// HasMark reports whether a selection anchor is set.
func (b *Buffer) HasMark() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mark >= 0
}

// SelectAll selects the whole document.
func (b *Buffer) SelectAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mark = 0
	b.cursor = len(b.text)
}

// Move shifts the cursor by delta runes, clamped to the document.
func (b *Buffer) Move(delta int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = clampInt(b.cursor+delta, 0, len(b.text))
}

// MoveTo places the cursor at an absolute offset, clamped to the document.
func (b *Buffer) MoveTo(off int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = clampInt(off, 0, len(b.text))
}

// MoveLine shifts the cursor delta lines up or down, keeping the column
// where possible.
func (b *Buffer) MoveLine(delta int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	lines := strings.Split(string(b.text), "\n")
	row, col := 0, b.cursor
	for row < len(lines)-1 && col > len([]rune(lines[row])) {
		col -= len([]rune(lines[row])) + 1
		row++
	}

	row = clampInt(row+delta, 0, len(lines)-1)
	col = clampInt(col, 0, len([]rune(lines[row])))

	off := col
	for i := 0; i < row; i++ {
		off += len([]rune(lines[i])) + 1
	}
	b.cursor = clampInt(off, 0, len(b.text))
}

// LineStart moves the cursor to the start of its line.
func (b *Buffer) LineStart() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.cursor > 0 && b.text[b.cursor-1] != '\n' {
		b.cursor--
	}
}

// LineEnd moves the cursor to the end of its line.
func (b *Buffer) LineEnd() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.cursor < len(b.text) && b.text[b.cursor] != '\n' {
		b.cursor++
	}
}

func (b *Buffer) clampLocked(r Range) Range {
	r.Start = clampInt(r.Start, 0, len(b.text))
	r.End = clampInt(r.End, 0, len(b.text))
	if r.End < r.Start {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
