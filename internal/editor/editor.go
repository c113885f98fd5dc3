// Package editor defines the narrow document-editing and notification
// capabilities the transform workflow needs from a host, plus an in-memory
// buffer implementation used by the terminal UI, the pipe mode, and tests.
package editor

// Range is a half-open [Start, End) span of rune offsets in a document.
type Range struct {
	Start int
	End   int
}

// IsEmpty reports whether the range spans no text.
func (r Range) IsEmpty() bool { return r.End <= r.Start }

// Len returns the number of runes covered by the range.
func (r Range) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return r.End - r.Start
}

// Surface is the minimal editing capability of a host document.
type Surface interface {
	// Selection returns the current selection range. An empty range means
	// only a cursor position.
	Selection() Range

	// SelectedText returns the text covered by the current selection.
	SelectedText() string

	// SetSelection restores a previously captured selection range,
	// clamped to the current document bounds.
	SetSelection(r Range)

	// Replace substitutes the text in r with s and leaves the cursor at
	// the end of the inserted text.
	Replace(r Range, s string)
}

// Notifier surfaces status messages to the user. Implementations must not
// block the caller.
type Notifier interface {
	// Info shows a short-lived informational notice.
	Info(msg string)

	// Warn shows a warning notice.
	Warn(msg string)

	// Error shows an error notice.
	Error(msg string)

	// Persistent shows a notice that stays visible until the returned
	// dismiss function is called. Dismiss is safe to call more than once.
	Persistent(msg string) (dismiss func())
}
