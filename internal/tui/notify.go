package tui

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeWarn
	noticeError
)

const (
	infoNoticeTTL  = 3 * time.Second
	warnNoticeTTL  = 6 * time.Second
	errorNoticeTTL = 6 * time.Second
)

var (
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	workStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Italic(true)
)

// noticeSeq hands out notice IDs across goroutines.
var noticeSeq atomic.Uint64

type notice struct {
	id     uint64
	level  noticeLevel
	text   string
	sticky bool // stays until explicitly expired
}

type noticeShowMsg struct {
	notice notice
	ttl    time.Duration // ignored for sticky notices
}

type noticeExpireMsg struct {
	id uint64
}

// noticeBoard holds the notices currently on screen. It is only touched
// from the Update goroutine; cross-goroutine notices arrive as messages.
type noticeBoard struct {
	items []notice
}

// show adds a notice and schedules its expiry.
func (nb *noticeBoard) show(msg noticeShowMsg) tea.Cmd {
	n := msg.notice
	if n.id == 0 {
		n.id = noticeSeq.Add(1)
	}
	nb.items = append(nb.items, n)

	if n.sticky || msg.ttl <= 0 {
		return nil
	}
	id := n.id
	return tea.Tick(msg.ttl, func(time.Time) tea.Msg {
		return noticeExpireMsg{id: id}
	})
}

// expire removes a notice by ID.
func (nb *noticeBoard) expire(id uint64) {
	out := nb.items[:0]
	for _, n := range nb.items {
		if n.id != id {
			out = append(out, n)
		}
	}
	nb.items = out
}

// View renders the sticky notices plus the most recent transient one.
func (nb *noticeBoard) View() string {
	var lines []string
	var latest *notice
	for i := range nb.items {
		n := nb.items[i]
		if n.sticky {
			lines = append(lines, workStyle.Render(n.text))
			continue
		}
		latest = &nb.items[i]
	}
	if latest != nil {
		var style lipgloss.Style
		switch latest.level {
		case noticeWarn:
			style = warnStyle
		case noticeError:
			style = errStyle
		default:
			style = infoStyle
		}
		lines = append(lines, style.Render(latest.text))
	}
	if len(lines) == 0 {
		return " "
	}
	return strings.Join(lines, "\n")
}

// programNotifier implements editor.Notifier by sending messages into the
// running program. Safe to call from any goroutine.
type programNotifier struct {
	app *App
}

func (n *programNotifier) Info(msg string)  { n.send(noticeInfo, msg, infoNoticeTTL) }
func (n *programNotifier) Warn(msg string)  { n.send(noticeWarn, msg, warnNoticeTTL) }
func (n *programNotifier) Error(msg string) { n.send(noticeError, msg, errorNoticeTTL) }

func (n *programNotifier) Persistent(msg string) func() {
	id := noticeSeq.Add(1)
	n.app.program.Send(noticeShowMsg{notice: notice{id: id, text: msg, sticky: true}})
	return sync.OnceFunc(func() {
		n.app.program.Send(noticeExpireMsg{id: id})
	})
}

func (n *programNotifier) send(level noticeLevel, text string, ttl time.Duration) {
	n.app.program.Send(noticeShowMsg{
		notice: notice{id: noticeSeq.Add(1), level: level, text: text},
		ttl:    ttl,
	})
}
