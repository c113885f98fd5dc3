// Package tui is the terminal host for plume: a minimal note editor with
// an instruction modal, a settings panel, and a notice bar. It implements
// the editor-facing interfaces the transform workflow depends on.
package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/plumehq/plume/internal/config"
	"github.com/plumehq/plume/internal/editor"
	"github.com/plumehq/plume/internal/logging"
	"github.com/plumehq/plume/internal/workflow"
)

type view int

const (
	viewDocument view = iota
	viewSettings
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
	selectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("11"))
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// transformDoneMsg reports that a workflow run finished.
type transformDoneMsg struct {
	err error
}

// App is the bubbletea model for the plume editor.
type App struct {
	buf      *editor.Buffer
	file     string
	settings *config.Store
	runner   *workflow.Transformer
	log      *logging.Logger

	program *tea.Program

	view    view
	modal   *instructionModal
	form    settingsForm
	notices noticeBoard

	width  int
	height int
	dirty  bool
	busy   bool
}

// NewApp creates the editor app over buf. file may be empty for a
// scratch document.
func NewApp(buf *editor.Buffer, file string, settings *config.Store, log *logging.Logger) *App {
	return &App{
		buf:      buf,
		file:     file,
		settings: settings,
		form:     newSettingsForm(settings),
		log:      log.Sub("tui"),
	}
}

// AttachProgram wires the running program in; must be called before
// Program.Run so the workflow's prompter and notifier can send messages.
func (a *App) AttachProgram(p *tea.Program) {
	a.program = p
}

// SetRunner wires the transform workflow in.
func (a *App) SetRunner(r *workflow.Transformer) {
	a.runner = r
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case promptRequest:
		a.modal = newInstructionModal(msg.placeholder, msg.reply, a.width)
		return a, nil

	case noticeShowMsg:
		return a, a.notices.show(msg)

	case noticeExpireMsg:
		a.notices.expire(msg.id)
		return a, nil

	case transformDoneMsg:
		a.busy = false
		if msg.err == nil {
			a.dirty = true
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// An open modal owns the keyboard.
	if a.modal != nil {
		done, cmd := a.modal.Update(msg)
		if done {
			a.modal = nil
		}
		return a, cmd
	}

	if a.view == viewSettings {
		return a.handleSettingsKey(msg)
	}
	return a.handleDocumentKey(msg)
}

func (a *App) handleDocumentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+q":
		return a, tea.Quit
	case "ctrl+t":
		return a, a.startTransform()
	case "ctrl+e":
		a.view = viewSettings
		return a, a.form.focus()
	case "ctrl+s":
		return a, a.saveFile()
	case "ctrl+@", "ctrl+space": // ctrl+space reports as ctrl+@ on most terminals
		a.buf.SetMark()
		return a, nil
	case "ctrl+a":
		a.buf.SelectAll()
		return a, nil
	case "esc":
		a.buf.ClearMark()
		return a, nil
	case "left":
		a.buf.Move(-1)
		return a, nil
	case "right":
		a.buf.Move(1)
		return a, nil
	case "up":
		a.buf.MoveLine(-1)
		return a, nil
	case "down":
		a.buf.MoveLine(1)
		return a, nil
	case "home":
		a.buf.LineStart()
		return a, nil
	case "end":
		a.buf.LineEnd()
		return a, nil
	case "backspace":
		a.buf.Backspace()
		a.dirty = true
		return a, nil
	case "enter":
		a.buf.Insert("\n")
		a.dirty = true
		return a, nil
	case "tab":
		a.buf.Insert("\t")
		a.dirty = true
		return a, nil
	}

	if msg.Type == tea.KeyRunes && !msg.Alt {
		a.buf.Insert(string(msg.Runes))
		a.dirty = true
	}
	return a, nil
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+q":
		return a, tea.Quit
	case "esc", "ctrl+e":
		a.view = viewDocument
		a.form.blur()
		return a, nil
	}

	cmd, err := a.form.Update(msg)
	if err != nil {
		a.log.Error().Err(err).Msg("failed to persist settings")
		return a, a.notices.show(noticeShowMsg{notice: notice{
			level: noticeError,
			text:  "Could not save settings: " + err.Error(),
		}, ttl: errorNoticeTTL})
	}
	return a, cmd
}

// startTransform runs the workflow off the UI goroutine. The buffer is
// safe for concurrent use, and the prompter/notifier marshal their UI
// work back through program messages.
func (a *App) startTransform() tea.Cmd {
	if a.busy {
		return a.notices.show(noticeShowMsg{notice: notice{
			level: noticeWarn,
			text:  "A transform is already in progress",
		}, ttl: warnNoticeTTL})
	}
	a.busy = true
	runner, buf := a.runner, a.buf
	return func() tea.Msg {
		err := runner.Run(context.Background(), buf)
		return transformDoneMsg{err: err}
	}
}

func (a *App) saveFile() tea.Cmd {
	if a.file == "" {
		return a.notices.show(noticeShowMsg{
			notice: notice{level: noticeWarn, text: "No file attached to this document"},
			ttl:    warnNoticeTTL,
		})
	}
	if err := os.WriteFile(a.file, []byte(a.buf.String()), 0o600); err != nil {
		return a.notices.show(noticeShowMsg{
			notice: notice{level: noticeError, text: "Save failed: " + err.Error()},
			ttl:    errorNoticeTTL,
		})
	}
	a.dirty = false
	return a.notices.show(noticeShowMsg{
		notice: notice{level: noticeInfo, text: "Saved " + filepath.Base(a.file)},
		ttl:    infoNoticeTTL,
	})
}

// Prompter returns the workflow prompter backed by the instruction modal.
func (a *App) Prompter() workflow.Prompter {
	return workflow.PrompterFunc(func(ctx context.Context, placeholder string) (string, bool, error) {
		reply := make(chan promptResult, 1)
		a.program.Send(promptRequest{placeholder: placeholder, reply: reply})
		select {
		case res := <-reply:
			return res.value, res.ok, nil
		case <-ctx.Done():
			return "", false, ctx.Err()
		}
	})
}

// Notifier returns the workflow notifier backed by the notice bar.
func (a *App) Notifier() editor.Notifier {
	return &programNotifier{app: a}
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(a.title()))
	b.WriteString("\n\n")

	switch {
	case a.modal != nil:
		b.WriteString(a.modal.View())
	case a.view == viewSettings:
		b.WriteString(a.form.View())
	default:
		b.WriteString(renderDocument(a.buf))
	}

	b.WriteString("\n\n")
	b.WriteString(a.notices.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(a.helpLine()))
	return b.String()
}

func (a *App) title() string {
	name := a.file
	if name == "" {
		name = "scratch"
	} else {
		name = filepath.Base(name)
	}
	if a.dirty {
		name += " *"
	}
	if a.busy {
		name += "  [agent working]"
	}
	return "plume — " + name
}

func (a *App) helpLine() string {
	if a.modal != nil {
		return "enter submit · shift+enter newline · esc cancel"
	}
	if a.view == viewSettings {
		return "tab next field · esc back"
	}
	return "ctrl+t ask agent · ctrl+space mark · ctrl+a select all · ctrl+s save · ctrl+e settings · ctrl+q quit"
}

// renderDocument paints the buffer with its selection and cursor.
func renderDocument(buf *editor.Buffer) string {
	text := []rune(buf.String())
	sel := buf.Selection()
	cursor := buf.Cursor()

	var b strings.Builder
	for i := 0; i <= len(text); i++ {
		if i == len(text) {
			if cursor == i {
				b.WriteString(cursorStyle.Render(" "))
			}
			break
		}
		r := text[i]
		s := string(r)
		if r == '\n' {
			if cursor == i {
				b.WriteString(cursorStyle.Render(" "))
			}
			b.WriteString("\n")
			continue
		}
		switch {
		case cursor == i:
			b.WriteString(cursorStyle.Render(s))
		case i >= sel.Start && i < sel.End:
			b.WriteString(selectionStyle.Render(s))
		default:
			b.WriteString(s)
		}
	}
	return b.String()
}
