package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var modalStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(0, 1)

// promptRequest asks the UI to open the instruction modal. The reply
// channel resolves the workflow's suspension; it must be buffered.
type promptRequest struct {
	placeholder string
	reply       chan promptResult
}

type promptResult struct {
	value string
	ok    bool
}

// modalAction is the decision for one keypress inside the modal.
type modalAction int

const (
	modalPass modalAction = iota
	modalSubmit
	modalCancel
	modalNewline
)

// modalActionFor maps a key to its modal action. Plain enter submits;
// shift+enter (or alt+enter on terminals that can't report shift) inserts
// a literal newline; esc cancels.
func modalActionFor(key string) modalAction {
	switch key {
	case "enter":
		return modalSubmit
	case "shift+enter", "alt+enter":
		return modalNewline
	case "esc":
		return modalCancel
	}
	return modalPass
}

// instructionModal collects a freeform instruction for the agent.
type instructionModal struct {
	ta    textarea.Model
	reply chan promptResult
}

func newInstructionModal(placeholder string, reply chan promptResult, width int) *instructionModal {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.SetHeight(4)
	if width > 8 {
		ta.SetWidth(width - 8)
	}
	ta.Focus()
	return &instructionModal{ta: ta, reply: reply}
}

// Update handles one key. done is true once the modal resolved its
// result and should be closed.
func (m *instructionModal) Update(msg tea.KeyMsg) (done bool, cmd tea.Cmd) {
	switch modalActionFor(msg.String()) {
	case modalSubmit:
		m.reply <- promptResult{value: m.ta.Value(), ok: true}
		return true, nil
	case modalCancel:
		m.reply <- promptResult{}
		return true, nil
	case modalNewline:
		m.ta.InsertString("\n")
		return false, nil
	}
	m.ta, cmd = m.ta.Update(msg)
	return false, cmd
}

func (m *instructionModal) View() string {
	return modalStyle.Render("Ask the agent\n\n" + m.ta.View())
}
