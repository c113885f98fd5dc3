package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/plumehq/plume/internal/config"
)

var (
	fieldLabelStyle   = lipgloss.NewStyle().Bold(true)
	fieldFocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
)

const (
	fieldToken = iota
	fieldAgentID
	fieldCount
)

// settingsForm binds the two agent settings fields to the config store.
// Every edit persists immediately.
type settingsForm struct {
	store   *config.Store
	inputs  [fieldCount]textinput.Model
	focused int
}

func newSettingsForm(store *config.Store) settingsForm {
	f := settingsForm{store: store}

	token := textinput.New()
	token.Placeholder = "agent access token"
	token.Prompt = "> "
	token.SetValue(store.Agent().Token)
	f.inputs[fieldToken] = token

	agentID := textinput.New()
	agentID.Placeholder = "agent identifier"
	agentID.Prompt = "> "
	agentID.SetValue(store.Agent().AgentID)
	f.inputs[fieldAgentID] = agentID

	return f
}

func (f *settingsForm) focus() tea.Cmd {
	return f.inputs[f.focused].Focus()
}

func (f *settingsForm) blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// Update routes a key to the focused field and persists any change.
func (f *settingsForm) Update(msg tea.KeyMsg) (tea.Cmd, error) {
	switch msg.String() {
	case "tab", "down":
		return f.cycle(1), nil
	case "shift+tab", "up":
		return f.cycle(-1), nil
	}

	before := f.inputs[f.focused].Value()
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	after := f.inputs[f.focused].Value()

	if after == before {
		return cmd, nil
	}

	var err error
	switch f.focused {
	case fieldToken:
		err = f.store.SetToken(after)
	case fieldAgentID:
		err = f.store.SetAgentID(after)
	}
	return cmd, err
}

func (f *settingsForm) cycle(delta int) tea.Cmd {
	f.inputs[f.focused].Blur()
	f.focused = (f.focused + delta + fieldCount) % fieldCount
	return f.inputs[f.focused].Focus()
}

func (f *settingsForm) View() string {
	label := func(i int, text string) string {
		if i == f.focused {
			return fieldFocusedStyle.Render(fieldLabelStyle.Render(text))
		}
		return fieldLabelStyle.Render(text)
	}

	return label(fieldToken, "Agent token") + "\n" +
		f.inputs[fieldToken].View() + "\n\n" +
		label(fieldAgentID, "Agent ID") + "\n" +
		f.inputs[fieldAgentID].View() + "\n\n" +
		helpStyle.Render("Changes are saved as you type.")
}
