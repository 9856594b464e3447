// Package confirm provides a yes/no confirmation popup component,
// with an optional multi-choice mode used for picking a playlist.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedOptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Bold(true)
)

// Model is a confirmation popup.
type Model struct {
	title          string
	message        string
	context        any
	active         bool
	options        []string // multi-option mode when non-empty
	selectedOption int
}

// New creates a new confirmation model.
func New() Model {
	return Model{}
}

// Show displays the confirmation popup (yes/no mode).
func (m *Model) Show(title, message string, context any) {
	m.title = title
	m.message = message
	m.context = context
	m.active = true
	m.options = nil
	m.selectedOption = 0
}

// ShowWithOptions displays the popup with a list of choices. The last
// option is treated as "Cancel".
func (m *Model) ShowWithOptions(title, message string, options []string, context any) {
	m.title = title
	m.message = message
	m.context = context
	m.active = true
	m.options = options
	m.selectedOption = 0
}

// Reset clears the confirmation state.
func (m *Model) Reset() {
	m.title = ""
	m.message = ""
	m.context = nil
	m.active = false
	m.options = nil
	m.selectedOption = 0
}

// Active returns whether the confirmation is currently shown.
func (m Model) Active() bool {
	return m.active
}

// Update handles key input while the popup is active.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if !m.active {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if len(m.options) > 0 {
		return m.handleMultiOptionKey(keyMsg)
	}
	return m.handleYesNoKey(keyMsg)
}

func (m *Model) handleMultiOptionKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.selectedOption > 0 {
			m.selectedOption--
		}
	case "down", "j":
		if m.selectedOption < len(m.options)-1 {
			m.selectedOption++
		}
	case "enter":
		m.active = false
		ctx := m.context
		selected := m.selectedOption
		confirmed := selected < len(m.options)-1
		return func() tea.Msg {
			return ActionMsg(Result{Confirmed: confirmed, Context: ctx, SelectedOption: selected})
		}
	case "esc":
		m.active = false
		ctx := m.context
		numOptions := len(m.options)
		return func() tea.Msg {
			return ActionMsg(Result{Confirmed: false, Context: ctx, SelectedOption: numOptions - 1})
		}
	}
	return nil
}

func (m *Model) handleYesNoKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "y", "Y":
		m.active = false
		ctx := m.context
		return func() tea.Msg {
			return ActionMsg(Result{Confirmed: true, Context: ctx})
		}
	case "esc", "n", "N":
		m.active = false
		ctx := m.context
		return func() tea.Msg {
			return ActionMsg(Result{Confirmed: false, Context: ctx})
		}
	}
	return nil
}

// View renders the popup content.
func (m *Model) View() string {
	if !m.active {
		return ""
	}

	title := titleStyle.Render(m.title)
	message := messageStyle.Render(m.message)

	if len(m.options) > 0 {
		var optionLines []string
		for i, opt := range m.options {
			prefix := "  "
			style := optionStyle
			if i == m.selectedOption {
				prefix = "> "
				style = selectedOptionStyle
			}
			optionLines = append(optionLines, style.Render(prefix+opt))
		}
		optionsView := lipgloss.JoinVertical(lipgloss.Left, optionLines...)
		hint := hintStyle.Render("↑↓/jk navigate · enter select · esc cancel")
		return title + "\n\n" + message + "\n\n" + optionsView + "\n\n" + hint
	}

	hint := hintStyle.Render("Enter/Y: confirm, Esc/N: cancel")
	return title + "\n\n" + message + "\n\n" + hint
}
