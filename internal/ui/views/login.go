package views

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hermes0001-boop/schedule-app-260122/internal/auth"
	"github.com/hermes0001-boop/schedule-app-260122/internal/ui/theme"
)

// Unlocked is emitted when the passphrase gate is passed
type Unlocked struct{}

// Local message types for login view
type loginErrorMsg struct{ err error }
type loginStateMsg struct {
	firstRun bool
	err      error
}

// LoginView gates the app behind a master passphrase. On first run it
// asks the user to set one; afterwards it checks the stored value.
type LoginView struct {
	gate *auth.Gate

	width  int
	height int

	firstRun bool
	loaded   bool

	input   textinput.Model
	confirm textinput.Model
	// 0 = passphrase field, 1 = confirm field (first run only)
	focused int

	errMsg string
}

// NewLoginView creates a new login view
func NewLoginView(gate *auth.Gate) LoginView {
	pw := textinput.New()
	pw.Placeholder = "Passphrase"
	pw.EchoMode = textinput.EchoPassword
	pw.CharLimit = 100
	pw.Focus()

	confirm := textinput.New()
	confirm.Placeholder = "Confirm passphrase"
	confirm.EchoMode = textinput.EchoPassword
	confirm.CharLimit = 100

	return LoginView{
		gate:    gate,
		input:   pw,
		confirm: confirm,
	}
}

// Init checks whether a passphrase exists yet
func (v LoginView) Init() tea.Cmd {
	gate := v.gate
	return tea.Batch(textinput.Blink, func() tea.Msg {
		isSet, err := gate.IsSet()
		return loginStateMsg{firstRun: !isSet, err: err}
	})
}

// SetSize sets the view dimensions
func (v LoginView) SetSize(width, height int) LoginView {
	v.width = width
	v.height = height
	return v
}

func (v LoginView) submit() tea.Cmd {
	gate := v.gate
	firstRun := v.firstRun
	passphrase := v.input.Value()
	confirm := v.confirm.Value()

	return func() tea.Msg {
		var err error
		if firstRun {
			err = gate.Set(passphrase, confirm)
		} else {
			err = gate.Check(passphrase)
		}
		if err != nil {
			return loginErrorMsg{err: err}
		}
		return Unlocked{}
	}
}

// Update handles messages
func (v LoginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginStateMsg:
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.firstRun = msg.firstRun
		v.loaded = true
		return v, nil

	case loginErrorMsg:
		switch {
		case errors.Is(msg.err, auth.ErrTooShort):
			v.errMsg = "Passphrase must be at least 4 characters"
		case errors.Is(msg.err, auth.ErrMismatch):
			v.errMsg = "Passphrases do not match"
		case errors.Is(msg.err, auth.ErrIncorrect):
			v.errMsg = "Incorrect passphrase"
		default:
			v.errMsg = msg.err.Error()
		}
		v.input.SetValue("")
		v.confirm.SetValue("")
		v.focused = 0
		v.input.Focus()
		v.confirm.Blur()
		return v, textinput.Blink

	case tea.KeyMsg:
		v.errMsg = ""
		switch msg.String() {
		case "enter":
			if v.firstRun && v.focused == 0 {
				v.focused = 1
				v.input.Blur()
				v.confirm.Focus()
				return v, textinput.Blink
			}
			return v, v.submit()

		case "tab":
			if v.firstRun {
				if v.focused == 0 {
					v.focused = 1
					v.input.Blur()
					v.confirm.Focus()
				} else {
					v.focused = 0
					v.confirm.Blur()
					v.input.Focus()
				}
				return v, textinput.Blink
			}
		}

		var cmd tea.Cmd
		if v.focused == 0 {
			v.input, cmd = v.input.Update(msg)
		} else {
			v.confirm, cmd = v.confirm.Update(msg)
		}
		return v, cmd
	}

	return v, nil
}

// View renders the login gate
func (v LoginView) View() string {
	if v.width == 0 || v.height == 0 || !v.loaded {
		return "Loading..."
	}

	t := theme.Current.Theme
	styles := theme.Current.Styles

	title := styles.Title.Render("nexus")
	subtitle := lipgloss.NewStyle().Foreground(t.Subtle).Render("Unlock your workspace")
	if v.firstRun {
		subtitle = lipgloss.NewStyle().Foreground(t.Subtle).Render("First run: set a master passphrase")
	}

	lines := []string{title, subtitle, ""}

	inputStyle := styles.Input
	if v.focused == 0 {
		inputStyle = styles.InputFocused
	}
	lines = append(lines, inputStyle.Width(40).Render(v.input.View()))

	if v.firstRun {
		confirmStyle := styles.Input
		if v.focused == 1 {
			confirmStyle = styles.InputFocused
		}
		lines = append(lines, confirmStyle.Width(40).Render(v.confirm.View()))
	}

	if v.errMsg != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(t.Error).Render(v.errMsg))
	}

	box := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, box)
}

// IsInputMode returns whether the view is in input mode
func (v LoginView) IsInputMode() bool {
	return true
}
