package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hermes0001-boop/schedule-app-260122/internal/dateutil"
	"github.com/hermes0001-boop/schedule-app-260122/internal/model"
	"github.com/hermes0001-boop/schedule-app-260122/internal/store"
	syncengine "github.com/hermes0001-boop/schedule-app-260122/internal/sync"
	"github.com/hermes0001-boop/schedule-app-260122/internal/ui/theme"
)

// Local message types for overdue view
type overdueErrorMsg struct{ err error }
type overdueRefreshMsg struct{}

// overdueGroup is one section of the overdue list
type overdueGroup struct {
	title string
	tasks []model.Task
}

// OverdueView lists slipped tasks and offers recovery actions
type OverdueView struct {
	engine *syncengine.Engine
	store  *store.Store

	width  int
	height int

	groups []overdueGroup
	flat   []model.Task
	cursor int

	// Reschedule input
	input        textinput.Model
	rescheduling bool

	statusMsg string
}

// NewOverdueView creates a new overdue view
func NewOverdueView(engine *syncengine.Engine, st *store.Store) OverdueView {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = 10

	return OverdueView{
		engine: engine,
		store:  st,
		input:  ti,
	}
}

// Init initializes the overdue view
func (v OverdueView) Init() tea.Cmd {
	return func() tea.Msg { return overdueRefreshMsg{} }
}

// SetSize sets the view dimensions
func (v OverdueView) SetSize(width, height int) OverdueView {
	v.width = width
	v.height = height
	return v
}

// reload regroups overdue tasks: project mirrors first, then Areas, then
// the rest. Archive records never count as overdue work.
func (v *OverdueView) reload() {
	today := dateutil.Today()

	var mirrors, areas, other []model.Task
	for _, t := range v.store.Tasks() {
		if !t.IsOverdue(today) || t.IsArchiveRecord() {
			continue
		}
		switch {
		case t.IsMirror():
			mirrors = append(mirrors, t)
		case t.Category == model.CategoryAreas:
			areas = append(areas, t)
		default:
			other = append(other, t)
		}
	}

	v.groups = nil
	v.flat = nil
	for _, g := range []overdueGroup{
		{title: "Project steps", tasks: mirrors},
		{title: "Areas", tasks: areas},
		{title: "Other", tasks: other},
	} {
		if len(g.tasks) == 0 {
			continue
		}
		v.groups = append(v.groups, g)
		v.flat = append(v.flat, g.tasks...)
	}

	if v.cursor >= len(v.flat) {
		v.cursor = len(v.flat) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v OverdueView) moveTask(id, date string) tea.Cmd {
	engine := v.engine
	return func() tea.Msg {
		if err := engine.UpdateTaskDate(id, date); err != nil {
			return overdueErrorMsg{err: err}
		}
		return overdueRefreshMsg{}
	}
}

func (v OverdueView) moveAll() tea.Cmd {
	engine := v.engine
	tasks := append([]model.Task(nil), v.flat...)
	today := dateutil.Today()
	return func() tea.Msg {
		for _, t := range tasks {
			if err := engine.UpdateTaskDate(t.ID, today); err != nil {
				return overdueErrorMsg{err: err}
			}
		}
		return overdueRefreshMsg{}
	}
}

// Update handles messages
func (v OverdueView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case overdueRefreshMsg:
		v.reload()
		return v, nil

	case overdueErrorMsg:
		v.statusMsg = msg.err.Error()
		return v, nil

	case tea.KeyMsg:
		if v.rescheduling {
			switch msg.String() {
			case "enter":
				value := strings.TrimSpace(v.input.Value())
				v.rescheduling = false
				v.input.Blur()
				v.input.SetValue("")
				if !dateutil.Valid(value) {
					v.statusMsg = "Invalid date, expected YYYY-MM-DD"
					return v, nil
				}
				if v.cursor < len(v.flat) {
					return v, v.moveTask(v.flat[v.cursor].ID, value)
				}
				return v, nil
			case "esc":
				v.rescheduling = false
				v.input.Blur()
				v.input.SetValue("")
				return v, nil
			}
			var cmd tea.Cmd
			v.input, cmd = v.input.Update(msg)
			return v, cmd
		}

		switch msg.String() {
		case "k", "up":
			if v.cursor > 0 {
				v.cursor--
			}
		case "j", "down":
			if v.cursor < len(v.flat)-1 {
				v.cursor++
			}
		case "m":
			if v.cursor < len(v.flat) {
				return v, v.moveTask(v.flat[v.cursor].ID, dateutil.Today())
			}
		case "M":
			if len(v.flat) > 0 {
				return v, v.moveAll()
			}
		case "s":
			if v.cursor < len(v.flat) {
				v.rescheduling = true
				v.input.Focus()
				return v, textinput.Blink
			}
		case "tab", " ":
			if v.cursor < len(v.flat) {
				engine := v.engine
				id := v.flat[v.cursor].ID
				return v, func() tea.Msg {
					if _, err := engine.ToggleTask(id); err != nil {
						return overdueErrorMsg{err: err}
					}
					return overdueRefreshMsg{}
				}
			}
		case "d":
			if v.cursor < len(v.flat) {
				engine := v.engine
				id := v.flat[v.cursor].ID
				return v, func() tea.Msg {
					if err := engine.DeleteTask(id); err != nil {
						return overdueErrorMsg{err: err}
					}
					return overdueRefreshMsg{}
				}
			}
		}
	}

	return v, nil
}

// View renders the overdue list
func (v OverdueView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	styles := theme.Current.Styles

	title := styles.Title.Render(fmt.Sprintf("Overdue (%d)", len(v.flat)))

	if len(v.flat) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(t.Success).
			Render("Nothing overdue. All caught up.")
		return lipgloss.JoinVertical(lipgloss.Left, title, empty)
	}

	var lines []string
	index := 0
	for _, g := range v.groups {
		lines = append(lines, lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary).
			Render(g.title))

		for _, task := range g.tasks {
			style := styles.TaskOverdue.UnsetPadding()
			if index == v.cursor {
				style = styles.TaskSelected.UnsetPadding()
			}

			label := truncate(task.Title, v.width-24)
			line := fmt.Sprintf("  %s %s",
				style.Render(label),
				lipgloss.NewStyle().Foreground(t.Subtle).Render(task.Date))
			lines = append(lines, line)
			index++
		}
		lines = append(lines, "")
	}

	if v.rescheduling {
		lines = append(lines, styles.InputFocused.Width(24).Render(v.input.View()))
	}

	if v.statusMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg))
	}

	return lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, lines...)...)
}

// IsInputMode returns whether the view is in input mode
func (v OverdueView) IsInputMode() bool {
	return v.rescheduling
}
