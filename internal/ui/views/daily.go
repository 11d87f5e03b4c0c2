package views

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hermes0001-boop/schedule-app-260122/internal/ai"
	"github.com/hermes0001-boop/schedule-app-260122/internal/dateutil"
	"github.com/hermes0001-boop/schedule-app-260122/internal/model"
	"github.com/hermes0001-boop/schedule-app-260122/internal/store"
	syncengine "github.com/hermes0001-boop/schedule-app-260122/internal/sync"
	"github.com/hermes0001-boop/schedule-app-260122/internal/ui/theme"
)

// Local message types for daily view
type dailyErrorMsg struct{ err error }
type dailyRefreshMsg struct{}
type dailyTaskAddedMsg struct {
	category model.ParaCategory
}

// ProjectArchivedNotice is emitted when a mutation completes a project.
// The root model turns it into a status line and a desktop notification.
type ProjectArchivedNotice struct {
	Title string
}

// DailyView shows one day's tasks in four PARA columns
type DailyView struct {
	engine *syncengine.Engine
	store  *store.Store
	ai     *ai.Client

	width  int
	height int

	// Selected day, YYYY-MM-DD
	date string

	// Column focus (index into model.Categories) and row cursor
	column int
	cursor int

	// Tasks for the selected day, indexed by category
	tasksByCategory map[model.ParaCategory][]model.Task

	// 7-day pulse: project and area workload per upcoming day
	pulse []dayPulse

	// Quick-add input
	input  textinput.Model
	adding bool

	// Archive tasks expanded to show their snapshot
	expanded map[string]bool

	statusMsg string
}

type dayPulse struct {
	date     string
	projects int
	areas    int
}

// NewDailyView creates a new daily view
func NewDailyView(engine *syncengine.Engine, st *store.Store, client *ai.Client) DailyView {
	ti := textinput.New()
	ti.Placeholder = "Add a task, paste a link, or name a project..."
	ti.CharLimit = 200

	return DailyView{
		engine:          engine,
		store:           st,
		ai:              client,
		date:            dateutil.Today(),
		tasksByCategory: make(map[model.ParaCategory][]model.Task),
		expanded:        make(map[string]bool),
		input:           ti,
	}
}

// Init initializes the daily view
func (v DailyView) Init() tea.Cmd {
	return func() tea.Msg { return dailyRefreshMsg{} }
}

// SetSize sets the view dimensions
func (v DailyView) SetSize(width, height int) DailyView {
	v.width = width
	v.height = height
	return v
}

// reload re-derives the day's columns and the weekly pulse from the store
func (v *DailyView) reload() {
	tasks := v.store.Tasks()

	byCategory := make(map[model.ParaCategory][]model.Task)
	for _, t := range tasks {
		if t.Date == v.date {
			byCategory[t.Category] = append(byCategory[t.Category], t)
		}
	}
	for _, list := range byCategory {
		sort.Slice(list, func(i, j int) bool { return list[i].Title < list[j].Title })
	}
	v.tasksByCategory = byCategory

	// Pulse counts the week's project-linked and area work per day
	var pulse []dayPulse
	for _, day := range dateutil.NextDays(7) {
		p := dayPulse{date: day}
		for _, t := range tasks {
			if t.Date != day {
				continue
			}
			switch {
			case t.ProjectID != "" || t.Category == model.CategoryProjects:
				p.projects++
			case t.Category == model.CategoryAreas:
				p.areas++
			}
		}
		pulse = append(pulse, p)
	}
	v.pulse = pulse

	v.clampCursor()
}

func (v *DailyView) clampCursor() {
	tasks := v.currentColumn()
	if v.cursor >= len(tasks) {
		v.cursor = len(tasks) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v DailyView) currentColumn() []model.Task {
	category := model.Categories()[v.column]
	// The Projects column lists projects, not tasks, so task actions
	// have nothing to operate on there.
	if category == model.CategoryProjects {
		return nil
	}
	return v.tasksByCategory[category]
}

// addTask categorizes the title via the AI collaborator (or its offline
// fallback) and creates the task. Pasted URLs become Resources entries
// with link metadata.
func (v DailyView) addTask(title string) tea.Cmd {
	engine := v.engine
	client := v.ai
	date := v.date

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		var link *model.LinkMetadata
		category := client.Categorize(ctx, title)
		if ai.IsURL(title) {
			category = model.CategoryResources
			domain := title
			if u, err := url.Parse(title); err == nil && u.Host != "" {
				domain = strings.TrimPrefix(u.Host, "www.")
			}
			link = &model.LinkMetadata{
				DisplayTitle: client.SummarizeLink(ctx, title),
				Domain:       domain,
				Favicon:      ai.FaviconURL(domain),
				Slug:         client.GenerateSlug(ctx, title),
			}
		}

		if _, err := engine.AddTask(title, category, date, link); err != nil {
			return dailyErrorMsg{err: err}
		}
		return dailyTaskAddedMsg{category: category}
	}
}

func (v DailyView) toggleTask(id string) tea.Cmd {
	engine := v.engine
	st := v.store
	return func() tea.Msg {
		task, ok := st.FindTask(id)
		archived, err := engine.ToggleTask(id)
		if err != nil {
			return dailyErrorMsg{err: err}
		}
		if archived && ok {
			title := task.Title
			if project, found := st.FindProject(task.ProjectID); found {
				title = project.Title
			} else if i := strings.Index(title, "] "); strings.HasPrefix(title, "[") && i > 0 {
				title = title[i+2:]
			}
			return ProjectArchivedNotice{Title: title}
		}
		return dailyRefreshMsg{}
	}
}

// Update handles messages
func (v DailyView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dailyRefreshMsg:
		v.reload()
		return v, nil

	case dailyTaskAddedMsg:
		v.reload()
		v.statusMsg = fmt.Sprintf("Added to %s", msg.category)
		return v, nil

	case dailyErrorMsg:
		v.statusMsg = msg.err.Error()
		return v, nil

	case ProjectArchivedNotice:
		v.reload()
		return v, nil

	case tea.KeyMsg:
		if v.adding {
			switch msg.String() {
			case "enter":
				title := strings.TrimSpace(v.input.Value())
				v.adding = false
				v.input.Blur()
				v.input.SetValue("")
				if title == "" {
					return v, nil
				}
				return v, v.addTask(title)
			case "esc":
				v.adding = false
				v.input.Blur()
				v.input.SetValue("")
				return v, nil
			}
			var cmd tea.Cmd
			v.input, cmd = v.input.Update(msg)
			return v, cmd
		}

		tasks := v.currentColumn()
		switch msg.String() {
		case "a":
			v.adding = true
			v.input.Focus()
			return v, textinput.Blink

		case "h", "left":
			if v.column > 0 {
				v.column--
				v.clampCursor()
			}
			return v, nil

		case "l", "right":
			if v.column < len(model.Categories())-1 {
				v.column++
				v.clampCursor()
			}
			return v, nil

		case "k", "up":
			if v.cursor > 0 {
				v.cursor--
			}
			return v, nil

		case "j", "down":
			if v.cursor < len(tasks)-1 {
				v.cursor++
			}
			return v, nil

		case "[":
			v.date = dateutil.Key(dateutil.Parse(v.date).AddDate(0, 0, -1))
			v.reload()
			return v, nil

		case "]":
			v.date = dateutil.Key(dateutil.Parse(v.date).AddDate(0, 0, 1))
			v.reload()
			return v, nil

		case "t":
			v.date = dateutil.Today()
			v.reload()
			return v, nil

		case "tab", " ":
			if v.cursor < len(tasks) {
				return v, v.toggleTask(tasks[v.cursor].ID)
			}
			return v, nil

		case "d":
			if v.cursor < len(tasks) {
				engine := v.engine
				id := tasks[v.cursor].ID
				return v, func() tea.Msg {
					if err := engine.DeleteTask(id); err != nil {
						return dailyErrorMsg{err: err}
					}
					return dailyRefreshMsg{}
				}
			}
			return v, nil

		case "p":
			if v.cursor < len(tasks) && tasks[v.cursor].IsLink() {
				engine := v.engine
				task := tasks[v.cursor]
				return v, func() tea.Msg {
					if err := engine.SetTaskPinned(task.ID, !task.Link.Pinned); err != nil {
						return dailyErrorMsg{err: err}
					}
					return dailyRefreshMsg{}
				}
			}
			return v, nil

		case "enter":
			if v.cursor < len(tasks) && tasks[v.cursor].Category.Expandable() {
				id := tasks[v.cursor].ID
				v.expanded[id] = !v.expanded[id]
			}
			return v, nil
		}
	}

	return v, nil
}

// View renders the daily board
func (v DailyView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme

	var sections []string
	sections = append(sections, v.renderDateBar())
	sections = append(sections, v.renderPulse())

	if v.adding {
		inputStyle := lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1).
			Width(v.width - 4)
		sections = append(sections, inputStyle.Render(v.input.View()))
	}

	sections = append(sections, v.renderColumns())

	if v.statusMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v DailyView) renderDateBar() string {
	t := theme.Current.Theme

	label := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Render(dateutil.Label(v.date))

	hint := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Render("  [ prev • ] next • t today")

	return label + hint
}

// renderPulse renders the 7-day strip of project/area workload counts
func (v DailyView) renderPulse() string {
	t := theme.Current.Theme

	var cells []string
	for _, p := range v.pulse {
		style := lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(t.Subtle)
		if p.date == v.date {
			style = style.Foreground(t.Primary).Bold(true)
		} else if p.projects+p.areas > 0 {
			style = style.Foreground(t.Foreground)
		}

		cell := fmt.Sprintf("%s %s", dateutil.Weekday(p.date), dateutil.DayOfMonth(p.date))
		if p.projects > 0 {
			cell += fmt.Sprintf(" %dp", p.projects)
		}
		if p.areas > 0 {
			cell += fmt.Sprintf(" %da", p.areas)
		}
		cells = append(cells, style.Render(cell))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (v DailyView) renderColumns() string {
	categories := model.Categories()
	colWidth := v.width/len(categories) - 2
	if colWidth < 16 {
		colWidth = 16
	}

	var columns []string
	for i, cat := range categories {
		columns = append(columns, v.renderColumn(cat, i == v.column, colWidth))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (v DailyView) renderColumn(category model.ParaCategory, focused bool, width int) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	// The Projects column shows in-progress projects with their
	// completion percentage instead of that day's tasks.
	if category == model.CategoryProjects {
		return v.renderProjectsColumn(focused, width)
	}

	tasks := v.tasksByCategory[category]

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.CategoryColor(string(category))).
		Render(fmt.Sprintf("%s (%d)", category, len(tasks)))

	var lines []string
	lines = append(lines, header)
	lines = append(lines, "")

	if len(tasks) == 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true).
			Render("empty"))
	}

	for i, task := range tasks {
		lines = append(lines, v.renderTask(task, focused && i == v.cursor, width-4))

		if task.IsArchiveRecord() && v.expanded[task.ID] {
			for _, item := range task.ArchivedItems {
				check := "☐"
				if item.Completed {
					check = "☑"
				}
				lines = append(lines, lipgloss.NewStyle().
					Foreground(t.Subtle).
					Render(fmt.Sprintf("   %s %s", check, item.Title)))
			}
		}
	}

	box := styles.Panel
	if focused {
		box = styles.PanelActive
	}
	return box.Width(width).Render(strings.Join(lines, "\n"))
}

func (v DailyView) renderProjectsColumn(focused bool, width int) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	var active []model.Project
	for _, p := range v.store.Projects() {
		if p.Status == model.StatusInProgress {
			active = append(active, p)
		}
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().
		Bold(true).
		Foreground(t.CategoryColor(string(model.CategoryProjects))).
		Render(fmt.Sprintf("%s (%d)", model.CategoryProjects, len(active))))
	lines = append(lines, "")

	if len(active) == 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true).
			Render("no active projects"))
	}

	for _, p := range active {
		pct := lipgloss.NewStyle().
			Foreground(t.StatusColor(string(p.Status))).
			Render(fmt.Sprintf("%3d%%", p.Progress()))
		lines = append(lines, fmt.Sprintf("%s %s", pct, truncate(p.Title, width-10)))
	}

	box := styles.Panel
	if focused {
		box = styles.PanelActive
	}
	return box.Width(width).Render(strings.Join(lines, "\n"))
}

func (v DailyView) renderTask(task model.Task, selected bool, width int) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	check := "☐"
	if task.Completed {
		check = "☑"
	}
	if !task.Category.Toggleable() {
		check = "·"
	}

	title := task.Title
	if task.IsLink() && task.Link.DisplayTitle != "" {
		title = task.Link.DisplayTitle
		if task.Link.Pinned {
			title = "📌 " + title
		}
	}
	title = truncate(title, width-4)

	style := styles.TaskNormal.UnsetPadding()
	switch {
	case selected:
		style = styles.TaskSelected.UnsetPadding()
	case task.Completed:
		style = styles.TaskDone.UnsetPadding()
	case task.IsMirror():
		style = styles.TaskMirror.UnsetPadding()
	case task.IsOverdue(dateutil.Today()):
		style = styles.TaskOverdue.UnsetPadding()
	}

	line := fmt.Sprintf("%s %s", check, style.Render(title))
	if task.IsLink() {
		line += lipgloss.NewStyle().Foreground(t.Subtle).Render(" " + task.Link.Domain)
	}
	return line
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// IsInputMode returns whether the view is in input mode
func (v DailyView) IsInputMode() bool {
	return v.adding
}
