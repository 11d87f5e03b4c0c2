package views

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/hermes0001-boop/schedule-app-260122/internal/ai"
	"github.com/hermes0001-boop/schedule-app-260122/internal/dateutil"
	"github.com/hermes0001-boop/schedule-app-260122/internal/model"
	"github.com/hermes0001-boop/schedule-app-260122/internal/store"
	syncengine "github.com/hermes0001-boop/schedule-app-260122/internal/sync"
	"github.com/hermes0001-boop/schedule-app-260122/internal/ui/theme"
)

// Local message types for projects view
type projectsErrorMsg struct{ err error }
type projectsRefreshMsg struct{}
type breakdownMsg struct {
	projectID string
	steps     []string
}
type slugMsg struct {
	projectID string
	slug      string
}

// projectsMode is the interaction state of the projects view
type projectsMode int

const (
	projModeList projectsMode = iota
	projModeDetail
	projModeCreateTitle
	projModeCreateDesc
	projModeCreateDeadline
	projModeCreateItems
	projModeItemTitle
	projModeItemDeadline
)

// ProjectsView manages the project list and per-project detail editing
type ProjectsView struct {
	engine *syncengine.Engine
	store  *store.Store
	ai     *ai.Client

	width  int
	height int

	mode     projectsMode
	projects []model.Project
	cursor   int

	// Detail mode
	detailID   string
	itemCursor int

	// Form state
	input         textinput.Model
	draftTitle    string
	draftDesc     string
	draftDeadline string
	draftItem     string
	deadlineOnly  string // item ID when rescheduling an existing item

	statusMsg string
}

// NewProjectsView creates a new projects view
func NewProjectsView(engine *syncengine.Engine, st *store.Store, client *ai.Client) ProjectsView {
	ti := textinput.New()
	ti.CharLimit = 200

	return ProjectsView{
		engine: engine,
		store:  st,
		ai:     client,
		input:  ti,
	}
}

// Init initializes the projects view
func (v ProjectsView) Init() tea.Cmd {
	return func() tea.Msg { return projectsRefreshMsg{} }
}

// SetSize sets the view dimensions
func (v ProjectsView) SetSize(width, height int) ProjectsView {
	v.width = width
	v.height = height
	return v
}

func (v *ProjectsView) reload() {
	v.projects = v.store.Projects()
	if v.cursor >= len(v.projects) {
		v.cursor = len(v.projects) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}

	if v.mode == projModeDetail {
		if p, ok := v.detail(); ok {
			if v.itemCursor >= len(p.Items) {
				v.itemCursor = len(p.Items) - 1
			}
			if v.itemCursor < 0 {
				v.itemCursor = 0
			}
		} else {
			// Project archived or deleted under us
			v.mode = projModeList
			v.detailID = ""
		}
	}
}

// sortedItems orders a project's steps deadline-ascending with undated
// steps last. The detail cursor indexes this order.
func sortedItems(p model.Project) []model.ProjectItem {
	items := p.CopyItems()
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Deadline, items[j].Deadline
		if (a == "") != (b == "") {
			return a != ""
		}
		return a < b
	})
	return items
}

func (v ProjectsView) detail() (model.Project, bool) {
	for _, p := range v.projects {
		if p.ID == v.detailID {
			return p, true
		}
	}
	return model.Project{}, false
}

func (v ProjectsView) startInput(mode projectsMode, placeholder, value string) (ProjectsView, tea.Cmd) {
	v.mode = mode
	v.input.Placeholder = placeholder
	v.input.SetValue(value)
	v.input.Focus()
	return v, textinput.Blink
}

// createProject asks the AI collaborator for a slug after the project is
// stored, so creation never blocks on the network
func (v ProjectsView) createProject(title, desc, deadline string, items []model.ProjectItem) tea.Cmd {
	engine := v.engine
	client := v.ai

	project := model.Project{
		ID:          uuid.New().String(),
		Title:       title,
		Description: desc,
		Status:      model.StatusInProgress,
		Term:        model.TermMid,
		Deadline:    deadline,
		Slug:        ai.FallbackSlug(title),
		Items:       items,
	}

	return func() tea.Msg {
		if err := engine.CreateProject(project); err != nil {
			return projectsErrorMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		return slugMsg{projectID: project.ID, slug: client.GenerateSlug(ctx, title)}
	}
}

func (v ProjectsView) breakdown(project model.Project) tea.Cmd {
	client := v.ai
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return breakdownMsg{projectID: project.ID, steps: client.BreakdownProject(ctx, project)}
	}
}

func (v ProjectsView) updateItem(projectID string, item model.ProjectItem) tea.Cmd {
	engine := v.engine
	st := v.store
	return func() tea.Msg {
		project, _ := st.FindProject(projectID)
		archived, err := engine.UpdateProjectItem(projectID, item)
		if err != nil {
			return projectsErrorMsg{err: err}
		}
		if archived {
			return ProjectArchivedNotice{Title: project.Title}
		}
		return projectsRefreshMsg{}
	}
}

// Update handles messages
func (v ProjectsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsRefreshMsg:
		v.reload()
		return v, nil

	case ProjectArchivedNotice:
		v.reload()
		return v, nil

	case projectsErrorMsg:
		v.statusMsg = msg.err.Error()
		return v, nil

	case slugMsg:
		engine := v.engine
		st := v.store
		slug := msg.slug
		id := msg.projectID
		v.reload()
		return v, func() tea.Msg {
			project, ok := st.FindProject(id)
			if !ok || slug == "" {
				return projectsRefreshMsg{}
			}
			project.Slug = slug
			if _, err := engine.UpdateProject(project); err != nil {
				return projectsErrorMsg{err: err}
			}
			return projectsRefreshMsg{}
		}

	case breakdownMsg:
		engine := v.engine
		st := v.store
		steps := msg.steps
		id := msg.projectID
		v.statusMsg = fmt.Sprintf("Added %d steps", len(steps))
		return v, func() tea.Msg {
			// Generated steps inherit the project deadline, or land today
			deadline := dateutil.Today()
			if project, ok := st.FindProject(id); ok && project.Deadline != "" {
				deadline = project.Deadline
			}
			for _, step := range steps {
				item := model.ProjectItem{ID: uuid.New().String(), Title: step, Deadline: deadline}
				if err := engine.AddProjectItem(id, item); err != nil {
					return projectsErrorMsg{err: err}
				}
			}
			return projectsRefreshMsg{}
		}

	case tea.KeyMsg:
		if v.mode >= projModeCreateTitle {
			return v.updateInput(msg)
		}
		if v.mode == projModeDetail {
			return v.updateDetail(msg)
		}
		return v.updateList(msg)
	}

	return v, nil
}

func (v ProjectsView) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "j", "down":
		if v.cursor < len(v.projects)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(v.projects) {
			v.detailID = v.projects[v.cursor].ID
			v.itemCursor = 0
			v.mode = projModeDetail
		}
	case "n":
		return v.startInput(projModeCreateTitle, "Project title", "")
	case "S":
		if v.cursor < len(v.projects) {
			return v, v.cycleStatus(v.projects[v.cursor])
		}
	case "T":
		if v.cursor < len(v.projects) {
			return v, v.toggleTerm(v.projects[v.cursor])
		}
	case "D":
		if v.cursor < len(v.projects) {
			engine := v.engine
			id := v.projects[v.cursor].ID
			return v, func() tea.Msg {
				if err := engine.DeleteProject(id); err != nil {
					return projectsErrorMsg{err: err}
				}
				return projectsRefreshMsg{}
			}
		}
	}
	return v, nil
}

func (v ProjectsView) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	project, ok := v.detail()
	if !ok {
		v.mode = projModeList
		return v, nil
	}

	items := sortedItems(project)

	switch msg.String() {
	case "esc":
		v.mode = projModeList
		v.detailID = ""
	case "k", "up":
		if v.itemCursor > 0 {
			v.itemCursor--
		}
	case "j", "down":
		if v.itemCursor < len(items)-1 {
			v.itemCursor++
		}
	case "tab", " ":
		if v.itemCursor < len(items) {
			item := items[v.itemCursor]
			item.Completed = !item.Completed
			return v, v.updateItem(project.ID, item)
		}
	case "i":
		return v.startInput(projModeItemTitle, "Step title", "")
	case "s":
		if v.itemCursor < len(items) {
			item := items[v.itemCursor]
			v.deadlineOnly = item.ID
			return v.startInput(projModeItemDeadline, "Deadline YYYY-MM-DD (empty = none)", item.Deadline)
		}
	case "x":
		if v.itemCursor < len(items) {
			engine := v.engine
			itemID := items[v.itemCursor].ID
			return v, func() tea.Msg {
				if err := engine.RemoveProjectItem(project.ID, itemID); err != nil {
					return projectsErrorMsg{err: err}
				}
				return projectsRefreshMsg{}
			}
		}
	case "b":
		v.statusMsg = "Generating breakdown..."
		return v, v.breakdown(project)
	case "S":
		return v, v.cycleStatus(project)
	}
	return v, nil
}

func (v ProjectsView) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.input.Blur()
		v.input.SetValue("")
		if v.mode == projModeItemTitle || v.mode == projModeItemDeadline {
			v.mode = projModeDetail
		} else {
			v.mode = projModeList
		}
		v.deadlineOnly = ""
		return v, nil

	case "enter":
		value := strings.TrimSpace(v.input.Value())
		v.input.Blur()
		v.input.SetValue("")

		switch v.mode {
		case projModeCreateTitle:
			if value == "" {
				v.mode = projModeList
				return v, nil
			}
			v.draftTitle = value
			return v.startInput(projModeCreateDesc, "Description (optional)", "")

		case projModeCreateDesc:
			v.draftDesc = value
			return v.startInput(projModeCreateDeadline, "Deadline YYYY-MM-DD (optional)", "")

		case projModeCreateDeadline:
			if value != "" && !dateutil.Valid(value) {
				v.mode = projModeList
				v.statusMsg = "Invalid date, expected YYYY-MM-DD"
				return v, nil
			}
			v.draftDeadline = value
			return v.startInput(projModeCreateItems, "Initial steps, comma-separated (optional)", "")

		case projModeCreateItems:
			v.mode = projModeList
			var items []model.ProjectItem
			for _, part := range strings.Split(value, ",") {
				if title := strings.TrimSpace(part); title != "" {
					items = append(items, model.ProjectItem{ID: uuid.New().String(), Title: title})
				}
			}
			return v, v.createProject(v.draftTitle, v.draftDesc, v.draftDeadline, items)

		case projModeItemTitle:
			v.mode = projModeDetail
			if value == "" {
				return v, nil
			}
			v.draftItem = value
			return v.startInput(projModeItemDeadline, "Deadline YYYY-MM-DD (empty = unscheduled)", "")

		case projModeItemDeadline:
			v.mode = projModeDetail
			if value != "" && !dateutil.Valid(value) {
				v.statusMsg = "Invalid date, expected YYYY-MM-DD"
				v.deadlineOnly = ""
				return v, nil
			}

			project, ok := v.detail()
			if !ok {
				return v, nil
			}

			if v.deadlineOnly != "" {
				// Rescheduling an existing item
				itemID := v.deadlineOnly
				v.deadlineOnly = ""
				for _, item := range project.Items {
					if item.ID == itemID {
						item.Deadline = value
						return v, v.updateItem(project.ID, item)
					}
				}
				return v, nil
			}

			engine := v.engine
			item := model.ProjectItem{ID: uuid.New().String(), Title: v.draftItem, Deadline: value}
			return v, func() tea.Msg {
				if err := engine.AddProjectItem(project.ID, item); err != nil {
					return projectsErrorMsg{err: err}
				}
				return projectsRefreshMsg{}
			}
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v ProjectsView) cycleStatus(project model.Project) tea.Cmd {
	engine := v.engine
	switch project.Status {
	case model.StatusInProgress:
		project.Status = model.StatusOnHold
	case model.StatusOnHold:
		project.Status = model.StatusCompleted
	default:
		project.Status = model.StatusInProgress
	}
	return func() tea.Msg {
		archived, err := engine.UpdateProject(project)
		if err != nil {
			return projectsErrorMsg{err: err}
		}
		if archived {
			return ProjectArchivedNotice{Title: project.Title}
		}
		return projectsRefreshMsg{}
	}
}

func (v ProjectsView) toggleTerm(project model.Project) tea.Cmd {
	engine := v.engine
	if project.Term == model.TermLong {
		project.Term = model.TermMid
	} else {
		project.Term = model.TermLong
	}
	return func() tea.Msg {
		if _, err := engine.UpdateProject(project); err != nil {
			return projectsErrorMsg{err: err}
		}
		return projectsRefreshMsg{}
	}
}

// View renders the projects view
func (v ProjectsView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme

	var content string
	switch {
	case v.mode >= projModeCreateTitle:
		content = v.renderInput()
	case v.mode == projModeDetail:
		content = v.renderDetail()
	default:
		content = v.renderList()
	}

	if v.statusMsg != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg)
	}
	return content
}

func (v ProjectsView) renderList() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	title := styles.Title.Render(fmt.Sprintf("Projects (%d)", len(v.projects)))

	if len(v.projects) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true).
			Render("No active projects. Press n to create one.")
		return lipgloss.JoinVertical(lipgloss.Left, title, empty)
	}

	cardWidth := v.width - 6
	if cardWidth > 80 {
		cardWidth = 80
	}

	var cards []string
	for i, p := range v.projects {
		cards = append(cards, v.renderCard(p, i == v.cursor, cardWidth))
	}

	return lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, cards...)...)
}

func (v ProjectsView) renderCard(p model.Project, selected bool, width int) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	status := lipgloss.NewStyle().
		Foreground(t.StatusColor(string(p.Status))).
		Render(string(p.Status))
	term := lipgloss.NewStyle().Foreground(t.Subtle).Render(string(p.Term) + "-term")

	header := lipgloss.NewStyle().Bold(true).Render(truncate(p.Title, width-20))

	meta := status + " • " + term
	if p.Deadline != "" {
		meta += " • " + styles.DueDate.Render("due "+p.Deadline)
	}

	progress := renderProgressBar(p.Progress(), width-12)
	counts := fmt.Sprintf("%d/%d", p.CompletedCount(), len(p.Items))

	lines := []string{header, meta, progress + " " + counts}

	box := styles.Panel
	if selected {
		box = styles.PanelActive
	}
	return box.Width(width).Render(strings.Join(lines, "\n"))
}

func (v ProjectsView) renderDetail() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	project, ok := v.detail()
	if !ok {
		return "Loading..."
	}

	title := styles.Title.Render(project.Title)

	var header []string
	header = append(header, title)
	if project.Description != "" {
		header = append(header, lipgloss.NewStyle().Foreground(t.Subtle).Render(project.Description))
	}
	meta := lipgloss.NewStyle().
		Foreground(t.StatusColor(string(project.Status))).
		Render(string(project.Status))
	if project.Deadline != "" {
		meta += styles.DueDate.Render("  due " + project.Deadline)
	}
	meta += lipgloss.NewStyle().Foreground(t.Subtle).Render(fmt.Sprintf("  %d%% complete", project.Progress()))
	header = append(header, meta, "")

	items := sortedItems(project)

	var lines []string
	if len(items) == 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true).
			Render("No steps yet. Press i to add one, or b for an AI breakdown."))
	}

	for i, item := range items {
		check := "☐"
		if item.Completed {
			check = "☑"
		}

		style := styles.TaskNormal.UnsetPadding()
		if i == v.itemCursor {
			style = styles.TaskSelected.UnsetPadding()
		} else if item.Completed {
			style = styles.TaskDone.UnsetPadding()
		}

		line := fmt.Sprintf("%s %s", check, style.Render(item.Title))
		if item.Deadline != "" {
			line += styles.DueDate.Render("  " + dateutil.Label(item.Deadline))
		}
		lines = append(lines, line)
	}

	body := strings.Join(append(header, lines...), "\n")
	return styles.Panel.Width(v.width - 4).Render(body)
}

func (v ProjectsView) renderInput() string {
	styles := theme.Current.Styles

	label := map[projectsMode]string{
		projModeCreateTitle:    "New project",
		projModeCreateDesc:     "New project",
		projModeCreateDeadline: "New project",
		projModeCreateItems:    "New project",
		projModeItemTitle:      "New step",
		projModeItemDeadline:   "Schedule step",
	}[v.mode]

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(label),
		styles.InputFocused.Width(v.width-6).Render(v.input.View()),
	)
}

// renderProgressBar renders a fixed-width completion bar
func renderProgressBar(percent, width int) string {
	t := theme.Current.Theme

	if width < 10 {
		width = 10
	}
	filled := width * percent / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	color := t.StatusInProgress
	if percent == 100 {
		color = t.Success
	}
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}

// IsInputMode returns whether the view is in input mode
func (v ProjectsView) IsInputMode() bool {
	return v.mode >= projModeCreateTitle
}
