package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hermes0001-boop/schedule-app-260122/internal/app"
	"github.com/hermes0001-boop/schedule-app-260122/internal/dateutil"
	"github.com/hermes0001-boop/schedule-app-260122/internal/ui/theme"
	"github.com/hermes0001-boop/schedule-app-260122/internal/ui/views"
)

// Debug logging (enable by setting NEXUS_DEBUG=1)
var rootDebugLog *os.File

func init() {
	if os.Getenv("NEXUS_DEBUG") == "1" {
		rootDebugLog, _ = os.OpenFile("/tmp/nexus-root-debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	}
}

func rootDebugf(format string, args ...interface{}) {
	if rootDebugLog != nil {
		fmt.Fprintf(rootDebugLog, format+"\n", args...)
		rootDebugLog.Sync()
	}
}

// RootModel is the main application model that manages views
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	locked      bool
	currentView View

	loginView    views.LoginView
	dailyView    views.DailyView
	projectsView views.ProjectsView
	overdueView  views.OverdueView
	calSyncView  views.CalSyncView
	helpVisible  bool

	// Status message
	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = false

	return RootModel{
		app:          application,
		keys:         DefaultKeyMap(),
		help:         h,
		locked:       true,
		currentView:  ViewDaily,
		loginView:    views.NewLoginView(application.Auth),
		dailyView:    views.NewDailyView(application.Engine, application.Store, application.AI),
		projectsView: views.NewProjectsView(application.Engine, application.Store, application.AI),
		overdueView:  views.NewOverdueView(application.Engine, application.Store),
		calSyncView: views.NewCalSyncView(
			application.Engine,
			application.Store,
			application.AI,
			application.Events,
			application.Config.Calendar.Account,
		),
	}
}

// SetStartView sets the view shown after unlock
func (m RootModel) SetStartView(v View) RootModel {
	m.currentView = v
	return m
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	cmd := m.loginView.Init()
	rootDebugf("RootModel.Init() returning cmd: %v", cmd != nil)
	return cmd
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	rootDebugf("RootModel.Update received msg type: %T", msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Update child views with new size
		// Reserve space for header (2 lines) and footer (2 lines)
		contentHeight := m.height - 4
		m.loginView = m.loginView.SetSize(m.width, contentHeight)
		m.dailyView = m.dailyView.SetSize(m.width, contentHeight)
		m.projectsView = m.projectsView.SetSize(m.width, contentHeight)
		m.overdueView = m.overdueView.SetSize(m.width, contentHeight)
		m.calSyncView = m.calSyncView.SetSize(m.width, contentHeight)

	case views.Unlocked:
		m.locked = false
		return m, tea.Batch(
			m.dailyView.Init(),
			m.overdueView.Init(),
			m.notifyOverdue(),
		)

	case views.ProjectArchivedNotice:
		m.statusMsg = fmt.Sprintf("Project archived: %s", msg.Title)
		notifier := m.app.Notifier
		title := msg.Title
		cmds = append(cmds, func() tea.Msg {
			notifier.SendProjectArchived(title)
			return nil
		})
		// Fall through so the active view reloads

	case tea.KeyMsg:
		// Clear status/error on any keypress
		m.statusMsg = ""
		m.errorMsg = ""

		if m.locked {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			newLogin, cmd := m.loginView.Update(msg)
			m.loginView = newLogin.(views.LoginView)
			return m, cmd
		}

		// Check if current view is in input mode
		isInputMode := false
		switch m.currentView {
		case ViewDaily:
			isInputMode = m.dailyView.IsInputMode()
		case ViewProjects:
			isInputMode = m.projectsView.IsInputMode()
		case ViewOverdue:
			isInputMode = m.overdueView.IsInputMode()
		case ViewCalSync:
			isInputMode = m.calSyncView.IsInputMode()
		}

		// Global keybindings
		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}
			// Otherwise, let the view handle 'q' as a character

		case key.Matches(msg, m.keys.ThemeCycle):
			// ctrl+t always works (unlikely to type)
			m.cycleTheme()
			return m, nil
		}

		// Skip other global keys when in input mode
		if isInputMode {
			break // Fall through to view delegation
		}

		// These only work when NOT in input mode
		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
			m.help.ShowAll = m.helpVisible
			return m, nil

		// View switching (1-4 keys)
		case key.Matches(msg, m.keys.DailyView):
			m.currentView = ViewDaily
			return m, m.dailyView.Init()
		case key.Matches(msg, m.keys.ProjectsView):
			m.currentView = ViewProjects
			return m, m.projectsView.Init()
		case key.Matches(msg, m.keys.OverdueView):
			m.currentView = ViewOverdue
			return m, m.overdueView.Init()
		case key.Matches(msg, m.keys.CalSyncView):
			m.currentView = ViewCalSync
			return m, m.calSyncView.Init()
		}

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil

	case ThemeChangedMsg:
		m.statusMsg = fmt.Sprintf("Theme: %s", msg.ThemeName)
		return m, nil
	}

	if m.locked {
		newLogin, cmd := m.loginView.Update(msg)
		m.loginView = newLogin.(views.LoginView)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Delegate to current view
	rootDebugf("Delegating to view: %v", m.currentView)
	switch m.currentView {
	case ViewDaily:
		newDailyView, cmd := m.dailyView.Update(msg)
		m.dailyView = newDailyView.(views.DailyView)
		cmds = append(cmds, cmd)
	case ViewProjects:
		newProjectsView, cmd := m.projectsView.Update(msg)
		m.projectsView = newProjectsView.(views.ProjectsView)
		cmds = append(cmds, cmd)
	case ViewOverdue:
		newOverdueView, cmd := m.overdueView.Update(msg)
		m.overdueView = newOverdueView.(views.OverdueView)
		cmds = append(cmds, cmd)
	case ViewCalSync:
		newCalSyncView, cmd := m.calSyncView.Update(msg)
		m.calSyncView = newCalSyncView.(views.CalSyncView)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// notifyOverdue sends a desktop reminder when unlocking with slipped tasks
func (m RootModel) notifyOverdue() tea.Cmd {
	store := m.app.Store
	notifier := m.app.Notifier
	return func() tea.Msg {
		count := 0
		today := dateutil.Today()
		for _, t := range store.Tasks() {
			if t.IsOverdue(today) && !t.IsArchiveRecord() {
				count++
			}
		}
		notifier.SendOverdueReminder(count)
		return nil
	}
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.locked {
		return m.loginView.View()
	}

	styles := theme.Current.Styles
	var sections []string

	// Header
	header := m.renderHeader()
	sections = append(sections, header)

	// Content area
	// Reserve: 1 line for header + 3 lines for footer (status + 2 hint lines)
	contentHeight := m.height - 4
	if m.errorMsg != "" || m.statusMsg != "" {
		contentHeight-- // Extra line for status message
	}
	var content string

	if m.helpVisible {
		content = m.renderHelp(contentHeight)
	} else {
		switch m.currentView {
		case ViewDaily:
			content = m.dailyView.View()
		case ViewProjects:
			content = m.projectsView.View()
		case ViewOverdue:
			content = m.overdueView.View()
		case ViewCalSync:
			content = m.calSyncView.View()
		default:
			content = styles.Panel.Render("View not implemented")
		}
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)

	// Footer
	footer := m.renderFooter()
	sections = append(sections, footer)

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("nexus")

	// View indicator
	viewStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)
	viewIndicator := viewStyle.Render(fmt.Sprintf("[%s]", m.currentView.String()))

	// Theme indicator
	themeIndicator := viewStyle.Render(fmt.Sprintf("theme: %s", t.Name))

	// Combine header elements
	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, viewIndicator)
	rightSide := themeIndicator

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 0 {
		gap = 0
	}

	header := leftSide + strings.Repeat(" ", gap) + rightSide
	return header
}

// renderFooter renders the footer/status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	// Helper to format key hints
	key := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	// Show error or status message on first line if present
	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	// Build context-aware hint lines
	var line1, line2 string

	switch m.currentView {
	case ViewDaily:
		if m.dailyView.IsInputMode() {
			line1 = key("enter", "confirm") + sep + key("esc", "cancel")
			line2 = ""
		} else {
			line1 = key("a", "add") + sep +
				key("h/l", "columns") + sep +
				key("j/k", "navigate") + sep +
				key("tab", "done") + sep +
				key("d", "del") + sep +
				key("p", "pin")
			line2 = key("[/]", "prev/next day") + sep +
				key("t", "today") + sep +
				key("enter", "expand archive") + sep +
				key("1-4", "views") + sep +
				key("?", "help")
		}

	case ViewProjects:
		if m.projectsView.IsInputMode() {
			line1 = key("enter", "confirm") + sep + key("esc", "cancel")
			line2 = ""
		} else {
			line1 = key("n", "new") + sep +
				key("enter", "open") + sep +
				key("tab", "toggle step") + sep +
				key("i", "add step") + sep +
				key("x", "remove step")
			line2 = key("b", "ai breakdown") + sep +
				key("s", "schedule step") + sep +
				key("S", "status") + sep +
				key("D", "delete") + sep +
				key("1-4", "views")
		}

	case ViewOverdue:
		line1 = key("m", "move to today") + sep +
			key("M", "move all") + sep +
			key("s", "reschedule") + sep +
			key("tab", "done") + sep +
			key("d", "del")
		line2 = key("j/k", "navigate") + sep +
			key("1-4", "views") + sep +
			key("?", "help")

	case ViewCalSync:
		line1 = key("f", "fetch events") + sep +
			key("c", "change bucket") + sep +
			key("I", "import all")
		line2 = key("j/k", "navigate") + sep +
			key("1-4", "views") + sep +
			key("?", "help")

	default:
		line1 = key("1-4", "views") + sep + key("?", "help")
	}

	// Build footer
	var lines []string

	// Status/error line (if present)
	if statusLine != "" {
		lines = append(lines, statusLine)
	}

	// Hint lines
	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}

	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp(height int) string {
	t := theme.Current.Theme

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Foreground).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Subtle)

	var b strings.Builder

	// Title
	b.WriteString(titleStyle.Render("Nexus Help"))
	b.WriteString("\n\n")

	// Navigation section
	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navKeys := [][]string{
		{"↑/k ↓/j", "Navigate up/down"},
		{"←/h →/l", "Switch columns"},
		{"[ / ]", "Previous/next day"},
		{"t", "Jump to today"},
	}
	for _, kv := range navKeys {
		b.WriteString(keyStyle.Render(kv[0]))
		b.WriteString(descStyle.Render(kv[1]))
		b.WriteString("\n")
	}

	// Task section
	b.WriteString(sectionStyle.Render("Tasks"))
	b.WriteString("\n")
	taskKeys := [][]string{
		{"a", "Add task (AI files it into a PARA bucket)"},
		{"tab", "Toggle done (propagates to project steps)"},
		{"d", "Delete task"},
		{"p", "Pin/unpin a saved link"},
		{"enter", "Expand an archived project's snapshot"},
	}
	for _, kv := range taskKeys {
		b.WriteString(keyStyle.Render(kv[0]))
		b.WriteString(descStyle.Render(kv[1]))
		b.WriteString("\n")
	}

	// Projects section
	b.WriteString(sectionStyle.Render("Projects"))
	b.WriteString("\n")
	projectKeys := [][]string{
		{"n", "New project"},
		{"enter", "Open project detail"},
		{"i / x", "Add / remove a step"},
		{"s", "Set a step's deadline (mirrors to Daily)"},
		{"b", "AI breakdown into steps"},
		{"S", "Cycle status"},
		{"D", "Delete project (removes mirrored tasks)"},
	}
	for _, kv := range projectKeys {
		b.WriteString(keyStyle.Render(kv[0]))
		b.WriteString(descStyle.Render(kv[1]))
		b.WriteString("\n")
	}

	// Views section
	b.WriteString(sectionStyle.Render("Views"))
	b.WriteString("\n")
	viewKeys := [][]string{
		{"1", "Daily board"},
		{"2", "Projects"},
		{"3", "Overdue recovery"},
		{"4", "Calendar sync"},
		{"?", "Toggle this help"},
	}
	for _, kv := range viewKeys {
		b.WriteString(keyStyle.Render(kv[0]))
		b.WriteString(descStyle.Render(kv[1]))
		b.WriteString("\n")
	}

	// System section
	b.WriteString(sectionStyle.Render("System"))
	b.WriteString("\n")
	sysKeys := [][]string{
		{"ctrl+t", "Cycle theme"},
		{"q / ctrl+c", "Quit"},
	}
	for _, kv := range sysKeys {
		b.WriteString(keyStyle.Render(kv[0]))
		b.WriteString(descStyle.Render(kv[1]))
		b.WriteString("\n")
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(descStyle.Render("Press ? or esc to close"))

	return b.String()
}

// cycleTheme cycles through available themes
func (m *RootModel) cycleTheme() {
	themes := theme.Available()
	current := theme.Current.Theme.Name

	for i, t := range themes {
		if t.Name == current {
			next := themes[(i+1)%len(themes)]
			theme.SetTheme(next)
			m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
			return
		}
	}
}
