package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Top      key.Binding
	Bottom   key.Binding
	NextDay  key.Binding
	PrevDay  key.Binding
	Today    key.Binding

	// Task actions
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Toggle    key.Binding
	Pin       key.Binding
	Schedule  key.Binding
	MoveToday key.Binding
	MoveAll   key.Binding

	// Project actions
	NewProject  key.Binding
	AddItem     key.Binding
	RemoveItem  key.Binding
	Breakdown   key.Binding
	CycleStatus key.Binding

	// Views
	DailyView    key.Binding
	ProjectsView key.Binding
	OverdueView  key.Binding
	CalSyncView  key.Binding

	// Power user
	Fetch      key.Binding
	ImportAll  key.Binding
	Help       key.Binding
	ThemeCycle key.Binding

	// General
	Quit    key.Binding
	Back    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next day"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev day"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),

		// Task actions
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab", " "),
			key.WithHelp("tab", "toggle done"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin"),
		),
		Schedule: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "reschedule"),
		),
		MoveToday: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move to today"),
		),
		MoveAll: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "move all to today"),
		),

		// Project actions
		NewProject: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new project"),
		),
		AddItem: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "add item"),
		),
		RemoveItem: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove item"),
		),
		Breakdown: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "ai breakdown"),
		),
		CycleStatus: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "cycle status"),
		),

		// Views
		DailyView: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "daily"),
		),
		ProjectsView: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "projects"),
		),
		OverdueView: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "overdue"),
		),
		CalSyncView: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "calendar"),
		),

		// Power user
		Fetch: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fetch events"),
		),
		ImportAll: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "import all"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),

		// General
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("escape"),
			key.WithHelp("esc", "back"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("escape"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.PrevDay, k.NextDay, k.Today},
		{k.Add, k.Edit, k.Delete, k.Toggle},
		{k.NewProject, k.AddItem, k.RemoveItem, k.Breakdown},
		{k.DailyView, k.ProjectsView, k.OverdueView, k.CalSyncView},
		{k.Schedule, k.MoveToday, k.MoveAll, k.Fetch},
		{k.Help, k.Quit},
	}
}
