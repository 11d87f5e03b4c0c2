package ui

// View represents the current active view
type View int

const (
	ViewDaily View = iota
	ViewProjects
	ViewOverdue
	ViewCalSync
	ViewLogin
	ViewHelp
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewDaily:
		return "Daily"
	case ViewProjects:
		return "Projects"
	case ViewOverdue:
		return "Overdue"
	case ViewCalSync:
		return "Calendar"
	case ViewLogin:
		return "Login"
	case ViewHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// ViewByName resolves a --view flag value to a view
func ViewByName(name string) (View, bool) {
	switch name {
	case "daily":
		return ViewDaily, true
	case "projects":
		return ViewProjects, true
	case "overdue":
		return ViewOverdue, true
	case "calendar", "calsync":
		return ViewCalSync, true
	}
	return ViewDaily, false
}

// Messages for inter-component communication

// SwitchViewMsg requests a view change
type SwitchViewMsg struct {
	View View
}

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}

// ThemeChangedMsg indicates the theme was changed
type ThemeChangedMsg struct {
	ThemeName string
}

// RefreshMsg requests data refresh
type RefreshMsg struct{}
