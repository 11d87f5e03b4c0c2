package model

// CalendarEvent is a single event fetched from the calendar collaborator
type CalendarEvent struct {
	ID       string `json:"id"`
	Summary  string `json:"summary"`
	Start    string `json:"start"` // e.g. "09:00 AM"
	End      string `json:"end"`
	Location string `json:"location,omitempty"`
}

// EventMapping is the AI collaborator's PARA classification of one event
type EventMapping struct {
	ID       string       `json:"id"`
	Category ParaCategory `json:"category"`
	Reason   string       `json:"reason"`
}
