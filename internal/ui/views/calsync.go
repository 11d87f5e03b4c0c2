package views

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hermes0001-boop/schedule-app-260122/internal/ai"
	"github.com/hermes0001-boop/schedule-app-260122/internal/calendar"
	"github.com/hermes0001-boop/schedule-app-260122/internal/model"
	"github.com/hermes0001-boop/schedule-app-260122/internal/store"
	syncengine "github.com/hermes0001-boop/schedule-app-260122/internal/sync"
	"github.com/hermes0001-boop/schedule-app-260122/internal/ui/theme"
)

// Local message types for calendar sync view
type calsyncErrorMsg struct{ err error }
type calsyncFetchedMsg struct {
	events   []model.CalendarEvent
	mappings []model.EventMapping
}
type calsyncImportedMsg struct{ count int }

// CalSyncView fetches calendar events and files them into PARA buckets
type CalSyncView struct {
	engine  *syncengine.Engine
	store   *store.Store
	ai      *ai.Client
	source  calendar.EventSource
	account string

	width  int
	height int

	events   []model.CalendarEvent
	mappings map[string]model.EventMapping
	cursor   int
	fetching bool

	statusMsg string
}

// NewCalSyncView creates a new calendar sync view
func NewCalSyncView(engine *syncengine.Engine, st *store.Store, client *ai.Client, source calendar.EventSource, account string) CalSyncView {
	return CalSyncView{
		engine:   engine,
		store:    st,
		ai:       client,
		source:   source,
		account:  account,
		mappings: make(map[string]model.EventMapping),
	}
}

// Init initializes the calendar sync view
func (v CalSyncView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v CalSyncView) SetSize(width, height int) CalSyncView {
	v.width = width
	v.height = height
	return v
}

// fetch pulls today's events and asks the AI collaborator to file each
// one into a PARA bucket. Runs off the UI loop; the offline fallback
// maps everything to Areas.
func (v CalSyncView) fetch() tea.Cmd {
	source := v.source
	client := v.ai
	account := v.account
	projects := v.store.Projects()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()

		events, err := source.FetchEvents(ctx, account, projects)
		if err != nil {
			return calsyncErrorMsg{err: err}
		}
		if len(events) == 0 {
			return calsyncFetchedMsg{}
		}

		mappings := client.MapEventsToPara(ctx, events)
		return calsyncFetchedMsg{events: events, mappings: mappings}
	}
}

func (v CalSyncView) importAll() tea.Cmd {
	engine := v.engine
	events := append([]model.CalendarEvent(nil), v.events...)
	mappings := make([]model.EventMapping, 0, len(v.mappings))
	for _, m := range v.mappings {
		mappings = append(mappings, m)
	}

	return func() tea.Msg {
		tasks := calendar.TasksFromEvents(events, mappings)
		if err := engine.ImportTasks(tasks); err != nil {
			return calsyncErrorMsg{err: err}
		}
		return calsyncImportedMsg{count: len(tasks)}
	}
}

// Update handles messages
func (v CalSyncView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case calsyncFetchedMsg:
		v.fetching = false
		v.events = msg.events
		v.mappings = make(map[string]model.EventMapping)
		for _, m := range msg.mappings {
			v.mappings[m.ID] = m
		}
		v.cursor = 0
		if len(v.events) == 0 {
			v.statusMsg = "No events found for today"
		} else {
			v.statusMsg = fmt.Sprintf("Fetched %d events", len(v.events))
		}
		return v, nil

	case calsyncImportedMsg:
		v.events = nil
		v.mappings = make(map[string]model.EventMapping)
		v.statusMsg = fmt.Sprintf("Imported %d tasks into today", msg.count)
		return v, nil

	case calsyncErrorMsg:
		v.fetching = false
		v.statusMsg = msg.err.Error()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "f":
			if !v.fetching {
				v.fetching = true
				v.statusMsg = "Fetching events..."
				return v, v.fetch()
			}
		case "k", "up":
			if v.cursor > 0 {
				v.cursor--
			}
		case "j", "down":
			if v.cursor < len(v.events)-1 {
				v.cursor++
			}
		case "c":
			// Cycle the selected event's bucket manually
			if v.cursor < len(v.events) {
				id := v.events[v.cursor].ID
				m := v.mappings[id]
				m.ID = id
				m.Category = nextCategory(m.Category)
				m.Reason = "Set manually"
				v.mappings[id] = m
			}
		case "I", "enter":
			if len(v.events) > 0 {
				return v, v.importAll()
			}
		}
	}

	return v, nil
}

func nextCategory(c model.ParaCategory) model.ParaCategory {
	categories := model.Categories()
	for i, cat := range categories {
		if cat == c {
			return categories[(i+1)%len(categories)]
		}
	}
	return model.CategoryAreas
}

// View renders the calendar sync view
func (v CalSyncView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	styles := theme.Current.Styles

	title := styles.Title.Render("Calendar Sync")
	account := lipgloss.NewStyle().Foreground(t.Subtle).Render(v.account)

	var lines []string
	lines = append(lines, title, account, "")

	if !v.ai.Online() {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(t.Warning).
			Render("Offline mode: no API key set, events will file under Areas"))
		lines = append(lines, "")
	}

	if len(v.events) == 0 {
		hint := "Press f to fetch today's events."
		if v.fetching {
			hint = "Fetching..."
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Subtle).Italic(true).Render(hint))
	}

	for i, event := range v.events {
		style := styles.TaskNormal.UnsetPadding()
		if i == v.cursor {
			style = styles.TaskSelected.UnsetPadding()
		}

		mapping := v.mappings[event.ID]
		bucket := lipgloss.NewStyle().
			Foreground(t.CategoryColor(string(mapping.Category))).
			Render(fmt.Sprintf("→ %s", mapping.Category))

		line := fmt.Sprintf("%s  %s %s",
			lipgloss.NewStyle().Foreground(t.Subtle).Render(event.Start),
			style.Render(truncate(event.Summary, v.width-40)),
			bucket)
		lines = append(lines, line)

		if i == v.cursor && mapping.Reason != "" {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(t.Subtle).
				Italic(true).
				Render("   "+mapping.Reason))
		}
	}

	if len(v.events) > 0 {
		lines = append(lines, "")
		lines = append(lines, lipgloss.NewStyle().
			Foreground(t.Subtle).
			Render("c: change bucket • I/enter: import all"))
	}

	if v.statusMsg != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// IsInputMode returns whether the view is in input mode
func (v CalSyncView) IsInputMode() bool {
	return false
}
