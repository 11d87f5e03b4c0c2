// Package calendar provides the event source feeding the import flow.
package calendar

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hermes0001-boop/schedule-app-260122/internal/ai"
	"github.com/hermes0001-boop/schedule-app-260122/internal/dateutil"
	"github.com/hermes0001-boop/schedule-app-260122/internal/model"
)

// EventSource produces calendar events for an account. The context
// projects let a source tailor what it returns.
type EventSource interface {
	FetchEvents(ctx context.Context, account string, projects []model.Project) ([]model.CalendarEvent, error)
}

// AISource synthesizes a day's worth of events through the AI
// collaborator, seeded by the user's active projects
type AISource struct {
	client *ai.Client
}

// NewAISource builds an event source over the AI client
func NewAISource(client *ai.Client) *AISource {
	return &AISource{client: client}
}

// FetchEvents returns today's events for the account. An offline or
// failing AI client yields an empty calendar, never an error.
func (s *AISource) FetchEvents(ctx context.Context, account string, projects []model.Project) ([]model.CalendarEvent, error) {
	return s.client.GenerateEvents(ctx, account, projects), nil
}

// TasksFromEvents converts fetched events into importable tasks dated
// today, applying the category mappings (absent mapping defaults to
// Areas, matching the mapping fallback)
func TasksFromEvents(events []model.CalendarEvent, mappings []model.EventMapping) []model.Task {
	byID := make(map[string]model.EventMapping, len(mappings))
	for _, m := range mappings {
		byID[m.ID] = m
	}

	today := dateutil.Today()
	tasks := make([]model.Task, 0, len(events))
	for _, ev := range events {
		category := model.CategoryAreas
		if m, ok := byID[ev.ID]; ok && m.Category.Valid() {
			category = m.Category
		}
		tasks = append(tasks, model.Task{
			ID:       uuid.New().String(),
			Title:    ev.Summary,
			Category: category,
			Date:     today,
			Notes:    fmt.Sprintf("Imported from Google Calendar (%s - %s)", ev.Start, ev.End),
		})
	}
	return tasks
}
