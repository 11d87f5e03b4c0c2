package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hermes0001-boop/schedule-app-260122/internal/dateutil"
	"github.com/hermes0001-boop/schedule-app-260122/internal/model"
)

func TestTasksFromEvents(t *testing.T) {
	events := []model.CalendarEvent{
		{ID: "1", Summary: "Design review", Start: "09:00 AM", End: "10:30 AM"},
		{ID: "2", Summary: "Gym", Start: "06:00 PM", End: "07:00 PM"},
	}
	mappings := []model.EventMapping{
		{ID: "1", Category: model.CategoryProjects, Reason: "Tied to the launch project"},
	}

	tasks := TasksFromEvents(events, mappings)
	require.Len(t, tasks, 2)

	assert.Equal(t, "Design review", tasks[0].Title)
	assert.Equal(t, model.CategoryProjects, tasks[0].Category)
	assert.Equal(t, dateutil.Today(), tasks[0].Date)
	assert.Equal(t, "Imported from Google Calendar (09:00 AM - 10:30 AM)", tasks[0].Notes)
	assert.False(t, tasks[0].Completed)

	// Unmapped events default to Areas
	assert.Equal(t, model.CategoryAreas, tasks[1].Category)

	// Fresh ids, not the event ids
	assert.NotEqual(t, tasks[0].ID, tasks[1].ID)
	assert.NotEqual(t, "1", tasks[0].ID)
}

func TestTasksFromEventsIgnoresInvalidMappingCategory(t *testing.T) {
	events := []model.CalendarEvent{{ID: "1", Summary: "Standup"}}
	mappings := []model.EventMapping{{ID: "1", Category: "Nonsense"}}

	tasks := TasksFromEvents(events, mappings)
	require.Len(t, tasks, 1)
	assert.Equal(t, model.CategoryAreas, tasks[0].Category)
}
