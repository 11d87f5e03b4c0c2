package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hermes0001-boop/schedule-app-260122/internal/config"
	"github.com/hermes0001-boop/schedule-app-260122/internal/model"
)

func offlineClient() *Client {
	return NewClient(config.AIConfig{Model: "gemini-3-flash-preview", Timeout: time.Second})
}

func TestOfflineClientNeverErrors(t *testing.T) {
	c := offlineClient()
	ctx := context.Background()

	assert.False(t, c.Online())
	assert.True(t, c.Categorize(ctx, "Call the dentist").Valid())
	assert.Equal(t, "example.com", c.SummarizeLink(ctx, "https://www.example.com/post/1"))
	assert.NotEmpty(t, c.GenerateSlug(ctx, "Quantum Physics Research"))
	assert.Len(t, c.BreakdownProject(ctx, model.Project{Title: "Launch"}), 5)
}

func TestHeuristicCategory(t *testing.T) {
	cases := []struct {
		title string
		want  model.ParaCategory
	}{
		{"https://go.dev/blog", model.CategoryResources},
		{"Launch the new site", model.CategoryProjects},
		{"Archive last year's receipts", model.CategoryArchives},
		{"Read the sqlite paper", model.CategoryResources},
		{"Morning stretching", model.CategoryAreas},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HeuristicCategory(tc.title), tc.title)
	}
}

func TestHostTitle(t *testing.T) {
	assert.Equal(t, "github.com", HostTitle("https://github.com/golang/go"))
	assert.Equal(t, "example.com", HostTitle("https://www.example.com/a?b=c"))
	assert.Equal(t, "not a url", HostTitle("not a url"))
}

func TestFallbackSlug(t *testing.T) {
	// First 10 bytes, lowercased, spaces to hyphens
	assert.Equal(t, "learning-k", FallbackSlug("Learning Korean Master Class"))
	assert.Equal(t, "short", FallbackSlug("Short"))
}

func TestSanitizeSlug(t *testing.T) {
	assert.Equal(t, "ko-master", sanitizeSlug("  Ko-Master! "))
	assert.Equal(t, "", sanitizeSlug("!!!"))
}

func TestDefaultEventMappings(t *testing.T) {
	events := []model.CalendarEvent{{ID: "1", Summary: "Standup"}, {ID: "2", Summary: "Gym"}}
	mappings := DefaultEventMappings(events)

	assert.Len(t, mappings, 2)
	for i, m := range mappings {
		assert.Equal(t, events[i].ID, m.ID)
		assert.Equal(t, model.CategoryAreas, m.Category)
	}
}

func TestMapEventsFallsBackOffline(t *testing.T) {
	c := offlineClient()
	events := []model.CalendarEvent{{ID: "1", Summary: "Standup"}}

	mappings := c.MapEventsToPara(context.Background(), events)
	assert.Len(t, mappings, 1)
	assert.Equal(t, model.CategoryAreas, mappings[0].Category)
}
