package ai

import (
	"net/url"
	"strings"

	"github.com/hermes0001-boop/schedule-app-260122/internal/model"
)

// HeuristicCategory is the offline categorizer: a plain-text keyword
// heuristic standing in for the AI call
func HeuristicCategory(title string) model.ParaCategory {
	lower := strings.ToLower(title)

	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return model.CategoryResources
	}

	for _, kw := range []string{"archive", "done with", "finished", "old "} {
		if strings.Contains(lower, kw) {
			return model.CategoryArchives
		}
	}
	for _, kw := range []string{"project", "launch", "build", "ship", "release", "plan "} {
		if strings.Contains(lower, kw) {
			return model.CategoryProjects
		}
	}
	for _, kw := range []string{"read", "reference", "article", "watch", "study"} {
		if strings.Contains(lower, kw) {
			return model.CategoryResources
		}
	}
	return model.CategoryAreas
}

// HostTitle derives a display title for a URL from its hostname
func HostTitle(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// FallbackSlug derives a slug from truncated lowercase input
func FallbackSlug(input string) string {
	s := input
	if len(s) > 10 {
		s = s[:10]
	}
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), "-")
}

// sanitizeSlug lowercases an AI-produced slug and strips everything
// outside [a-z0-9-]
func sanitizeSlug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DefaultBreakdownSteps is the fixed breakdown used when the AI call
// fails or returns garbage
func DefaultBreakdownSteps() []string {
	return []string{
		"Research more about the topic",
		"Define initial milestones",
		"Set a clear timeline",
		"Gather necessary resources",
		"Start initial implementation",
	}
}

// DefaultEventMappings maps every event to Areas
func DefaultEventMappings(events []model.CalendarEvent) []model.EventMapping {
	mappings := make([]model.EventMapping, len(events))
	for i, ev := range events {
		mappings[i] = model.EventMapping{
			ID:       ev.ID,
			Category: model.CategoryAreas,
			Reason:   "Defaulting to Areas",
		}
	}
	return mappings
}

// IsURL reports whether a task title should be treated as a link
func IsURL(text string) bool {
	return strings.HasPrefix(text, "http")
}

// FaviconURL returns the favicon endpoint for a link domain
func FaviconURL(domain string) string {
	return "https://www.google.com/s2/favicons?domain=" + domain + "&sz=64"
}
