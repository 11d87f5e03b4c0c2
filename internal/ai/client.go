// Package ai wraps the Gemini generateContent API behind the handful of
// PARA-shaped calls the organizer needs. Every call degrades to a
// deterministic local fallback on failure, so nothing upstream ever sees
// an AI error.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/hermes0001-boop/schedule-app-260122/internal/config"
	"github.com/hermes0001-boop/schedule-app-260122/internal/model"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client talks to the Gemini API. A client without an API key stays in
// offline mode and answers every call from the local fallbacks.
type Client struct {
	apiKey  string
	modelID string
	baseURL string
	http    *http.Client
}

// NewClient builds a client from config. The returned client is always
// usable; without an API key it never touches the network.
func NewClient(cfg config.AIConfig) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		modelID: cfg.Model,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Online reports whether the client has an API key to call with
func (c *Client) Online() bool {
	return c != nil && c.apiKey != ""
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate sends one prompt and returns the first candidate's text
func (c *Client) generate(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	if !c.Online() {
		return "", fmt.Errorf("ai client is offline")
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	if jsonMode {
		reqBody.GenerationConfig = &generationConfig{ResponseMimeType: "application/json"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.modelID, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response")
	}
	return strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text), nil
}

// Categorize assigns a PARA category to free task text. Falls back to
// the local keyword heuristic.
func (c *Client) Categorize(ctx context.Context, title string) model.ParaCategory {
	prompt := fmt.Sprintf(`Categorize the following task into one of the PARA categories:
- Projects: Active efforts with a specific deadline.
- Areas: Ongoing responsibilities (Health, Finance, Work).
- Resources: Topics of interest or reference materials.
- Archives: Completed or no longer active.

Task: %q

Return ONLY the category name.`, title)

	text, err := c.generate(ctx, prompt, false)
	if err != nil {
		return HeuristicCategory(title)
	}
	switch {
	case strings.Contains(text, string(model.CategoryProjects)):
		return model.CategoryProjects
	case strings.Contains(text, string(model.CategoryAreas)):
		return model.CategoryAreas
	case strings.Contains(text, string(model.CategoryResources)):
		return model.CategoryResources
	}
	return model.CategoryArchives
}

// SummarizeLink produces a short display title for a URL. Falls back to
// the hostname.
func (c *Client) SummarizeLink(ctx context.Context, url string) string {
	prompt := fmt.Sprintf(`Analyze this URL and provide a very short, clean title (max 5 words) that represents its content.
URL: %s

Example: "https://github.com/openai/gpt-3" -> "GitHub: OpenAI GPT-3 Repo"
Return ONLY the title.`, url)

	text, err := c.generate(ctx, prompt, false)
	if err != nil || text == "" {
		return HostTitle(url)
	}
	return text
}

// GenerateSlug produces a short lowercase hyphenated slug for the input.
// Falls back to a truncated lowercase slug.
func (c *Client) GenerateSlug(ctx context.Context, input string) string {
	prompt := fmt.Sprintf(`Generate a short, lowercase, hyphenated URL slug (max 3 words) representing this input.
Input: %s

Examples:
"Learning Korean Master Class" -> "ko-master"
"https://www.notion.so/workspace/design-guide" -> "design-guide"
"Research for Quantum Physics" -> "quantum-res"

Return ONLY the slug.`, input)

	text, err := c.generate(ctx, prompt, false)
	if err != nil {
		return FallbackSlug(input)
	}
	slug := sanitizeSlug(text)
	if slug == "" {
		return FallbackSlug(input)
	}
	return slug
}

// BreakdownProject asks for 5-7 actionable step titles for a project.
// Falls back to the fixed default steps.
func (c *Client) BreakdownProject(ctx context.Context, project model.Project) []string {
	prompt := fmt.Sprintf(`Act as a senior project manager. Break down the following %s-term project into 5-7 actionable steps.
Project: %s
Description: %s
Deadline: %s

Return as a JSON array of strings.`, project.Term, project.Title, project.Description, project.Deadline)

	text, err := c.generate(ctx, prompt, true)
	if err != nil {
		return DefaultBreakdownSteps()
	}
	var steps []string
	if err := json.Unmarshal([]byte(text), &steps); err != nil || len(steps) == 0 {
		return DefaultBreakdownSteps()
	}
	return steps
}

// MapEventsToPara classifies calendar events into PARA categories with a
// one-line reason each. Falls back to mapping every event to Areas.
func (c *Client) MapEventsToPara(ctx context.Context, events []model.CalendarEvent) []model.EventMapping {
	type promptEvent struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Location string `json:"location,omitempty"`
	}
	summary := make([]promptEvent, len(events))
	for i, ev := range events {
		summary[i] = promptEvent{ID: ev.ID, Title: ev.Summary, Location: ev.Location}
	}
	encoded, _ := json.Marshal(summary)

	prompt := fmt.Sprintf(`Map these calendar events to PARA categories (Projects, Areas, Resources, Archives).
Events: %s

Return a JSON array of objects with:
- id: the event's id
- category: The PARA category
- reason: A short 1-sentence reason why.`, encoded)

	text, err := c.generate(ctx, prompt, true)
	if err != nil {
		return DefaultEventMappings(events)
	}
	var mappings []model.EventMapping
	if err := json.Unmarshal([]byte(text), &mappings); err != nil || len(mappings) == 0 {
		return DefaultEventMappings(events)
	}
	for i := range mappings {
		if !mappings[i].Category.Valid() {
			mappings[i].Category = model.CategoryAreas
		}
	}
	return mappings
}

// GenerateEvents asks for a plausible set of today's calendar events for
// the account, seeded with the active project titles. Returns nil on
// failure; the import flow treats that as an empty calendar.
func (c *Client) GenerateEvents(ctx context.Context, account string, projects []model.Project) []model.CalendarEvent {
	titles := make([]string, len(projects))
	for i, p := range projects {
		titles[i] = p.Title
	}

	prompt := fmt.Sprintf(`Generate 4 realistic calendar events for today for a user with the email %s.
Consider their active projects: %s.

Return a JSON array of objects with: summary, start (e.g. "09:00 AM"), end (e.g. "10:30 AM"), location (optional).`,
		account, strings.Join(titles, ", "))

	text, err := c.generate(ctx, prompt, true)
	if err != nil {
		return nil
	}
	var events []model.CalendarEvent
	if err := json.Unmarshal([]byte(text), &events); err != nil {
		return nil
	}
	for i := range events {
		events[i].ID = fmt.Sprintf("%d", i+1)
	}
	return events
}
