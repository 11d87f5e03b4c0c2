package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hermes0001-boop/schedule-app-260122/internal/ai"
	"github.com/hermes0001-boop/schedule-app-260122/internal/app"
	"github.com/hermes0001-boop/schedule-app-260122/internal/dateutil"
	"github.com/hermes0001-boop/schedule-app-260122/internal/model"
	"github.com/hermes0001-boop/schedule-app-260122/internal/storage"
	"github.com/hermes0001-boop/schedule-app-260122/internal/store"
	syncengine "github.com/hermes0001-boop/schedule-app-260122/internal/sync"
	"github.com/hermes0001-boop/schedule-app-260122/internal/ui"
	"github.com/hermes0001-boop/schedule-app-260122/internal/ui/theme"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "add":
			handleAdd(os.Args[2:])
			return
		case "version":
			fmt.Printf("nexus v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	// Parse flags for TUI mode
	viewFlag := flag.String("view", "daily", "Starting view (daily, projects, overdue, calendar)")
	themeFlag := flag.String("theme", "", "Theme name (nord, dracula, gruvbox, catppuccin)")
	flag.Parse()

	// Run TUI
	if err := runTUI(*viewFlag, *themeFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `nexus - A PARA-method daily organizer

Usage:
  nexus                     Start the TUI
  nexus add <task>          Quick add a task
  nexus version             Show version
  nexus help                Show this help

Quick Add Syntax:
  nexus add "Review budget"
  nexus add "Plan launch #projects due:friday"
  nexus add "https://go.dev/blog/error-syntax"

  Category:  #projects #areas #resources #archives
             (omitted: filed automatically, URLs become Resources)
  Date:      due:today due:tomorrow due:friday due:2024-01-15
             (omitted: today)

TUI Options:
  --view <name>     Starting view (daily, projects, overdue, calendar)
  --theme <name>    Theme (nord, dracula, gruvbox, catppuccin)

Keybindings:
  Navigation:   ↑/↓ or j/k    Move cursor
                ←/→ or h/l    Switch columns
                [ / ]         Previous/next day

  Actions:      a             Add task
                tab           Toggle done
                d             Delete
                n             New project
                b             AI breakdown

  Views:        1-4           Switch views
                ?             Help
                q             Quit

Environment:
  GEMINI_API_KEY    Enables AI categorization, slugs, and breakdowns
  CALENDAR_ACCOUNT  Account shown in the calendar sync view`

	fmt.Println(help)
}

func handleAdd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: nexus add <task>")
		fmt.Fprintln(os.Stderr, "Example: nexus add \"Plan launch #projects due:friday\"")
		os.Exit(1)
	}

	// Join all args as the task text
	text := strings.Join(args, " ")
	title, category, date := parseQuickAdd(text)
	if title == "" {
		fmt.Fprintln(os.Stderr, "Nothing to add")
		os.Exit(1)
	}

	// Quick add goes straight to the store without the instance lock;
	// a single prepend is safe enough for a fire-and-forget insert
	paths := app.DefaultPaths()
	if err := os.MkdirAll(paths.DataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating data directory: %v\n", err)
		os.Exit(1)
	}
	backend, err := storage.Open(filepath.Join(paths.DataDir, "nexus.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	st, err := store.Open(backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading state: %v\n", err)
		os.Exit(1)
	}
	engine := syncengine.NewEngine(st)

	// Offline categorization only: quick add never waits on the network
	var link *model.LinkMetadata
	if category == "" {
		category = ai.HeuristicCategory(title)
	}
	if ai.IsURL(title) {
		category = model.CategoryResources
		domain := title
		if u, err := url.Parse(title); err == nil && u.Host != "" {
			domain = strings.TrimPrefix(u.Host, "www.")
		}
		link = &model.LinkMetadata{
			DisplayTitle: ai.HostTitle(title),
			Domain:       domain,
			Favicon:      ai.FaviconURL(domain),
			Slug:         ai.FallbackSlug(title),
		}
	}

	task, err := engine.AddTask(title, category, date, link)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating task: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created: %s\n", task.Title)
	fmt.Printf("Filed under: %s\n", task.Category)
	fmt.Printf("Date: %s\n", dateutil.Label(task.Date))
}

// parseQuickAdd splits "#category" and "due:" tokens out of the text
func parseQuickAdd(text string) (title string, category model.ParaCategory, date string) {
	date = dateutil.Today()

	var titleParts []string
	for _, word := range strings.Fields(text) {
		switch {
		case strings.HasPrefix(word, "#"):
			name := strings.ToLower(strings.TrimPrefix(word, "#"))
			switch name {
			case "projects", "project", "p":
				category = model.CategoryProjects
			case "areas", "area", "a":
				category = model.CategoryAreas
			case "resources", "resource", "r":
				category = model.CategoryResources
			case "archives", "archive":
				category = model.CategoryArchives
			default:
				titleParts = append(titleParts, word)
			}

		case strings.HasPrefix(strings.ToLower(word), "due:"):
			if parsed := parseNaturalDate(strings.TrimPrefix(strings.ToLower(word), "due:")); parsed != "" {
				date = parsed
			} else {
				titleParts = append(titleParts, word)
			}

		default:
			titleParts = append(titleParts, word)
		}
	}

	return strings.Join(titleParts, " "), category, date
}

// parseNaturalDate resolves relative date words to YYYY-MM-DD keys
func parseNaturalDate(s string) string {
	switch strings.ToLower(s) {
	case "today":
		return dateutil.Today()
	case "tomorrow", "tom":
		return dateutil.Offset(1)
	case "monday", "mon":
		return nextWeekday(time.Monday)
	case "tuesday", "tue":
		return nextWeekday(time.Tuesday)
	case "wednesday", "wed":
		return nextWeekday(time.Wednesday)
	case "thursday", "thu":
		return nextWeekday(time.Thursday)
	case "friday", "fri":
		return nextWeekday(time.Friday)
	case "saturday", "sat":
		return nextWeekday(time.Saturday)
	case "sunday", "sun":
		return nextWeekday(time.Sunday)
	case "nextweek":
		return dateutil.Offset(7)
	}

	if dateutil.Valid(s) {
		return s
	}
	return ""
}

func nextWeekday(day time.Weekday) string {
	now := time.Now()
	daysUntil := int(day - now.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return dateutil.Offset(daysUntil)
}

func runTUI(startView, themeName string) error {
	// Create application
	application, err := app.New(nil)
	if err != nil {
		return err
	}
	defer application.Close()

	// Set theme if specified
	if themeName != "" {
		if t, ok := theme.ByName(themeName); ok {
			theme.SetTheme(t)
		} else {
			return fmt.Errorf("unknown theme %q", themeName)
		}
	}

	// Create root model
	root := ui.NewRootModel(application)
	if v, ok := ui.ViewByName(startView); ok {
		root = root.SetStartView(v)
	}

	// Create and run program
	p := tea.NewProgram(
		root,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}
