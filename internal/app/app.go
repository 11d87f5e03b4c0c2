package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/hermes0001-boop/schedule-app-260122/internal/ai"
	"github.com/hermes0001-boop/schedule-app-260122/internal/auth"
	"github.com/hermes0001-boop/schedule-app-260122/internal/calendar"
	"github.com/hermes0001-boop/schedule-app-260122/internal/config"
	"github.com/hermes0001-boop/schedule-app-260122/internal/notify"
	"github.com/hermes0001-boop/schedule-app-260122/internal/storage"
	"github.com/hermes0001-boop/schedule-app-260122/internal/store"
	syncengine "github.com/hermes0001-boop/schedule-app-260122/internal/sync"
)

// App holds the application state and dependencies
type App struct {
	Config   *config.Config
	Storage  *storage.Store
	Store    *store.Store
	Engine   *syncengine.Engine
	AI       *ai.Client
	Events   calendar.EventSource
	Auth     *auth.Gate
	Notifier *notify.Notifier
	DataDir  string
	lockFile *flock.Flock
}

// Paths holds application filesystem configuration
type Paths struct {
	DataDir string
	DBPath  string
}

// DefaultPaths returns the default application paths
func DefaultPaths() *Paths {
	dataDir := storage.DefaultDataDir()
	return &Paths{
		DataDir: dataDir,
		DBPath:  filepath.Join(dataDir, "nexus.db"),
	}
}

// New creates a new application instance
func New(paths *Paths) (*App, error) {
	if paths == nil {
		paths = DefaultPaths()
	}

	// Ensure data directory exists
	if err := os.MkdirAll(paths.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{
		Config:   config.Load(),
		Notifier: notify.NewNotifier(),
		DataDir:  paths.DataDir,
	}

	// Acquire lock to ensure single instance
	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	backend, err := storage.Open(paths.DBPath)
	if err != nil {
		app.releaseLock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.Storage = backend

	st, err := store.Open(backend)
	if err != nil {
		backend.Close()
		app.releaseLock()
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	app.Store = st

	app.Engine = syncengine.NewEngine(st)
	app.AI = ai.NewClient(app.Config.AI)
	app.Events = calendar.NewAISource(app.AI)
	app.Auth = auth.NewGate(backend)

	return app, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "nexus.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of nexus is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
