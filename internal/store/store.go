// Package store holds the authoritative Task and Project collections.
// Every mutation goes through Update, which runs against a private copy
// and flushes both collections to the blob backend in one write, so a
// reader always sees a consistent pair.
package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/hermes0001-boop/schedule-app-260122/internal/model"
	"github.com/hermes0001-boop/schedule-app-260122/internal/storage"
)

// State is one consistent snapshot of both collections
type State struct {
	Tasks    []model.Task
	Projects []model.Project
}

// clone deep-copies the state so mutations never leak into a snapshot
// handed to a reader
func (s *State) clone() State {
	out := State{
		Tasks:    make([]model.Task, len(s.Tasks)),
		Projects: make([]model.Project, len(s.Projects)),
	}
	copy(out.Tasks, s.Tasks)
	copy(out.Projects, s.Projects)
	for i := range out.Tasks {
		if items := out.Tasks[i].ArchivedItems; items != nil {
			out.Tasks[i].ArchivedItems = append([]model.ProjectItem(nil), items...)
		}
		if link := out.Tasks[i].Link; link != nil {
			l := *link
			out.Tasks[i].Link = &l
		}
	}
	for i := range out.Projects {
		out.Projects[i].Items = append([]model.ProjectItem(nil), out.Projects[i].Items...)
	}
	return out
}

// Store is the entity store
type Store struct {
	mu      sync.Mutex
	state   State
	backend storage.Backend
}

// Open loads both collections from the backend. Absent keys start empty.
func Open(backend storage.Backend) (*Store, error) {
	s := &Store{backend: backend}

	if blob, found, err := backend.Load(storage.KeyTasks); err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	} else if found {
		if err := json.Unmarshal(blob, &s.state.Tasks); err != nil {
			return nil, fmt.Errorf("failed to decode tasks: %w", err)
		}
	}

	if blob, found, err := backend.Load(storage.KeyProjects); err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	} else if found {
		if err := json.Unmarshal(blob, &s.state.Projects); err != nil {
			return nil, fmt.Errorf("failed to decode projects: %w", err)
		}
	}

	return s, nil
}

// Snapshot returns a consistent copy of both collections
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Tasks returns a copy of the task collection
func (s *Store) Tasks() []model.Task {
	return s.Snapshot().Tasks
}

// Projects returns a copy of the project collection
func (s *Store) Projects() []model.Project {
	return s.Snapshot().Projects
}

// Update applies fn to a copy of the current state, persists both
// collections together, then installs the new state. If persisting
// fails the in-memory state is left unchanged.
func (s *Store) Update(fn func(*State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	fn(&next)

	if err := s.flush(&next); err != nil {
		return err
	}

	s.state = next
	return nil
}

// flush serializes both collections and hands them to the backend as one
// atomic write
func (s *Store) flush(state *State) error {
	tasks, err := json.Marshal(state.Tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	projects, err := json.Marshal(state.Projects)
	if err != nil {
		return fmt.Errorf("failed to encode projects: %w", err)
	}

	if err := s.backend.SaveAll(map[string][]byte{
		storage.KeyTasks:    tasks,
		storage.KeyProjects: projects,
	}); err != nil {
		return fmt.Errorf("failed to persist collections: %w", err)
	}
	return nil
}

// FindTask returns a copy of the task with the given id
func (s *Store) FindTask(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.state.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// FindProject returns a copy of the project with the given id
func (s *Store) FindProject(id string) (model.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.state.Projects {
		if p.ID == id {
			p.Items = append([]model.ProjectItem(nil), p.Items...)
			return p, true
		}
	}
	return model.Project{}, false
}
