package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hermes0001-boop/schedule-app-260122/internal/model"
	"github.com/hermes0001-boop/schedule-app-260122/internal/storage"
)

func openBackend(t *testing.T) *storage.Store {
	t.Helper()
	backend, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return backend
}

func TestOpenEmptyBackend(t *testing.T) {
	s, err := Open(openBackend(t))
	require.NoError(t, err)

	assert.Empty(t, s.Tasks())
	assert.Empty(t, s.Projects())
}

func TestUpdatePersistsAcrossReopen(t *testing.T) {
	backend := openBackend(t)

	s, err := Open(backend)
	require.NoError(t, err)

	err = s.Update(func(st *State) {
		st.Tasks = append(st.Tasks, model.Task{ID: "t1", Title: "Write report", Category: model.CategoryAreas, Date: "2024-06-01"})
		st.Projects = append(st.Projects, model.Project{ID: "p1", Title: "Launch", Status: model.StatusInProgress, Term: model.TermMid})
	})
	require.NoError(t, err)

	reopened, err := Open(backend)
	require.NoError(t, err)

	tasks := reopened.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write report", tasks[0].Title)

	projects := reopened.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, "Launch", projects[0].Title)
}

func TestSnapshotIsolation(t *testing.T) {
	s, err := Open(openBackend(t))
	require.NoError(t, err)

	require.NoError(t, s.Update(func(st *State) {
		st.Projects = []model.Project{{
			ID:    "p1",
			Title: "Launch",
			Items: []model.ProjectItem{{ID: "i1", Title: "Draft"}},
		}}
	}))

	snap := s.Snapshot()
	snap.Projects[0].Items[0].Title = "mutated"
	snap.Projects[0].Title = "mutated"

	fresh, ok := s.FindProject("p1")
	require.True(t, ok)
	assert.Equal(t, "Launch", fresh.Title)
	assert.Equal(t, "Draft", fresh.Items[0].Title)
}

type failingBackend struct {
	storage.Backend
	fail bool
}

func (b *failingBackend) SaveAll(pairs map[string][]byte) error {
	if b.fail {
		return errors.New("disk full")
	}
	return b.Backend.SaveAll(pairs)
}

func TestUpdateRollsBackOnPersistFailure(t *testing.T) {
	backend := &failingBackend{Backend: openBackend(t)}

	s, err := Open(backend)
	require.NoError(t, err)

	require.NoError(t, s.Update(func(st *State) {
		st.Tasks = []model.Task{{ID: "t1", Title: "keep me"}}
	}))

	backend.fail = true
	err = s.Update(func(st *State) {
		st.Tasks = nil
	})
	require.Error(t, err)

	// In-memory state must still show the last successful write
	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "keep me", tasks[0].Title)
}

func TestFindTask(t *testing.T) {
	s, err := Open(openBackend(t))
	require.NoError(t, err)

	require.NoError(t, s.Update(func(st *State) {
		st.Tasks = []model.Task{{ID: "t1", Title: "one"}, {ID: "t2", Title: "two"}}
	}))

	task, ok := s.FindTask("t2")
	require.True(t, ok)
	assert.Equal(t, "two", task.Title)

	_, ok = s.FindTask("missing")
	assert.False(t, ok)
}
