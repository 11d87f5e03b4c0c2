package sync

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hermes0001-boop/schedule-app-260122/internal/dateutil"
	"github.com/hermes0001-boop/schedule-app-260122/internal/model"
	"github.com/hermes0001-boop/schedule-app-260122/internal/storage"
	"github.com/hermes0001-boop/schedule-app-260122/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	backend, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	s, err := store.Open(backend)
	require.NoError(t, err)
	return NewEngine(s), s
}

// seedProject stores a project as-is. CreateProject does not mirror
// items; mirroring happens through the item entry points.
func seedProject(t *testing.T, e *Engine, p model.Project) {
	t.Helper()
	require.NoError(t, e.CreateProject(p))
}

func mirrorsFor(tasks []model.Task, itemID string) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.ProjectItemID == itemID {
			out = append(out, t)
		}
	}
	return out
}

func TestAddProjectItemCreatesMirror(t *testing.T) {
	e, s := newTestEngine(t)
	seedProject(t, e, model.Project{ID: "p1", Title: "Launch", Status: model.StatusInProgress})

	item := model.ProjectItem{ID: "i1", Title: "Draft", Deadline: "2024-06-01"}
	require.NoError(t, e.AddProjectItem("p1", item))

	mirrors := mirrorsFor(s.Tasks(), "i1")
	require.Len(t, mirrors, 1)
	m := mirrors[0]
	assert.Equal(t, "[Launch] Draft", m.Title)
	assert.Equal(t, model.CategoryAreas, m.Category)
	assert.Equal(t, "2024-06-01", m.Date)
	assert.Equal(t, "p1", m.ProjectID)
	assert.False(t, m.Completed)
}

func TestAddProjectItemWithoutDeadlineHasNoMirror(t *testing.T) {
	e, s := newTestEngine(t)
	seedProject(t, e, model.Project{ID: "p1", Title: "Launch", Status: model.StatusInProgress})

	require.NoError(t, e.AddProjectItem("p1", model.ProjectItem{ID: "i1", Title: "Someday"}))

	assert.Empty(t, mirrorsFor(s.Tasks(), "i1"))
}

func TestMirrorSyncIsIdempotent(t *testing.T) {
	e, s := newTestEngine(t)
	project := model.Project{
		ID: "p1", Title: "Launch", Status: model.StatusInProgress,
		Items: []model.ProjectItem{
			{ID: "i1", Title: "Draft", Deadline: "2024-06-01"},
			{ID: "i2", Title: "Review", Deadline: "2024-06-02"},
		},
	}
	seedProject(t, e, project)

	// Bulk updates reconcile every item; running the same reconcile
	// twice must not change the task collection
	_, err := e.UpdateProject(project)
	require.NoError(t, err)
	first := s.Tasks()

	_, err = e.UpdateProject(project)
	require.NoError(t, err)
	second := s.Tasks()

	assert.Equal(t, first, second)
}

func TestMirrorUniquenessAcrossOperations(t *testing.T) {
	e, s := newTestEngine(t)
	project := model.Project{
		ID: "p1", Title: "Launch", Status: model.StatusInProgress,
		Items: []model.ProjectItem{{ID: "i1", Title: "Draft", Deadline: "2024-06-01"}},
	}
	seedProject(t, e, project)

	_, err := e.UpdateProject(project)
	require.NoError(t, err)

	// Update the item several times with changing fields
	item := project.Items[0]
	for _, deadline := range []string{"2024-06-03", "2024-06-04", "2024-06-05"} {
		item.Deadline = deadline
		_, err := e.UpdateProjectItem("p1", item)
		require.NoError(t, err)
	}

	mirrors := mirrorsFor(s.Tasks(), "i1")
	require.Len(t, mirrors, 1, "exactly one mirror per item")
	assert.Equal(t, "2024-06-05", mirrors[0].Date)
}

func TestMirrorKeepsTaskIDOnUpdate(t *testing.T) {
	e, s := newTestEngine(t)
	seedProject(t, e, model.Project{ID: "p1", Title: "Launch", Status: model.StatusInProgress})

	item := model.ProjectItem{ID: "i1", Title: "Draft", Deadline: "2024-06-01"}
	require.NoError(t, e.AddProjectItem("p1", item))
	before := mirrorsFor(s.Tasks(), "i1")[0]

	item.Title = "Draft v2"
	// A second unfinished item keeps the project from archiving
	require.NoError(t, e.AddProjectItem("p1", model.ProjectItem{ID: "i2", Title: "Review"}))
	_, err := e.UpdateProjectItem("p1", item)
	require.NoError(t, err)

	after := mirrorsFor(s.Tasks(), "i1")[0]
	assert.Equal(t, before.ID, after.ID, "mirror is replaced in place, id preserved")
	assert.Equal(t, "[Launch] Draft v2", after.Title)
}

func TestClearedDeadlineRemovesMirror(t *testing.T) {
	e, s := newTestEngine(t)
	seedProject(t, e, model.Project{ID: "p1", Title: "Launch", Status: model.StatusInProgress})

	item := model.ProjectItem{ID: "i1", Title: "Draft", Deadline: "2024-06-01"}
	require.NoError(t, e.AddProjectItem("p1", item))
	require.NoError(t, e.AddProjectItem("p1", model.ProjectItem{ID: "i2", Title: "Review"}))
	taskCount := len(s.Tasks())

	item.Deadline = ""
	_, err := e.UpdateProjectItem("p1", item)
	require.NoError(t, err)

	assert.Empty(t, mirrorsFor(s.Tasks(), "i1"))
	assert.Len(t, s.Tasks(), taskCount-1, "no other task added or removed")
}

func TestClearedDeadlineWithoutMirrorIsNoop(t *testing.T) {
	e, s := newTestEngine(t)
	seedProject(t, e, model.Project{ID: "p1", Title: "Launch", Status: model.StatusInProgress})
	require.NoError(t, e.AddProjectItem("p1", model.ProjectItem{ID: "i1", Title: "Someday"}))
	require.NoError(t, e.AddProjectItem("p1", model.ProjectItem{ID: "i2", Title: "Later"}))

	_, err := e.UpdateProjectItem("p1", model.ProjectItem{ID: "i1", Title: "Someday renamed"})
	require.NoError(t, err)

	assert.Empty(t, s.Tasks())
}

func TestArchivalAtomicity(t *testing.T) {
	e, s := newTestEngine(t)
	project := model.Project{
		ID: "p1", Title: "Launch", Description: "Ship the launch", Status: model.StatusInProgress,
		Items: []model.ProjectItem{
			{ID: "i1", Title: "Draft", Completed: true},
			{ID: "i2", Title: "Review", Completed: true},
			{ID: "i3", Title: "Publish", Completed: true},
		},
	}
	seedProject(t, e, project)

	archived, err := e.UpdateProject(project)
	require.NoError(t, err)
	assert.True(t, archived)

	_, found := s.FindProject("p1")
	assert.False(t, found, "project removed from active collection")

	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	archive := tasks[0]
	assert.Equal(t, "[Archived Project] Launch", archive.Title)
	assert.Equal(t, model.CategoryArchives, archive.Category)
	assert.True(t, archive.Completed)
	assert.Equal(t, dateutil.Today(), archive.Date)
	assert.Equal(t, "Ship the launch", archive.Notes)
	assert.Equal(t, "p1", archive.ProjectID)
	assert.Len(t, archive.ArchivedItems, 3)
}

func TestArchiveSnapshotIsExclusiveCopy(t *testing.T) {
	e, s := newTestEngine(t)
	items := []model.ProjectItem{{ID: "i1", Title: "Draft", Completed: true}}
	project := model.Project{ID: "p1", Title: "Launch", Status: model.StatusInProgress, Items: items}
	seedProject(t, e, project)

	_, err := e.UpdateProject(project)
	require.NoError(t, err)

	// Mutating the caller's item slice must not reach the snapshot
	items[0].Title = "mutated"
	archive := s.Tasks()[0]
	assert.Equal(t, "Draft", archive.ArchivedItems[0].Title)
}

func TestEmptyProjectNeverArchives(t *testing.T) {
	e, s := newTestEngine(t)
	project := model.Project{ID: "p1", Title: "Fresh", Status: model.StatusInProgress}
	seedProject(t, e, project)

	// completed == total holds vacuously (0 == 0) but must not archive
	archived, err := e.UpdateProject(project)
	require.NoError(t, err)
	assert.False(t, archived)

	_, found := s.FindProject("p1")
	assert.True(t, found)
	assert.Empty(t, s.Tasks())
}

func TestItemUpdateCompletingProjectArchivesSynchronously(t *testing.T) {
	e, s := newTestEngine(t)
	project := model.Project{
		ID: "p1", Title: "Launch", Status: model.StatusInProgress,
		Items: []model.ProjectItem{{ID: "i1", Title: "Draft", Deadline: "2024-06-01"}},
	}
	seedProject(t, e, project)
	_, err := e.UpdateProject(project)
	require.NoError(t, err)

	item := project.Items[0]
	item.Completed = true
	archived, err := e.UpdateProjectItem("p1", item)
	require.NoError(t, err)
	assert.True(t, archived)

	// The mirror reflects the completing update
	mirrors := mirrorsFor(s.Tasks(), "i1")
	require.Len(t, mirrors, 1)
	assert.True(t, mirrors[0].Completed)
	assert.Equal(t, "2024-06-01", mirrors[0].Date)

	// Project is gone, archive record exists, all within the same commit
	_, found := s.FindProject("p1")
	assert.False(t, found)
	var archiveCount int
	for _, task := range s.Tasks() {
		if task.IsArchiveRecord() {
			archiveCount++
			assert.Len(t, task.ArchivedItems, 1)
		}
	}
	assert.Equal(t, 1, archiveCount)
}

func TestRapidSecondUpdateAfterArchivalIsNoop(t *testing.T) {
	e, s := newTestEngine(t)
	project := model.Project{
		ID: "p1", Title: "Launch", Status: model.StatusInProgress,
		Items: []model.ProjectItem{{ID: "i1", Title: "Draft"}},
	}
	seedProject(t, e, project)

	item := project.Items[0]
	item.Completed = true
	archived, err := e.UpdateProjectItem("p1", item)
	require.NoError(t, err)
	require.True(t, archived)
	before := s.Tasks()

	// A second update racing in after archival finds no project and
	// must leave the store untouched
	archived, err = e.UpdateProjectItem("p1", item)
	require.NoError(t, err)
	assert.False(t, archived)
	assert.Equal(t, before, s.Tasks())
}

func TestRemoveProjectItemDropsMirrorDirectly(t *testing.T) {
	e, s := newTestEngine(t)
	seedProject(t, e, model.Project{ID: "p1", Title: "Launch", Status: model.StatusInProgress})
	require.NoError(t, e.AddProjectItem("p1", model.ProjectItem{ID: "i1", Title: "Draft", Deadline: "2024-06-01"}))
	require.NoError(t, e.AddProjectItem("p1", model.ProjectItem{ID: "i2", Title: "Review", Deadline: "2024-06-02"}))

	require.NoError(t, e.RemoveProjectItem("p1", "i1"))

	assert.Empty(t, mirrorsFor(s.Tasks(), "i1"))
	assert.Len(t, mirrorsFor(s.Tasks(), "i2"), 1)

	p, found := s.FindProject("p1")
	require.True(t, found)
	require.Len(t, p.Items, 1)
	assert.Equal(t, "i2", p.Items[0].ID)
}

func TestDeleteProjectCascades(t *testing.T) {
	e, s := newTestEngine(t)
	seedProject(t, e, model.Project{ID: "p1", Title: "Launch", Status: model.StatusInProgress})
	require.NoError(t, e.AddProjectItem("p1", model.ProjectItem{ID: "i1", Title: "Draft", Deadline: "2024-06-01"}))
	require.NoError(t, e.AddProjectItem("p1", model.ProjectItem{ID: "i2", Title: "Review", Deadline: "2024-06-02"}))

	unrelated, err := e.AddTask("Water the plants", model.CategoryAreas, "2024-06-01", nil)
	require.NoError(t, err)

	require.NoError(t, e.DeleteProject("p1"))

	_, found := s.FindProject("p1")
	assert.False(t, found)

	tasks := s.Tasks()
	require.Len(t, tasks, 1, "all project-linked tasks removed")
	assert.Equal(t, unrelated.ID, tasks[0].ID)
}

func TestScenarioSingleItemCompletionArchives(t *testing.T) {
	// Project {title:"Launch", items:[{title:"Draft", deadline:"2024-06-01"}]}
	// -> complete the item with the same deadline -> mirror completed,
	// project archived in the same step
	e, s := newTestEngine(t)
	project := model.Project{
		ID: "p1", Title: "Launch", Status: model.StatusInProgress,
		Items: []model.ProjectItem{{ID: "i1", Title: "Draft", Deadline: "2024-06-01"}},
	}
	seedProject(t, e, project)
	_, err := e.UpdateProject(project)
	require.NoError(t, err)

	archived, err := e.UpdateProjectItem("p1", model.ProjectItem{
		ID: "i1", Title: "Draft", Deadline: "2024-06-01", Completed: true,
	})
	require.NoError(t, err)
	assert.True(t, archived)

	mirrors := mirrorsFor(s.Tasks(), "i1")
	require.Len(t, mirrors, 1)
	assert.True(t, mirrors[0].Completed)
	assert.Equal(t, "2024-06-01", mirrors[0].Date)

	_, found := s.FindProject("p1")
	assert.False(t, found)
}

func TestAddProjectsTaskCreatesShellProject(t *testing.T) {
	e, s := newTestEngine(t)

	_, err := e.AddTask("Launch", model.CategoryProjects, "2024-06-01", nil)
	require.NoError(t, err)

	projects := s.Projects()
	require.Len(t, projects, 1)
	shell := projects[0]
	assert.Equal(t, "Launch", shell.Title)
	assert.Equal(t, model.StatusInProgress, shell.Status)
	assert.Equal(t, model.TermMid, shell.Term)
	assert.Empty(t, shell.Deadline)
	assert.Empty(t, shell.Items)
	assert.Equal(t, "launch", shell.Slug)
}

func TestAddProjectsTaskMatchesTitleCaseInsensitively(t *testing.T) {
	e, s := newTestEngine(t)
	seedProject(t, e, model.Project{ID: "p1", Title: "launch", Status: model.StatusInProgress})

	// "Launch" vs existing "launch" must NOT create a second project
	_, err := e.AddTask("Launch", model.CategoryProjects, "2024-06-01", nil)
	require.NoError(t, err)

	assert.Len(t, s.Projects(), 1)
}

func TestAddTaskNonProjectsCategoryCreatesNoProject(t *testing.T) {
	e, s := newTestEngine(t)

	_, err := e.AddTask("Read inbox", model.CategoryAreas, "2024-06-01", nil)
	require.NoError(t, err)

	assert.Empty(t, s.Projects())
	assert.Len(t, s.Tasks(), 1)
}

func TestToggleTaskRespectsCapability(t *testing.T) {
	e, s := newTestEngine(t)

	link := &model.LinkMetadata{Domain: "example.com"}
	resource, err := e.AddTask("https://example.com/article", model.CategoryResources, "2024-06-01", link)
	require.NoError(t, err)
	area, err := e.AddTask("Stretch", model.CategoryAreas, "2024-06-01", nil)
	require.NoError(t, err)

	archived, err := e.ToggleTask(resource.ID)
	require.NoError(t, err)
	assert.False(t, archived)
	archived, err = e.ToggleTask(area.ID)
	require.NoError(t, err)
	assert.False(t, archived)

	got, _ := s.FindTask(resource.ID)
	assert.False(t, got.Completed, "resources are not toggleable")
	got, _ = s.FindTask(area.ID)
	assert.True(t, got.Completed)
}

func TestToggleMirrorPropagatesToItemAndArchives(t *testing.T) {
	e, s := newTestEngine(t)
	seedProject(t, e, model.Project{ID: "p1", Title: "Launch", Status: model.StatusInProgress})
	require.NoError(t, e.AddProjectItem("p1", model.ProjectItem{ID: "i1", Title: "Draft", Deadline: "2024-06-01"}))

	mirrors := mirrorsFor(s.Tasks(), "i1")
	require.Len(t, mirrors, 1)

	archived, err := e.ToggleTask(mirrors[0].ID)
	require.NoError(t, err)
	assert.True(t, archived, "completing the only item finishes the project")

	_, found := s.FindProject("p1")
	assert.False(t, found)

	var archive *model.Task
	for _, task := range s.Tasks() {
		if task.IsArchiveRecord() {
			archive = &task
			break
		}
	}
	require.NotNil(t, archive)
	assert.True(t, archive.ArchivedItems[0].Completed)

	got := mirrorsFor(s.Tasks(), "i1")
	require.Len(t, got, 1)
	assert.True(t, got[0].Completed)
}

func TestUpdateTaskDate(t *testing.T) {
	e, s := newTestEngine(t)
	task, err := e.AddTask("Stretch", model.CategoryAreas, "2024-06-01", nil)
	require.NoError(t, err)

	require.NoError(t, e.UpdateTaskDate(task.ID, "2024-06-05"))

	got, _ := s.FindTask(task.ID)
	assert.Equal(t, "2024-06-05", got.Date)
}

func TestImportTasksPrepends(t *testing.T) {
	e, s := newTestEngine(t)
	_, err := e.AddTask("Old", model.CategoryAreas, "2024-06-01", nil)
	require.NoError(t, err)

	require.NoError(t, e.ImportTasks([]model.Task{
		{ID: "ev1", Title: "Standup", Category: model.CategoryAreas, Date: "2024-06-02"},
		{ID: "ev2", Title: "Gym", Category: model.CategoryAreas, Date: "2024-06-02"},
	}))

	tasks := s.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, "ev1", tasks[0].ID)
	assert.Equal(t, "ev2", tasks[1].ID)
}

func TestSyncItemHelperIsTotal(t *testing.T) {
	// The helper never fails: missing mirror on an update means create
	tasks := syncItemToDaily(nil, "p1", "Launch", model.ProjectItem{
		ID: "i1", Title: "Draft", Deadline: "2024-06-01",
	})
	require.Len(t, tasks, 1)
	assert.Equal(t, "[Launch] Draft", tasks[0].Title)

	// And removing with no mirror present is a no-op
	tasks = syncItemToDaily(nil, "p1", "Launch", model.ProjectItem{ID: "i2", Title: "Free"})
	assert.Empty(t, tasks)
}
