// Package sync maintains the invariants between Projects and the Daily
// task list: each project sub-item with a deadline is mirrored by exactly
// one daily task, and a fully-completed project is atomically replaced by
// a single archive task.
package sync

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hermes0001-boop/schedule-app-260122/internal/dateutil"
	"github.com/hermes0001-boop/schedule-app-260122/internal/model"
	"github.com/hermes0001-boop/schedule-app-260122/internal/store"
)

// mirrorNotes marks a daily task as a live mirror of a project sub-item
const mirrorNotes = "Linked from project"

// shellDescription marks a project auto-created from a Daily entry
const shellDescription = "Created automatically from Daily Projects."

// Engine applies mutations to the entity store and performs the
// mirroring and archival side effects the invariants require. All
// operations are synchronous: each one commits a single consistent
// store update before returning.
type Engine struct {
	store *store.Store
}

// NewEngine creates a sync engine over the given store
func NewEngine(s *store.Store) *Engine {
	return &Engine{store: s}
}

// syncItemToDaily reconciles the mirrored daily task for one project
// sub-item against the item's post-mutation state. With no deadline the
// mirror is removed; with a deadline the mirror is replaced in place or
// created at the head of the list. Idempotent, and total: a missing
// mirror on update means create, never an error.
func syncItemToDaily(tasks []model.Task, projectID, projectTitle string, item model.ProjectItem) []model.Task {
	existing := -1
	for i, t := range tasks {
		if t.ProjectItemID == item.ID {
			existing = i
			break
		}
	}

	if item.Deadline == "" {
		if existing == -1 {
			return tasks
		}
		out := make([]model.Task, 0, len(tasks)-1)
		for _, t := range tasks {
			if t.ProjectItemID != item.ID {
				out = append(out, t)
			}
		}
		return out
	}

	mirror := model.Task{
		ID:            uuid.New().String(),
		Title:         fmt.Sprintf("[%s] %s", projectTitle, item.Title),
		Completed:     item.Completed,
		Category:      model.CategoryAreas,
		Date:          item.Deadline,
		Notes:         mirrorNotes,
		ProjectID:     projectID,
		ProjectItemID: item.ID,
	}

	if existing > -1 {
		mirror.ID = tasks[existing].ID
		out := make([]model.Task, len(tasks))
		copy(out, tasks)
		out[existing] = mirror
		return out
	}
	return append([]model.Task{mirror}, tasks...)
}

// archiveProject replaces a finished project with a single archive task
// holding a frozen copy of its items. Returns false when the project does
// not qualify: empty item lists never auto-archive.
func archiveProject(st *store.State, project model.Project) bool {
	if !project.IsFinished() {
		return false
	}

	archive := model.Task{
		ID:            uuid.New().String(),
		Title:         fmt.Sprintf("[Archived Project] %s", project.Title),
		Completed:     true,
		Category:      model.CategoryArchives,
		Date:          dateutil.Today(),
		Notes:         project.Description,
		ProjectID:     project.ID,
		ArchivedItems: project.CopyItems(),
	}

	st.Tasks = append([]model.Task{archive}, st.Tasks...)
	out := st.Projects[:0:0]
	for _, p := range st.Projects {
		if p.ID != project.ID {
			out = append(out, p)
		}
	}
	st.Projects = out
	return true
}

// AddTask creates a new task at the head of the list. A task filed under
// Projects whose title matches no existing project (case-insensitive)
// also creates an empty shell project; the two stay linked only by title
// text until the project is edited.
func (e *Engine) AddTask(title string, category model.ParaCategory, date string, link *model.LinkMetadata) (model.Task, error) {
	task := model.Task{
		ID:       uuid.New().String(),
		Title:    title,
		Category: category,
		Date:     date,
		Link:     link,
	}

	err := e.store.Update(func(st *store.State) {
		st.Tasks = append([]model.Task{task}, st.Tasks...)

		if category != model.CategoryProjects {
			return
		}
		for _, p := range st.Projects {
			if strings.EqualFold(p.Title, title) {
				return
			}
		}

		slug := strings.ToLower(strings.Join(strings.Fields(title), "-"))
		if link != nil && link.Slug != "" {
			slug = link.Slug
		}
		shell := model.Project{
			ID:          uuid.New().String(),
			Title:       title,
			Description: shellDescription,
			Status:      model.StatusInProgress,
			Term:        model.TermMid,
			Slug:        slug,
		}
		st.Projects = append([]model.Project{shell}, st.Projects...)
	})
	if err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// ImportTasks prepends a batch of tasks, newest first (calendar import)
func (e *Engine) ImportTasks(tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return e.store.Update(func(st *store.State) {
		st.Tasks = append(append([]model.Task(nil), tasks...), st.Tasks...)
	})
}

// UpdateTaskDate reassigns a task to a different day
func (e *Engine) UpdateTaskDate(taskID, newDate string) error {
	return e.store.Update(func(st *store.State) {
		for i := range st.Tasks {
			if st.Tasks[i].ID == taskID {
				st.Tasks[i].Date = newDate
				return
			}
		}
	})
}

// ToggleTask flips a task's completion flag. Tasks in a non-toggleable
// category (Resources) are left untouched. Toggling a mirrored task
// propagates to its source project item, which can complete the project
// and archive it in the same store update. Returns whether a project was
// archived as a consequence.
func (e *Engine) ToggleTask(taskID string) (bool, error) {
	archived := false
	err := e.store.Update(func(st *store.State) {
		var task *model.Task
		for i := range st.Tasks {
			if st.Tasks[i].ID == taskID {
				task = &st.Tasks[i]
				break
			}
		}
		if task == nil || !task.Category.Toggleable() {
			return
		}
		task.Completed = !task.Completed

		if task.ProjectItemID == "" {
			return
		}
		for i := range st.Projects {
			if st.Projects[i].ID != task.ProjectID {
				continue
			}
			project := &st.Projects[i]
			for j := range project.Items {
				if project.Items[j].ID == task.ProjectItemID {
					project.Items[j].Completed = task.Completed
					st.Tasks = syncItemToDaily(st.Tasks, project.ID, project.Title, project.Items[j])
					break
				}
			}
			if archiveProject(st, *project) {
				archived = true
			}
			return
		}
	})
	return archived, err
}

// SetTaskPinned pins or unpins a link task in the sidebar
func (e *Engine) SetTaskPinned(taskID string, pinned bool) error {
	return e.store.Update(func(st *store.State) {
		for i := range st.Tasks {
			if st.Tasks[i].ID == taskID && st.Tasks[i].Link != nil {
				link := *st.Tasks[i].Link
				link.Pinned = pinned
				st.Tasks[i].Link = &link
				return
			}
		}
	})
}

// DeleteTask removes a single task
func (e *Engine) DeleteTask(taskID string) error {
	return e.store.Update(func(st *store.State) {
		out := st.Tasks[:0:0]
		for _, t := range st.Tasks {
			if t.ID != taskID {
				out = append(out, t)
			}
		}
		st.Tasks = out
	})
}

// CreateProject adds a new project at the head of the project list
func (e *Engine) CreateProject(project model.Project) error {
	if project.Status == "" {
		project.Status = model.StatusInProgress
	}
	project.Items = append([]model.ProjectItem(nil), project.Items...)
	return e.store.Update(func(st *store.State) {
		st.Projects = append([]model.Project{project}, st.Projects...)
	})
}

// UpdateProject replaces a project wholesale (header edits, bulk item
// edits). If the update leaves the project fully completed it is archived
// instead; otherwise every item's mirror is re-reconciled to catch
// externally changed fields. Returns whether the project was archived.
func (e *Engine) UpdateProject(updated model.Project) (bool, error) {
	archived := false
	err := e.store.Update(func(st *store.State) {
		if archiveProject(st, updated) {
			archived = true
			return
		}
		for i := range st.Projects {
			if st.Projects[i].ID == updated.ID {
				st.Projects[i] = updated
				break
			}
		}
		for _, item := range updated.Items {
			st.Tasks = syncItemToDaily(st.Tasks, updated.ID, updated.Title, item)
		}
	})
	return archived, err
}

// UpdateProjectItem replaces one sub-item, reconciles its mirror, and —
// when the update completes the project — archives it, all in one store
// update. The completion check and the archive-task creation commit
// together, so a second rapid update on the same project observes either
// the active project or the finished archive, never a gap between them.
// Returns whether the project was archived.
func (e *Engine) UpdateProjectItem(projectID string, item model.ProjectItem) (bool, error) {
	archived := false
	err := e.store.Update(func(st *store.State) {
		var project *model.Project
		for i := range st.Projects {
			if st.Projects[i].ID == projectID {
				project = &st.Projects[i]
				break
			}
		}
		if project == nil {
			return
		}

		for i := range project.Items {
			if project.Items[i].ID == item.ID {
				project.Items[i] = item
				break
			}
		}

		st.Tasks = syncItemToDaily(st.Tasks, projectID, project.Title, item)

		if archiveProject(st, *project) {
			archived = true
		}
	})
	return archived, err
}

// AddProjectItem appends a sub-item and creates its mirror if it carries
// a deadline
func (e *Engine) AddProjectItem(projectID string, item model.ProjectItem) error {
	return e.store.Update(func(st *store.State) {
		for i := range st.Projects {
			if st.Projects[i].ID == projectID {
				st.Projects[i].Items = append(st.Projects[i].Items, item)
				st.Tasks = syncItemToDaily(st.Tasks, projectID, st.Projects[i].Title, item)
				return
			}
		}
	})
}

// RemoveProjectItem removes a sub-item along with its mirrored task. The
// item no longer exists to reconcile against, so the mirror is filtered
// out directly.
func (e *Engine) RemoveProjectItem(projectID, itemID string) error {
	return e.store.Update(func(st *store.State) {
		for i := range st.Projects {
			if st.Projects[i].ID != projectID {
				continue
			}
			items := st.Projects[i].Items[:0:0]
			for _, it := range st.Projects[i].Items {
				if it.ID != itemID {
					items = append(items, it)
				}
			}
			st.Projects[i].Items = items
			break
		}

		tasks := st.Tasks[:0:0]
		for _, t := range st.Tasks {
			if t.ProjectItemID != itemID {
				tasks = append(tasks, t)
			}
		}
		st.Tasks = tasks
	})
}

// DeleteProject removes a project and cascades to every task that
// references it: mirrors, placeholders, and any archive record
func (e *Engine) DeleteProject(projectID string) error {
	return e.store.Update(func(st *store.State) {
		projects := st.Projects[:0:0]
		for _, p := range st.Projects {
			if p.ID != projectID {
				projects = append(projects, p)
			}
		}
		st.Projects = projects

		tasks := st.Tasks[:0:0]
		for _, t := range st.Tasks {
			if t.ProjectID != projectID {
				tasks = append(tasks, t)
			}
		}
		st.Tasks = tasks
	})
}
