package model

// ParaCategory is one of the four PARA buckets a task can live in
type ParaCategory string

const (
	CategoryProjects  ParaCategory = "Projects"
	CategoryAreas     ParaCategory = "Areas"
	CategoryResources ParaCategory = "Resources"
	CategoryArchives  ParaCategory = "Archives"
)

// Categories lists all PARA categories in display order
func Categories() []ParaCategory {
	return []ParaCategory{CategoryProjects, CategoryAreas, CategoryResources, CategoryArchives}
}

// Valid reports whether c is one of the four PARA categories
func (c ParaCategory) Valid() bool {
	switch c {
	case CategoryProjects, CategoryAreas, CategoryResources, CategoryArchives:
		return true
	}
	return false
}

// Toggleable reports whether tasks in this category respond to a
// completion toggle. Resources are reference material, not work items.
func (c ParaCategory) Toggleable() bool {
	return c != CategoryResources
}

// Expandable reports whether tasks in this category can expand to show
// extra detail (archive tasks expose their item snapshot).
func (c ParaCategory) Expandable() bool {
	return c == CategoryArchives
}

// LinkMetadata describes a task whose title is a URL
type LinkMetadata struct {
	DisplayTitle string `json:"display_title,omitempty"`
	Domain       string `json:"domain,omitempty"`
	Favicon      string `json:"favicon,omitempty"`
	Slug         string `json:"slug,omitempty"`
	Pinned       bool   `json:"pinned,omitempty"`
}

// Task is a single daily entry: a todo, a saved link, or an archive record
type Task struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Completed bool         `json:"completed"`
	Category  ParaCategory `json:"category"`
	Date      string       `json:"date"` // YYYY-MM-DD, local time
	Notes     string       `json:"notes,omitempty"`

	// Set when the task mirrors a project sub-item or records an archive
	ProjectID     string `json:"project_id,omitempty"`
	ProjectItemID string `json:"project_item_id,omitempty"`

	// Frozen copy of a project's items, present only on archive tasks
	ArchivedItems []ProjectItem `json:"archived_items,omitempty"`

	Link *LinkMetadata `json:"link_metadata,omitempty"`
}

// IsLink reports whether the task carries link metadata
func (t *Task) IsLink() bool {
	return t.Link != nil
}

// IsMirror reports whether the task mirrors a specific project sub-item
func (t *Task) IsMirror() bool {
	return t.ProjectItemID != ""
}

// IsArchiveRecord reports whether the task is the terminal record of an
// archived project
func (t *Task) IsArchiveRecord() bool {
	return t.Category == CategoryArchives && len(t.ArchivedItems) > 0
}

// IsOverdue reports whether the task is incomplete and dated before today
func (t *Task) IsOverdue(today string) bool {
	return !t.Completed && t.Date < today
}
