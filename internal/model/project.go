package model

// ProjectStatus represents the current state of a project
type ProjectStatus string

const (
	StatusInProgress ProjectStatus = "In Progress"
	StatusOnHold     ProjectStatus = "On Hold"
	StatusCompleted  ProjectStatus = "Completed"
)

// ProjectTerm represents the planning horizon of a project
type ProjectTerm string

const (
	TermMid  ProjectTerm = "Mid"
	TermLong ProjectTerm = "Long"
)

// ProjectItem is a single sub-task inside a project
type ProjectItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Deadline  string `json:"deadline,omitempty"` // YYYY-MM-DD, empty = unscheduled
}

// Project groups related sub-tasks under a shared goal and deadline
type Project struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	Term        ProjectTerm   `json:"term"`
	Deadline    string        `json:"deadline"` // YYYY-MM-DD, empty = none
	Slug        string        `json:"slug,omitempty"`
	Items       []ProjectItem `json:"items"`
}

// CompletedCount returns how many items are done
func (p *Project) CompletedCount() int {
	n := 0
	for _, item := range p.Items {
		if item.Completed {
			n++
		}
	}
	return n
}

// Progress returns the completion percentage, 0 for an empty project
func (p *Project) Progress() int {
	total := len(p.Items)
	if total == 0 {
		return 0
	}
	return p.CompletedCount() * 100 / total
}

// IsFinished reports whether the project has at least one item and every
// item is completed. An empty project is never finished: a fresh project
// with no items yet must stay active.
func (p *Project) IsFinished() bool {
	return len(p.Items) > 0 && p.CompletedCount() == len(p.Items)
}

// CopyItems returns a deep copy of the item list, used for archive snapshots
func (p *Project) CopyItems() []ProjectItem {
	if len(p.Items) == 0 {
		return nil
	}
	items := make([]ProjectItem, len(p.Items))
	copy(items, p.Items)
	return items
}
