package model

import "testing"

func TestCategoryCapabilities(t *testing.T) {
	cases := []struct {
		category   ParaCategory
		toggleable bool
		expandable bool
	}{
		{CategoryProjects, true, false},
		{CategoryAreas, true, false},
		{CategoryResources, false, false},
		{CategoryArchives, true, true},
	}

	for _, tc := range cases {
		if got := tc.category.Toggleable(); got != tc.toggleable {
			t.Errorf("%s.Toggleable() = %v, want %v", tc.category, got, tc.toggleable)
		}
		if got := tc.category.Expandable(); got != tc.expandable {
			t.Errorf("%s.Expandable() = %v, want %v", tc.category, got, tc.expandable)
		}
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Errorf("%s should be valid", c)
		}
	}
	if ParaCategory("Inbox").Valid() {
		t.Error("unknown category should not be valid")
	}
}

func TestProjectProgress(t *testing.T) {
	p := Project{}
	if p.Progress() != 0 {
		t.Errorf("empty project progress = %d, want 0", p.Progress())
	}
	if p.IsFinished() {
		t.Error("empty project must not count as finished")
	}

	p.Items = []ProjectItem{
		{ID: "a", Completed: true},
		{ID: "b"},
		{ID: "c"},
	}
	if got := p.Progress(); got != 33 {
		t.Errorf("progress = %d, want 33", got)
	}
	if p.IsFinished() {
		t.Error("partially complete project is not finished")
	}

	for i := range p.Items {
		p.Items[i].Completed = true
	}
	if !p.IsFinished() {
		t.Error("fully complete project should be finished")
	}
	if p.Progress() != 100 {
		t.Errorf("progress = %d, want 100", p.Progress())
	}
}

func TestCopyItemsIsExclusive(t *testing.T) {
	p := Project{Items: []ProjectItem{{ID: "a", Title: "Draft"}}}
	snapshot := p.CopyItems()

	p.Items[0].Title = "Changed"
	if snapshot[0].Title != "Draft" {
		t.Error("snapshot should not alias the project's items")
	}

	empty := Project{}
	if empty.CopyItems() != nil {
		t.Error("empty project snapshot should be nil")
	}
}

func TestTaskHelpers(t *testing.T) {
	mirror := Task{ProjectID: "p1", ProjectItemID: "i1"}
	if !mirror.IsMirror() {
		t.Error("task with a project item reference is a mirror")
	}

	archive := Task{Category: CategoryArchives, ArchivedItems: []ProjectItem{{ID: "i1"}}}
	if !archive.IsArchiveRecord() {
		t.Error("archives task with a snapshot is an archive record")
	}
	plain := Task{Category: CategoryArchives}
	if plain.IsArchiveRecord() {
		t.Error("archives task without a snapshot is not an archive record")
	}

	link := Task{Link: &LinkMetadata{Domain: "go.dev"}}
	if !link.IsLink() {
		t.Error("task with metadata is a link")
	}
}

func TestTaskIsOverdue(t *testing.T) {
	today := "2024-06-10"

	cases := []struct {
		task Task
		want bool
	}{
		{Task{Date: "2024-06-09"}, true},
		{Task{Date: "2024-06-10"}, false},
		{Task{Date: "2024-06-11"}, false},
		{Task{Date: "2024-06-09", Completed: true}, false},
		{Task{Date: "2023-12-31"}, true},
	}

	for _, tc := range cases {
		if got := tc.task.IsOverdue(today); got != tc.want {
			t.Errorf("IsOverdue(%q) for date %q completed=%v = %v, want %v",
				today, tc.task.Date, tc.task.Completed, got, tc.want)
		}
	}
}
