package storage

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadAbsentKey(t *testing.T) {
	s := openTestStore(t)

	_, found, err := s.Load(KeyTasks)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if found {
		t.Error("expected absent key on fresh store")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save(KeyTasks, []byte(`[{"id":"t1"}]`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	value, found, err := s.Load(KeyTasks)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !found {
		t.Fatal("saved key not found")
	}
	if string(value) != `[{"id":"t1"}]` {
		t.Errorf("Load = %q", value)
	}
}

func TestSaveReplacesValue(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save(KeyProjects, []byte("one")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save(KeyProjects, []byte("two")); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	value, _, err := s.Load(KeyProjects)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(value) != "two" {
		t.Errorf("Load = %q, want replaced value", value)
	}
}

func TestSaveAllWritesBothCollections(t *testing.T) {
	s := openTestStore(t)

	err := s.SaveAll(map[string][]byte{
		KeyTasks:    []byte("[1]"),
		KeyProjects: []byte("[2]"),
	})
	if err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	tasks, foundT, _ := s.Load(KeyTasks)
	projects, foundP, _ := s.Load(KeyProjects)
	if !foundT || !foundP {
		t.Fatal("SaveAll did not persist both keys")
	}
	if string(tasks) != "[1]" || string(projects) != "[2]" {
		t.Errorf("Load = %q, %q", tasks, projects)
	}
}
