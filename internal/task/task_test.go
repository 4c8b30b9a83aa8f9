package task

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "tasks.json"))
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestStore(t)

	original := List{
		{Description: "buy milk"},
		{Description: "walk the dog"},
		{Description: ""},
	}

	if err := s.Save(original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded) != len(original) {
		t.Fatalf("task count: got %d, want %d", len(loaded), len(original))
	}
	for i := range original {
		if loaded[i].Description != original[i].Description {
			t.Errorf("task %d: got %q, want %q", i, loaded[i].Description, original[i].Description)
		}
	}
}

func TestSaveFormat(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(List{{Description: "buy milk"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}

	want := "[\n  {\n    \"task\": \"buy milk\"\n  }\n]\n"
	if string(data) != want {
		t.Errorf("saved file:\ngot  %q\nwant %q", string(data), want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load()
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}

	if got := s.LoadOrEmpty(); len(got) != 0 {
		t.Errorf("LoadOrEmpty on missing file: got %d tasks, want 0", len(got))
	}
}

func TestLoadCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not JSON", content: "not json at all"},
		{name: "wrong shape", content: `{"task": "a"}`},
		{name: "truncated", content: `[{"task": "a"`},
		{name: "empty file", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			if err := os.WriteFile(s.Path(), []byte(tt.content), 0644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}

			_, err := s.Load()
			if err == nil {
				t.Fatal("expected error for corrupt file, got nil")
			}
			if !errors.Is(err, ErrCorrupt) {
				t.Errorf("expected ErrCorrupt, got %v", err)
			}

			if got := s.LoadOrEmpty(); len(got) != 0 {
				t.Errorf("LoadOrEmpty on corrupt file: got %d tasks, want 0", len(got))
			}
		})
	}
}

func TestAdd(t *testing.T) {
	s := newTestStore(t)

	for i, desc := range []string{"buy milk", "walk the dog", "buy milk"} {
		// No duplicate check: the same description may appear twice.
		index, err := s.Add(desc)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if index != i+1 {
			t.Errorf("Add position: got %d, want %d", index, i+1)
		}
	}

	list := s.LoadOrEmpty()
	want := []string{"buy milk", "walk the dog", "buy milk"}
	if len(list) != len(want) {
		t.Fatalf("task count: got %d, want %d", len(list), len(want))
	}
	for i, w := range want {
		if list[i].Description != w {
			t.Errorf("task %d: got %q, want %q", i, list[i].Description, w)
		}
	}
}

func TestAddEmptyDescription(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Add(""); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	list := s.LoadOrEmpty()
	if len(list) != 1 {
		t.Fatalf("task count: got %d, want 1", len(list))
	}
	if list[0].Description != "" {
		t.Errorf("description: got %q, want empty", list[0].Description)
	}
}

func TestRemove(t *testing.T) {
	t.Run("removes the entry at the 1-based index", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.Save(List{{Description: "a"}, {Description: "b"}, {Description: "c"}}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		removed, err := s.Remove(2)
		if err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if removed.Description != "b" {
			t.Errorf("removed: got %q, want %q", removed.Description, "b")
		}

		list := s.LoadOrEmpty()
		if len(list) != 2 {
			t.Fatalf("task count after remove: got %d, want 2", len(list))
		}
		if list[0].Description != "a" || list[1].Description != "c" {
			t.Errorf("remaining tasks: got %q, %q, want a, c", list[0].Description, list[1].Description)
		}
	})

	t.Run("out-of-range index leaves the file untouched", func(t *testing.T) {
		tests := []struct {
			name  string
			index int
		}{
			{name: "zero", index: 0},
			{name: "negative", index: -1},
			{name: "past end", index: 3},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s := newTestStore(t)
				if err := s.Save(List{{Description: "a"}, {Description: "b"}}); err != nil {
					t.Fatalf("Save failed: %v", err)
				}
				before, err := os.ReadFile(s.Path())
				if err != nil {
					t.Fatalf("read file: %v", err)
				}

				_, err = s.Remove(tt.index)
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var oor *OutOfRangeError
				if !errors.As(err, &oor) {
					t.Fatalf("expected *OutOfRangeError, got %v", err)
				}
				if oor.Index != tt.index || oor.Length != 2 {
					t.Errorf("error fields: got index=%d length=%d, want index=%d length=2", oor.Index, oor.Length, tt.index)
				}

				after, err := os.ReadFile(s.Path())
				if err != nil {
					t.Fatalf("read file: %v", err)
				}
				if string(before) != string(after) {
					t.Error("file changed after out-of-range remove")
				}
			})
		}
	})

	t.Run("remove on empty store fails", func(t *testing.T) {
		s := newTestStore(t)
		if _, err := s.Remove(1); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
