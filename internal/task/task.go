package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrCorrupt marks a tasks file whose content failed to decode as a JSON
// array of task records.
var ErrCorrupt = errors.New("tasks file is corrupt")

// Task represents a single task record. The description is the only
// attribute; position in the list is the only identity.
type Task struct {
	Description string `json:"task"`
}

// List is an ordered sequence of task records as stored on disk.
type List []Task

// Store performs full-file load/save of a task list at a fixed path.
type Store struct {
	path string
}

// NewStore returns a store backed by the tasks file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the tasks file path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Load reads and decodes the tasks file. A missing file is reported as an
// error satisfying errors.Is(err, fs.ErrNotExist); undecodable content is
// reported as an error satisfying errors.Is(err, ErrCorrupt).
func (s *Store) Load() (List, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read tasks file: %w", err)
	}

	var list List
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse tasks file: %w: %v", ErrCorrupt, err)
	}

	return list, nil
}

// LoadOrEmpty reads the tasks file and treats any failure as an empty
// list. A first run with no file and a corrupt file are indistinguishable
// to callers; both mean "no tasks yet".
func (s *Store) LoadOrEmpty() List {
	list, err := s.Load()
	if err != nil {
		return List{}
	}
	return list
}

// Save serializes the list and overwrites the tasks file in full with
// 2-space indentation and a trailing newline.
func (s *Store) Save(list List) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}

	return nil
}

// Add appends a task with the given description and saves, returning
// the 1-based position of the new task. The description is stored
// as-is; empty descriptions are allowed.
func (s *Store) Add(description string) (int, error) {
	list := s.LoadOrEmpty()
	list = append(list, Task{Description: description})
	if err := s.Save(list); err != nil {
		return 0, err
	}
	return len(list), nil
}

// Remove deletes the task at the 1-based index and saves, returning the
// removed record. An index outside 1..len(list) returns an
// *OutOfRangeError and leaves the file untouched.
func (s *Store) Remove(index int) (Task, error) {
	list := s.LoadOrEmpty()
	if index < 1 || index > len(list) {
		return Task{}, &OutOfRangeError{Index: index, Length: len(list)}
	}

	removed := list[index-1]
	list = append(list[:index-1], list[index:]...)
	if err := s.Save(list); err != nil {
		return Task{}, err
	}

	return removed, nil
}

// OutOfRangeError reports a remove index outside the valid 1-based range.
type OutOfRangeError struct {
	Index  int
	Length int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range, have %d tasks", e.Index, e.Length)
}
