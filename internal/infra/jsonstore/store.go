// Package jsonstore provides a JSON file-based implementation of TaskRepository.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"syscall"

	"github.com/runoshun/vtodo/internal/domain"
)

// storeData represents the JSON file structure.
// Fields are ordered to minimize memory padding.
type storeData struct {
	Tasks map[string]*domain.Task `json:"tasks"`
	Meta  meta                    `json:"meta"`
}

// schemaVersion is the file format written by this package.
const schemaVersion = 1

// meta contains store metadata.
type meta struct {
	Version    int `json:"version"`
	NextTaskID int `json:"nextTaskID"`
}

// Ensure Store implements TaskRepository and StoreInitializer.
var (
	_ domain.TaskRepository   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)

// Store implements domain.TaskRepository using a JSON file.
// Concurrent processes are serialized with flock on a sidecar lock file.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; Initialize creates it.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Get retrieves a task by ID.
func (s *Store) Get(id int) (*domain.Task, error) {
	var task *domain.Task
	err := s.view(func(data *storeData) error {
		if t, ok := data.Tasks[strconv.Itoa(id)]; ok {
			task = t
			task.ID = id
		}
		return nil
	})
	return task, err
}

// List retrieves tasks matching the filter, ordered by ID.
func (s *Store) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := s.view(func(data *storeData) error {
		for key, t := range data.Tasks {
			id, err := strconv.Atoi(key)
			if err != nil {
				continue
			}
			t.ID = id
			if filter.Matches(t) {
				tasks = append(tasks, t)
			}
		}
		return nil
	})

	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return a.ID - b.ID
	})

	return tasks, err
}

// Save creates or updates a task.
func (s *Store) Save(task *domain.Task) error {
	return s.update(func(data *storeData) error {
		data.Tasks[strconv.Itoa(task.ID)] = task
		if task.ID >= data.Meta.NextTaskID {
			data.Meta.NextTaskID = task.ID + 1
		}
		return nil
	})
}

// Delete removes a task by ID.
func (s *Store) Delete(id int) error {
	return s.update(func(data *storeData) error {
		delete(data.Tasks, strconv.Itoa(id))
		return nil
	})
}

// NextID reserves and returns the next available task ID.
func (s *Store) NextID() (int, error) {
	var id int
	err := s.update(func(data *storeData) error {
		id = data.Meta.NextTaskID
		data.Meta.NextTaskID++
		return nil
	})
	return id, err
}

// IsInitialized checks if the store file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates an empty store file if it doesn't exist. For an
// existing file it repairs the ID counter and reports whether it did.
func (s *Store) Initialize() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return false, fmt.Errorf("create directory: %w", err)
	}

	if !s.IsInitialized() {
		unlock, err := s.lock(true)
		if err != nil {
			return false, err
		}
		defer unlock()
		return false, s.write(emptyData())
	}

	repaired := false
	err := s.update(func(data *storeData) error {
		next := 1
		for key := range data.Tasks {
			if id, err := strconv.Atoi(key); err == nil && id >= next {
				next = id + 1
			}
		}
		if data.Meta.NextTaskID < next {
			data.Meta.NextTaskID = next
			repaired = true
		}
		return nil
	})
	return repaired, err
}

// view runs fn on a snapshot of the file under a shared lock.
func (s *Store) view(fn func(*storeData) error) error {
	return s.transact(false, fn)
}

// update runs fn under an exclusive lock and persists its changes.
func (s *Store) update(fn func(*storeData) error) error {
	return s.transact(true, fn)
}

func (s *Store) transact(write bool, fn func(*storeData) error) error {
	unlock, err := s.lock(write)
	if err != nil {
		return err
	}
	defer unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(data); err != nil {
		return err
	}
	if !write {
		return nil
	}
	return s.write(data)
}

// lock takes an flock on the sidecar file and returns its release func.
func (s *Store) lock(exclusive bool) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(s.lockPath), 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	f, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	how := syscall.LOCK_SH
	if exclusive {
		how = syscall.LOCK_EX
	}
	if err := syscall.Flock(int(f.Fd()), how); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return func() {
		_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
		_ = f.Close()
	}, nil
}

func (s *Store) read() (*storeData, error) {
	content, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotInitialized
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	data := emptyData()
	if err := json.Unmarshal(content, data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	if data.Meta.Version > schemaVersion {
		return nil, fmt.Errorf("store file %s: schema version %d is newer than %d", s.path, data.Meta.Version, schemaVersion)
	}
	if data.Tasks == nil {
		data.Tasks = make(map[string]*domain.Task)
	}
	data.Meta.Version = schemaVersion
	data.Meta.NextTaskID = max(data.Meta.NextTaskID, 1)

	return data, nil
}

// write replaces the store file atomically via a temp file in the same directory.
func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}
	content = append(content, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func emptyData() *storeData {
	return &storeData{
		Tasks: make(map[string]*domain.Task),
		Meta:  meta{Version: schemaVersion, NextTaskID: 1},
	}
}
