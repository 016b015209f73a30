// Package sqlstore provides a SQLite implementation of TaskRepository.
package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/runoshun/vtodo/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS todos (
	id          INTEGER PRIMARY KEY,
	owner       TEXT    NOT NULL DEFAULT '',
	title       TEXT    NOT NULL,
	description TEXT    NOT NULL DEFAULT '',
	completed   INTEGER NOT NULL DEFAULT 0,
	priority    TEXT    NOT NULL DEFAULT 'normal',
	created_at  TEXT    NOT NULL,
	updated_at  TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS todos_owner ON todos (owner);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);
INSERT OR IGNORE INTO meta (key, value) VALUES ('next_task_id', 1);
`

const timeLayout = time.RFC3339Nano

// Ensure Store implements TaskRepository and StoreInitializer.
var (
	_ domain.TaskRepository   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)

// Store implements domain.TaskRepository on a SQLite database file.
type Store struct {
	db   *sql.DB
	path string
}

// New opens a Store for the given database path. The file is not created
// until Initialize is called.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection serializes writers inside this process.
	db.SetMaxOpenConns(1)
	return &Store{db: db, path: path}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// IsInitialized checks if the database file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates the schema. For an existing database it also repairs
// a missing schema or a stale ID counter and reports whether it did.
func (s *Store) Initialize() (bool, error) {
	existed := s.IsInitialized()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return false, fmt.Errorf("create directory: %w", err)
	}

	repaired := false
	if existed {
		var n int
		err := s.db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name IN ('todos', 'meta')`).Scan(&n)
		if err != nil {
			return false, fmt.Errorf("inspect schema: %w", err)
		}
		repaired = n < 2
	}

	if _, err := s.db.Exec(schema); err != nil {
		return false, fmt.Errorf("create schema: %w", err)
	}

	res, err := s.db.Exec(`UPDATE meta SET value = (SELECT max(id) + 1 FROM todos)
		WHERE key = 'next_task_id' AND value <= (SELECT coalesce(max(id), 0) FROM todos)`)
	if err != nil {
		return false, fmt.Errorf("repair id counter: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		repaired = true
	}

	return repaired, nil
}

// Get retrieves a task by ID.
func (s *Store) Get(id int) (*domain.Task, error) {
	if !s.IsInitialized() {
		return nil, domain.ErrNotInitialized
	}

	row := s.db.QueryRow(`SELECT id, owner, title, description, completed, priority, created_at, updated_at
		FROM todos WHERE id = ?`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// List retrieves tasks matching the filter, ordered by ID.
func (s *Store) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	if !s.IsInitialized() {
		return nil, domain.ErrNotInitialized
	}

	query := `SELECT id, owner, title, description, completed, priority, created_at, updated_at
		FROM todos WHERE 1=1`
	var args []any
	if filter.Owner != "" {
		query += ` AND owner = ?`
		args = append(args, filter.Owner)
	}
	if filter.Priority != "" {
		query += ` AND priority = ?`
		args = append(args, string(filter.Priority.OrDefault()))
	}
	if !filter.IncludeCompleted {
		query += ` AND completed = 0`
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// Save creates or updates a task.
func (s *Store) Save(task *domain.Task) error {
	if !s.IsInitialized() {
		return domain.ErrNotInitialized
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT INTO todos (id, owner, title, description, completed, priority, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			owner = excluded.owner,
			title = excluded.title,
			description = excluded.description,
			completed = excluded.completed,
			priority = excluded.priority,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`,
		task.ID, task.Owner, task.Title, task.Description, task.Completed,
		string(task.Priority.OrDefault()),
		task.Created.Format(timeLayout), task.Updated.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("save task: %w", err)
	}

	_, err = tx.Exec(`UPDATE meta SET value = ? WHERE key = 'next_task_id' AND value <= ?`, task.ID+1, task.ID)
	if err != nil {
		return fmt.Errorf("advance id counter: %w", err)
	}

	return tx.Commit()
}

// Delete removes a task by ID.
func (s *Store) Delete(id int) error {
	if !s.IsInitialized() {
		return domain.ErrNotInitialized
	}
	if _, err := s.db.Exec(`DELETE FROM todos WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// NextID reserves and returns the next available task ID.
func (s *Store) NextID() (int, error) {
	if !s.IsInitialized() {
		return 0, domain.ErrNotInitialized
	}

	var id int
	err := s.db.QueryRow(`UPDATE meta SET value = value + 1 WHERE key = 'next_task_id' RETURNING value - 1`).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("reserve task id: %w", err)
	}
	return id, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*domain.Task, error) {
	var (
		t                domain.Task
		priority         string
		created, updated string
	)
	if err := row.Scan(&t.ID, &t.Owner, &t.Title, &t.Description, &t.Completed, &priority, &created, &updated); err != nil {
		return nil, err
	}

	p, err := domain.ParsePriority(priority)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", t.ID, err)
	}
	t.Priority = p

	if t.Created, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("task %d created_at: %w", t.ID, err)
	}
	if t.Updated, err = time.Parse(timeLayout, updated); err != nil {
		return nil, fmt.Errorf("task %d updated_at: %w", t.ID, err)
	}
	return &t, nil
}
