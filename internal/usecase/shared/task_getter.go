// Package shared holds helpers used by several use cases.
package shared

import (
	"fmt"

	"github.com/runoshun/vtodo/internal/domain"
)

// GetTask retrieves a task by ID and returns domain.ErrTaskNotFound if not found.
// A non-empty owner restricts the lookup to that owner's tasks, so one user
// can never address another user's task by ID.
//
//	task, err := repo.Get(taskID)
//	if err != nil { return nil, fmt.Errorf("get task: %w", err) }
//	if task == nil || task.Owner != owner { return nil, domain.ErrTaskNotFound }
func GetTask(repo domain.TaskRepository, taskID int, owner string) (*domain.Task, error) {
	task, err := repo.Get(taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil || (owner != "" && task.Owner != owner) {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}
