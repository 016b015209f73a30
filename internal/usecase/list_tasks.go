package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/vtodo/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Owner            string          // Owner whose tasks are listed ("" = all owners)
	Priority         domain.Priority // Filter by priority ("" = any)
	IncludeCompleted bool            // Include completed tasks
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks []*domain.Task // High priority first, then newest first
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	tasks domain.TaskRepository
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskRepository) *ListTasks {
	return &ListTasks{tasks: tasks}
}

// Execute lists tasks matching the given input criteria.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	if in.Priority != "" && !in.Priority.IsValid() {
		return nil, domain.ErrInvalidPriority
	}

	tasks, err := uc.tasks.List(domain.TaskFilter{
		Owner:            in.Owner,
		Priority:         in.Priority,
		IncludeCompleted: in.IncludeCompleted,
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	domain.SortTasks(tasks)
	return &ListTasksOutput{Tasks: tasks}, nil
}
