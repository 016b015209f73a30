package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/vtodo/internal/domain"
	"github.com/runoshun/vtodo/internal/usecase/shared"
)

// SetPriorityInput contains the parameters for changing a task's priority.
type SetPriorityInput struct {
	Owner    string          // Restrict to this owner ("" = any)
	Priority domain.Priority // New priority (required)
	TaskID   int             // Task ID (required)
}

// SetPriorityOutput contains the result of SetPriority.
type SetPriorityOutput struct {
	Task     *domain.Task
	Previous domain.Priority // Priority before the change
	Changed  bool            // False when the task already had the priority
}

// SetPriority is the use case for flagging a task high or normal priority.
type SetPriority struct {
	tasks  domain.TaskRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewSetPriority creates a new SetPriority use case.
func NewSetPriority(tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger) *SetPriority {
	return &SetPriority{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// Execute changes the priority and records the change in the task log.
func (uc *SetPriority) Execute(_ context.Context, in SetPriorityInput) (*SetPriorityOutput, error) {
	if !in.Priority.IsValid() {
		return nil, domain.ErrInvalidPriority
	}

	task, err := shared.GetTask(uc.tasks, in.TaskID, in.Owner)
	if err != nil {
		return nil, err
	}

	previous := task.Priority.OrDefault()
	if previous == in.Priority {
		return &SetPriorityOutput{Task: task, Previous: previous}, nil
	}

	task.Priority = in.Priority
	task.Updated = uc.clock.Now()
	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(task.ID, "task", fmt.Sprintf("priority changed: %s -> %s", previous, in.Priority))
	}

	return &SetPriorityOutput{Task: task, Previous: previous, Changed: true}, nil
}
