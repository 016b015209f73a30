package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/vtodo/internal/domain"
	"github.com/runoshun/vtodo/internal/usecase/shared"
)

// SetCompletedInput contains the parameters for marking a task done or not done.
type SetCompletedInput struct {
	Owner     string // Restrict to this owner ("" = any)
	TaskID    int    // Task ID (required)
	Completed bool   // Desired completion state
}

// SetCompletedOutput contains the result of SetCompleted.
type SetCompletedOutput struct {
	Task    *domain.Task
	Changed bool // False when the task was already in the desired state
}

// SetCompleted is the use case for toggling the completion flag.
type SetCompleted struct {
	tasks  domain.TaskRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewSetCompleted creates a new SetCompleted use case.
func NewSetCompleted(tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger) *SetCompleted {
	return &SetCompleted{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// Execute sets the completion flag. Setting the current state again is a
// successful no-op.
func (uc *SetCompleted) Execute(_ context.Context, in SetCompletedInput) (*SetCompletedOutput, error) {
	task, err := shared.GetTask(uc.tasks, in.TaskID, in.Owner)
	if err != nil {
		return nil, err
	}

	if task.Completed == in.Completed {
		return &SetCompletedOutput{Task: task}, nil
	}

	task.Completed = in.Completed
	task.Updated = uc.clock.Now()
	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	if uc.logger != nil {
		state := "completed"
		if !in.Completed {
			state = "reopened"
		}
		uc.logger.Info(task.ID, "task", fmt.Sprintf("%s: %q", state, task.Title))
	}

	return &SetCompletedOutput{Task: task, Changed: true}, nil
}
