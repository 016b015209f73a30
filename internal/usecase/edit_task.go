package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/vtodo/internal/domain"
	"github.com/runoshun/vtodo/internal/usecase/shared"
)

// EditTaskInput contains the parameters for editing a task.
// All fields except TaskID are optional. Only non-nil fields will be updated.
type EditTaskInput struct {
	Title       *string // New title (nil = no change)
	Description *string // New description (nil = no change)
	Owner       string  // Restrict to this owner ("" = any)
	TaskID      int     // Task ID to edit (required)
}

// EditTaskOutput contains the result of editing a task.
type EditTaskOutput struct {
	Task *domain.Task // The updated task
}

// EditTask is the use case for editing an existing task.
type EditTask struct {
	tasks  domain.TaskRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewEditTask creates a new EditTask use case.
func NewEditTask(tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger) *EditTask {
	return &EditTask{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// Execute edits a task with the given input.
func (uc *EditTask) Execute(_ context.Context, in EditTaskInput) (*EditTaskOutput, error) {
	if in.Title == nil && in.Description == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}

	var title string
	if in.Title != nil {
		title = domain.NormalizeTitle(*in.Title)
		if title == "" {
			return nil, domain.ErrEmptyTitle
		}
	}

	task, err := shared.GetTask(uc.tasks, in.TaskID, in.Owner)
	if err != nil {
		return nil, err
	}

	var changes []string
	if in.Title != nil && title != task.Title {
		changes = append(changes, fmt.Sprintf("title %q -> %q", task.Title, title))
		task.Title = title
	}
	if in.Description != nil && *in.Description != task.Description {
		changes = append(changes, "description")
		task.Description = *in.Description
	}
	if len(changes) == 0 {
		return &EditTaskOutput{Task: task}, nil
	}

	task.Updated = uc.clock.Now()
	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(task.ID, "task", "edited: "+strings.Join(changes, ", "))
	}

	return &EditTaskOutput{Task: task}, nil
}
