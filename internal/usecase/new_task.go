package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/vtodo/internal/domain"
)

// NewTaskInput contains the parameters for creating a new task.
// Fields are ordered to minimize memory padding.
type NewTaskInput struct {
	Owner       string          // Owner identifier (required)
	Title       string          // Task title (required)
	Description string          // Task description (optional)
	Priority    domain.Priority // "" = normal
}

// NewTaskOutput contains the result of creating a new task.
type NewTaskOutput struct {
	Task *domain.Task // The created task
}

// NewTask is the use case for creating a new task.
type NewTask struct {
	tasks  domain.TaskRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger) *NewTask {
	return &NewTask{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// Execute creates a new task with the given input.
func (uc *NewTask) Execute(_ context.Context, in NewTaskInput) (*NewTaskOutput, error) {
	title := domain.NormalizeTitle(in.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if in.Owner == "" {
		return nil, domain.ErrEmptyOwner
	}
	priority, err := domain.ParsePriority(string(in.Priority))
	if err != nil {
		return nil, err
	}

	id, err := uc.tasks.NextID()
	if err != nil {
		return nil, fmt.Errorf("generate task ID: %w", err)
	}

	now := uc.clock.Now()
	task := &domain.Task{
		ID:          id,
		Owner:       in.Owner,
		Title:       title,
		Description: in.Description,
		Priority:    priority,
		Created:     now,
		Updated:     now,
	}

	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(id, "task", fmt.Sprintf("created: %q (owner %s, %s priority)", title, in.Owner, priority))
	}

	return &NewTaskOutput{Task: task}, nil
}
