package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/vtodo/internal/domain"
)

// PruneTasksInput contains the parameters for pruning tasks.
type PruneTasksInput struct {
	Owner  string // Owner whose completed tasks are pruned (required)
	DryRun bool   // If true, only list what would be pruned
}

// PruneTasksOutput contains the result of pruning tasks.
type PruneTasksOutput struct {
	DeletedTasks []*domain.Task // Tasks that were (or would be) deleted
}

// PruneTasks is the use case for deleting an owner's completed tasks.
type PruneTasks struct {
	tasks  domain.TaskRepository
	logger domain.Logger
}

// NewPruneTasks creates a new PruneTasks use case.
func NewPruneTasks(tasks domain.TaskRepository, logger domain.Logger) *PruneTasks {
	return &PruneTasks{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute deletes every completed task of the owner.
func (uc *PruneTasks) Execute(_ context.Context, in PruneTasksInput) (*PruneTasksOutput, error) {
	if in.Owner == "" {
		return nil, domain.ErrEmptyOwner
	}

	tasks, err := uc.tasks.List(domain.TaskFilter{Owner: in.Owner, IncludeCompleted: true})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	out := &PruneTasksOutput{DeletedTasks: []*domain.Task{}}
	for _, task := range tasks {
		if !task.Completed {
			continue
		}
		if !in.DryRun {
			if err := uc.tasks.Delete(task.ID); err != nil {
				return out, fmt.Errorf("delete task #%d: %w", task.ID, err)
			}
			if uc.logger != nil {
				uc.logger.Info(task.ID, "task", fmt.Sprintf("pruned: %q", task.Title))
			}
		}
		out.DeletedTasks = append(out.DeletedTasks, task)
	}

	return out, nil
}
