package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/vtodo/internal/domain"
)

// CreateTasksFromFileInput contains the parameters for creating tasks from a file.
type CreateTasksFromFileInput struct {
	Owner   string // Owner of the created tasks (required)
	Content string // File content (Markdown with frontmatter)
	DryRun  bool   // If true, parse and validate without creating tasks
}

// CreateTasksFromFileOutput contains the result of creating tasks from a file.
type CreateTasksFromFileOutput struct {
	Tasks []*domain.Task // Created tasks (unsaved and without IDs in dry-run mode)
}

// CreateTasksFromFile is the use case for creating tasks from a file.
type CreateTasksFromFile struct {
	create *NewTask
}

// NewCreateTasksFromFile creates a new CreateTasksFromFile use case.
func NewCreateTasksFromFile(tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger) *CreateTasksFromFile {
	return &CreateTasksFromFile{create: NewNewTask(tasks, clock, logger)}
}

// Execute creates the tasks described in the content, in file order.
// The whole file is validated before the first task is saved.
func (uc *CreateTasksFromFile) Execute(ctx context.Context, in CreateTasksFromFileInput) (*CreateTasksFromFileOutput, error) {
	if in.Owner == "" {
		return nil, domain.ErrEmptyOwner
	}

	drafts, err := domain.ParseTaskDrafts(in.Content)
	if err != nil {
		return nil, err
	}

	out := &CreateTasksFromFileOutput{Tasks: make([]*domain.Task, 0, len(drafts))}

	if in.DryRun {
		for _, d := range drafts {
			out.Tasks = append(out.Tasks, &domain.Task{
				Owner:       in.Owner,
				Title:       d.Title,
				Description: d.Description,
				Priority:    d.Priority,
			})
		}
		return out, nil
	}

	for i, d := range drafts {
		res, err := uc.create.Execute(ctx, NewTaskInput{
			Owner:       in.Owner,
			Title:       d.Title,
			Description: d.Description,
			Priority:    d.Priority,
		})
		if err != nil {
			return out, fmt.Errorf("task %d: %w", i+1, err)
		}
		out.Tasks = append(out.Tasks, res.Task)
	}

	return out, nil
}
