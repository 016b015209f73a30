package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/vtodo/internal/domain"
)

// MigrateStoreInput contains parameters for MigrateStore.
type MigrateStoreInput struct {
	DryRun bool // Count what would be migrated without writing
}

// MigrateStoreOutput contains migration results.
type MigrateStoreOutput struct {
	Total    int // Tasks in the source store
	Migrated int // Tasks written to the destination
	Skipped  int // Tasks already present and identical in the destination
}

// MigrateStore copies every task from one store backend to another,
// keeping task IDs.
type MigrateStore struct {
	source   domain.TaskRepository
	dest     domain.TaskRepository
	destInit domain.StoreInitializer
	logger   domain.Logger
}

// NewMigrateStore creates a new MigrateStore use case.
func NewMigrateStore(source, dest domain.TaskRepository, destInit domain.StoreInitializer, logger domain.Logger) *MigrateStore {
	return &MigrateStore{source: source, dest: dest, destInit: destInit, logger: logger}
}

// Execute migrates all tasks of all owners. Existing destination tasks are
// skipped if identical; otherwise it fails with ErrMigrationConflict before
// anything is written.
func (uc *MigrateStore) Execute(_ context.Context, in MigrateStoreInput) (*MigrateStoreOutput, error) {
	if uc.source == nil || uc.dest == nil || uc.destInit == nil {
		return nil, errors.New("source or destination store is nil")
	}

	tasks, err := uc.source.List(domain.TaskFilter{IncludeCompleted: true})
	if err != nil {
		return nil, fmt.Errorf("list source tasks: %w", err)
	}

	if !in.DryRun {
		if _, err := uc.destInit.Initialize(); err != nil {
			return nil, fmt.Errorf("initialize destination store: %w", err)
		}
	}

	out := &MigrateStoreOutput{Total: len(tasks)}
	pending := make([]*domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if task == nil {
			continue
		}
		existing, err := uc.destTask(task.ID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			pending = append(pending, task)
			continue
		}
		if !sameTask(task, existing) {
			return nil, fmt.Errorf("%w: task %d", domain.ErrMigrationConflict, task.ID)
		}
		out.Skipped++
	}

	if in.DryRun {
		out.Migrated = len(pending)
		return out, nil
	}

	for _, task := range pending {
		cloned := *task
		cloned.Priority = cloned.Priority.OrDefault()
		if err := uc.dest.Save(&cloned); err != nil {
			return nil, fmt.Errorf("save destination task %d: %w", task.ID, err)
		}
		out.Migrated++
	}

	// Move the ID counter past the migrated tasks
	if _, err := uc.destInit.Initialize(); err != nil {
		return nil, fmt.Errorf("repair destination store: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(0, "store", fmt.Sprintf("migrated %d task(s), skipped %d", out.Migrated, out.Skipped))
	}

	return out, nil
}

// destTask returns the destination task with id, or nil. A destination that
// does not exist yet holds no tasks.
func (uc *MigrateStore) destTask(id int) (*domain.Task, error) {
	task, err := uc.dest.Get(id)
	if errors.Is(err, domain.ErrNotInitialized) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("check destination task %d: %w", id, err)
	}
	return task, nil
}

// sameTask compares the stored fields of two tasks. Times are compared as
// instants since backends keep different location data.
func sameTask(a, b *domain.Task) bool {
	return a.ID == b.ID &&
		a.Owner == b.Owner &&
		a.Title == b.Title &&
		a.Description == b.Description &&
		a.Completed == b.Completed &&
		a.Priority.OrDefault() == b.Priority.OrDefault() &&
		a.Created.Equal(b.Created) &&
		a.Updated.Equal(b.Updated)
}
