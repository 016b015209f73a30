// Package domain contains core business entities and interfaces.
package domain

import (
	"slices"
	"strings"
	"time"
)

// Task represents a todo item owned by a single user.
// Fields are ordered to minimize memory padding.
type Task struct {
	Created     time.Time `json:"created"`               // Creation time
	Updated     time.Time `json:"updated"`               // Last modification time
	Owner       string    `json:"owner"`                 // Owner identifier (opaque)
	Title       string    `json:"title"`                 // Title (required)
	Description string    `json:"description,omitempty"` // Description (optional)
	Priority    Priority  `json:"priority"`              // high or normal
	ID          int       `json:"-"`                     // Task ID (stored as map key, not in value)
	Completed   bool      `json:"completed"`             // Completion flag
}

// Ref returns the minimal projection used for title resolution.
func (t *Task) Ref() TaskRef {
	return TaskRef{ID: t.ID, Title: t.Title}
}

// IsHighPriority returns true if the task is flagged high priority.
func (t *Task) IsHighPriority() bool {
	return t.Priority == PriorityHigh
}

// TaskRef is the minimal projection of a task needed for fuzzy matching.
type TaskRef struct {
	Title string
	ID    int
}

// Refs projects tasks to TaskRefs, preserving order.
func Refs(tasks []*Task) []TaskRef {
	refs := make([]TaskRef, 0, len(tasks))
	for _, t := range tasks {
		refs = append(refs, t.Ref())
	}
	return refs
}

// NormalizeTitle trims surrounding whitespace from a title.
func NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}

// SortTasks orders tasks high priority first, then newest first.
// Ties on creation time fall back to the higher ID first.
func SortTasks(tasks []*Task) {
	slices.SortStableFunc(tasks, func(a, b *Task) int {
		if d := a.Priority.rank() - b.Priority.rank(); d != 0 {
			return d
		}
		if c := b.Created.Compare(a.Created); c != 0 {
			return c
		}
		return b.ID - a.ID
	})
}
