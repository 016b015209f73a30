package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/vtodo/internal/app"
	"github.com/runoshun/vtodo/internal/domain"
	"github.com/runoshun/vtodo/internal/usecase"
)

// newNewCommand creates the new command for creating tasks.
func newNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		From        string
		High        bool
		DryRun      bool
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new task",
		Long: `Create a new task owned by the current user.

Tasks start open with normal priority unless --high is given.

With --from, tasks are read from a Markdown file. Each task starts with a
YAML frontmatter block:

  ---
  title: Buy milk
  priority: high
  ---
  Semi-skimmed, two litres.

Examples:
  # Create a task
  vtodo new --title "Buy milk"

  # Create a high priority task with a description
  vtodo new --title "File taxes" --body "Before the 30th" --high

  # Create tasks from a file
  vtodo new --from tasks.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			owner, err := ownerFor(cmd, c)
			if err != nil {
				return err
			}

			if opts.From != "" {
				return createTasksFromFile(cmd, c, owner, opts.From, opts.DryRun)
			}
			if opts.Title == "" {
				return fmt.Errorf("either --title or --from is required")
			}

			input := usecase.NewTaskInput{
				Owner:       owner,
				Title:       opts.Title,
				Description: opts.Description,
			}
			if opts.High {
				input.Priority = domain.PriorityHigh
			}

			uc := c.NewTaskUseCase()
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Task description")
	cmd.Flags().BoolVar(&opts.High, "high", false, "Create with high priority")
	cmd.Flags().StringVar(&opts.From, "from", "", "Create tasks from a Markdown file")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "With --from, show the tasks without creating them")
	cmd.MarkFlagsMutuallyExclusive("from", "title")
	cmd.MarkFlagsMutuallyExclusive("from", "body")
	cmd.MarkFlagsMutuallyExclusive("from", "high")

	return cmd
}

// createTasksFromFile creates the tasks described in a Markdown file.
func createTasksFromFile(cmd *cobra.Command, c *app.Container, owner, path string, dryRun bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	uc := c.CreateTasksFromFileUseCase()
	out, err := uc.Execute(cmd.Context(), usecase.CreateTasksFromFileInput{
		Owner:   owner,
		Content: string(content),
		DryRun:  dryRun,
	})

	w := cmd.OutOrStdout()
	if out != nil {
		for i, task := range out.Tasks {
			if dryRun {
				_, _ = fmt.Fprintf(w, "Would create task %d: %s (%s)\n", i+1, task.Title, task.Priority)
				continue
			}
			_, _ = fmt.Fprintf(w, "Created task #%d: %s\n", task.ID, task.Title)
		}
	}
	return err
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Priority string
		All      bool
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `Display the current user's tasks.

Tasks are ordered high priority first, then newest first.
Completed tasks are hidden unless --all is given.

Examples:
  # List open tasks
  vtodo list

  # Include completed tasks
  vtodo list --all

  # Only high priority tasks
  vtodo list --priority high`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			owner, err := ownerFor(cmd, c)
			if err != nil {
				return err
			}

			var priority domain.Priority
			if opts.Priority != "" {
				priority, err = domain.ParsePriority(opts.Priority)
				if err != nil {
					return err
				}
			}

			uc := c.ListTasksUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ListTasksInput{
				Owner:            owner,
				Priority:         priority,
				IncludeCompleted: opts.All,
			})
			if err != nil {
				return err
			}

			printTaskList(cmd.OutOrStdout(), out.Tasks)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "Include completed tasks")
	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", "", "Filter by priority (high or normal)")

	return cmd
}

// printTaskList prints tasks as an aligned table.
func printTaskList(w io.Writer, tasks []*domain.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "ID\tPRIORITY\tSTATUS\tTITLE")

	// Rows
	for _, task := range tasks {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			task.ID,
			task.Priority.OrDefault(),
			statusLabel(task),
			task.Title,
		)
	}
}

func statusLabel(task *domain.Task) string {
	if task.Completed {
		return "done"
	}
	return "open"
}

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Long: `Display the details of one task.

Examples:
  vtodo show 1
  vtodo show "#1"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}
			owner, err := ownerFor(cmd, c)
			if err != nil {
				return err
			}

			uc := c.ShowTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowTaskInput{
				Owner:  owner,
				TaskID: taskID,
			})
			if err != nil {
				return err
			}

			printTaskDetails(cmd.OutOrStdout(), out.Task)
			return nil
		},
	}
}

// printTaskDetails prints one task.
func printTaskDetails(w io.Writer, task *domain.Task) {
	// Header
	_, _ = fmt.Fprintf(w, "# Task %d: %s\n\n", task.ID, task.Title)

	// Description
	if task.Description != "" {
		_, _ = fmt.Fprintf(w, "%s\n\n", task.Description)
	}

	// Fields
	_, _ = fmt.Fprintf(w, "Status: %s\n", statusLabel(task))
	_, _ = fmt.Fprintf(w, "Priority: %s\n", task.Priority.Display())
	_, _ = fmt.Fprintf(w, "Owner: %s\n", task.Owner)
	_, _ = fmt.Fprintf(w, "Created: %s\n", task.Created.Format(time.RFC3339))
	if !task.Updated.IsZero() && !task.Updated.Equal(task.Created) {
		_, _ = fmt.Fprintf(w, "Updated: %s\n", task.Updated.Format(time.RFC3339))
	}
}

// parseTaskID parses a task ID string to int.
func parseTaskID(s string) (int, error) {
	// Remove leading # if present
	s = strings.TrimPrefix(s, "#")
	var id int
	_, err := fmt.Sscanf(s, "%d", &id)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("task ID must be positive")
	}
	return id, nil
}

// newEditCommand creates the edit command.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long: `Change the title or description of a task.

Without --title or --body, the task is opened in $EDITOR (or $VISUAL) as
Markdown with a YAML frontmatter block. Saving the file updates the title,
description and priority.

Examples:
  vtodo edit 1
  vtodo edit 1 --title "Buy oat milk"
  vtodo edit 1 --body ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}
			owner, err := ownerFor(cmd, c)
			if err != nil {
				return err
			}

			titleChanged := cmd.Flags().Changed("title")
			bodyChanged := cmd.Flags().Changed("body")
			if !titleChanged && !bodyChanged {
				return editTaskWithEditor(cmd, c, owner, taskID)
			}

			input := usecase.EditTaskInput{
				Owner:  owner,
				TaskID: taskID,
			}
			if titleChanged {
				input.Title = &opts.Title
			}
			if bodyChanged {
				input.Description = &opts.Description
			}

			uc := c.EditTaskUseCase()
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%d\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.Description, "body", "", "New description")

	return cmd
}

// editTaskWithEditor opens the task in an editor for editing.
func editTaskWithEditor(cmd *cobra.Command, c *app.Container, owner string, taskID int) error {
	showOut, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{
		Owner:  owner,
		TaskID: taskID,
	})
	if err != nil {
		return err
	}
	task := showOut.Task

	// Create temporary file with task content
	tmpFile, err := os.CreateTemp("", fmt.Sprintf("vtodo-task-%d-*.md", taskID))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	markdown := task.ToMarkdown()
	if _, writeErr := tmpFile.WriteString(markdown); writeErr != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write temp file: %w", writeErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}

	if editorErr := openEditorFunc(tmpPath); editorErr != nil {
		return editorErr
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return fmt.Errorf("read edited file: %w", err)
	}
	if string(edited) == markdown {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No changes made")
		return nil
	}

	draft, err := domain.ParseSingleTaskDraft(string(edited))
	if err != nil {
		return err
	}

	if draft.Title != task.Title || draft.Description != task.Description {
		_, err = c.EditTaskUseCase().Execute(cmd.Context(), usecase.EditTaskInput{
			Owner:       owner,
			TaskID:      taskID,
			Title:       &draft.Title,
			Description: &draft.Description,
		})
		if err != nil {
			return err
		}
	}
	if draft.Priority != task.Priority.OrDefault() {
		_, err = c.SetPriorityUseCase().Execute(cmd.Context(), usecase.SetPriorityInput{
			Owner:    owner,
			TaskID:   taskID,
			Priority: draft.Priority,
		})
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%d\n", taskID)
	return nil
}

// newRmCommand creates the rm command.
func newRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Long: `Delete a task.

Examples:
  # Delete task by ID
  vtodo rm 1

  # Delete task using # prefix
  vtodo rm "#1"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}
			owner, err := ownerFor(cmd, c)
			if err != nil {
				return err
			}

			uc := c.DeleteTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.DeleteTaskInput{
				Owner:  owner,
				TaskID: taskID,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d: %s\n", out.Task.ID, out.Task.Title)
			return nil
		},
	}
}

// newDoneCommand creates the done command.
func newDoneCommand(c *app.Container) *cobra.Command {
	return newCompletionCommand(c, true)
}

// newUndoneCommand creates the undone command.
func newUndoneCommand(c *app.Container) *cobra.Command {
	return newCompletionCommand(c, false)
}

func newCompletionCommand(c *app.Container, completed bool) *cobra.Command {
	use, short, verb := "done <id>", "Mark a task as done", "Completed"
	if !completed {
		use, short, verb = "undone <id>", "Reopen a completed task", "Reopened"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}
			owner, err := ownerFor(cmd, c)
			if err != nil {
				return err
			}

			uc := c.SetCompletedUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.SetCompletedInput{
				Owner:     owner,
				TaskID:    taskID,
				Completed: completed,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !out.Changed {
				_, _ = fmt.Fprintf(w, "Task #%d is already %s\n", out.Task.ID, statusLabel(out.Task))
				return nil
			}
			_, _ = fmt.Fprintf(w, "%s task #%d: %s\n", verb, out.Task.ID, out.Task.Title)
			return nil
		},
	}
}

// newPriorityCommand creates the priority command.
func newPriorityCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "priority <id> <high|normal>",
		Short: "Change a task's priority",
		Long: `Set a task's priority to high or normal.

Examples:
  vtodo priority 1 high
  vtodo priority 1 normal`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(domain.PriorityHigh), string(domain.PriorityNormal)},
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}
			priority, err := domain.ParsePriority(strings.ToLower(args[1]))
			if err != nil || args[1] == "" {
				return domain.ErrInvalidPriority
			}
			owner, err := ownerFor(cmd, c)
			if err != nil {
				return err
			}

			uc := c.SetPriorityUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.SetPriorityInput{
				Owner:    owner,
				TaskID:   taskID,
				Priority: priority,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !out.Changed {
				_, _ = fmt.Fprintf(w, "Task #%d already has %s priority\n", out.Task.ID, priority)
				return nil
			}
			_, _ = fmt.Fprintf(w, "Task #%d priority: %s -> %s\n", out.Task.ID, out.Previous, priority)
			return nil
		},
	}
}
