package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/runoshun/vtodo/internal/domain"
	"github.com/runoshun/vtodo/internal/intent"
	"github.com/runoshun/vtodo/internal/resolve"
)

// suggestionLimit caps the "did you mean" candidates of a NoMatchError.
const suggestionLimit = 3

// NoMatchError is returned when a command names a task that cannot be
// resolved. Suggestions are hints for the user only; they are never acted on.
type NoMatchError struct {
	Fragment    string
	Suggestions []domain.TaskRef
}

// Error implements error.
func (e *NoMatchError) Error() string {
	return fmt.Sprintf("%v: %q", domain.ErrNoMatchingTask, e.Fragment)
}

// Is matches domain.ErrNoMatchingTask.
func (e *NoMatchError) Is(target error) bool {
	return target == domain.ErrNoMatchingTask
}

// VoiceCommandInput contains the parameters for running a spoken command.
// Fields are ordered to minimize memory padding.
type VoiceCommandInput struct {
	Transcript domain.Transcript // Final transcript of the utterance
	Owner      string            // User issuing the command (required)
	Language   domain.Language   // Language the command was spoken in
	DryRun     bool              // Classify and resolve only, change nothing
}

// VoiceCommandOutput contains the result of a spoken command.
type VoiceCommandOutput struct {
	Task     *domain.Task    // Created or targeted task (nil for a dry-run create)
	Command  domain.Command  // Parsed command
	Previous domain.Priority // Priority before a priority command
	Changed  bool            // False for no-op commands and dry runs
	DryRun   bool
}

// VoiceCommand parses a transcript, resolves the task it names and applies
// the change.
// Fields are ordered to minimize memory padding.
type VoiceCommand struct {
	tasks         domain.TaskRepository
	logger        domain.Logger
	create        *NewTask
	complete      *SetCompleted
	priority      *SetPriority
	minConfidence float64
}

// NewVoiceCommand creates a new VoiceCommand use case. Transcripts below
// minConfidence are rejected; 0 accepts everything.
func NewVoiceCommand(tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger, minConfidence float64) *VoiceCommand {
	return &VoiceCommand{
		tasks:         tasks,
		logger:        logger,
		create:        NewNewTask(tasks, clock, logger),
		complete:      NewSetCompleted(tasks, clock, logger),
		priority:      NewSetPriority(tasks, clock, logger),
		minConfidence: minConfidence,
	}
}

// Execute runs the command spoken in in.Transcript.
func (uc *VoiceCommand) Execute(ctx context.Context, in VoiceCommandInput) (*VoiceCommandOutput, error) {
	text := strings.TrimSpace(in.Transcript.Text)
	if text == "" {
		return nil, domain.ErrNoTranscript
	}
	if in.Owner == "" {
		return nil, domain.ErrEmptyOwner
	}
	if !in.Language.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidLanguage, in.Language)
	}
	if uc.minConfidence > 0 && in.Transcript.Confidence < uc.minConfidence {
		uc.log(0, fmt.Sprintf("rejected %q: confidence %.2f below %.2f", text, in.Transcript.Confidence, uc.minConfidence))
		return nil, fmt.Errorf("%w: %.2f", domain.ErrLowConfidence, in.Transcript.Confidence)
	}

	cmd := intent.Parse(text, in.Language)
	if cmd.IsUnknown() {
		uc.log(0, fmt.Sprintf("heard %q (%s): no command", text, in.Language))
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCommand, text)
	}

	out := &VoiceCommandOutput{Command: cmd, DryRun: in.DryRun}

	if cmd.Kind == domain.CommandCreate {
		uc.log(0, fmt.Sprintf("heard %q (%s): %s %q", text, in.Language, cmd.Kind, cmd.Title))
		if in.DryRun {
			return out, nil
		}
		res, err := uc.create.Execute(ctx, NewTaskInput{Owner: in.Owner, Title: cmd.Title})
		if err != nil {
			return nil, err
		}
		out.Task = res.Task
		out.Changed = true
		return out, nil
	}

	task, err := uc.resolveTask(in.Owner, cmd.Title)
	if err != nil {
		uc.log(0, fmt.Sprintf("heard %q (%s): %s %q matched no task", text, in.Language, cmd.Kind, cmd.Title))
		return nil, err
	}
	uc.log(task.ID, fmt.Sprintf("heard %q (%s): %s task #%d", text, in.Language, cmd.Kind, task.ID))

	out.Task = task
	out.Previous = task.Priority.OrDefault()
	if in.DryRun {
		return out, nil
	}

	switch cmd.Kind {
	case domain.CommandComplete:
		res, err := uc.complete.Execute(ctx, SetCompletedInput{Owner: in.Owner, TaskID: task.ID, Completed: true})
		if err != nil {
			return nil, err
		}
		out.Task, out.Changed = res.Task, res.Changed
	case domain.CommandSetHighPriority, domain.CommandSetNormalPriority:
		p := domain.PriorityHigh
		if cmd.Kind == domain.CommandSetNormalPriority {
			p = domain.PriorityNormal
		}
		res, err := uc.priority.Execute(ctx, SetPriorityInput{Owner: in.Owner, TaskID: task.ID, Priority: p})
		if err != nil {
			return nil, err
		}
		out.Task, out.Changed, out.Previous = res.Task, res.Changed, res.Previous
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCommand, cmd.Kind)
	}

	return out, nil
}

// resolveTask finds the owner's task named by fragment. Open tasks are
// searched first, in list order; completed tasks only when no open task
// matches.
func (uc *VoiceCommand) resolveTask(owner, fragment string) (*domain.Task, error) {
	all, err := uc.tasks.List(domain.TaskFilter{Owner: owner, IncludeCompleted: true})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	domain.SortTasks(all)

	var open, done []*domain.Task
	for _, t := range all {
		if t.Completed {
			done = append(done, t)
		} else {
			open = append(open, t)
		}
	}

	for _, group := range [][]*domain.Task{open, done} {
		if ref, ok := resolve.Resolve(domain.Refs(group), fragment); ok {
			for _, t := range group {
				if t.ID == ref.ID {
					return t, nil
				}
			}
		}
	}

	return nil, &NoMatchError{
		Fragment:    fragment,
		Suggestions: resolve.Suggest(domain.Refs(open), fragment, suggestionLimit),
	}
}

func (uc *VoiceCommand) log(taskID int, msg string) {
	if uc.logger != nil {
		uc.logger.Info(taskID, "voice", msg)
	}
}

// IsNoMatch reports whether err is a resolution miss and returns its details.
func IsNoMatch(err error) (*NoMatchError, bool) {
	var nm *NoMatchError
	if errors.As(err, &nm) {
		return nm, true
	}
	return nil, false
}
