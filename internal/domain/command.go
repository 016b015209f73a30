package domain

// CommandKind identifies the action a voice command requests.
type CommandKind string

const (
	CommandUnknown           CommandKind = "unknown"
	CommandCreate            CommandKind = "create"
	CommandComplete          CommandKind = "complete"
	CommandSetHighPriority   CommandKind = "set_high_priority"
	CommandSetNormalPriority CommandKind = "set_normal_priority"
)

// Command is the structured instruction produced by parsing a transcript.
// For Create, Title is the new task title; for the other kinds it is the
// fragment to resolve against existing tasks. Unknown carries no title.
type Command struct {
	Kind  CommandKind
	Title string
}

// UnknownCommand is the result for transcripts that match no grammar.
var UnknownCommand = Command{Kind: CommandUnknown}

// IsUnknown returns true for unclassified transcripts.
func (c Command) IsUnknown() bool {
	return c.Kind == CommandUnknown || c.Kind == ""
}

// TargetsExistingTask returns true if the command refers to a task that
// must be resolved by title.
func (c Command) TargetsExistingTask() bool {
	switch c.Kind {
	case CommandComplete, CommandSetHighPriority, CommandSetNormalPriority:
		return true
	default:
		return false
	}
}

// Display returns a short human-readable label for the command kind.
func (k CommandKind) Display() string {
	switch k {
	case CommandCreate:
		return "Create"
	case CommandComplete:
		return "Complete"
	case CommandSetHighPriority:
		return "Set high priority"
	case CommandSetNormalPriority:
		return "Set normal priority"
	default:
		return "Unknown"
	}
}
