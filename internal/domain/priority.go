package domain

// Priority represents the importance level of a task.
type Priority string

const (
	PriorityNormal Priority = "normal" // Default
	PriorityHigh   Priority = "high"   // Flagged as important
)

// AllPriorities returns all valid priority values.
func AllPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityNormal}
}

// ParsePriority converts a string into a Priority.
// An empty string yields PriorityNormal.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case "", PriorityNormal:
		return PriorityNormal, nil
	case PriorityHigh:
		return PriorityHigh, nil
	default:
		return "", ErrInvalidPriority
	}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	return p == PriorityHigh || p == PriorityNormal
}

// OrDefault returns PriorityNormal for the zero value.
func (p Priority) OrDefault() Priority {
	if p == "" {
		return PriorityNormal
	}
	return p
}

// Display returns a human-readable representation of the priority.
func (p Priority) Display() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityNormal, "":
		return "Normal"
	default:
		return string(p)
	}
}

// rank orders high before normal.
func (p Priority) rank() int {
	if p == PriorityHigh {
		return 0
	}
	return 1
}
