package domain

import "time"

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist.
	// Returns true if an existing store was repaired.
	Initialize() (bool, error)

	// IsInitialized reports whether the store exists.
	IsInitialized() bool
}

// TaskRepository manages task persistence.
type TaskRepository interface {
	// Get retrieves a task by ID. Returns nil if not found.
	Get(id int) (*Task, error)

	// List retrieves tasks matching the filter, ordered by ID.
	List(filter TaskFilter) ([]*Task, error)

	// Save creates or updates a task.
	Save(task *Task) error

	// Delete removes a task by ID.
	Delete(id int) error

	// NextID returns the next available task ID.
	NextID() (int, error)
}

// TaskFilter specifies criteria for listing tasks.
// Fields are ordered to minimize memory padding.
type TaskFilter struct {
	Owner            string   // "" = all owners
	Priority         Priority // "" = any priority
	IncludeCompleted bool
}

// Matches returns true if the task satisfies the filter.
func (f TaskFilter) Matches(t *Task) bool {
	if f.Owner != "" && t.Owner != f.Owner {
		return false
	}
	if f.Priority != "" && t.Priority.OrDefault() != f.Priority {
		return false
	}
	if !f.IncludeCompleted && t.Completed {
		return false
	}
	return true
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (data dir + global).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigInfo describes a configuration file.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetDataConfigInfo returns information about the data dir config file.
	GetDataConfigInfo() ConfigInfo

	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// InitDataConfig creates the data dir config file from the template.
	InitDataConfig(cfg *Config) error

	// InitGlobalConfig creates the global config file from the template.
	InitGlobalConfig(cfg *Config) error
}

// Logger writes structured log entries for tasks and the application.
type Logger interface {
	// Info logs an info message. taskID 0 logs globally.
	Info(taskID int, category, msg string)
	// Debug logs a debug message.
	Debug(taskID int, category, msg string)
	// Warn logs a warning message.
	Warn(taskID int, category, msg string)
	// Error logs an error message.
	Error(taskID int, category, msg string)
}

// NopLogger discards all log entries.
type NopLogger struct{}

func (NopLogger) Info(int, string, string)  {}
func (NopLogger) Debug(int, string, string) {}
func (NopLogger) Warn(int, string, string)  {}
func (NopLogger) Error(int, string, string) {}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
