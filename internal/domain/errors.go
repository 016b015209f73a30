package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrAlreadyInitialized = errors.New("vtodo already initialized")
	ErrNotInitialized     = errors.New("vtodo not initialized (run 'vtodo init' first)")
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrConfigExists       = errors.New("config file already exists")
	ErrInvalidPriority    = errors.New("invalid priority (use high or normal)")
	ErrInvalidLanguage    = errors.New("unsupported language")
	ErrEmptyOwner         = errors.New("owner cannot be empty")
	ErrUnknownStore       = errors.New("unknown task store")
	ErrUnknownEngine      = errors.New("unknown speech engine")
	ErrMigrationConflict  = errors.New("task differs between stores")
	ErrSameStore          = errors.New("source and destination store are the same")
	ErrNoLogs             = errors.New("no log file found")

	// Markdown task input.
	ErrEmptyFile           = errors.New("file is empty")
	ErrNoTasksInFile       = errors.New("no tasks found in file")
	ErrMultipleTasksInFile = errors.New("expected a single task")
	ErrMissingFrontmatter  = errors.New("task is missing its closing frontmatter delimiter")

	// Voice command outcomes.
	ErrUnknownCommand    = errors.New("command not recognized")
	ErrNoMatchingTask    = errors.New("no matching task found")
	ErrLowConfidence     = errors.New("transcript confidence below threshold")
	ErrSpeechUnsupported = errors.New("speech recognition not supported")
	ErrNoTranscript      = errors.New("no final transcript received")
	ErrRecognizerBusy    = errors.New("a listening session is already active")
)
