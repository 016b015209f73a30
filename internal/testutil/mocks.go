// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/runoshun/vtodo/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockTaskRepository is a test double for domain.TaskRepository.
// Fields are ordered to minimize memory padding.
type MockTaskRepository struct {
	Tasks   map[int]*domain.Task
	SaveErr error
	GetErr  error
	NextIDN int
}

// NewMockTaskRepository creates a new MockTaskRepository with initialized maps.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		Tasks:   make(map[int]*domain.Task),
		NextIDN: 1,
	}
}

// Ensure MockTaskRepository implements domain.TaskRepository interface.
var _ domain.TaskRepository = (*MockTaskRepository)(nil)

// Get retrieves a task by ID.
func (m *MockTaskRepository) Get(id int) (*domain.Task, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	task, ok := m.Tasks[id]
	if !ok {
		return nil, nil
	}
	return task, nil
}

// List returns the tasks matching the filter, ordered by ID.
func (m *MockTaskRepository) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		if filter.Matches(t) {
			tasks = append(tasks, t)
		}
	}
	slices.SortFunc(tasks, func(a, b *domain.Task) int { return a.ID - b.ID })
	return tasks, nil
}

// Save saves a task.
func (m *MockTaskRepository) Save(task *domain.Task) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Tasks[task.ID] = task
	return nil
}

// Delete removes a task.
func (m *MockTaskRepository) Delete(id int) error {
	delete(m.Tasks, id)
	return nil
}

// NextID returns the next task ID.
func (m *MockTaskRepository) NextID() (int, error) {
	id := m.NextIDN
	m.NextIDN++
	return id, nil
}

// MockStoreInitializer is a test double for domain.StoreInitializer.
type MockStoreInitializer struct {
	InitErr     error
	Initialized bool
	Repaired    bool
}

// Initialize marks the store as initialized.
func (m *MockStoreInitializer) Initialize() (bool, error) {
	if m.InitErr != nil {
		return false, m.InitErr
	}
	m.Initialized = true
	return m.Repaired, nil
}

// IsInitialized returns the configured state.
func (m *MockStoreInitializer) IsInitialized() bool {
	return m.Initialized
}

// MockTaskRepositoryWithNextIDError returns an error from NextID.
type MockTaskRepositoryWithNextIDError struct {
	*MockTaskRepository
	NextIDErr error
}

// NextID returns the configured error.
func (m *MockTaskRepositoryWithNextIDError) NextID() (int, error) {
	return 0, m.NextIDErr
}

// MockTaskRepositoryWithListError returns an error from List.
type MockTaskRepositoryWithListError struct {
	*MockTaskRepository
	ListErr error
}

// List returns the configured error.
func (m *MockTaskRepositoryWithListError) List(_ domain.TaskFilter) ([]*domain.Task, error) {
	return nil, m.ListErr
}

// MockTaskRepositoryWithDeleteError returns an error from Delete.
type MockTaskRepositoryWithDeleteError struct {
	*MockTaskRepository
	DeleteErr error
}

// Delete returns the configured error.
func (m *MockTaskRepositoryWithDeleteError) Delete(_ int) error {
	return m.DeleteErr
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
	GlobalErr    error
}

// NewMockConfigLoader creates a new MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the configured config or error.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.GlobalErr != nil {
		return nil, m.GlobalErr
	}
	if m.GlobalConfig != nil {
		return m.GlobalConfig, nil
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitDataErr      error
	InitGlobalErr    error
	InitConfig       *domain.Config
	DataConfigInfo   domain.ConfigInfo
	GlobalConfigInfo domain.ConfigInfo
	InitDataCalled   bool
	InitGlobalCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		DataConfigInfo: domain.ConfigInfo{
			Path:   "/home/test/.local/share/vtodo/config.toml",
			Exists: false,
		},
		GlobalConfigInfo: domain.ConfigInfo{
			Path:   "/home/test/.config/vtodo/config.toml",
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GetDataConfigInfo returns the configured data dir config info.
func (m *MockConfigManager) GetDataConfigInfo() domain.ConfigInfo {
	return m.DataConfigInfo
}

// GetGlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitDataConfig records the call and returns configured error.
func (m *MockConfigManager) InitDataConfig(cfg *domain.Config) error {
	m.InitDataCalled = true
	m.InitConfig = cfg
	return m.InitDataErr
}

// InitGlobalConfig records the call and returns configured error.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config) error {
	m.InitGlobalCalled = true
	m.InitConfig = cfg
	return m.InitGlobalErr
}

// LogEntry is one entry recorded by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
	TaskID   int
}

// MockLogger records log entries. Safe for concurrent use.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) add(level string, taskID int, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, TaskID: taskID, Category: category, Msg: msg})
}

// Info records an info entry.
func (m *MockLogger) Info(taskID int, category, msg string) { m.add("INFO", taskID, category, msg) }

// Debug records a debug entry.
func (m *MockLogger) Debug(taskID int, category, msg string) { m.add("DEBUG", taskID, category, msg) }

// Warn records a warn entry.
func (m *MockLogger) Warn(taskID int, category, msg string) { m.add("WARN", taskID, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(taskID int, category, msg string) { m.add("ERROR", taskID, category, msg) }

// Snapshot returns a copy of the recorded entries.
func (m *MockLogger) Snapshot() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.Entries)
}

// MockSpeechEngine is a test double for domain.SpeechEngine. Each Listen
// call replays Events; with HoldOpen the session then stays open until the
// context is cancelled and ends with the context error, like a live engine.
// Fields are ordered to minimize memory padding.
type MockSpeechEngine struct {
	ListenErr   error
	Events      []domain.SpeechEvent
	Options     []domain.ListenOptions
	mu          sync.Mutex
	Unsupported bool
	HoldOpen    bool
}

// Ensure MockSpeechEngine implements domain.SpeechEngine interface.
var _ domain.SpeechEngine = (*MockSpeechEngine)(nil)

// Name returns "mock".
func (m *MockSpeechEngine) Name() string { return "mock" }

// Supported reports the configured capability.
func (m *MockSpeechEngine) Supported() bool { return !m.Unsupported }

// Listen replays the configured events.
func (m *MockSpeechEngine) Listen(ctx context.Context, opts domain.ListenOptions) (<-chan domain.SpeechEvent, error) {
	m.mu.Lock()
	m.Options = append(m.Options, opts)
	m.mu.Unlock()

	if m.ListenErr != nil {
		return nil, m.ListenErr
	}

	ch := make(chan domain.SpeechEvent)
	go func() {
		defer close(ch)
		for _, ev := range m.Events {
			select {
			case ch <- ev:
			case <-ctx.Done():
				ch <- domain.SpeechEvent{Err: ctx.Err()}
				return
			}
			if ev.Err != nil {
				return
			}
		}
		if m.HoldOpen {
			<-ctx.Done()
			ch <- domain.SpeechEvent{Err: ctx.Err()}
		}
	}()
	return ch, nil
}

// Calls returns the number of Listen calls.
func (m *MockSpeechEngine) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Options)
}

// MockRecognizer is a test double for domain.SpeechRecognizer. A session
// emits Results and then ends with Err, or with OnEnd when Err is nil.
// Fields are ordered to minimize memory padding.
type MockRecognizer struct {
	Err         *domain.RecognitionError
	Results     []domain.Transcript
	Language    domain.Language
	Unsupported bool
	Busy        bool
	StopCalled  bool
}

// Ensure MockRecognizer implements domain.SpeechRecognizer interface.
var _ domain.SpeechRecognizer = (*MockRecognizer)(nil)

// IsSupported reports the configured capability.
func (m *MockRecognizer) IsSupported() bool { return !m.Unsupported }

// StartListening replays the configured session on a goroutine.
func (m *MockRecognizer) StartListening(_ context.Context, lang domain.Language, h domain.RecognitionHandlers) bool {
	if m.Unsupported {
		h.OnError(domain.NewRecognitionError(domain.ErrorNotSupported,
			fmt.Errorf("mock engine: %w", domain.ErrSpeechUnsupported)))
		return false
	}
	if m.Busy {
		return false
	}
	m.Language = lang
	results := slices.Clone(m.Results)
	recErr := m.Err
	go func() {
		for _, r := range results {
			h.OnResult(r)
		}
		if recErr != nil {
			h.OnError(recErr)
			return
		}
		h.OnEnd()
	}()
	return true
}

// StopListening records the call.
func (m *MockRecognizer) StopListening() { m.StopCalled = true }

// IsListening always reports false.
func (m *MockRecognizer) IsListening() bool { return false }
