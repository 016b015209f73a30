// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/runoshun/vtodo/internal/domain"
	"github.com/runoshun/vtodo/internal/infra/config"
	"github.com/runoshun/vtodo/internal/infra/deepgram"
	"github.com/runoshun/vtodo/internal/infra/jsonstore"
	"github.com/runoshun/vtodo/internal/infra/logging"
	"github.com/runoshun/vtodo/internal/infra/scripted"
	"github.com/runoshun/vtodo/internal/infra/sqlstore"
	"github.com/runoshun/vtodo/internal/recognition"
	"github.com/runoshun/vtodo/internal/usecase"
)

// Environment variables.
const (
	EnvHome  = "VTODO_HOME"  // Overrides the data directory
	EnvOwner = "VTODO_OWNER" // Default owner when --owner is not given
)

// Config holds the resolved application paths.
type Config struct {
	DataDir   string // Data directory (config, store, logs)
	Store     string // Store backend ("json" or "sqlite")
	StorePath string // Path to the task store file
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tasks            domain.TaskRepository
	StoreInitializer domain.StoreInitializer
	Clock            domain.Clock
	ConfigLoader     domain.ConfigLoader
	ConfigManager    domain.ConfigManager
	TaskLog          domain.Logger

	// Pointer fields
	Logger    *slog.Logger
	AppConfig *domain.Config

	closers []io.Closer

	// Configuration
	Config Config
}

// DefaultDataDir returns $VTODO_HOME, else $XDG_DATA_HOME/vtodo, else
// ~/.local/share/vtodo.
func DefaultDataDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return domain.DataDir(dataHome), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return domain.DataDir(filepath.Join(home, ".local", "share")), nil
}

// loadEnv loads .env files from the data directory and the working
// directory. Variables already set in the environment win.
func loadEnv(dataDir string) {
	paths := []string{filepath.Join(dataDir, domain.EnvFileName)}
	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, domain.EnvFileName))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		_ = godotenv.Load(p)
	}
}

// New creates a new Container for the given data directory.
// An empty dataDir uses DefaultDataDir.
func New(dataDir string) (*Container, error) {
	if dataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}

	loadEnv(dataDir)

	// Create process logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	// Load app config to determine the store backend
	configLoader := config.NewLoader(dataDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "error", err)
		appConfig = domain.NewDefaultConfig()
	}

	cfg := Config{
		DataDir: dataDir,
		Store:   appConfig.Tasks.Store,
	}
	if cfg.Store == "" {
		cfg.Store = domain.StoreJSON
	}
	cfg.StorePath = appConfig.Tasks.Path
	if cfg.StorePath == "" {
		cfg.StorePath = domain.StorePath(dataDir, cfg.Store)
	}

	c := &Container{
		Clock:         domain.RealClock{},
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(dataDir),
		Logger:        logger,
		AppConfig:     appConfig,
		Config:        cfg,
	}

	// Create task repository based on config
	store, err := c.OpenStore(cfg.Store, cfg.StorePath)
	if err != nil {
		return nil, err
	}
	c.Tasks = store
	c.StoreInitializer = store

	// Create file logger
	taskLog := logging.New(dataDir, logging.ParseLevel(appConfig.Log.Level), c.Clock)
	c.TaskLog = taskLog
	c.closers = append(c.closers, taskLog)

	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, tasks domain.TaskRepository, storeInit domain.StoreInitializer, clock domain.Clock, logger *slog.Logger) *Container {
	return &Container{
		Tasks:            tasks,
		StoreInitializer: storeInit,
		Clock:            clock,
		TaskLog:          domain.NopLogger{},
		Logger:           logger,
		AppConfig:        domain.NewDefaultConfig(),
		Config:           cfg,
	}
}

// Store is a task store backend.
type Store interface {
	domain.TaskRepository
	domain.StoreInitializer
}

// OpenStore opens the store backend kind at path. An empty path uses the
// default file in the data directory. Opened stores are released by Close.
func (c *Container) OpenStore(kind, path string) (Store, error) {
	if path == "" {
		path = domain.StorePath(c.Config.DataDir, kind)
	}
	switch kind {
	case domain.StoreJSON:
		return jsonstore.New(path), nil
	case domain.StoreSQLite:
		store, err := sqlstore.New(path)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, store)
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStore, kind)
	}
}

// Close releases the store and log files.
func (c *Container) Close() error {
	var errs []error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// Owner resolves the acting user: the flag value, then $VTODO_OWNER, then
// the configured owner, then the OS user name.
func (c *Container) Owner(flag string) (string, error) {
	for _, candidate := range []string{flag, os.Getenv(EnvOwner), c.AppConfig.Owner} {
		if s := strings.TrimSpace(candidate); s != "" {
			return s, nil
		}
	}
	u, err := user.Current()
	if err != nil || u.Username == "" {
		return "", domain.ErrEmptyOwner
	}
	return u.Username, nil
}

// Language resolves the spoken language: the flag value, else the configured
// language.
func (c *Container) Language(flag string) (domain.Language, error) {
	if flag == "" {
		return c.AppConfig.VoiceLanguage(), nil
	}
	return domain.ParseLanguage(flag)
}

// EngineOptions selects and configures a speech engine.
// Fields are ordered to minimize memory padding.
type EngineOptions struct {
	Name       string // Engine name; empty uses [voice] engine
	ScriptPath string // Script file for the script engine
	AudioPath  string // Audio file for the deepgram engine ("-" for stdin)
	Encoding   string // Raw audio encoding for the deepgram engine
	SampleRate int    // Raw audio sample rate for the deepgram engine
}

// SpeechEngine creates the speech engine selected by opts.
func (c *Container) SpeechEngine(opts EngineOptions) (domain.SpeechEngine, error) {
	name := opts.Name
	if name == "" {
		name = c.AppConfig.Voice.Engine
	}

	switch name {
	case domain.EngineScript, "":
		if opts.ScriptPath == "" {
			return nil, fmt.Errorf("%s engine: --script is required", domain.EngineScript)
		}
		return scripted.Load(opts.ScriptPath)
	case domain.EngineDeepgram:
		if opts.AudioPath == "" {
			return nil, fmt.Errorf("%s engine: --audio is required", domain.EngineDeepgram)
		}
		dg := c.AppConfig.Deepgram
		keyEnv := dg.APIKeyEnv
		if keyEnv == "" {
			keyEnv = domain.DefaultDeepgramAPIKeyEnv
		}
		return deepgram.New(deepgram.Config{
			Endpoint:   dg.Endpoint,
			Model:      dg.Model,
			APIKey:     os.Getenv(keyEnv),
			Encoding:   opts.Encoding,
			SampleRate: opts.SampleRate,
		}, deepgram.FileSource(opts.AudioPath)), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEngine, name)
	}
}

// Recognizer wraps engine in a recognition adapter.
func (c *Container) Recognizer(engine domain.SpeechEngine) *recognition.Adapter {
	return recognition.New(engine, c.TaskLog)
}

// UseCase factory methods

// InitStoreUseCase returns a new InitStore use case.
func (c *Container) InitStoreUseCase() *usecase.InitStore {
	return usecase.NewInitStore(c.StoreInitializer)
}

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Tasks, c.Clock, c.TaskLog)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.Tasks)
}

// EditTaskUseCase returns a new EditTask use case.
func (c *Container) EditTaskUseCase() *usecase.EditTask {
	return usecase.NewEditTask(c.Tasks, c.Clock, c.TaskLog)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Tasks, c.TaskLog)
}

// SetCompletedUseCase returns a new SetCompleted use case.
func (c *Container) SetCompletedUseCase() *usecase.SetCompleted {
	return usecase.NewSetCompleted(c.Tasks, c.Clock, c.TaskLog)
}

// SetPriorityUseCase returns a new SetPriority use case.
func (c *Container) SetPriorityUseCase() *usecase.SetPriority {
	return usecase.NewSetPriority(c.Tasks, c.Clock, c.TaskLog)
}

// CreateTasksFromFileUseCase returns a new CreateTasksFromFile use case.
func (c *Container) CreateTasksFromFileUseCase() *usecase.CreateTasksFromFile {
	return usecase.NewCreateTasksFromFile(c.Tasks, c.Clock, c.TaskLog)
}

// PruneTasksUseCase returns a new PruneTasks use case.
func (c *Container) PruneTasksUseCase() *usecase.PruneTasks {
	return usecase.NewPruneTasks(c.Tasks, c.TaskLog)
}

// ShowLogsUseCase returns a new ShowLogs use case.
func (c *Container) ShowLogsUseCase() *usecase.ShowLogs {
	return usecase.NewShowLogs(c.Tasks, c.Config.DataDir)
}

// MigrateStoreUseCase returns a new MigrateStore use case copying the
// current store into dest.
func (c *Container) MigrateStoreUseCase(dest Store) *usecase.MigrateStore {
	return usecase.NewMigrateStore(c.Tasks, dest, dest, c.TaskLog)
}

// VoiceCommandUseCase returns a new VoiceCommand use case using the
// configured confidence threshold.
func (c *Container) VoiceCommandUseCase() *usecase.VoiceCommand {
	return usecase.NewVoiceCommand(c.Tasks, c.Clock, c.TaskLog, c.AppConfig.Voice.MinConfidence)
}

// ListenUseCase returns a new Listen use case over recognizer.
func (c *Container) ListenUseCase(recognizer domain.SpeechRecognizer) *usecase.Listen {
	return usecase.NewListen(recognizer, c.VoiceCommandUseCase(), c.TaskLog)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
