// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/vtodo/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Path to the vtodo data directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/vtodo)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration.
// Precedence: default <- global <- data dir.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	local, err := l.loadFile(filepath.Join(l.dataDir, domain.ConfigFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// section walks the keys of a table, reporting keys it does not handle.
func section(name string, value any, warnings *[]string, handle func(key string, v any) bool) {
	m, ok := value.(map[string]any)
	if !ok {
		*warnings = append(*warnings, fmt.Sprintf("[%s] must be a table", name))
		return
	}
	for k, v := range m {
		if !handle(k, v) {
			*warnings = append(*warnings, fmt.Sprintf("unknown key in [%s]: %s", name, k))
		}
	}
}

// setString assigns v to dst when it is a string.
func setString(dst *string, v any) bool {
	if s, ok := v.(string); ok {
		*dst = s
	}
	return true
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for name, value := range raw {
		switch name {
		case "owner":
			setString(&res.Owner, value)
		case "voice":
			section(name, value, &warnings, func(k string, v any) bool {
				switch k {
				case "language":
					return setString(&res.Voice.Language, v)
				case "engine":
					return setString(&res.Voice.Engine, v)
				case "min_confidence":
					c, ok := toFloat(v)
					if !ok || c < 0 || c > 1 {
						warnings = append(warnings, fmt.Sprintf("[voice] min_confidence must be between 0 and 1: %v", v))
						return true
					}
					res.Voice.MinConfidence = c
					return true
				}
				return false
			})
		case "deepgram":
			section(name, value, &warnings, func(k string, v any) bool {
				switch k {
				case "endpoint":
					return setString(&res.Deepgram.Endpoint, v)
				case "model":
					return setString(&res.Deepgram.Model, v)
				case "api_key_env":
					return setString(&res.Deepgram.APIKeyEnv, v)
				}
				return false
			})
		case "tasks":
			section(name, value, &warnings, func(k string, v any) bool {
				switch k {
				case "store":
					return setString(&res.Tasks.Store, v)
				case "path":
					return setString(&res.Tasks.Path, v)
				}
				return false
			})
		case "log":
			section(name, value, &warnings, func(k string, v any) bool {
				if k == "level" {
					return setString(&res.Log.Level, v)
				}
				return false
			})
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", name))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// toFloat accepts TOML integers (0, 1) as well as floats.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := *base
	result.Warnings = append(append([]string{}, base.Warnings...), override.Warnings...)

	if override.Owner != "" {
		result.Owner = override.Owner
	}
	if override.Voice.Language != "" {
		result.Voice.Language = override.Voice.Language
	}
	if override.Voice.Engine != "" {
		result.Voice.Engine = override.Voice.Engine
	}
	if override.Voice.MinConfidence != 0 {
		result.Voice.MinConfidence = override.Voice.MinConfidence
	}
	if override.Deepgram.Endpoint != "" {
		result.Deepgram.Endpoint = override.Deepgram.Endpoint
	}
	if override.Deepgram.Model != "" {
		result.Deepgram.Model = override.Deepgram.Model
	}
	if override.Deepgram.APIKeyEnv != "" {
		result.Deepgram.APIKeyEnv = override.Deepgram.APIKeyEnv
	}
	if override.Tasks.Store != "" {
		result.Tasks.Store = override.Tasks.Store
	}
	if override.Tasks.Path != "" {
		result.Tasks.Path = override.Tasks.Path
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}

	return &result
}
