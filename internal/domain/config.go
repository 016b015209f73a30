package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Task store backends.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// Speech engine names.
const (
	EngineScript   = "script"
	EngineDeepgram = "deepgram"
)

// Defaults.
const (
	DefaultLogLevel          = "info"
	DefaultDeepgramEndpoint  = "wss://api.deepgram.com/v1/listen"
	DefaultDeepgramModel     = "nova-2"
	DefaultDeepgramAPIKeyEnv = "DEEPGRAM_API_KEY"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string       `toml:"-"`
	Owner    string         `toml:"owner,omitempty"`
	Deepgram DeepgramConfig `toml:"deepgram"`
	Tasks    TasksConfig    `toml:"tasks"`
	Log      LogConfig      `toml:"log"`
	Voice    VoiceConfig    `toml:"voice"`
}

// VoiceConfig holds voice command settings from the [voice] section.
type VoiceConfig struct {
	Language      string  `toml:"language,omitempty"`       // Default spoken language ("en", "ur")
	Engine        string  `toml:"engine,omitempty"`         // Speech engine: "script" or "deepgram"
	MinConfidence float64 `toml:"min_confidence,omitempty"` // Reject transcripts below this confidence (0 = accept all)
}

// DeepgramConfig holds streaming STT settings from the [deepgram] section.
type DeepgramConfig struct {
	Endpoint  string `toml:"endpoint,omitempty"`
	Model     string `toml:"model,omitempty"`
	APIKeyEnv string `toml:"api_key_env,omitempty"` // Environment variable holding the API key
}

// TasksConfig holds task storage settings from the [tasks] section.
type TasksConfig struct {
	Store string `toml:"store,omitempty"` // "json" (default) or "sqlite"
	Path  string `toml:"path,omitempty"`  // Store file path (default: inside the data dir)
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Voice: VoiceConfig{
			Language: string(DefaultLanguage),
			Engine:   EngineScript,
		},
		Deepgram: DeepgramConfig{
			Endpoint:  DefaultDeepgramEndpoint,
			Model:     DefaultDeepgramModel,
			APIKeyEnv: DefaultDeepgramAPIKeyEnv,
		},
		Tasks: TasksConfig{
			Store: StoreJSON,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// VoiceLanguage returns the configured language, falling back to the default.
func (c *Config) VoiceLanguage() Language {
	lang, err := ParseLanguage(c.Voice.Language)
	if err != nil {
		return DefaultLanguage
	}
	return lang
}

// RenderConfigTemplate renders the commented config template from cfg.
func RenderConfigTemplate(cfg *Config) string {
	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}
