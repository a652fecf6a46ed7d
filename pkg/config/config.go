// Package config manages the application configuration: a JSON file under
// the project's .talentscout directory, loaded once into a guarded singleton
// and returned by value so callers cannot mutate shared state.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"talentscout/pkg/logx"
)

// Project file layout.
const (
	ProjectConfigDir = ".talentscout"
	configFileName   = "config.json"
)

// CurrentSchemaVersion is written to new config files and checked on load.
const CurrentSchemaVersion = "1.0"

// Provider names accepted in the llm section.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
	ProviderMock      = "mock"
)

// Environment variable names for provider credentials.
const (
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvGeminiAPIKey    = "GEMINI_API_KEY"
	EnvOllamaHost      = "OLLAMA_HOST"
)

// Global config instance with mutex protection. projectDir is set once
// during LoadConfig and never changes.
//
//nolint:gochecknoglobals // Intentional singleton pattern for config management
var (
	config     *Config
	projectDir string
	logger     *logx.Logger
	mu         sync.RWMutex
)

func getLogger() *logx.Logger {
	if logger == nil {
		logger = logx.NewLogger("config")
	}
	return logger
}

// Config is the complete application configuration.
type Config struct {
	SchemaVersion string          `json:"schema_version"`
	LLM           LLMConfig       `json:"llm"`
	Interview     InterviewConfig `json:"interview"`
	Storage       StorageConfig   `json:"storage"`
}

// LLMConfig selects and tunes the text-generation provider.
type LLMConfig struct {
	Provider    string  `json:"provider"`
	Model       string  `json:"model"`
	Host        string  `json:"host,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float32 `json:"temperature,omitempty"`
}

// InterviewConfig tunes the interview flow.
type InterviewConfig struct {
	QuestionCount         int `json:"question_count"`
	TranscriptTokenBudget int `json:"transcript_token_budget"`
}

// StorageConfig locates the interview database and CSV exports.
type StorageConfig struct {
	DatabasePath     string `json:"database_path"`
	ExportDir        string `json:"export_dir"`
	AnonymizeExports bool   `json:"anonymize_exports"`
}

// GetConfig returns a copy of the loaded configuration.
func GetConfig() (Config, error) {
	mu.RLock()
	defer mu.RUnlock()
	if config == nil {
		return Config{}, fmt.Errorf("config not initialized - call LoadConfig first")
	}
	return *config, nil
}

// SetConfigForTesting sets the global config, bypassing normal
// initialization. Pass nil to reset.
func SetConfigForTesting(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	config = cfg
	if cfg == nil {
		projectDir = ""
	}
}

// GetProjectDir returns the project directory set by LoadConfig.
func GetProjectDir() string {
	mu.RLock()
	defer mu.RUnlock()
	return projectDir
}

// LoadConfig loads <projectDir>/.talentscout/config.json into the global
// singleton. A missing file is created with defaults; an unparseable file is
// an error so user edits are never overwritten.
func LoadConfig(inputProjectDir string) error {
	mu.Lock()
	defer mu.Unlock()

	projectDir = inputProjectDir
	configPath := filepath.Join(projectDir, ProjectConfigDir, configFileName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		getLogger().Info("config file not found, creating new config at %s", configPath)
		config = createDefaultConfig()
		if err := saveConfigLocked(); err != nil {
			return fmt.Errorf("failed to save initial config: %w", err)
		}
		return nil
	}

	loadedConfig, err := loadConfigFromFile(configPath)
	if err != nil {
		return fmt.Errorf("config file exists but cannot be parsed (not overwriting your changes): %w", err)
	}

	applyDefaults(loadedConfig)
	if err := validateConfig(loadedConfig); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	config = loadedConfig

	getLogger().Info("config loaded from %s", configPath)
	return nil
}

var envVarRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars substitutes ${VAR} references in the raw config text with
// environment values. Unset variables expand to the empty string.
func expandEnvVars(data []byte) []byte {
	return envVarRe.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envVarRe.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})
}

func loadConfigFromFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(expandEnvVars(data), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

func createDefaultConfig() *Config {
	cfg := &Config{SchemaVersion: CurrentSchemaVersion}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.SchemaVersion == "" {
		cfg.SchemaVersion = CurrentSchemaVersion
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = ProviderMock
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "mock-model"
	}
	if cfg.Interview.QuestionCount <= 0 {
		cfg.Interview.QuestionCount = 4
	}
	if cfg.Interview.TranscriptTokenBudget <= 0 {
		cfg.Interview.TranscriptTokenBudget = 8000
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = filepath.Join(ProjectConfigDir, "interviews.db")
	}
	if cfg.Storage.ExportDir == "" {
		cfg.Storage.ExportDir = filepath.Join(ProjectConfigDir, "exports")
	}
}

func validateConfig(cfg *Config) error {
	if cfg.SchemaVersion != CurrentSchemaVersion {
		return fmt.Errorf("unsupported schema version %q (expected %q)", cfg.SchemaVersion, CurrentSchemaVersion)
	}

	switch cfg.LLM.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderOllama, ProviderMock:
	default:
		return fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}

	if cfg.Interview.QuestionCount < 1 {
		return fmt.Errorf("interview.question_count must be at least 1")
	}
	return nil
}

// SaveConfig persists the given config to the project directory and updates
// the singleton.
func SaveConfig(cfg *Config, inputProjectDir string) error {
	mu.Lock()
	defer mu.Unlock()

	config = cfg
	projectDir = inputProjectDir
	return saveConfigLocked()
}

func saveConfigLocked() error {
	dir := filepath.Join(projectDir, ProjectConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(dir, configFileName)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetAPIKey returns the credential for a provider, checking the decrypted
// secrets file first and falling back to environment variables. Ollama has
// no key; its host URL is returned instead.
func GetAPIKey(provider string) (string, error) {
	var envVar string
	switch provider {
	case ProviderOpenAI:
		envVar = EnvOpenAIAPIKey
	case ProviderAnthropic:
		envVar = EnvAnthropicAPIKey
	case ProviderGemini:
		envVar = EnvGeminiAPIKey
	case ProviderOllama:
		host := os.Getenv(EnvOllamaHost)
		if host == "" {
			host = "http://localhost:11434"
		}
		return host, nil
	case ProviderMock:
		return "", nil
	default:
		return "", fmt.Errorf("unknown provider: %s", provider)
	}

	key, err := GetSecret(envVar)
	if err == nil && key != "" {
		return key, nil
	}
	return "", fmt.Errorf("API key not found: %s not found in secrets file or environment variables", envVar)
}
