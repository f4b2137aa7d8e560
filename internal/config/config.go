package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	Assistant Assistant `yaml:"assistant"`
	Logging   Logging   `yaml:"logging"`
	UI        UI        `yaml:"ui"`
	Paths     Paths     `yaml:"paths"`
	Commands  Commands  `yaml:"commands"`
}

type Assistant struct {
	Provider       string  `yaml:"provider"`
	Model          string  `yaml:"model"`
	BaseURL        string  `yaml:"base_url"`
	APIKey         string  `yaml:"-"` // environment only, never read from the file
	MaxTokens      int     `yaml:"max_tokens"`
	Temperature    float64 `yaml:"temperature"`
	HistorySize    int     `yaml:"history_size"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

type Logging struct {
	FilePath string `yaml:"file"`
	Level    string `yaml:"level"`
}

type UI struct {
	Accent string `yaml:"accent"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type Paths struct {
	StateDir    string `yaml:"state_dir"`
	ProjectsDir string `yaml:"projects_dir"`
}

// Commands extends the built-in safety lists for assistant-suggested
// shell commands.
type Commands struct {
	Safe    []string `yaml:"safe"`
	Confirm []string `yaml:"confirm"`
}

const (
	envProvider    = "MODETERM_PROVIDER"
	envModel       = "MODETERM_MODEL"
	envBaseURL     = "MODETERM_BASE_URL"
	envAPIKey      = "MODETERM_API_KEY"
	envHistorySize = "MODETERM_HISTORY_SIZE"
	envLogFile     = "MODETERM_LOG_FILE"
	envLogLevel    = "MODETERM_LOG_LEVEL"
	envAccent      = "MODETERM_ACCENT"
	envWidth       = "MODETERM_WIDTH"
	envHeight      = "MODETERM_HEIGHT"
	envStateDir    = "MODETERM_STATE_DIR"
	envProjectsDir = "MODETERM_PROJECTS_DIR"
)

// Default returns the built-in configuration. Path fields stay empty
// until resolved against a home directory.
func Default() Config {
	return Config{
		Assistant: Assistant{
			// Model and BaseURL stay empty here; each provider applies
			// its own default.
			Provider:       "ollama",
			MaxTokens:      500,
			Temperature:    0.7,
			HistorySize:    8,
			TimeoutSeconds: 30,
		},
		Logging: Logging{Level: "info"},
		UI:      UI{Accent: "39"},
	}
}

// DefaultPath returns the config file location under the user's home.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".modeterm", "config.yaml"), nil
}

// Load reads the default config file (when present), overlays the
// process environment, and resolves path defaults.
func Load() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Config{}, err
	}
	home, _ := os.UserHomeDir()
	return LoadArgs(path, os.Environ(), home)
}

// LoadArgs allows tests to supply a specific file, environment, and
// home directory. A missing file is not an error.
func LoadArgs(path string, environ []string, home string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			parsed, perr := Parse(data)
			if perr != nil {
				return Config{}, fmt.Errorf("reading %s: %w", path, perr)
			}
			cfg = parsed
		case errors.Is(err, fs.ErrNotExist):
			// defaults apply
		default:
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	applyEnv(&cfg, parseEnv(environ))
	cfg.resolvePaths(home)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes a YAML document over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config, env map[string]string) {
	cfg.Assistant.Provider = envOrDefault(env, envProvider, cfg.Assistant.Provider)
	cfg.Assistant.Model = envOrDefault(env, envModel, cfg.Assistant.Model)
	cfg.Assistant.BaseURL = envOrDefault(env, envBaseURL, cfg.Assistant.BaseURL)
	cfg.Assistant.APIKey = envOrDefault(env, envAPIKey, cfg.Assistant.APIKey)
	cfg.Assistant.HistorySize = envOrInt(env, envHistorySize, cfg.Assistant.HistorySize)
	cfg.Logging.FilePath = envOrDefault(env, envLogFile, cfg.Logging.FilePath)
	cfg.Logging.Level = envOrDefault(env, envLogLevel, cfg.Logging.Level)
	cfg.UI.Accent = envOrDefault(env, envAccent, cfg.UI.Accent)
	cfg.UI.Width = envOrInt(env, envWidth, cfg.UI.Width)
	cfg.UI.Height = envOrInt(env, envHeight, cfg.UI.Height)
	cfg.Paths.StateDir = envOrDefault(env, envStateDir, cfg.Paths.StateDir)
	cfg.Paths.ProjectsDir = envOrDefault(env, envProjectsDir, cfg.Paths.ProjectsDir)
}

// resolvePaths fills empty path fields from the home directory.
func (c *Config) resolvePaths(home string) {
	if home == "" {
		return
	}
	if c.Paths.StateDir == "" {
		c.Paths.StateDir = filepath.Join(home, ".modeterm")
	}
	if c.Paths.ProjectsDir == "" {
		c.Paths.ProjectsDir = filepath.Join(home, "projects")
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = filepath.Join(c.Paths.StateDir, "logs", "modeterm.log")
	}
}

// AliasFile is the shell alias store under the state directory.
func (c Config) AliasFile() string {
	return filepath.Join(c.Paths.StateDir, "aliases.zsh")
}

// CDMarker is where a project switch writes the target directory for
// the shell wrapper to pick up.
func (c Config) CDMarker() string {
	return filepath.Join(c.Paths.StateDir, "cd")
}

// Verbose reports whether debug logging is requested.
func (c Config) Verbose() bool {
	return strings.EqualFold(c.Logging.Level, "debug")
}

var knownProviders = map[string]bool{
	"ollama":    true,
	"openai":    true,
	"anthropic": true,
	"off":       true,
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if !knownProviders[cfg.Assistant.Provider] {
		return fmt.Errorf("unknown assistant provider %q", cfg.Assistant.Provider)
	}
	if cfg.Assistant.HistorySize < 1 {
		return fmt.Errorf("history_size must be >= 1 (got %d)", cfg.Assistant.HistorySize)
	}
	if cfg.Assistant.TimeoutSeconds < 1 {
		return fmt.Errorf("timeout_seconds must be >= 1 (got %d)", cfg.Assistant.TimeoutSeconds)
	}
	if cfg.Assistant.Temperature < 0 || cfg.Assistant.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2] (got %g)", cfg.Assistant.Temperature)
	}
	if cfg.UI.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.UI.Width)
	}
	if cfg.UI.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.UI.Height)
	}
	return nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}
