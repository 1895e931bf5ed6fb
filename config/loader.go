package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "prepbuddy.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/prepbuddy"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// Environment variables applied after all files.
const (
	EnvLogLevel = "PREPBUDDY_LOG_LEVEL"
	EnvFormat   = "PREPBUDDY_FORMAT"
	EnvAddr     = "PREPBUDDY_ADDR"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger

	homeDir func() (string, error)
	workDir func() (string, error)
	getenv  func(string) string
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:  logger,
		homeDir: os.UserHomeDir,
		workDir: os.Getwd,
		getenv:  os.Getenv,
	}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/prepbuddy/config.yaml)
// 3. Project config (prepbuddy.yaml in current or parent directories)
// 4. Environment variables (PREPBUDDY_*)
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	userConfigPath := l.userConfigPath()
	if userConfigPath != "" {
		if userConfig, err := readOverlay(userConfigPath); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
			userConfig.applyTo(config)
		} else if !os.IsNotExist(err) {
			l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
		}
	}

	projectConfigPath := l.findProjectConfig()
	if projectConfigPath != "" {
		projectConfig, err := readOverlay(projectConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load project config: %w", err)
		}
		l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
		projectConfig.applyTo(config)
	} else {
		l.logger.Debug("No project config found")
	}

	l.applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFile loads defaults, then the given file, then environment variables.
// User and project files are skipped.
func (l *Loader) LoadFile(path string) (*Config, error) {
	config := DefaultConfig()

	fileConfig, err := readOverlay(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	l.logger.Debug("Loaded config", slog.String("path", path))
	fileConfig.applyTo(config)

	l.applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// EnsureUserConfig creates the user config file with defaults if it doesn't exist
func (l *Loader) EnsureUserConfig() error {
	userConfigPath := l.userConfigPath()
	if userConfigPath == "" {
		return fmt.Errorf("cannot determine home directory")
	}

	if _, err := os.Stat(userConfigPath); err == nil {
		return nil // Already exists
	}

	config := DefaultConfig()
	if err := config.SaveToFile(userConfigPath); err != nil {
		return err
	}

	l.logger.Info("Created default user config", slog.String("path", userConfigPath))
	return nil
}

func (l *Loader) applyEnv(config *Config) {
	if v := l.getenv(EnvLogLevel); v != "" {
		config.Log.Level = v
	}
	if v := l.getenv(EnvFormat); v != "" {
		config.Output.Format = v
	}
	if v := l.getenv(EnvAddr); v != "" {
		config.Server.Addr = v
	}
}

// overlay is one config file layer. Keys where zero is meaningful are
// tracked separately, since Merge skips zero values.
type overlay struct {
	cfg Config

	maxConnectionsSet bool
}

// explicitKeys records keys present in a file regardless of their value.
type explicitKeys struct {
	Server struct {
		MaxConnections *int `yaml:"max_connections"`
	} `yaml:"server"`
}

// readOverlay parses a file without defaults so unset keys do not override
// earlier layers.
func readOverlay(path string) (*overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var o overlay
	if err := yaml.Unmarshal(data, &o.cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	var keys explicitKeys
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	o.maxConnectionsSet = keys.Server.MaxConnections != nil

	return &o, nil
}

func (o *overlay) applyTo(config *Config) {
	config.Merge(&o.cfg)
	if o.maxConnectionsSet {
		config.Server.MaxConnections = o.cfg.Server.MaxConnections
	}
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	home, err := l.homeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for prepbuddy.yaml in current and parent directories
func (l *Loader) findProjectConfig() string {
	cwd, err := l.workDir()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return ""
}
