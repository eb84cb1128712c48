// Package config provides configuration management for mdshare. It handles
// loading, validating and saving the YAML settings file that names the
// default catalogue, the working directory and the download behaviour.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glorpus-work/mdshare/pkg/errors"
	"github.com/glorpus-work/mdshare/pkg/fsutil"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
}

// Settings represents general application settings.
type Settings struct {
	// Catalogue settings
	CatalogueFile string `yaml:"catalogue_file,omitempty"`
	ChecksumFile  string `yaml:"checksum_file,omitempty"`

	// Fetch settings
	WorkingDir  string `yaml:"working_dir,omitempty"`
	MaxAttempts int    `yaml:"max_attempts"`

	// Network settings
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	UserAgent   string        `yaml:"user_agent,omitempty"`
	Auth        *AuthConfig   `yaml:"auth,omitempty"`

	// Output settings
	ShowProgress bool   `yaml:"show_progress"`
	LogLevel     string `yaml:"log_level"` // debug, info, warn, error
}

// Default configuration values.
const (
	// DefaultMaxAttempts is the number of tries per file.
	DefaultMaxAttempts = 3

	// DefaultWorkingDir receives fetched files unless told otherwise.
	DefaultWorkingDir = "."

	// DefaultCatalogueName is the base name of the default catalogue files.
	DefaultCatalogueName = "mdshare-catalogue"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	dataDir, err := fsutil.GetDataDir()
	if err != nil {
		dataDir = "."
	}

	return &Config{
		Settings: Settings{
			CatalogueFile: filepath.Join(dataDir, DefaultCatalogueName+".yaml"),
			ChecksumFile:  filepath.Join(dataDir, DefaultCatalogueName+".md5"),
			WorkingDir:    DefaultWorkingDir,
			MaxAttempts:   DefaultMaxAttempts,
			ShowProgress:  true,
			LogLevel:      "info",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// default configuration.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	config := Config{Settings: Settings{ShowProgress: true}}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrConfigValidation, err)
	}
	return &config, nil
}

// SaveConfig writes the configuration to path, replacing any existing file
// atomically.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}
	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	return validateSettings(c.Settings)
}

func validateSettings(s Settings) error {
	if s.MaxAttempts < 1 {
		return errors.Wrapf(errors.ErrConfigValidation, "max_attempts must be at least 1, got %d", s.MaxAttempts)
	}
	if s.HTTPTimeout < 0 {
		return errors.Wrap(errors.ErrConfigValidation, "http_timeout cannot be negative")
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return errors.ErrInvalidLogLevelWithDetails(s.LogLevel)
	}
	return s.Auth.validate()
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := fsutil.GetConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user config directory")
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Settings.CatalogueFile == "" {
		c.Settings.CatalogueFile = defaults.Settings.CatalogueFile
	}
	if c.Settings.ChecksumFile == "" {
		c.Settings.ChecksumFile = defaults.Settings.ChecksumFile
	}
	if c.Settings.WorkingDir == "" {
		c.Settings.WorkingDir = defaults.Settings.WorkingDir
	}
	if c.Settings.MaxAttempts == 0 {
		c.Settings.MaxAttempts = defaults.Settings.MaxAttempts
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
}
