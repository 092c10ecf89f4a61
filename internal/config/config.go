// Package config loads the ksp command line configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/go-ksp/internal/filesystem"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap/zapcore"
)

const (
	// EnvPrefix marks environment variables that override the config file
	EnvPrefix = "KSP_"

	// DefaultHostVersion is reported for studies written by the local backend
	DefaultHostVersion = "9.3.0"

	maxConfigFileSize = 1024 * 1024
)

// Config is the ksp configuration
type Config struct {
	Log      LogConfig      `koanf:"log"`
	Study    StudyConfig    `koanf:"study"`
	Projects ProjectsConfig `koanf:"projects"`
}

// LogConfig selects level and encoding of the logger
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// StudyConfig configures the local study backend
type StudyConfig struct {
	HostVersion string `koanf:"host_version"`
}

// ProjectsConfig configures where the path picker starts
type ProjectsConfig struct {
	Directory string `koanf:"directory"`
}

// DefaultPath returns ~/.config/ksp/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "ksp", "config.yaml"), nil
}

// Load reads configuration with the following precedence (highest first):
//  1. KSP_* environment variables (KSP_LOG_LEVEL -> log.level)
//  2. the YAML file at path, or DefaultPath when path is empty
//  3. defaults
//
// A missing file is only an error when path was given explicitly.
func Load(fs filesystem.FileSystem, path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	switch {
	case fs.IsFile(path):
		if err := loadFile(k, fs, path); err != nil {
			return nil, err
		}
	case explicit:
		return nil, fmt.Errorf("config file %s does not exist", path)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func loadFile(k *koanf.Koanf, fs filesystem.FileSystem, path string) error {
	info, err := fs.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	content, err := fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return nil
}

// envKey maps KSP_SECTION_FIELD_NAME to section.field_name
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Study.HostVersion == "" {
		cfg.Study.HostVersion = DefaultHostVersion
	}
}

// Validate checks log level and format
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format: must be \"console\" or \"json\", got %q", c.Log.Format)
	}
	return nil
}
