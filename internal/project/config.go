// Package project loads the sprinkles.toml project configuration.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the project root.
const FileName = "sprinkles.toml"

// Config represents the sprinkles.toml configuration file.
type Config struct {
	Atoms    AtomsConfig    `toml:"atoms" yaml:"atoms"`
	Generate GenerateConfig `toml:"generate" yaml:"generate"`
	Log      LogConfig      `toml:"log" yaml:"log"`
}

type AtomsConfig struct {
	// Files are the atom configuration documents, merged in order. Relative
	// paths are resolved against the project root.
	Files []string `toml:"files" yaml:"files" env:"SPRINKLES_ATOMS" envSeparator:","`
}

type GenerateConfig struct {
	Package  string `toml:"package" yaml:"package" env:"SPRINKLES_GENERATE_PACKAGE"`
	Output   string `toml:"output" yaml:"output" env:"SPRINKLES_GENERATE_OUTPUT"`
	Variable string `toml:"variable" yaml:"variable"`
}

type LogConfig struct {
	Level string `toml:"level" yaml:"level" env:"SPRINKLES_LOG_LEVEL"`
}

// Default returns the configuration used when sprinkles.toml is absent.
func Default() Config {
	return Config{
		Atoms: AtomsConfig{
			Files: []string{"atoms.toml"},
		},
		Generate: GenerateConfig{
			Package:  "styles",
			Output:   filepath.Join("styles", "atoms_gen.go"),
			Variable: "Atoms",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads dir/sprinkles.toml over the defaults and applies SPRINKLES_*
// environment overrides. A missing file is not an error.
func Load(dir string) (Config, error) {
	config := Default()

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := env.Parse(&config); err != nil {
		return config, fmt.Errorf("parse env: %w", err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Validate checks the settings that cannot fall back to a default.
func (c Config) Validate() error {
	if len(c.Atoms.Files) == 0 {
		return errors.New("no atom files configured")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// AtomFiles returns the atom documents resolved against root.
func (c Config) AtomFiles(root string) []string {
	files := make([]string, len(c.Atoms.Files))
	for i, f := range c.Atoms.Files {
		if !filepath.IsAbs(f) {
			f = filepath.Join(root, f)
		}
		files[i] = f
	}
	return files
}

// Save writes config to dir/sprinkles.toml.
func Save(dir string, config Config) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Dump returns config as YAML.
func Dump(config Config) ([]byte, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// FindRoot walks up from start looking for sprinkles.toml, then go.mod.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a sprinkles project (no %s or go.mod found)", FileName)
		}
		dir = parent
	}
}
