package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(configFs afero.Fs, path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	configContents, err := afero.ReadFile(configFs, filepath.Join(path, ConfigurationName))
	if err != nil {
		return nil, err
	}

	// Start from the defaults so partial files only override what they set.
	out := defaultConfig()
	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigurationName, err)
	}
	out.configFs = configFs
	return out, nil
}

// LoadOrDefault loads the configuration from the directory, falling back to
// the built-in defaults if there's no configuration file.
func LoadOrDefault(configFs afero.Fs, path string) (*Configuration, error) {
	cfg, err := Load(configFs, path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = defaultConfig()
		cfg.configFs = configFs
		return cfg, nil
	}
	return cfg, err
}

// Initialize writes the default configuration to the directory. Existing
// configuration files are left alone.
func Initialize(configFs afero.Fs, path string, logger *log.Logger) (*Configuration, error) {
	if err := configFs.MkdirAll(path, 0700); err != nil {
		return nil, err
	}

	configPath := filepath.Join(path, ConfigurationName)
	exists, err := afero.Exists(configFs, configPath)
	if err != nil {
		return nil, err
	}

	if exists {
		logger.Printf("Configuration already exists: %s\n", configPath)
	} else {
		if err := afero.WriteFile(configFs, configPath, defaultConfigData, 0600); err != nil {
			return nil, err
		}
		logger.Printf("Wrote configuration: %s\n", configPath)
	}

	return Load(configFs, path)
}
