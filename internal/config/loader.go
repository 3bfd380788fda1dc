package config

import (
	"fmt"
	"os"
	"path/filepath"

	"shadowkit/pkg/logging"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/shadowkit"
	projectConfigDir = ".shadowkit"
	configFileName   = "config.yaml"
)

// LoadConfig loads the shadowkit configuration by layering default, user, and project settings.
func LoadConfig() (Config, error) {
	config := GetDefaultConfig()

	for _, layer := range []struct {
		name string
		path func() (string, error)
	}{
		{"user", getUserConfigPath},
		{"project", getProjectConfigPath},
	} {
		path, err := layer.path()
		if err != nil {
			// Optional layer
			logging.Warn("Config", "Could not determine %s config path: %v", layer.name, err)
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		overlay, err := loadConfigFromFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("error loading %s config from %s: %w", layer.name, path, err)
		}
		logging.Debug("Config", "Applied %s config %s", layer.name, path)
		config = mergeConfigs(config, overlay)
	}

	return config, nil
}

// LoadConfigFrom layers a single explicit file over the defaults.
func LoadConfigFrom(path string) (Config, error) {
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	return mergeConfigs(GetDefaultConfig(), overlay), nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a Config from a YAML file.
func loadConfigFromFile(filePath string) (Config, error) {
	var config Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Zero values in the
// overlay leave the base untouched.
func mergeConfigs(base, overlay Config) Config {
	merged := base

	if overlay.Platform.SDK != 0 {
		merged.Platform.SDK = overlay.Platform.SDK
	}
	if overlay.Platform.AllowInternalTypes != nil {
		allow := *overlay.Platform.AllowInternalTypes
		merged.Platform.AllowInternalTypes = &allow
	}
	if overlay.Logging.Level != "" {
		merged.Logging.Level = overlay.Logging.Level
	}
	if overlay.Output.Format != "" {
		merged.Output.Format = overlay.Output.Format
	}

	return merged
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
