package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"shadowkit/internal/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPaths points both config layers into dir and restores them afterwards.
func mockPaths(t *testing.T, dir string) (userPath, projectPath string) {
	t.Helper()

	originalGetUserConfigPath := getUserConfigPath
	originalGetProjectConfigPath := getProjectConfigPath
	t.Cleanup(func() {
		getUserConfigPath = originalGetUserConfigPath
		getProjectConfigPath = originalGetProjectConfigPath
	})

	userPath = filepath.Join(dir, "user", configFileName)
	projectPath = filepath.Join(dir, "project", configFileName)
	getUserConfigPath = func() (string, error) { return userPath, nil }
	getProjectConfigPath = func() (string, error) { return projectPath, nil }
	return userPath, projectPath
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	mockPaths(t, t.TempDir())

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), loaded)
	assert.Equal(t, int(platform.Latest), loaded.Platform.SDK)
	assert.True(t, loaded.Platform.InternalTypesAllowed())
	assert.NoError(t, loaded.Validate())
}

func TestLoadConfig_UserThenProjectOverride(t *testing.T) {
	userPath, projectPath := mockPaths(t, t.TempDir())

	writeFile(t, userPath, "platform:\n  sdk: 30\n  allowInternalTypes: false\nlogging:\n  level: debug\n")
	writeFile(t, projectPath, "platform:\n  sdk: 33\noutput:\n  format: yaml\n")

	loaded, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 33, loaded.Platform.SDK, "project layer wins")
	assert.False(t, loaded.Platform.InternalTypesAllowed(), "user layer kept where project is silent")
	assert.Equal(t, "debug", loaded.Logging.Level)
	assert.Equal(t, OutputYAML, loaded.Output.Format)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	userPath, _ := mockPaths(t, t.TempDir())
	writeFile(t, userPath, "platform: [not, a, map")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "error loading user config")
}

func TestLoadConfig_UnresolvablePathIsSkipped(t *testing.T) {
	_, projectPath := mockPaths(t, t.TempDir())
	getUserConfigPath = func() (string, error) { return "", errors.New("no home") }
	writeFile(t, projectPath, "platform:\n  sdk: 31\n")

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 31, loaded.Platform.SDK)
}

func TestLoadConfigFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "output:\n  format: json\n")

	loaded, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, OutputJSON, loaded.Output.Format)
	assert.Equal(t, int(platform.Latest), loaded.Platform.SDK)

	_, err = LoadConfigFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "sdk too low", mutate: func(c *Config) { c.Platform.SDK = 0 }, wantErr: "platform.sdk"},
		{name: "unknown level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "unknown format", mutate: func(c *Config) { c.Output.Format = "xml" }, wantErr: "output.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := GetDefaultConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestGetUserConfigDir(t *testing.T) {
	original := osUserHomeDir
	t.Cleanup(func() { osUserHomeDir = original })
	osUserHomeDir = func() (string, error) { return "/home/dev", nil }

	dir, err := GetUserConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/dev", ".config", "shadowkit"), dir)
}
