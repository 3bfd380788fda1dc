package config

import (
	"fmt"

	"shadowkit/internal/platform"
	"shadowkit/pkg/logging"
)

// GetDefaultConfig returns the configuration used when no file overrides it.
func GetDefaultConfig() Config {
	allow := true
	return Config{
		Platform: PlatformConfig{
			SDK:                int(platform.Latest),
			AllowInternalTypes: &allow,
		},
		Logging: LoggingConfig{Level: "info"},
		Output:  OutputConfig{Format: OutputTable},
	}
}

// Validate rejects settings no command can act on.
func (c Config) Validate() error {
	if c.Platform.SDK < 1 {
		return fmt.Errorf("platform.sdk must be at least 1, got %d", c.Platform.SDK)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Output.Format {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("output.format must be table, json or yaml, got %q", c.Output.Format)
	}
	return nil
}
