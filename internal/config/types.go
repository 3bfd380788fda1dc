package config

// Config is the top-level configuration structure for shadowkit.
type Config struct {
	Platform PlatformConfig `yaml:"platform"`
	Logging  LoggingConfig  `yaml:"logging"`
	Output   OutputConfig   `yaml:"output"`
}

// PlatformConfig selects the simulated platform.
type PlatformConfig struct {
	SDK int `yaml:"sdk,omitempty"` // API level shadows are resolved for, e.g. 34
	// AllowInternalTypes lets internal-only shadows apply. Nil means the default (true).
	AllowInternalTypes *bool `yaml:"allowInternalTypes,omitempty"`
}

// InternalTypesAllowed reports the effective AllowInternalTypes setting.
func (p PlatformConfig) InternalTypesAllowed() bool {
	return p.AllowInternalTypes == nil || *p.AllowInternalTypes
}

// LoggingConfig controls CLI log output.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn or error
}

// OutputFormat is the rendering used by CLI commands.
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// OutputConfig controls CLI result rendering.
type OutputConfig struct {
	Format OutputFormat `yaml:"format,omitempty"`
}
