package config

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
	Update  UpdateConfig  `mapstructure:"update"`
}

// APIConfig holds API connection details
type APIConfig struct {
	Key                string `mapstructure:"key"`
	BaseURL            string `mapstructure:"base_url"`
	TimeoutMS          int    `mapstructure:"timeout_ms"`
	Debug              bool   `mapstructure:"debug"`
	EnableInterception bool   `mapstructure:"enable_interception"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// OutputConfig controls how command results are printed
type OutputConfig struct {
	Pretty bool `mapstructure:"pretty"`
}

// UpdateConfig selects the release repository for self-update
type UpdateConfig struct {
	Repository string `mapstructure:"repository"`
}
