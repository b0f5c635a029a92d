package models

// UIConfig holds terminal UI settings.
type UIConfig struct {
	AltScreen   bool   `yaml:"alt_screen" mapstructure:"alt_screen"`
	Placeholder string `yaml:"placeholder" mapstructure:"placeholder"`
	CharLimit   int    `yaml:"char_limit" mapstructure:"char_limit"`
}

// EventLogConfig controls the JSONL event log.
type EventLogConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// GlobalConfig holds settings read from .todosconfig via Viper.
type GlobalConfig struct {
	DefaultFilter FilterMode     `yaml:"default_filter" mapstructure:"default_filter"`
	UI            UIConfig       `yaml:"ui" mapstructure:"ui"`
	EventLog      EventLogConfig `yaml:"event_log" mapstructure:"event_log"`
}
