// Package core contains the task-list business logic: identifier
// generation, the task store, the derived view filter, and configuration.
package core

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/valter-silva-au/todos/pkg/models"
)

// ConfigFileName is the name (without extension) of the global config file.
const ConfigFileName = ".todosconfig"

// ConfigurationManager loads and validates .todosconfig.
type ConfigurationManager interface {
	LoadGlobalConfig() (*models.GlobalConfig, error)
	ValidateConfig(cfg *models.GlobalConfig) error
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading YAML configuration files.
type viperConfigManager struct {
	// basePath is the directory where .todosconfig resides.
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// .todosconfig from basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultGlobalConfig returns a GlobalConfig populated with defaults.
func DefaultGlobalConfig() *models.GlobalConfig {
	return &models.GlobalConfig{
		DefaultFilter: models.FilterAll,
		UI: models.UIConfig{
			AltScreen:   true,
			Placeholder: "What needs to be done?",
			CharLimit:   256,
		},
		EventLog: models.EventLogConfig{
			Enabled: true,
			Path:    ".todos_events.jsonl",
		},
	}
}

// LoadGlobalConfig reads .todosconfig from the base path. A missing file
// yields the defaults.
func (cm *viperConfigManager) LoadGlobalConfig() (*models.GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("defaults.filter", string(cfg.DefaultFilter))
	v.SetDefault("ui.alt_screen", cfg.UI.AltScreen)
	v.SetDefault("ui.placeholder", cfg.UI.Placeholder)
	v.SetDefault("ui.char_limit", cfg.UI.CharLimit)
	v.SetDefault("event_log.enabled", cfg.EventLog.Enabled)
	v.SetDefault("event_log.path", cfg.EventLog.Path)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", ConfigFileName, err)
	}

	filter, err := models.ParseFilterMode(v.GetString("defaults.filter"))
	if err != nil {
		return nil, fmt.Errorf("reading %s: defaults.filter: %w", ConfigFileName, err)
	}
	cfg.DefaultFilter = filter
	cfg.UI.AltScreen = v.GetBool("ui.alt_screen")
	cfg.UI.Placeholder = v.GetString("ui.placeholder")
	cfg.UI.CharLimit = v.GetInt("ui.char_limit")
	cfg.EventLog.Enabled = v.GetBool("event_log.enabled")
	cfg.EventLog.Path = v.GetString("event_log.path")

	return cfg, nil
}

// ValidateConfig reports every invalid field in one error.
func (cm *viperConfigManager) ValidateConfig(cfg *models.GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if _, err := models.ParseFilterMode(string(cfg.DefaultFilter)); err != nil {
		errs = append(errs, fmt.Sprintf("defaults.filter: %s", err))
	}

	if strings.TrimSpace(cfg.UI.Placeholder) == "" {
		errs = append(errs, "ui.placeholder must not be empty")
	}

	if cfg.UI.CharLimit < 0 {
		errs = append(errs, fmt.Sprintf("ui.char_limit must be non-negative, got %d", cfg.UI.CharLimit))
	}

	if cfg.EventLog.Enabled && strings.TrimSpace(cfg.EventLog.Path) == "" {
		errs = append(errs, "event_log.path must not be empty when event_log.enabled is true")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
