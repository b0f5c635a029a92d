// Package internal provides the App struct that wires all components of the
// todos system together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/valter-silva-au/todos/internal/cli"
	"github.com/valter-silva-au/todos/internal/core"
	"github.com/valter-silva-au/todos/internal/observability"
	"github.com/valter-silva-au/todos/pkg/models"
)

// HomeEnvVar overrides the base path lookup.
const HomeEnvVar = "TODOS_HOME"

// App holds all service dependencies for the todos system.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.GlobalConfig

	// Core services
	IDGen core.TaskIDGenerator

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires all components of the todos system. basePath is
// the directory holding .todosconfig and the event log.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	globalCfg, err := app.ConfigMgr.LoadGlobalConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := app.ConfigMgr.ValidateConfig(globalCfg); err != nil {
		return nil, err
	}
	app.Config = globalCfg

	// --- Observability ---
	if globalCfg.EventLog.Enabled {
		eventLogPath := globalCfg.EventLog.Path
		if !filepath.IsAbs(eventLogPath) {
			eventLogPath = filepath.Join(basePath, eventLogPath)
		}
		app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
		if err != nil {
			// Non-fatal: disable the event log if it can't be created.
			app.EventLog = nil
		}
	}
	if app.EventLog != nil {
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}

	// --- Core services ---
	app.IDGen = core.NewTaskIDGenerator(nil)

	// --- Wire CLI package-level variables ---
	cli.NewStore = app.NewStore
	cli.Config = app.Config
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc

	return app, nil
}

// NewStore returns a fresh task store using the configured default filter,
// with every change recorded in the event log when it is enabled.
func (a *App) NewStore() core.TaskStore {
	store := core.NewTaskStore(a.IDGen, a.Config.DefaultFilter)
	if a.EventLog != nil {
		store.Subscribe(core.NewChangeLogger(&eventLogAdapter{log: a.EventLog}))
	}
	return store
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the base path for config and the event log. It
// checks the TODOS_HOME env var, then walks up from the current directory
// looking for .todosconfig, then falls back to the current directory.
func ResolveBasePath() string {
	if home := os.Getenv(HomeEnvVar); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if hasConfigFile(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}

func hasConfigFile(dir string) bool {
	for _, name := range []string{core.ConfigFileName, core.ConfigFileName + ".yaml", core.ConfigFileName + ".yml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// --- Adapters ---

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	return a.log.Write(observability.Event{
		Time:    time.Now().UTC(),
		Level:   "INFO",
		Type:    eventType,
		Message: eventType,
		Data:    data,
	})
}
