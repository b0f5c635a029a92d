package cli

import (
	"fmt"

	"github.com/valter-silva-au/todos/internal/core"
	"github.com/valter-silva-au/todos/internal/observability"
	"github.com/valter-silva-au/todos/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	// NewStore returns a fresh, session-scoped task store with the event
	// log already subscribed.
	NewStore func() core.TaskStore

	Config      *models.GlobalConfig
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
)

func newSessionStore() (core.TaskStore, error) {
	if NewStore == nil {
		return nil, fmt.Errorf("task store not initialized")
	}
	return NewStore(), nil
}

func currentConfig() *models.GlobalConfig {
	if Config == nil {
		return core.DefaultGlobalConfig()
	}
	return Config
}
