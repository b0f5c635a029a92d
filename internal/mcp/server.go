// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the task store as MCP tools, so an assistant can drive the same intents
// the terminal UI produces.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/valter-silva-au/todos/internal/core"
	"github.com/valter-silva-au/todos/internal/observability"
	"github.com/valter-silva-au/todos/pkg/models"
)

// Server wraps a task store and exposes it as MCP tools.
type Server struct {
	server      *gomcp.Server
	store       core.TaskStore
	metricsCalc observability.MetricsCalculator
}

// NewServer creates a new MCP server over store. metricsCalc may be nil if
// the event log is disabled.
func NewServer(store core.TaskStore, metricsCalc observability.MetricsCalculator, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		store:       store,
		metricsCalc: metricsCalc,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "todos", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client
// disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type taskOutput struct {
	Index       int    `json:"index"`
	ID          string `json:"id"`
	TaskName    string `json:"task_name"`
	IsCompleted bool   `json:"is_completed"`
}

type stateOutput struct {
	Filter      string `json:"filter"`
	Total       int    `json:"total"`
	ActiveCount int    `json:"active_count"`
}

type addTaskInput struct {
	TaskName string `json:"task_name" jsonschema:"the text of the new task; blank names are ignored"`
}

type addTaskOutput struct {
	Added       bool   `json:"added"`
	Filter      string `json:"filter"`
	Total       int    `json:"total"`
	ActiveCount int    `json:"active_count"`
}

type deleteTaskInput struct {
	Index int `json:"index" jsonschema:"zero-based position of the task in the full collection"`
}

type toggleTaskInput struct {
	Index     int  `json:"index" jsonschema:"zero-based position of the task in the full collection"`
	Completed bool `json:"completed" jsonschema:"the new completion state"`
}

type clearCompletedInput struct{}

type clearCompletedOutput struct {
	Removed     int    `json:"removed"`
	Filter      string `json:"filter"`
	Total       int    `json:"total"`
	ActiveCount int    `json:"active_count"`
}

type setFilterInput struct {
	Filter string `json:"filter" jsonschema:"one of All, Active, Completed (case-insensitive)"`
}

type listTasksInput struct {
	Filter string `json:"filter,omitempty" jsonschema:"view filter (All, Active, Completed). Defaults to the store's current filter."`
}

type listTasksOutput struct {
	Tasks       []taskOutput `json:"tasks"`
	Count       int          `json:"count"`
	Filter      string       `json:"filter"`
	ActiveCount int          `json:"active_count"`
}

type getMetricsInput struct {
	Since string `json:"since,omitempty" jsonschema:"time window for metrics (e.g. 7d, 30d, 24h). Defaults to 7d."`
}

type metricsOutput struct {
	TasksAdded     int            `json:"tasks_added"`
	TasksCompleted int            `json:"tasks_completed"`
	TasksReopened  int            `json:"tasks_reopened"`
	TasksDeleted   int            `json:"tasks_deleted"`
	TasksCleared   int            `json:"tasks_cleared"`
	FilterChanges  map[string]int `json:"filter_changes"`
	EventCount     int            `json:"event_count"`
	OldestEvent    string         `json:"oldest_event,omitempty"`
	NewestEvent    string         `json:"newest_event,omitempty"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "add_task",
		Description: "Append a new, not-yet-completed task. Blank or whitespace-only names are ignored and reported as added=false.",
	}, s.handleAddTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "delete_task",
		Description: "Delete the task at a zero-based index in the full collection. Later tasks shift down by one.",
	}, s.handleDeleteTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "toggle_task",
		Description: "Set the completion state of the task at a zero-based index in the full collection.",
	}, s.handleToggleTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "clear_completed",
		Description: "Remove every completed task, keeping the order of the rest.",
	}, s.handleClearCompleted)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "set_filter",
		Description: "Change the current view filter. Valid filters: All, Active, Completed.",
	}, s.handleSetFilter)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List the tasks in the derived view with their collection indexes and the number of active tasks.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_metrics",
		Description: "Get aggregated metrics from the event log: tasks added, completed, reopened, deleted and cleared, plus filter changes.",
	}, s.handleGetMetrics)
}

// --- Tool handlers ---

func (s *Server) handleAddTask(_ context.Context, _ *gomcp.CallToolRequest, input addTaskInput) (*gomcp.CallToolResult, addTaskOutput, error) {
	added := s.store.Add(input.TaskName)
	st := s.state()
	return nil, addTaskOutput{Added: added, Filter: st.Filter, Total: st.Total, ActiveCount: st.ActiveCount}, nil
}

func (s *Server) handleDeleteTask(_ context.Context, _ *gomcp.CallToolRequest, input deleteTaskInput) (*gomcp.CallToolResult, stateOutput, error) {
	if err := s.store.Delete(input.Index); err != nil {
		return errorResult(err.Error()), stateOutput{}, nil
	}
	return nil, s.state(), nil
}

func (s *Server) handleToggleTask(_ context.Context, _ *gomcp.CallToolRequest, input toggleTaskInput) (*gomcp.CallToolResult, stateOutput, error) {
	if err := s.store.ToggleCompleted(input.Index, input.Completed); err != nil {
		return errorResult(err.Error()), stateOutput{}, nil
	}
	return nil, s.state(), nil
}

func (s *Server) handleClearCompleted(_ context.Context, _ *gomcp.CallToolRequest, _ clearCompletedInput) (*gomcp.CallToolResult, clearCompletedOutput, error) {
	removed := s.store.ClearCompleted()
	st := s.state()
	return nil, clearCompletedOutput{Removed: removed, Filter: st.Filter, Total: st.Total, ActiveCount: st.ActiveCount}, nil
}

func (s *Server) handleSetFilter(_ context.Context, _ *gomcp.CallToolRequest, input setFilterInput) (*gomcp.CallToolResult, stateOutput, error) {
	mode, err := models.ParseFilterMode(input.Filter)
	if err != nil {
		return errorResult(err.Error()), stateOutput{}, nil
	}
	s.store.SetFilter(mode)
	return nil, s.state(), nil
}

func (s *Server) handleListTasks(_ context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	mode := s.store.Filter()
	if input.Filter != "" {
		parsed, err := models.ParseFilterMode(input.Filter)
		if err != nil {
			return errorResult(err.Error()), listTasksOutput{Tasks: []taskOutput{}}, nil
		}
		mode = parsed
	}

	items := core.DeriveIndexedView(s.store.Tasks(), mode)
	out := listTasksOutput{
		Tasks:       make([]taskOutput, len(items)),
		Count:       len(items),
		Filter:      string(mode),
		ActiveCount: s.store.ActiveCount(),
	}
	for i, item := range items {
		out.Tasks[i] = taskOutput{
			Index:       item.Index,
			ID:          item.Task.ID,
			TaskName:    item.Task.TaskName,
			IsCompleted: item.Task.IsCompleted,
		}
	}

	return nil, out, nil
}

func (s *Server) handleGetMetrics(_ context.Context, _ *gomcp.CallToolRequest, input getMetricsInput) (*gomcp.CallToolResult, metricsOutput, error) {
	if s.metricsCalc == nil {
		return errorResult("metrics calculator not available (event log may be disabled)"), emptyMetricsOutput(), nil
	}

	sinceStr := input.Since
	if sinceStr == "" {
		sinceStr = "7d"
	}

	sinceTime, err := observability.ParseSince(sinceStr, time.Now().UTC())
	if err != nil {
		return errorResult(fmt.Sprintf("parsing since duration: %s", err)), emptyMetricsOutput(), nil
	}

	metrics, err := s.metricsCalc.Calculate(sinceTime)
	if err != nil {
		return errorResult(fmt.Sprintf("calculating metrics: %s", err)), emptyMetricsOutput(), nil
	}

	out := metricsOutput{
		TasksAdded:     metrics.TasksAdded,
		TasksCompleted: metrics.TasksCompleted,
		TasksReopened:  metrics.TasksReopened,
		TasksDeleted:   metrics.TasksDeleted,
		TasksCleared:   metrics.TasksCleared,
		FilterChanges:  metrics.FilterChanges,
		EventCount:     metrics.EventCount,
	}
	if out.FilterChanges == nil {
		out.FilterChanges = make(map[string]int)
	}
	if metrics.OldestEvent != nil {
		out.OldestEvent = metrics.OldestEvent.Format(time.RFC3339)
	}
	if metrics.NewestEvent != nil {
		out.NewestEvent = metrics.NewestEvent.Format(time.RFC3339)
	}

	return nil, out, nil
}

// --- Helpers ---

func (s *Server) state() stateOutput {
	return stateOutput{
		Filter:      string(s.store.Filter()),
		Total:       s.store.Len(),
		ActiveCount: s.store.ActiveCount(),
	}
}

func emptyMetricsOutput() metricsOutput {
	return metricsOutput{FilterChanges: make(map[string]int)}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
