// Package observability records task-list activity as structured JSON Lines
// events and derives session metrics from them on demand.
package observability
