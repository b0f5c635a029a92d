// Package script loads and replays intent scripts: ordered lists of the
// same user intents the terminal UI produces (add, delete, toggle,
// clear_completed, set_filter), applied to a fresh task store.
//
// Scripts may be written in YAML, TOML, or JSON:
//
//	version: 1
//	intents:
//	  - op: add
//	    name: buy milk
//	  - op: toggle
//	    index: 0
//	    value: true
//	  - op: set_filter
//	    filter: Active
//
// Every format is normalised to JSON and checked against an embedded JSON
// Schema before it is decoded, so structural mistakes are reported with the
// offending path rather than as a replay failure.
package script
