package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const yamlScript = `version: 1
intents:
  - op: add
    name: "  buy milk  "
  - op: add
    name: walk dog
  - op: toggle
    index: 0
    value: true
  - op: set_filter
    filter: active
  - op: clear_completed
`

const tomlScript = `version = 1

[[intents]]
op = "add"
name = "  buy milk  "

[[intents]]
op = "add"
name = "walk dog"

[[intents]]
op = "toggle"
index = 0
value = true

[[intents]]
op = "set_filter"
filter = "active"

[[intents]]
op = "clear_completed"
`

const jsonScript = `{
  "version": 1,
  "intents": [
    {"op": "add", "name": "  buy milk  "},
    {"op": "add", "name": "walk dog"},
    {"op": "toggle", "index": 0, "value": true},
    {"op": "set_filter", "filter": "active"},
    {"op": "clear_completed"}
  ]
}`

func TestParse_AllFormatsAgree(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"yaml", yamlScript, FormatYAML},
		{"toml", tomlScript, FormatTOML},
		{"json", jsonScript, FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if s.Version != 1 {
				t.Errorf("Version = %d, want 1", s.Version)
			}
			if len(s.Intents) != 5 {
				t.Fatalf("got %d intents, want 5", len(s.Intents))
			}
			if s.Intents[0].Op != OpAdd || s.Intents[0].Name != "  buy milk  " {
				t.Errorf("intent 1 = %+v, want add of %q", s.Intents[0], "  buy milk  ")
			}
			toggle := s.Intents[2]
			if toggle.Op != OpToggle || toggle.Index == nil || *toggle.Index != 0 || toggle.Value == nil || !*toggle.Value {
				t.Errorf("intent 3 = %+v, want toggle index 0 value true", toggle)
			}
			if s.Intents[3].Filter != "active" {
				t.Errorf("intent 4 filter = %q, want %q", s.Intents[3].Filter, "active")
			}
			if s.Intents[4].Op != OpClearCompleted {
				t.Errorf("intent 5 op = %q, want %q", s.Intents[4].Op, OpClearCompleted)
			}
		})
	}
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantPath string
	}{
		{
			name:     "missing version",
			data:     `{"intents": []}`,
			wantPath: "",
		},
		{
			name:     "wrong version",
			data:     `{"version": 2, "intents": []}`,
			wantPath: "version",
		},
		{
			name:     "unknown op",
			data:     `{"version": 1, "intents": [{"op": "rename"}]}`,
			wantPath: "intents/0/op",
		},
		{
			name:     "add without name",
			data:     `{"version": 1, "intents": [{"op": "add"}]}`,
			wantPath: "intents/0",
		},
		{
			name:     "toggle without value",
			data:     `{"version": 1, "intents": [{"op": "add", "name": "a"}, {"op": "toggle", "index": 0}]}`,
			wantPath: "intents/1",
		},
		{
			name:     "negative index",
			data:     `{"version": 1, "intents": [{"op": "delete", "index": -1}]}`,
			wantPath: "intents/0/index",
		},
		{
			name:     "unknown field",
			data:     `{"version": 1, "intents": [{"op": "clear_completed", "extra": true}]}`,
			wantPath: "intents/0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatJSON)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error %v does not contain a *ValidationError", err)
			}
			if !strings.Contains(err.Error(), "script failed validation") {
				t.Errorf("error = %q, want validation prefix", err)
			}
			if tt.wantPath != "" && !strings.Contains(err.Error(), tt.wantPath) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantPath)
			}
		})
	}
}

func TestParse_MalformedInput(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"yaml", "version: [1\n", FormatYAML},
		{"toml", "version = \n", FormatTOML},
		{"json", "{\"version\": 1,", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data), tt.format); err == nil {
				t.Error("expected parse error, got nil")
			}
		})
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"session.yaml", FormatYAML, false},
		{"session.YML", FormatYAML, false},
		{"dir/session.toml", FormatTOML, false},
		{"session.json", FormatJSON, false},
		{"session.txt", "", true},
		{"session", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatForPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatForPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatForPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.yaml")
	if err := os.WriteFile(path, []byte(yamlScript), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if len(s.Intents) != 5 {
		t.Errorf("got %d intents, want 5", len(s.Intents))
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestRead(t *testing.T) {
	s, err := Read(strings.NewReader(tomlScript), FormatTOML)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(s.Intents) != 5 {
		t.Errorf("got %d intents, want 5", len(s.Intents))
	}
}

func TestRead_Empty(t *testing.T) {
	if _, err := Read(strings.NewReader(""), FormatJSON); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"yaml", FormatYAML, false},
		{"YML", FormatYAML, false},
		{" toml ", FormatTOML, false},
		{"json", FormatJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
