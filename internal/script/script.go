package script

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed intent.schema.json
var intentSchema []byte

const schemaURL = "todos://intent.schema.json"

// Op is an intent operation.
type Op string

const (
	OpAdd            Op = "add"
	OpDelete         Op = "delete"
	OpToggle         Op = "toggle"
	OpClearCompleted Op = "clear_completed"
	OpSetFilter      Op = "set_filter"
)

// Format identifies the encoding of a script file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Intent is one user action. Only the fields relevant to Op are set.
type Intent struct {
	Op     Op     `json:"op"`
	Name   string `json:"name,omitempty"`
	Index  *int   `json:"index,omitempty"`
	Value  *bool  `json:"value,omitempty"`
	Filter string `json:"filter,omitempty"`
}

// Script is a versioned list of intents.
type Script struct {
	Version int      `json:"version"`
	Intents []Intent `json:"intents"`
}

// ValidationError reports a schema violation at a location in the document.
type ValidationError struct {
	Path string // slash-separated path, empty for the document root
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// FormatForPath picks a Format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported script extension %q (use .yaml, .yml, .toml or .json)", filepath.Ext(path))
	}
}

// LoadFile reads, validates and decodes the script at path.
func LoadFile(path string) (*Script, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}
	return s, nil
}

// Read reads a whole script from r, typically stdin.
func Read(r io.Reader, format Format) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return Parse(data, format)
}

// ParseFormat converts a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatTOML:
		return FormatTOML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported script format %q (use yaml, toml or json)", s)
	}
}

// Parse validates and decodes a script encoded in format.
func Parse(data []byte, format Format) (*Script, error) {
	normalized, err := toJSON(data, format)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, schemaErrors(err)
	}

	var s Script
	dec := json.NewDecoder(bytes.NewReader(normalized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding script: %w", err)
	}
	return &s, nil
}

// toJSON converts a YAML, TOML or JSON document into JSON bytes.
func toJSON(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return data, nil
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing YAML script: %w", err)
		}
		out, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("normalising YAML script: %w", err)
		}
		return out, nil
	case FormatTOML:
		doc := map[string]any{}
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("parsing TOML script: %w", err)
		}
		out, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("normalising TOML script: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported script format %q", format)
	}
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(schemaURL, bytes.NewReader(intentSchema)); err != nil {
		return nil, fmt.Errorf("loading intent schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling intent schema: %w", err)
	}
	return schema, nil
})

// schemaErrors flattens a jsonschema validation error into leaf
// ValidationErrors joined together.
func schemaErrors(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var leaves []error
	collectLeaves(ve, &leaves)
	return fmt.Errorf("script failed validation: %w", errors.Join(leaves...))
}

func collectLeaves(ve *jsonschema.ValidationError, out *[]error) {
	if len(ve.Causes) == 0 {
		*out = append(*out, &ValidationError{
			Path: strings.TrimPrefix(ve.InstanceLocation, "/"),
			Err:  errors.New(ve.Message),
		})
		return
	}
	for _, cause := range ve.Causes {
		collectLeaves(cause, out)
	}
}
