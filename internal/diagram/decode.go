package diagram

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the serialization of an architecture document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension; anything that is
// not .yaml/.yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses data in the given format and validates the result.
func Decode(data []byte, f Format) (*Diagram, error) {
	var d Diagram
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &d); err != nil {
			var typeErr *yaml.TypeError
			if errors.As(err, &typeErr) {
				return nil, &SchemaError{Msg: strings.Join(typeErr.Errors, "; ")}
			}
			return nil, &ParseError{Msg: err.Error(), Err: err}
		}
	case FormatJSON, "":
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(&d); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				return nil, &SchemaError{Field: typeErr.Field, Expected: typeErr.Type.String(), Actual: typeErr.Value}
			}
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				return nil, &ParseError{Msg: fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset), Err: err}
			}
			return nil, &ParseError{Msg: err.Error(), Err: err}
		}
	default:
		return nil, &ParseError{Msg: fmt.Sprintf("unsupported format %q", f)}
	}
	if err := Validate(&d); err != nil {
		return nil, err
	}
	return &d, nil
}
