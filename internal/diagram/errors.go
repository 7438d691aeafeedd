package diagram

import (
	"errors"
	"fmt"
)

var (
	// ErrParse indicates input that is not well-formed JSON or YAML.
	ErrParse = errors.New("parse error")

	// ErrSchema indicates input that does not match the architecture shape.
	ErrSchema = errors.New("schema error")
)

// ParseError is returned when the raw document cannot be decoded at all.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return ErrParse.Error()
	}
	return fmt.Sprintf("%s: %s", ErrParse.Error(), e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// SchemaError reports the first field that does not conform to the shape.
// Field is a path such as "nodes[0].nodes[2].type".
type SchemaError struct {
	Field    string
	Expected string
	Actual   any
	Msg      string
}

func (e *SchemaError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Field != "" && e.Expected != "":
		return fmt.Sprintf("%s: %s: expected %s, got %s", ErrSchema.Error(), e.Field, e.Expected, formatActual(e.Actual))
	case e.Field != "":
		return fmt.Sprintf("%s: %s: %s", ErrSchema.Error(), e.Field, e.Msg)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", ErrSchema.Error(), e.Msg)
	}
	return ErrSchema.Error()
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

func formatActual(v any) string {
	switch a := v.(type) {
	case nil:
		return "nothing"
	case string:
		return fmt.Sprintf("%q", a)
	default:
		return fmt.Sprintf("%v", a)
	}
}
