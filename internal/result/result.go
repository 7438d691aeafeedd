package result

import (
	"errors"
	"net/http"

	"github.com/json-to-c4/c4gen/internal/diagram"
	"github.com/json-to-c4/c4gen/internal/graph"
)

// Error types reported to clients.
const (
	TypeParse             = "parse_error"
	TypeSchema            = "schema_error"
	TypeInvalidIdentifier = "invalid_identifier"
	TypeDanglingReference = "dangling_reference"
	TypeElementNotFound   = "element_not_found"
	TypeDuplicate         = "duplicate_identifier"
	TypeEmptyIdentifier   = "empty_identifier"
	TypeInternal          = "internal_error"
)

// Error is a single failure in the JSON format shared by the CLI, Lambda and HTTP API.
type Error struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	Identifier string `json:"identifier,omitempty"`
}

// DiagramResult is the outcome of rendering one focal element.
type DiagramResult struct {
	Success bool    `json:"success"`
	Focal   string  `json:"focal,omitempty"`
	Diagram string  `json:"diagram,omitempty"`
	Errors  []Error `json:"errors,omitempty"`
}

// ElementInfo describes one identified element.
type ElementInfo struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// ValidateResult is the outcome of building a graph without rendering.
type ValidateResult struct {
	Success   bool          `json:"success"`
	Elements  []ElementInfo `json:"elements,omitempty"`
	Relations int           `json:"relations"`
	Errors    []Error       `json:"errors,omitempty"`
}

// FromError classifies err into an Error, keeping the offending field or identifier.
func FromError(err error) Error {
	out := Error{Type: TypeInternal, Message: err.Error()}

	var (
		schemaErr  *diagram.SchemaError
		invalidErr *graph.InvalidIdentifierError
		danglErr   *graph.DanglingReferenceError
		nfErr      *graph.ElementNotFoundError
		dupErr     *graph.DuplicateIdentifierError
	)
	switch {
	case errors.As(err, &schemaErr):
		out.Type, out.Field = TypeSchema, schemaErr.Field
	case errors.Is(err, diagram.ErrParse):
		out.Type = TypeParse
	case errors.As(err, &invalidErr):
		out.Type, out.Field, out.Identifier = TypeInvalidIdentifier, invalidErr.Field, invalidErr.Identifier
	case errors.As(err, &danglErr):
		out.Type, out.Field, out.Identifier = TypeDanglingReference, danglErr.Field, danglErr.Identifier
	case errors.As(err, &nfErr):
		out.Type, out.Identifier = TypeElementNotFound, nfErr.Identifier
	case errors.As(err, &dupErr):
		out.Type, out.Identifier = TypeDuplicate, dupErr.Identifier
	case errors.Is(err, graph.ErrEmptyIdentifier):
		out.Type = TypeEmptyIdentifier
	}
	return out
}

// IsClientError reports whether err was caused by the submitted document or
// focal identifier rather than by the service.
func IsClientError(err error) bool {
	return FromError(err).Type != TypeInternal
}

// Elements lists every element of g in document order.
func Elements(g *graph.Graph) []ElementInfo {
	els := g.Elements()
	out := make([]ElementInfo, 0, len(els))
	for _, e := range els {
		out = append(out, ElementInfo{ID: e.ID, Type: e.Type.String(), Name: e.Name})
	}
	return out
}

// StatusCode maps err to the HTTP status reported by the Lambda and HTTP API:
// 400 for unreadable documents, 422 for documents that break graph rules,
// 404 for an unknown focal element and 500 otherwise.
func StatusCode(err error) int {
	switch FromError(err).Type {
	case TypeParse, TypeSchema:
		return http.StatusBadRequest
	case TypeElementNotFound:
		return http.StatusNotFound
	case TypeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}
