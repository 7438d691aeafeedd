package graph

import (
	"github.com/json-to-c4/c4gen/internal/registry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Options configures graph construction and diagram emission.
type Options struct {
	// LegacySanitize strips only the first run of disallowed characters from
	// names when deriving identifiers ("My Cart API" -> "MyCart API").
	LegacySanitize bool
	// AllowDuplicateIDs accepts siblings that sanitize to the same identifier;
	// lookups then resolve to the first of them.
	AllowDuplicateIDs bool
	// IncludeElements adds the focal element and every linked element to the
	// emitted diagram ahead of the relation lines.
	IncludeElements bool
	// Tracer records build and emission spans (nil = global otel tracer).
	Tracer trace.Tracer
	// Renderers maps element types to diagram lines (nil = registry.Default).
	Renderers *registry.Registry
}

// DefaultOptions returns default graph options.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) withDefaults() Options {
	if o.Tracer == nil {
		o.Tracer = otel.Tracer("github.com/json-to-c4/c4gen/internal/graph")
	}
	if o.Renderers == nil {
		o.Renderers = registry.Default
	}
	return o
}
