package graph

import (
	"context"
	"fmt"

	"github.com/json-to-c4/c4gen/internal/c4"
	"github.com/json-to-c4/c4gen/internal/model"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Diagram renders the relations touching focal as a C4 document.
func (g *Graph) Diagram(focal string) (string, error) {
	return g.DiagramContext(context.Background(), focal)
}

// DiagramContext is Diagram with a caller-supplied context for tracing.
func (g *Graph) DiagramContext(ctx context.Context, focal string) (string, error) {
	_, span := g.opts.Tracer.Start(ctx, "graph.diagram")
	defer span.End()
	span.SetAttributes(attribute.String("diagram.focal", focal))

	out, n, err := g.diagram(focal)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetAttributes(attribute.Int("diagram.relations", n))
	return out, nil
}

func (g *Graph) diagram(focal string) (string, int, error) {
	focalEl, ok := g.Resolve(focal)
	if !ok {
		return "", 0, &ElementNotFoundError{Identifier: focal}
	}

	b := c4.NewBuilder()
	seen := map[string]bool{focalEl.ID: true}
	var linked []*model.Element
	n := 0
	for _, r := range g.relations {
		if r.From != focal && r.To != focal {
			continue
		}
		for _, id := range []string{r.From, r.To} {
			e, ok := g.Resolve(id)
			if !ok {
				return "", 0, &ElementNotFoundError{Identifier: id}
			}
			if !seen[e.ID] {
				seen[e.ID] = true
				linked = append(linked, e)
			}
		}
		b.AddRelation(c4.RelLine(r))
		n++
	}

	if g.opts.IncludeElements {
		for _, e := range append([]*model.Element{focalEl}, linked...) {
			line, err := g.render(e)
			if err != nil {
				return "", 0, err
			}
			b.AddElement(line)
		}
	}
	return b.Build(), n, nil
}

func (g *Graph) render(e *model.Element) (string, error) {
	h, ok := g.opts.Renderers.Get(e.Type)
	if !ok {
		return "", fmt.Errorf("no renderer registered for element type %s", e.Type)
	}
	return h.Render(e), nil
}
