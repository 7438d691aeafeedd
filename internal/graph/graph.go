// Package graph builds an identified architecture graph from a validated
// description and emits C4 diagrams focused on one element.
//
// Construction runs in fixed phases and stops at the first violation:
//
//   - Schema: the raw document is checked by diagram.Validate
//   - Identifiers: every element gets its hierarchical identifier
//   - Siblings: empty and (unless allowed) duplicate identifiers are rejected
//   - Links: relation endpoints are checked for syntax, then existence
//
// A built Graph is never modified and is safe for concurrent use.
package graph

import (
	"context"

	"github.com/json-to-c4/c4gen/internal/diagram"
	_ "github.com/json-to-c4/c4gen/internal/handler" // register element renderers
	"github.com/json-to-c4/c4gen/internal/ident"
	"github.com/json-to-c4/c4gen/internal/model"
	"github.com/json-to-c4/c4gen/internal/resolver"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Graph owns the identified element forest and the relation list.
type Graph struct {
	opts      Options
	roots     []*model.Element
	relations []model.Relation
}

// New builds a Graph from a raw architecture document.
func New(d *diagram.Diagram, opts Options) (*Graph, error) {
	return Build(context.Background(), d, opts)
}

// Parse decodes data in the given format and builds a Graph from it.
func Parse(data []byte, format diagram.Format, opts Options) (*Graph, error) {
	d, err := diagram.Decode(data, format)
	if err != nil {
		return nil, err
	}
	return New(d, opts)
}

// Build is New with a caller-supplied context for tracing.
func Build(ctx context.Context, d *diagram.Diagram, opts Options) (*Graph, error) {
	opts = opts.withDefaults()
	_, span := opts.Tracer.Start(ctx, "graph.build")
	defer span.End()

	g, err := build(d, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("graph.elements", g.Len()),
		attribute.Int("graph.relations", len(g.relations)),
	)
	return g, nil
}

func build(d *diagram.Diagram, opts Options) (*Graph, error) {
	// 1. Schema
	if err := diagram.Validate(d); err != nil {
		return nil, err
	}

	// 2. Identifiers
	sanitize := ident.Sanitize
	if opts.LegacySanitize {
		sanitize = ident.SanitizeFirstRun
	}
	g := &Graph{
		opts:  opts,
		roots: ident.Assign(d.Nodes, "", sanitize),
	}

	// 3. Siblings
	if err := checkSiblings(g.roots, d.Nodes, "", sanitize, opts.AllowDuplicateIDs); err != nil {
		return nil, err
	}

	// 4. Links
	g.relations = make([]model.Relation, 0, len(d.Links))
	for _, l := range d.Links {
		g.relations = append(g.relations, model.Relation{
			From:        l.From,
			To:          l.To,
			Description: l.Description,
			Technology:  l.Technology,
		})
	}
	if err := validateLinks(g.roots, g.relations); err != nil {
		return nil, err
	}
	return g, nil
}

// checkSiblings rejects elements without identifier characters and, unless
// duplicates are allowed, siblings that share an identifier.
func checkSiblings(els []*model.Element, src []diagram.Node, parent string, sanitize ident.Sanitizer, allowDuplicates bool) error {
	seen := make(map[string]bool, len(els))
	for i, e := range els {
		if sanitize(src[i].Name) == "" {
			return &EmptyIdentifierError{Name: src[i].Name, Parent: parent}
		}
		if seen[e.ID] && !allowDuplicates {
			return &DuplicateIdentifierError{Identifier: e.ID}
		}
		seen[e.ID] = true
		if err := checkSiblings(e.Children, src[i].Nodes, e.ID, sanitize, allowDuplicates); err != nil {
			return err
		}
	}
	return nil
}

// Resolve returns the element with the given identifier.
func (g *Graph) Resolve(id string) (*model.Element, bool) {
	return resolver.Resolve(g.roots, id)
}

// Roots returns the top-level elements.
func (g *Graph) Roots() []*model.Element {
	out := make([]*model.Element, len(g.roots))
	copy(out, g.roots)
	return out
}

// Relations returns the relations in input order.
func (g *Graph) Relations() []model.Relation {
	out := make([]model.Relation, len(g.relations))
	copy(out, g.relations)
	return out
}

// Elements returns every element depth-first in document order.
func (g *Graph) Elements() []*model.Element {
	var out []*model.Element
	resolver.Walk(g.roots, func(e *model.Element) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Len returns the number of elements in the graph.
func (g *Graph) Len() int {
	n := 0
	resolver.Walk(g.roots, func(*model.Element) bool {
		n++
		return true
	})
	return n
}
