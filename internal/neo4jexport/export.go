// Package neo4jexport writes an identified architecture graph into Neo4j.
//
// Each element is merged on its identifier under a label named after its
// type (Application, Database, ...). Containment becomes CONTAINS
// relationships from parent to child and every relation becomes a RELATES
// relationship carrying its description and technology.
package neo4jexport

import (
	"context"
	"fmt"
	"strings"

	"github.com/json-to-c4/c4gen/internal/graph"
	"github.com/json-to-c4/c4gen/internal/model"
	"github.com/saulfrancisco-ruizacevedo/gocypher"
)

const (
	// ContainsType is the relationship type used for containment.
	ContainsType = "CONTAINS"
	// RelatesType is the relationship type used for relations.
	RelatesType = "RELATES"
)

// Stats counts what an export wrote.
type Stats struct {
	Elements  int `json:"elements"`
	Contains  int `json:"contains"`
	Relations int `json:"relations"`
}

// Exporter writes graphs through a DBRunner.
type Exporter struct {
	runner DBRunner
}

// NewExporter returns an Exporter using runner.
func NewExporter(runner DBRunner) *Exporter {
	return &Exporter{runner: runner}
}

// Label returns the node label for an element type ("database" -> "Database").
func Label(t model.Type) string {
	s := t.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Export writes every element, then containment, then relations.
// It stops at the first failing query.
func (x *Exporter) Export(ctx context.Context, g *graph.Graph) (Stats, error) {
	var stats Stats
	for _, e := range g.Elements() {
		if err := x.mergeElement(ctx, e); err != nil {
			return stats, fmt.Errorf("export element %s: %w", e.ID, err)
		}
		stats.Elements++
	}
	for _, parent := range g.Elements() {
		for _, child := range parent.Children {
			if err := x.link(ctx, parent, child, ContainsType, nil); err != nil {
				return stats, fmt.Errorf("export containment %s -> %s: %w", parent.ID, child.ID, err)
			}
			stats.Contains++
		}
	}
	for _, r := range g.Relations() {
		from, _ := g.Resolve(r.From)
		to, _ := g.Resolve(r.To)
		if err := x.link(ctx, from, to, RelatesType, relationProps(r)); err != nil {
			return stats, fmt.Errorf("export relation %s -> %s: %w", r.From, r.To, err)
		}
		stats.Relations++
	}
	return stats, nil
}

func (x *Exporter) mergeElement(ctx context.Context, e *model.Element) error {
	setProps := map[string]interface{}{
		"n.name": e.Name,
		"n.type": e.Type.String(),
	}
	setOptional(setProps, "n.description", e.Description)
	setOptional(setProps, "n.technology", e.Technology)
	setOptional(setProps, "n.deployment", e.Deployment)

	query, params, err := gocypher.NewQueryBuilder().
		Merge(gocypher.N("n", Label(e.Type)).WithProperties(map[string]interface{}{"id": e.ID})).
		Set(setProps).
		Return("n").
		Build()
	if err != nil {
		return err
	}
	_, err = x.runner.Run(ctx, query, params)
	return err
}

func (x *Exporter) link(ctx context.Context, from, to *model.Element, relType string, props map[string]interface{}) error {
	if props == nil {
		props = map[string]interface{}{}
	}
	query, params, err := gocypher.NewQueryBuilder().
		Match(gocypher.N("a", Label(from.Type)).WithProperties(map[string]interface{}{"id": from.ID})).
		Match(gocypher.N("b", Label(to.Type)).WithProperties(map[string]interface{}{"id": to.ID})).
		Create(
			gocypher.N("a", ""),
			gocypher.R("r", relType).To().WithProperties(props),
			gocypher.N("b", ""),
		).
		Build()
	if err != nil {
		return err
	}
	_, err = x.runner.Run(ctx, query, params)
	return err
}

func relationProps(r model.Relation) map[string]interface{} {
	props := map[string]interface{}{}
	setOptional(props, "description", r.Description)
	setOptional(props, "technology", r.Technology)
	return props
}

func setOptional(m map[string]interface{}, key string, p *string) {
	if p != nil {
		m[key] = *p
	}
}
