package graph

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/json-to-c4/c4gen/internal/diagram"
	"github.com/json-to-c4/c4gen/internal/ident"
	"github.com/json-to-c4/c4gen/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func strPtr(s string) *string { return &s }

func shopDiagram() *diagram.Diagram {
	return &diagram.Diagram{
		Nodes: []diagram.Node{
			{Name: "Shop", Type: "application", Nodes: []diagram.Node{
				{Name: "Cart API", Type: "service"},
			}},
		},
	}
}

func loadGraph(t *testing.T, name string, opts Options) *Graph {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	g, err := Parse(data, diagram.FormatFromPath(name), opts)
	require.NoError(t, err)
	return g
}

func TestNew_AssignsIdentifiers(t *testing.T) {
	g, err := New(shopDiagram(), DefaultOptions())
	require.NoError(t, err)

	var ids []string
	for _, e := range g.Elements() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"Shop", "Shop.CartAPI"}, ids)
	assert.Equal(t, 2, g.Len())
	assert.Empty(t, g.Relations())
}

func TestNew_DiscardsCallerIDs(t *testing.T) {
	d := shopDiagram()
	d.Nodes[0].ID = "whatever"
	g, err := New(d, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "Shop", g.Roots()[0].ID)
	assert.Equal(t, "whatever", d.Nodes[0].ID, "input must not be mutated")
}

func TestNew_IdentifierInvariant(t *testing.T) {
	g := loadGraph(t, "shop.json", DefaultOptions())
	var check func(parent string, els []*model.Element)
	check = func(parent string, els []*model.Element) {
		for _, e := range els {
			assert.NotEmpty(t, e.ID)
			assert.Equal(t, ident.Join(parent, ident.Sanitize(e.Name)), e.ID)
			got, ok := g.Resolve(e.ID)
			require.True(t, ok)
			assert.Same(t, e, got)
			check(e.ID, e.Children)
		}
	}
	check("", g.Roots())

	for _, r := range g.Relations() {
		_, ok := g.Resolve(r.From)
		assert.True(t, ok, r.From)
		_, ok = g.Resolve(r.To)
		assert.True(t, ok, r.To)
	}
}

func TestNew_SchemaError(t *testing.T) {
	d := &diagram.Diagram{Nodes: []diagram.Node{{Name: "X", Type: "spaceship"}}}
	_, err := New(d, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, diagram.ErrSchema)
	assert.Contains(t, err.Error(), "nodes[0].type")
}

func TestNew_LinkErrors(t *testing.T) {
	tests := []struct {
		name     string
		links    []diagram.Link
		wantIs   error
		wantText []string
	}{
		{
			name:     "dangling to",
			links:    []diagram.Link{{From: "Shop", To: "Shop.Unknown"}},
			wantIs:   ErrDanglingReference,
			wantText: []string{`"Shop.Unknown"`, "links[0].to"},
		},
		{
			name:     "dangling from checked before to",
			links:    []diagram.Link{{From: "Nope", To: "Also.Nope"}},
			wantIs:   ErrDanglingReference,
			wantText: []string{`"Nope"`, "links[0].from"},
		},
		{
			name:     "bad syntax",
			links:    []diagram.Link{{From: "Shop", To: "Shop.CartAPI"}, {From: "Shop..CartAPI", To: "Shop"}},
			wantIs:   ErrInvalidIdentifier,
			wantText: []string{"links[1].from", `"Shop..CartAPI"`},
		},
		{
			name:     "syntax checked before existence",
			links:    []diagram.Link{{From: "Shop", To: "no-such-thing"}},
			wantIs:   ErrInvalidIdentifier,
			wantText: []string{"links[0].to"},
		},
		{
			name:     "empty from",
			links:    []diagram.Link{{From: "", To: "Shop"}},
			wantIs:   ErrInvalidIdentifier,
			wantText: []string{"links[0].from"},
		},
		{
			name:     "empty to after valid from",
			links:    []diagram.Link{{From: "Shop", To: ""}},
			wantIs:   ErrInvalidIdentifier,
			wantText: []string{"links[0].to"},
		},
		{
			name:   "first invalid relation aborts",
			links:  []diagram.Link{{From: "Missing", To: "Shop"}, {From: "a-b", To: "Shop"}},
			wantIs: ErrDanglingReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := shopDiagram()
			d.Links = tt.links
			_, err := New(d, DefaultOptions())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantIs)
			for _, s := range tt.wantText {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}

func TestNew_DanglingReferenceNamesIdentifier(t *testing.T) {
	d := shopDiagram()
	d.Links = []diagram.Link{{From: "Shop", To: "Shop.Unknown"}}
	_, err := New(d, DefaultOptions())

	var dre *DanglingReferenceError
	require.ErrorAs(t, err, &dre)
	assert.Equal(t, "Shop.Unknown", dre.Identifier)
	assert.Equal(t, "links[0].to", dre.Field)
}

func TestNew_DuplicateSiblings(t *testing.T) {
	d := &diagram.Diagram{Nodes: []diagram.Node{
		{Name: "Shop", Type: "application", Nodes: []diagram.Node{
			{Name: "Cart API", Type: "service"},
			{Name: "CartAPI", Type: "database"},
		}},
	}}

	_, err := New(d, DefaultOptions())
	var dup *DuplicateIdentifierError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Shop.CartAPI", dup.Identifier)

	g, err := New(d, Options{AllowDuplicateIDs: true})
	require.NoError(t, err)
	e, ok := g.Resolve("Shop.CartAPI")
	require.True(t, ok)
	assert.Equal(t, model.Service, e.Type, "first sibling wins")
}

func TestNew_SameNameInDifferentParentsIsFine(t *testing.T) {
	d := &diagram.Diagram{Nodes: []diagram.Node{
		{Name: "A", Type: "team", Nodes: []diagram.Node{{Name: "API", Type: "service"}}},
		{Name: "B", Type: "team", Nodes: []diagram.Node{{Name: "API", Type: "service"}}},
	}}
	_, err := New(d, DefaultOptions())
	assert.NoError(t, err)
}

func TestNew_EmptyIdentifier(t *testing.T) {
	d := &diagram.Diagram{Nodes: []diagram.Node{
		{Name: "Shop", Type: "application", Nodes: []diagram.Node{{Name: "???", Type: "service"}}},
	}}
	_, err := New(d, DefaultOptions())
	require.ErrorIs(t, err, ErrEmptyIdentifier)
	assert.Contains(t, err.Error(), `"Shop"`)
}

func TestNew_EmptyName(t *testing.T) {
	tests := []struct {
		name  string
		nodes []diagram.Node
	}{
		{"root", []diagram.Node{{Name: "", Type: "team"}}},
		{"nested", []diagram.Node{{Name: "Shop", Type: "application", Nodes: []diagram.Node{{Type: "service"}}}}},
		{"whitespace only", []diagram.Node{{Name: "\u00a0 \v", Type: "team"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(&diagram.Diagram{Nodes: tt.nodes}, DefaultOptions())
			require.ErrorIs(t, err, ErrEmptyIdentifier)
			assert.NotErrorIs(t, err, diagram.ErrSchema)
		})
	}
}

func TestNew_UnicodeSpacesInNames(t *testing.T) {
	d := &diagram.Diagram{
		Nodes: []diagram.Node{{Name: "Shop", Type: "application", Nodes: []diagram.Node{{Name: "Cart\u00a0API", Type: "service"}}}},
		Links: []diagram.Link{{From: "Shop", To: "Shop.CartAPI"}},
	}
	g, err := New(d, DefaultOptions())
	require.NoError(t, err)
	_, ok := g.Resolve("Shop.CartAPI")
	assert.True(t, ok)
}

// The default sanitizer strips every run of disallowed characters; the legacy
// one strips only the first, which leaves names with several words unlinkable.
func TestNew_LegacySanitizeFlag(t *testing.T) {
	d := &diagram.Diagram{Nodes: []diagram.Node{{Name: "My Cart API", Type: "service"}}}

	g, err := New(d, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "MyCartAPI", g.Roots()[0].ID)

	g, err = New(d, Options{LegacySanitize: true})
	require.NoError(t, err)
	assert.Equal(t, "MyCart API", g.Roots()[0].ID)

	d.Links = []diagram.Link{{From: "MyCartAPI", To: "MyCartAPI"}}
	_, err = New(d, Options{LegacySanitize: true})
	assert.ErrorIs(t, err, ErrDanglingReference)
}

func TestBuild_RecordsSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	opts := Options{Tracer: tp.Tracer("test")}

	d := shopDiagram()
	d.Links = []diagram.Link{{From: "Shop", To: "Shop.CartAPI"}}
	g, err := Build(context.Background(), d, opts)
	require.NoError(t, err)
	_, err = g.DiagramContext(context.Background(), "Nope")
	require.Error(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "graph.build", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, "graph.diagram", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}
