package neo4jexport

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/json-to-c4/c4gen/internal/diagram"
	"github.com/json-to-c4/c4gen/internal/graph"
	"github.com/json-to-c4/c4gen/internal/model"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	query  string
	params map[string]interface{}
}

type recordingRunner struct {
	calls  []call
	failAt int
}

func (r *recordingRunner) Run(_ context.Context, query string, params map[string]interface{}) (*neo4j.EagerResult, error) {
	r.calls = append(r.calls, call{query: query, params: params})
	if r.failAt > 0 && len(r.calls) == r.failAt {
		return nil, errors.New("connection refused")
	}
	return &neo4j.EagerResult{}, nil
}

const shop = `{
  "nodes": [
    {"name": "Shop", "type": "application", "technology": "Go", "nodes": [
      {"name": "Cart API", "type": "service"},
      {"name": "Orders DB", "type": "database"}
    ]},
    {"name": "Events", "type": "queue"}
  ],
  "links": [
    {"from": "Shop.CartAPI", "to": "Shop.OrdersDB", "description": "reads"}
  ]
}`

func buildShop(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Parse([]byte(shop), diagram.FormatJSON, graph.DefaultOptions())
	require.NoError(t, err)
	return g
}

func hasParam(c call, want interface{}) bool {
	for _, v := range c.params {
		if v == want {
			return true
		}
	}
	return false
}

func TestExport_QuerySequence(t *testing.T) {
	runner := &recordingRunner{}
	stats, err := NewExporter(runner).Export(context.Background(), buildShop(t))
	require.NoError(t, err)

	assert.Equal(t, Stats{Elements: 4, Contains: 2, Relations: 1}, stats)
	require.Len(t, runner.calls, 7)

	for _, c := range runner.calls[:4] {
		assert.Contains(t, c.query, "MERGE")
	}
	assert.Contains(t, runner.calls[0].query, "Application")
	assert.True(t, hasParam(runner.calls[0], "Shop"))
	assert.Contains(t, runner.calls[2].query, "Database")
	assert.True(t, hasParam(runner.calls[2], "Shop.OrdersDB"))

	for _, c := range runner.calls[4:6] {
		assert.Contains(t, c.query, ContainsType)
		assert.True(t, hasParam(c, "Shop"))
	}

	last := runner.calls[6]
	assert.Contains(t, last.query, RelatesType)
	assert.True(t, hasParam(last, "Shop.CartAPI"))
	assert.True(t, hasParam(last, "Shop.OrdersDB"))
}

func TestExport_StopsOnError(t *testing.T) {
	runner := &recordingRunner{failAt: 5}
	stats, err := NewExporter(runner).Export(context.Background(), buildShop(t))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "connection refused"))
	assert.Equal(t, Stats{Elements: 4}, stats)
	assert.Len(t, runner.calls, 5)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Database", Label(model.Database))
	assert.Equal(t, "Organisation", Label(model.Organisation))
}
