package visjs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphweave/graphweave/plugin/ai/extract"
	"github.com/graphweave/graphweave/plugin/ai/graph"
)

func buildGraph(t *testing.T) *graph.ConceptGraph {
	t.Helper()
	return graph.NewBuilder().Build(&extract.Result{
		Concepts: []string{"Neural Network", "Backpropagation", "Gradient"},
		Relationships: []extract.Relation{
			{Source: "Neural Network", Target: "Backpropagation", Relationship: "trained by"},
			{Source: "Backpropagation", Target: "Gradient", Relationship: "computes"},
		},
	})
}

func TestRenderContainsAllLabels(t *testing.T) {
	r := NewRenderer()
	cg := buildGraph(t)

	html, err := r.Render(cg)
	require.NoError(t, err)
	require.NotEmpty(t, html)

	for _, node := range cg.Nodes {
		assert.Contains(t, html, node.Label)
	}
	for _, edge := range cg.Edges {
		assert.Contains(t, html, edge.Label)
	}
}

func TestRenderIsSelfContained(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render(buildGraph(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "vis-network.min.js")
	assert.Contains(t, html, "new vis.Network")
	// The fixed physics configuration must survive into the markup.
	assert.Contains(t, html, `"gravitationalConstant": -4000`)
	assert.Contains(t, html, `"iterations": 1000`)
	assert.Contains(t, html, `"shape": "dot"`)
}

func TestRenderUniqueContainerIDs(t *testing.T) {
	r := NewRenderer()
	cg := buildGraph(t)

	first, err := r.Render(cg)
	require.NoError(t, err)
	second, err := r.Render(cg)
	require.NoError(t, err)

	assert.NotEqual(t, containerID(t, first), containerID(t, second))
}

func TestRenderAppliesNodeAttributes(t *testing.T) {
	r := NewRenderer()
	cg := buildGraph(t)

	html, err := r.Render(cg)
	require.NoError(t, err)

	for _, node := range cg.Nodes {
		assert.Contains(t, html, node.Color)
	}
	// Degree-1 endpoints render at size 25, the hub at 30.
	assert.Contains(t, html, `"size":25`)
	assert.Contains(t, html, `"size":30`)
}

func containerID(t *testing.T, html string) string {
	t.Helper()
	start := strings.Index(html, `<div id="`)
	require.GreaterOrEqual(t, start, 0)
	rest := html[start+len(`<div id="`):]
	end := strings.Index(rest, `"`)
	require.Greater(t, end, 0)
	return rest[:end]
}
