// Package visjs renders concept graphs as self-contained interactive HTML
// backed by the vis-network layout and physics engine.
package visjs

import (
	"bytes"
	"encoding/json"
	"html/template"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"

	"github.com/graphweave/graphweave/plugin/ai/graph"
)

// visNode is the vis-network node input format.
type visNode struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Title string   `json:"title"`
	Size  float64  `json:"size"`
	Color string   `json:"color"`
	Font  nodeFont `json:"font"`
}

type nodeFont struct {
	Color       string `json:"color"`
	Size        int    `json:"size"`
	Face        string `json:"face"`
	Background  string `json:"background"`
	StrokeWidth int    `json:"strokeWidth"`
	StrokeColor string `json:"strokeColor"`
}

// visEdge is the vis-network edge input format.
type visEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
	Title string `json:"title"`
}

var defaultFont = nodeFont{
	Color:       "white",
	Size:        16,
	Face:        "Verdana",
	Background:  "rgba(0,0,0,0.7)",
	StrokeWidth: 2,
	StrokeColor: "#000000",
}

// Renderer translates concept graphs into vis-network markup. It owns no
// state and performs no I/O; layout and physics belong to the engine.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{tmpl: template.Must(template.New("visjs").Parse(pageTemplate))}
}

// Render produces a self-contained HTML document embedding every node and
// edge of the graph with the fixed visual and physics configuration.
func (r *Renderer) Render(cg *graph.ConceptGraph) (string, error) {
	nodes := make([]visNode, 0, len(cg.Nodes))
	for _, node := range cg.Nodes {
		nodes = append(nodes, visNode{
			ID:    node.ID,
			Label: node.Label,
			Title: node.Label,
			Size:  node.Size,
			Color: node.Color,
			Font:  defaultFont,
		})
	}

	edges := make([]visEdge, 0, len(cg.Edges))
	for _, edge := range cg.Edges {
		edges = append(edges, visEdge{
			From:  edge.Source,
			To:    edge.Target,
			Label: edge.Label,
			Title: edge.Label,
		})
	}

	nodesJSON, err := json.Marshal(nodes)
	if err != nil {
		return "", errors.Wrap(err, "marshal nodes")
	}
	edgesJSON, err := json.Marshal(edges)
	if err != nil {
		return "", errors.Wrap(err, "marshal edges")
	}

	data := struct {
		ContainerID string
		Nodes       template.JS
		Edges       template.JS
		Options     template.JS
	}{
		// Unique per render so multiple embeds on one host page never
		// fight over the same element.
		ContainerID: "graphweave-" + shortuuid.New(),
		Nodes:       template.JS(nodesJSON),
		Edges:       template.JS(edgesJSON),
		Options:     template.JS(networkOptions),
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, "execute template")
	}
	return buf.String(), nil
}
