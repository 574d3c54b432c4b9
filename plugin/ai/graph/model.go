// Package graph builds concept graphs from extraction results.
package graph

// Node represents one concept in the graph. Identity is the concept string
// itself; duplicate concept strings collapse to one node.
type Node struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Degree  int     `json:"degree"`
	Size    float64 `json:"size"`
	Color   string  `json:"color"`
	Cluster int     `json:"cluster"`
}

// Edge represents an undirected labeled connection between two concepts.
// The graph is simple: one edge per unordered node pair, last label wins.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// ConceptGraph is the complete graph for one extraction, built fresh per
// request. Nothing survives across requests.
type ConceptGraph struct {
	Nodes   []Node `json:"nodes"`
	Edges   []Edge `json:"edges"`
	Stats   Stats  `json:"stats"`
	BuildMs int64  `json:"build_ms"`
}

// Stats contains graph statistics.
type Stats struct {
	NodeCount    int `json:"node_count"`
	EdgeCount    int `json:"edge_count"`
	ClusterCount int `json:"cluster_count"`
}

// IsEmpty reports whether the graph has no nodes. The caller shows a
// "no concepts found" notice instead of rendering.
func (g *ConceptGraph) IsEmpty() bool {
	return len(g.Nodes) == 0
}

// Palette is the fixed node color palette; communities are colored by
// cluster index mod len(Palette), so collisions appear after six clusters.
var Palette = [6]string{"#FF5733", "#33FF57", "#3357FF", "#F333FF", "#33FFF5", "#FFFF33"}

// DefaultNodeColor is used when community detection does not run.
const DefaultNodeColor = "#97c2fc"

const (
	baseNodeSize  = 20.0
	sizePerDegree = 5.0
)
