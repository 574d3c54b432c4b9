package graph

import (
	"sort"
	"time"

	gonumgraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/graphweave/graphweave/plugin/ai/extract"
)

// Builder converts extraction results into concept graphs with derived
// visual attributes.
type Builder struct{}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build constructs the concept graph for one extraction result.
//
// Nodes come from the unique concepts in first-seen order. Relationships
// with both endpoints non-empty become undirected simple edges; an endpoint
// the model never declared as a concept is still created implicitly, so a
// sloppy model response degrades to extra nodes rather than a failed run.
// Duplicate node pairs collapse to one edge with the last label winning.
func (b *Builder) Build(result *extract.Result) *ConceptGraph {
	start := time.Now()
	cg := &ConceptGraph{}

	index := make(map[string]int)
	addNode := func(id string) int {
		if i, ok := index[id]; ok {
			return i
		}
		i := len(cg.Nodes)
		index[id] = i
		cg.Nodes = append(cg.Nodes, Node{ID: id, Label: id})
		return i
	}

	for _, concept := range result.Concepts {
		addNode(concept)
	}

	edgeIndex := make(map[[2]string]int)
	for _, rel := range result.Relationships {
		if rel.Source == "" || rel.Target == "" {
			continue
		}
		addNode(rel.Source)
		addNode(rel.Target)

		key := pairKey(rel.Source, rel.Target)
		if i, ok := edgeIndex[key]; ok {
			cg.Edges[i].Label = rel.Relationship
			continue
		}
		edgeIndex[key] = len(cg.Edges)
		cg.Edges = append(cg.Edges, Edge{
			Source: rel.Source,
			Target: rel.Target,
			Label:  rel.Relationship,
		})
	}

	b.computeDegrees(cg, index)
	clusterCount := b.assignCommunities(cg, index)

	for i := range cg.Nodes {
		cg.Nodes[i].Size = baseNodeSize + float64(cg.Nodes[i].Degree)*sizePerDegree
	}

	cg.Stats = Stats{
		NodeCount:    len(cg.Nodes),
		EdgeCount:    len(cg.Edges),
		ClusterCount: clusterCount,
	}
	cg.BuildMs = time.Since(start).Milliseconds()
	return cg
}

// computeDegrees counts distinct incident edges per node. A self-loop
// counts once.
func (b *Builder) computeDegrees(cg *ConceptGraph, index map[string]int) {
	for _, edge := range cg.Edges {
		cg.Nodes[index[edge.Source]].Degree++
		if edge.Source != edge.Target {
			cg.Nodes[index[edge.Target]].Degree++
		}
	}
}

// assignCommunities partitions nodes by greedy modularity maximization and
// colors them by cluster. Modularity is undefined without edges, so an
// edgeless graph gets a single default community and the default color
// instead; self-loops carry no community signal and are excluded.
func (b *Builder) assignCommunities(cg *ConceptGraph, index map[string]int) int {
	if len(cg.Nodes) == 0 {
		return 0
	}

	g := simple.NewUndirectedGraph()
	for i := range cg.Nodes {
		g.AddNode(simple.Node(i))
	}
	edgeCount := 0
	for _, edge := range cg.Edges {
		from, to := index[edge.Source], index[edge.Target]
		if from == to {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
		edgeCount++
	}

	if edgeCount == 0 {
		for i := range cg.Nodes {
			cg.Nodes[i].Cluster = 0
			cg.Nodes[i].Color = DefaultNodeColor
		}
		return 1
	}

	communities := community.Modularize(g, 1.0, nil).Communities()

	// Order clusters by their earliest member so palette assignment does
	// not depend on map iteration inside the partitioner.
	sort.Slice(communities, func(i, j int) bool {
		return minID(communities[i]) < minID(communities[j])
	})

	for cluster, members := range communities {
		color := Palette[cluster%len(Palette)]
		for _, member := range members {
			node := &cg.Nodes[member.ID()]
			node.Cluster = cluster
			node.Color = color
		}
	}
	return len(communities)
}

// pairKey returns the canonical unordered key for a node pair.
func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

func minID(nodes []gonumgraph.Node) int64 {
	min := nodes[0].ID()
	for _, n := range nodes[1:] {
		if n.ID() < min {
			min = n.ID()
		}
	}
	return min
}
