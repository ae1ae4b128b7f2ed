package analysis

import (
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// depGraph holds the dependency edges as a gonum directed graph with
// source -> target edges ("source depends on target").
type depGraph struct {
	g        *simple.DirectedGraph
	idToNode map[string]int64
}

func newDepGraph(deps []*entities.Dependency) *depGraph {
	dg := &depGraph{
		g:        simple.NewDirectedGraph(),
		idToNode: make(map[string]int64),
	}
	for _, d := range deps {
		// A step depending on itself adds no depth, and simple graphs
		// reject self edges.
		if d.SourceStepID == d.TargetStepID {
			continue
		}
		src := dg.node(d.SourceStepID)
		dst := dg.node(d.TargetStepID)
		// SetEdge replaces an existing edge, so duplicates count once
		dg.g.SetEdge(dg.g.NewEdge(src, dst))
	}
	return dg
}

func (dg *depGraph) node(id string) graph.Node {
	if nid, ok := dg.idToNode[id]; ok {
		return dg.g.Node(nid)
	}
	n := dg.g.NewNode()
	dg.g.AddNode(n)
	dg.idToNode[id] = n.ID()
	return n
}

// MaxDependencyDepth returns the number of edges on the longest simple
// dependency chain. Acyclic graphs are solved over a topological order.
// With cycles, each source node starts a fresh walk; within a walk a node
// is never re-entered while it is on the current path, so cycles terminate
// and sibling branches of a diamond are both explored.
func MaxDependencyDepth(deps []*entities.Dependency) int {
	if len(deps) == 0 {
		return 0
	}
	dg := newDepGraph(deps)

	sorted, err := topo.Sort(dg.g)
	if err == nil {
		return dg.longestInOrder(sorted)
	}

	onPath := make(map[int64]bool, len(dg.idToNode))
	maxDepth := 0
	nodes := dg.g.Nodes()
	for nodes.Next() {
		start := nodes.Node().ID()
		if dg.g.From(start).Len() == 0 {
			continue
		}
		if d := dg.longestFrom(start, onPath); d > maxDepth {
			maxDepth = d
		}
	}
	return maxDepth
}

// longestInOrder walks a topological order backwards: every edge u -> v
// has u before v, so each node's successors are final when it is reached.
func (dg *depGraph) longestInOrder(sorted []graph.Node) int {
	depth := make(map[int64]int, len(sorted))
	maxDepth := 0
	for i := len(sorted) - 1; i >= 0; i-- {
		u := sorted[i].ID()
		best := 0
		next := dg.g.From(u)
		for next.Next() {
			if d := 1 + depth[next.Node().ID()]; d > best {
				best = d
			}
		}
		depth[u] = best
		if best > maxDepth {
			maxDepth = best
		}
	}
	return maxDepth
}

func (dg *depGraph) longestFrom(node int64, onPath map[int64]bool) int {
	onPath[node] = true
	best := 0
	next := dg.g.From(node)
	for next.Next() {
		v := next.Node().ID()
		if onPath[v] {
			continue
		}
		if d := 1 + dg.longestFrom(v, onPath); d > best {
			best = d
		}
	}
	onPath[node] = false
	return best
}
