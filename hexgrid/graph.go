package hexgrid

import (
	"math"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// Graph exports the passable part of the grid as a weighted undirected
// graph. Node ids are cell ids; barrier cells are omitted.
func (g *Grid) Graph() *simple.WeightedUndirectedGraph {
	wg := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for _, c := range g.cells {
		if !c.Barrier {
			wg.AddNode(simple.Node(c.ID))
		}
	}
	w := g.EdgeCost()
	for _, c := range g.cells {
		if c.Barrier {
			continue
		}
		for _, id := range c.Neighbors {
			if id <= c.ID || g.cells[id].Barrier {
				continue
			}
			wg.SetWeightedEdge(wg.NewWeightedEdge(simple.Node(c.ID), simple.Node(id), w))
		}
	}
	return wg
}

// ShortestCost runs Dijkstra over the exported graph and returns the cost
// and hop count of a cheapest route between two cells. ok is false when
// either cell is a barrier or the target is unreachable.
func (g *Grid) ShortestCost(from, to int) (cost float64, hops int, ok bool) {
	a, b := g.Cell(from), g.Cell(to)
	if a == nil || b == nil || a.Barrier || b.Barrier {
		return 0, 0, false
	}
	wg := g.Graph()
	sp := path.DijkstraFrom(simple.Node(from), wg)
	nodes, weight := sp.To(int64(to))
	if len(nodes) == 0 {
		return 0, 0, false
	}
	return weight, len(nodes) - 1, true
}
