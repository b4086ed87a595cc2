package stroke

import (
	"errors"
	"sort"

	"github.com/katalvlaran/lvlath/graph"
)

// ErrEmptySkeleton is returned when a part has no nodes to sweep.
var ErrEmptySkeleton = errors.New("stroke: empty skeleton")

// ErrBranchingSkeleton is returned when the node/edge graph is not a simple
// path or ring (a node of degree >2, or nodes not all connected), which this sweep
// implementation does not support.
var ErrBranchingSkeleton = errors.New("stroke: branching skeletons are not supported")

// orderChain walks nodes/edges into a single ordered chain, closed=true if
// it is a ring. Node order (for tie-breaking the start node and traversal)
// follows the order nodes were added.
func orderChain(nodes []NodeInput, edges []EdgeInput) (order []string, closed bool, err error) {
	if len(nodes) == 0 {
		return nil, false, ErrEmptySkeleton
	}
	if len(nodes) == 1 {
		return []string{nodes[0].ID}, false, nil
	}

	docOrder := make(map[string]int, len(nodes))
	for i, n := range nodes {
		docOrder[n.ID] = i
	}

	g := graph.NewGraph(false, false)
	for _, n := range nodes {
		g.AddVertex(&graph.Vertex{ID: n.ID, Metadata: map[string]interface{}{}})
	}
	for _, e := range edges {
		if e.From == "" || e.To == "" {
			continue
		}
		g.AddEdge(e.From, e.To, 0)
	}

	var endpoints []string
	isRing := true
	for _, n := range nodes {
		d := len(g.Neighbors(n.ID))
		if d > 2 {
			return nil, false, ErrBranchingSkeleton
		}
		if d != 2 {
			isRing = false
		}
		if d == 1 {
			endpoints = append(endpoints, n.ID)
		}
	}

	start := nodes[0].ID
	if !isRing && len(endpoints) > 0 {
		sort.Slice(endpoints, func(i, j int) bool { return docOrder[endpoints[i]] < docOrder[endpoints[j]] })
		start = endpoints[0]
	}

	visited := map[string]bool{start: true}
	order = []string{start}
	cur := start
	for {
		nbrs := g.Neighbors(cur)
		sort.Slice(nbrs, func(i, j int) bool { return docOrder[nbrs[i].ID] < docOrder[nbrs[j].ID] })
		advanced := false
		for _, nb := range nbrs {
			if !visited[nb.ID] {
				visited[nb.ID] = true
				order = append(order, nb.ID)
				cur = nb.ID
				advanced = true
				break
			}
		}
		if !advanced {
			break
		}
	}
	if len(order) != len(nodes) {
		return nil, false, ErrBranchingSkeleton
	}
	return order, isRing, nil
}
