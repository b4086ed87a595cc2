package snapshot

// Index holds the part-keyed adjacency derived from the flat snapshot:
// which nodes and edges belong to each part. Built once per generate call
// (spec §4.1, "Snapshot Indexing").
type Index struct {
	PartNodes map[string]map[string]bool
	PartEdges map[string]map[string]bool
}

// BuildIndex scans every node and edge in s and groups them by owning part.
// A node is ordinarily attributed to a part through the edges that
// reference it, which is why edges are indexed first; a part consisting of
// a single node (a lone sphere, with no edges at all) carries no edge to
// attribute it through, so any node left unclaimed after the edge pass
// falls back to its own "partId" attribute.
func BuildIndex(s *Snapshot) *Index {
	idx := &Index{
		PartNodes: make(map[string]map[string]bool),
		PartEdges: make(map[string]map[string]bool),
	}
	claimed := make(map[string]bool, len(s.Nodes))
	for _, e := range s.Edges {
		if e.PartID == "" {
			continue
		}
		addEdge(idx, e.PartID, e.ID)
		if e.From != "" {
			addNode(idx, e.PartID, e.From)
			claimed[e.From] = true
		}
		if e.To != "" {
			addNode(idx, e.PartID, e.To)
			claimed[e.To] = true
		}
	}
	for id, n := range s.Nodes {
		if claimed[id] {
			continue
		}
		if partID := n.Attrs.ReadString("partId", ""); partID != "" {
			addNode(idx, partID, id)
		}
	}
	return idx
}

func addEdge(idx *Index, partID, edgeID string) {
	set, ok := idx.PartEdges[partID]
	if !ok {
		set = make(map[string]bool)
		idx.PartEdges[partID] = set
	}
	set[edgeID] = true
}

func addNode(idx *Index, partID, nodeID string) {
	set, ok := idx.PartNodes[partID]
	if !ok {
		set = make(map[string]bool)
		idx.PartNodes[partID] = set
	}
	set[nodeID] = true
}

// NodesOf returns the node ids belonging to a part.
func (idx *Index) NodesOf(partID string) []string {
	set := idx.PartNodes[partID]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// EdgesOf returns the edge ids belonging to a part.
func (idx *Index) EdgesOf(partID string) []string {
	set := idx.PartEdges[partID]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
