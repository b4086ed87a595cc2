package snapshot

import "testing"

func TestBuildIndexAttributesNodesViaEdges(t *testing.T) {
	s := New()
	s.AddNode("n1", Attrs{"x": "0", "y": "0", "z": "0", "radius": "1"})
	s.AddNode("n2", Attrs{"x": "1", "y": "0", "z": "0", "radius": "1"})
	s.AddEdge("e1", Attrs{"from": "n1", "to": "n2", "partId": "p1"})

	idx := BuildIndex(s)
	nodes := idx.NodesOf("p1")
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes attributed to p1, got %d", len(nodes))
	}
	edges := idx.EdgesOf("p1")
	if len(edges) != 1 || edges[0] != "e1" {
		t.Fatalf("expected edge e1 attributed to p1, got %v", edges)
	}
}

func TestBuildIndexAttributesLoneNodeViaPartIDAttr(t *testing.T) {
	s := New()
	s.AddNode("n1", Attrs{"x": "0", "y": "0", "z": "0", "radius": "1", "partId": "p1"})

	idx := BuildIndex(s)
	nodes := idx.NodesOf("p1")
	if len(nodes) != 1 || nodes[0] != "n1" {
		t.Fatalf("expected the lone node to be attributed to its part via partId, got %v", nodes)
	}
}

func TestBuildIndexEdgeAttributionTakesPriorityOverNodeAttr(t *testing.T) {
	s := New()
	s.AddNode("n1", Attrs{"partId": "wrong"})
	s.AddNode("n2", Attrs{})
	s.AddEdge("e1", Attrs{"from": "n1", "to": "n2", "partId": "p1"})

	idx := BuildIndex(s)
	if len(idx.NodesOf("wrong")) != 0 {
		t.Fatalf("expected a node claimed by an edge not to also register under its stale partId attr")
	}
	if len(idx.NodesOf("p1")) != 2 {
		t.Fatalf("expected both edge endpoints attributed to p1")
	}
}
