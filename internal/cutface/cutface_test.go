package cutface

import (
	"testing"

	"meshforge/internal/snapshot"
)

func TestPresetKnownNames(t *testing.T) {
	for _, name := range []string{"Square", "Triangle", "Hexagon", "Circle"} {
		poly, ok := Preset(name)
		if !ok {
			t.Fatalf("expected preset %q to exist", name)
		}
		if len(poly) < 3 {
			t.Fatalf("preset %q should have at least 3 points, got %d", name, len(poly))
		}
	}
}

func TestPresetUnknownName(t *testing.T) {
	if _, ok := Preset("NotARealShape"); ok {
		t.Fatalf("expected an unknown preset name to fail")
	}
}

func TestChamferDoublesVertexCount(t *testing.T) {
	poly, _ := Preset("Square")
	chamfered := Chamfer(poly)
	if len(chamfered) != len(poly)*2 {
		t.Fatalf("expected chamfer to double the vertex count, got %d from %d", len(chamfered), len(poly))
	}
}

func TestChamferPreservesEndpointBias(t *testing.T) {
	poly := Polygon{{X: 0, Y: 0, Radius: 1}, {X: 10, Y: 0, Radius: 1}}
	out := Chamfer(poly)
	if out[0].X != 2 {
		t.Fatalf("expected the first chamfer point to sit 20%% along the edge (x=2), got %v", out[0].X)
	}
	if out[1].X != 8 {
		t.Fatalf("expected the second chamfer point to sit 80%% along the edge (x=8), got %v", out[1].X)
	}
}

func TestExtractWalksChainInDocumentOrder(t *testing.T) {
	s := snapshot.New()
	refPart := "123e4567-e89b-12d3-a456-426614174000"
	s.AddPart(refPart, snapshot.Attrs{})
	s.AddNode("n1", snapshot.Attrs{"x": "0", "y": "0", "radius": "1"})
	s.AddNode("n2", snapshot.Attrs{"x": "1", "y": "0", "radius": "1"})
	s.AddNode("n3", snapshot.Attrs{"x": "1", "y": "1", "radius": "1"})
	s.AddEdge("e1", snapshot.Attrs{"from": "n1", "to": "n2", "partId": refPart})
	s.AddEdge("e2", snapshot.Attrs{"from": "n2", "to": "n3", "partId": refPart})

	idx := snapshot.BuildIndex(s)
	poly, ok := Extract(s, idx, refPart, false)
	if !ok {
		t.Fatalf("expected extraction to succeed for a 3-node chain")
	}
	if len(poly) != 3 {
		t.Fatalf("expected a 3-point polygon, got %d", len(poly))
	}
	if poly[0].NodeID != "n1" {
		t.Fatalf("expected the chain to start at an endpoint (n1), got %s", poly[0].NodeID)
	}
}

func TestExtractFallsBackToPresetForUnknownReference(t *testing.T) {
	s := snapshot.New()
	idx := snapshot.BuildIndex(s)
	poly, ok := Extract(s, idx, "Circle", false)
	if !ok {
		t.Fatalf("expected a preset-name cutFace attribute to resolve")
	}
	if len(poly) != 16 {
		t.Fatalf("expected the Circle preset's 16 points, got %d", len(poly))
	}
}

func TestExtractAppliesChamferToWalkedPolygon(t *testing.T) {
	s := snapshot.New()
	refPart := "223e4567-e89b-12d3-a456-426614174000"
	s.AddPart(refPart, snapshot.Attrs{})
	s.AddNode("n1", snapshot.Attrs{"x": "0", "y": "0", "radius": "1"})
	s.AddNode("n2", snapshot.Attrs{"x": "1", "y": "0", "radius": "1"})
	s.AddNode("n3", snapshot.Attrs{"x": "1", "y": "1", "radius": "1"})
	s.AddEdge("e1", snapshot.Attrs{"from": "n1", "to": "n2", "partId": refPart})
	s.AddEdge("e2", snapshot.Attrs{"from": "n2", "to": "n3", "partId": refPart})

	idx := snapshot.BuildIndex(s)
	plain, _ := Extract(s, idx, refPart, false)
	chamfered, _ := Extract(s, idx, refPart, true)
	if len(chamfered) != len(plain)*2 {
		t.Fatalf("expected chamfered extraction to double the point count, got %d from %d", len(chamfered), len(plain))
	}
}
