package postprocess

import (
	"testing"

	"meshforge/internal/combine"
	"meshforge/internal/csg"
	"meshforge/internal/geom"
	"meshforge/internal/noderef"
	"meshforge/internal/snapshot"
	"meshforge/pkg/meshmodel"
)

func TestFinalizeEmptyMeshIsUnsuccessful(t *testing.T) {
	s := snapshot.New()
	reg := noderef.NewRegistry()
	result := combine.Result{Mesh: csg.Mesh{}}

	obj := Finalize(s, reg, result, nil, nil, nil, "id1")
	if obj.IsSuccessful {
		t.Fatalf("expected an empty-face mesh to be unsuccessful")
	}
}

func TestFinalizeWeldsAndResolvesSourceNodes(t *testing.T) {
	s := snapshot.New()
	s.AddPart("p1", snapshot.Attrs{"color": "#ff0000"})
	reg := noderef.NewRegistry()
	srcA := reg.Intern("p1", "n1")
	srcB := reg.Intern("p1", "n1")

	// Two triangles sharing a near-coincident vertex (within the default
	// weld threshold) so weldFixedPoint has something to collapse.
	vertices := []geom.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{1e-9, 0, 0}, {1, 1, 0}, {0, 1, 0},
	}
	faces := []geom.Face{{0, 1, 2}, {3, 4, 5}}
	mesh := csg.Mesh{Vertices: vertices, Faces: faces, SourceNode: []int{srcA, srcA, srcA, srcB, srcB, srcB}}
	result := combine.Result{Mesh: mesh}

	obj := Finalize(s, reg, result, nil, nil, nil, "id1")
	if !obj.IsSuccessful {
		t.Fatalf("expected a non-empty mesh to succeed")
	}
	if len(obj.Vertices) >= len(vertices) {
		t.Fatalf("expected welding to reduce the vertex count from %d, got %d", len(vertices), len(obj.Vertices))
	}
	if len(obj.Triangles) != 2 {
		t.Fatalf("expected 2 triangulated faces, got %d", len(obj.Triangles))
	}
	if len(obj.TriangleColors) != 2 {
		t.Fatalf("expected one color per triangle")
	}
	for _, c := range obj.TriangleColors {
		if c.R != 1 || c.G != 0 || c.B != 0 {
			t.Fatalf("expected the part's #ff0000 color to resolve to pure red, got %+v", c)
		}
	}
	if len(obj.TriangleVertexNormals) != len(obj.Triangles) {
		t.Fatalf("expected one normal triple per triangle")
	}
}

func TestFinalizeDefaultsToWhiteWithoutColorAttr(t *testing.T) {
	s := snapshot.New()
	s.AddPart("p1", snapshot.Attrs{})
	reg := noderef.NewRegistry()
	src := reg.Intern("p1", "n1")

	vertices := []geom.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	faces := []geom.Face{{0, 1, 2}}
	mesh := csg.Mesh{Vertices: vertices, Faces: faces, SourceNode: []int{src, src, src}}
	result := combine.Result{Mesh: mesh}

	obj := Finalize(s, reg, result, nil, nil, nil, "id1")
	if obj.TriangleColors[0] != meshmodel.White {
		t.Fatalf("expected the default color to be white, got %+v", obj.TriangleColors[0])
	}
}

func TestFinalizeCarriesNodesAndEdgesThrough(t *testing.T) {
	s := snapshot.New()
	reg := noderef.NewRegistry()
	src := reg.Intern("p1", "n1")
	vertices := []geom.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	faces := []geom.Face{{0, 1, 2}}
	mesh := csg.Mesh{Vertices: vertices, Faces: faces, SourceNode: []int{src, src, src}}
	result := combine.Result{Mesh: mesh}
	nodes := []meshmodel.NodeRef{{ID: "n1", Position: geom.Vec3{0, 0, 0}}}
	edges := []meshmodel.EdgeRef{{ID: "e1", From: "n1", To: "n2"}}

	obj := Finalize(s, reg, result, nil, nodes, edges, "id1")
	if len(obj.Nodes) != 1 || obj.Nodes[0].ID != "n1" {
		t.Fatalf("expected the supplied node refs to pass through unchanged, got %v", obj.Nodes)
	}
	if len(obj.Edges) != 1 || obj.Edges[0].ID != "e1" {
		t.Fatalf("expected the supplied edge refs to pass through unchanged, got %v", obj.Edges)
	}
}

func TestParseHexColorRejectsMalformedInput(t *testing.T) {
	if _, ok := parseHexColor("not-a-color"); ok {
		t.Fatalf("expected a malformed color string to fail to parse")
	}
	c, ok := parseHexColor("#00ff80")
	if !ok {
		t.Fatalf("expected a well-formed hex color to parse")
	}
	if c.R != 0 || c.G != 1 {
		t.Fatalf("expected R=0 G=1 for #00ff80, got %+v", c)
	}
}
