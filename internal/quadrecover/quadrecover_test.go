package quadrecover

import (
	"testing"

	"meshforge/internal/geom"
)

func TestCollectDiagonalsIgnoresTriangles(t *testing.T) {
	verts := []geom.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}
	diags := CollectDiagonals(verts, []geom.Face{{0, 1, 2}})
	if len(diags) != 0 {
		t.Fatalf("a triangle has no diagonals, got %d", len(diags))
	}
}

func TestRecoverRebuildsQuadFromTwoTriangles(t *testing.T) {
	verts := []geom.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	quad := []geom.Face{{0, 1, 2, 3}}
	diags := CollectDiagonals(verts, quad)

	tris := geom.Triangulate(quad)
	recovered := Recover(verts, tris, diags)

	if len(recovered) != 1 {
		t.Fatalf("expected the two triangles to recombine into 1 quad, got %d faces", len(recovered))
	}
	if !recovered[0].IsQuad() {
		t.Fatalf("expected a 4-vertex face, got %v", recovered[0])
	}
}

func TestRecoverLeavesUnmatchedTrianglesAlone(t *testing.T) {
	verts := []geom.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	tris := []geom.Face{{0, 1, 2}}
	recovered := Recover(verts, tris, SharedQuadEdges{})
	if len(recovered) != 1 || !recovered[0].IsTriangle() {
		t.Fatalf("expected the lone triangle to pass through unchanged, got %v", recovered)
	}
}

func TestMergeUnionsSets(t *testing.T) {
	a := SharedQuadEdges{geom.EdgeKey{}: true}
	k := geom.MakeEdgeKey(geom.Vec3{0, 0, 0}, geom.Vec3{1, 0, 0})
	b := SharedQuadEdges{k: true}
	merged := a.Merge(b)
	if !merged[k] {
		t.Fatalf("expected merged set to contain b's key")
	}
}
