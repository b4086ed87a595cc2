package stroke

import (
	"math"
	"testing"

	"meshforge/internal/geom"
)

func isUnit(t *testing.T, v geom.Vec3, label string) {
	t.Helper()
	if l := v.Len(); l < 0.999 || l > 1.001 {
		t.Fatalf("%s: expected a unit vector, got length %v", label, l)
	}
}

func isOrthogonal(t *testing.T, a, b geom.Vec3, label string) {
	t.Helper()
	if d := math.Abs(a.Dot(b)); d > 1e-6 {
		t.Fatalf("%s: expected orthogonal vectors, got dot product %v", label, d)
	}
}

func TestBuildFramesStraightChainIsOrthonormal(t *testing.T) {
	positions := []geom.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 0, 2}, {0, 0, 3}}
	frames := buildFrames(positions, false, geom.Vec3{0, 1, 0})
	for i, fr := range frames {
		isUnit(t, fr.tangent, "tangent")
		isUnit(t, fr.right, "right")
		isUnit(t, fr.up, "up")
		isOrthogonal(t, fr.tangent, fr.right, "tangent/right")
		isOrthogonal(t, fr.tangent, fr.up, "tangent/up")
		isOrthogonal(t, fr.right, fr.up, "right/up")
		_ = i
	}
}

func TestBuildFramesStraightChainHasNoTwist(t *testing.T) {
	positions := []geom.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 0, 2}}
	frames := buildFrames(positions, false, geom.Vec3{0, 1, 0})
	// A perfectly straight run must transport the same basis forward
	// unchanged (rotation-minimizing, not a per-segment Frenet frame).
	if frames[0].right != frames[1].right || frames[1].right != frames[2].right {
		t.Fatalf("expected a straight chain's right vector to stay constant, got %v, %v, %v",
			frames[0].right, frames[1].right, frames[2].right)
	}
}

func TestBuildFramesBendPreservesOrthonormality(t *testing.T) {
	positions := []geom.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}
	frames := buildFrames(positions, false, geom.Vec3{0, 1, 0})
	for _, fr := range frames {
		isUnit(t, fr.right, "right")
		isUnit(t, fr.up, "up")
		isOrthogonal(t, fr.tangent, fr.right, "tangent/right")
		isOrthogonal(t, fr.tangent, fr.up, "tangent/up")
	}
}

func TestBuildFramesSingleNode(t *testing.T) {
	frames := buildFrames([]geom.Vec3{{1, 2, 3}}, false, geom.Vec3{0, 1, 0})
	if len(frames) != 1 {
		t.Fatalf("expected exactly one frame for a single-node chain, got %d", len(frames))
	}
	isUnit(t, frames[0].tangent, "tangent")
}

func TestTransport180DegreeReversalFlipsBasis(t *testing.T) {
	prev := frame{tangent: geom.Vec3{0, 0, 1}, right: geom.Vec3{1, 0, 0}, up: geom.Vec3{0, 1, 0}}
	next := transport(prev, geom.Vec3{0, 0, -1})
	if next.right != prev.right.Mul(-1) {
		t.Fatalf("expected a 180-degree reversal to flip right, got %v", next.right)
	}
	if next.up != prev.up.Mul(-1) {
		t.Fatalf("expected a 180-degree reversal to flip up, got %v", next.up)
	}
}
