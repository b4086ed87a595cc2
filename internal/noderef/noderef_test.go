package noderef

import "testing"

func TestInternReturnsStableIDs(t *testing.T) {
	r := NewRegistry()
	a := r.Intern("partA", "node1")
	b := r.Intern("partA", "node1")
	if a != b {
		t.Fatalf("interning the same (part,node) twice should return the same id, got %d and %d", a, b)
	}
}

func TestInternAssignsDistinctIDs(t *testing.T) {
	r := NewRegistry()
	a := r.Intern("partA", "node1")
	b := r.Intern("partA", "node2")
	if a == b {
		t.Fatalf("distinct (part,node) pairs must get distinct ids")
	}
}

func TestLookupRoundTrips(t *testing.T) {
	r := NewRegistry()
	id := r.Intern("partA", "node1")
	ref := r.Lookup(id)
	if ref.PartID != "partA" || ref.NodeID != "node1" {
		t.Fatalf("Lookup(%d) = %+v, want partA/node1", id, ref)
	}
}

func TestLookupOutOfRangeReturnsZeroValue(t *testing.T) {
	r := NewRegistry()
	if ref := r.Lookup(-1); ref != (Ref{}) {
		t.Fatalf("Lookup(-1) should return the zero Ref, got %+v", ref)
	}
	if ref := r.Lookup(99); ref != (Ref{}) {
		t.Fatalf("Lookup of an unassigned id should return the zero Ref, got %+v", ref)
	}
}
