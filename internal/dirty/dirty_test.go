package dirty

import (
	"testing"

	"github.com/google/uuid"

	"meshforge/internal/snapshot"
)

func buildTree() *snapshot.Snapshot {
	s := snapshot.New()
	s.AddPart("partA", snapshot.Attrs{})
	s.AddPart("partB", snapshot.Attrs{"__dirty": "true"})
	s.AddComponent("leafA", snapshot.Attrs{"linkDataType": "partId", "linkData": "partA"})
	s.AddComponent("leafB", snapshot.Attrs{"linkDataType": "partId", "linkData": "partB"})
	s.AddComponent("root", snapshot.Attrs{"children": "leafA,leafB"})
	s.RootComponent = "root"
	return s
}

func TestIsPartDirtyDirectFlag(t *testing.T) {
	s := buildTree()
	a := New(s)
	if a.IsPartDirty("partA") {
		t.Fatalf("expected a clean part to report clean")
	}
	if !a.IsPartDirty("partB") {
		t.Fatalf("expected an explicitly dirty part to report dirty")
	}
}

func TestIsPartDirtyPropagatesThroughCutFace(t *testing.T) {
	s := buildTree()
	s.Parts["partA"].Attrs["cutFace"] = "partB" // not a UUID: no propagation
	a := New(s)
	if a.IsPartDirty("partA") {
		t.Fatalf("a non-UUID cutFace reference must not propagate dirtiness")
	}

	s2 := buildTree()
	dirtyRef := uuid.New().String()
	s2.AddPart(dirtyRef, snapshot.Attrs{"__dirty": "true"})
	s2.Parts["partA"].Attrs["cutFace"] = dirtyRef
	a2 := New(s2)
	if !a2.IsPartDirty("partA") {
		t.Fatalf("expected dirtiness to propagate through a UUID cutFace reference")
	}
}

func TestIsComponentDirtyPropagatesFromLeafPart(t *testing.T) {
	s := buildTree()
	a := New(s)
	if a.IsComponentDirty("leafA") {
		t.Fatalf("expected a leaf over a clean part to report clean")
	}
	if !a.IsComponentDirty("leafB") {
		t.Fatalf("expected a leaf over a dirty part to report dirty")
	}
	if !a.IsComponentDirty("root") {
		t.Fatalf("expected root to be dirty because one of its children is dirty")
	}
}

func TestDirtyComponentSetAlwaysIncludesVirtualRoot(t *testing.T) {
	s := buildTree()
	a := New(s)
	set := a.DirtyComponentSet()
	if !set[uuid.Nil.String()] {
		t.Fatalf("expected the virtual root (nil UUID) to always be in the dirty set")
	}
	if !set["root"] || !set["leafB"] {
		t.Fatalf("expected root and leafB to be in the dirty set, got %v", set)
	}
	if set["leafA"] {
		t.Fatalf("expected leafA (over a clean part) not to be in the dirty set")
	}
}

func TestDirtyPartSetTracksOnlyQueriedParts(t *testing.T) {
	s := buildTree()
	a := New(s)
	a.DirtyComponentSet()
	parts := a.DirtyPartSet()
	if !parts["partB"] {
		t.Fatalf("expected partB to be recorded dirty")
	}
	if parts["partA"] {
		t.Fatalf("expected partA not to be recorded dirty")
	}
}
