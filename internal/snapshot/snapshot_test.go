package snapshot

import "testing"

func TestAttrsReadBool(t *testing.T) {
	a := Attrs{"on": "true", "off": "false", "garbage": "yes"}
	if !a.ReadBool("on") {
		t.Fatalf("expected \"true\" to read as true")
	}
	if a.ReadBool("off") {
		t.Fatalf("expected \"false\" to read as false")
	}
	if a.ReadBool("garbage") {
		t.Fatalf("expected a non-\"true\" value to read as false")
	}
	if a.ReadBool("missing") {
		t.Fatalf("expected a missing key to read as false")
	}
}

func TestAttrsReadFloat(t *testing.T) {
	a := Attrs{"x": "3.5", "bad": "nope"}
	if v := a.ReadFloat("x", 0); v != 3.5 {
		t.Fatalf("expected 3.5, got %v", v)
	}
	if v := a.ReadFloat("missing", 7); v != 7 {
		t.Fatalf("expected the default for a missing key, got %v", v)
	}
	if v := a.ReadFloat("bad", 9); v != 9 {
		t.Fatalf("expected the default for an unparsable value, got %v", v)
	}
}

func TestAttrsReadString(t *testing.T) {
	a := Attrs{"name": "hex", "empty": ""}
	if v := a.ReadString("name", "fallback"); v != "hex" {
		t.Fatalf("expected 'hex', got %q", v)
	}
	if v := a.ReadString("empty", "fallback"); v != "fallback" {
		t.Fatalf("expected an empty-string value to fall back to the default, got %q", v)
	}
	if v := a.ReadString("missing", "fallback"); v != "fallback" {
		t.Fatalf("expected the default for a missing key, got %q", v)
	}
}

func TestAttrsReadUUID(t *testing.T) {
	a := Attrs{
		"ref":   "123e4567-e89b-12d3-a456-426614174000",
		"named": "Circle",
	}
	id, ok := a.ReadUUID("ref")
	if !ok || id.String() != "123e4567-e89b-12d3-a456-426614174000" {
		t.Fatalf("expected a valid UUID to parse, got %v ok=%v", id, ok)
	}
	if _, ok := a.ReadUUID("named"); ok {
		t.Fatalf("expected a preset name to fail UUID parsing")
	}
	if _, ok := a.ReadUUID("missing"); ok {
		t.Fatalf("expected a missing key to report not-ok")
	}
}

func TestNodePositionAppliesCanvasOrigin(t *testing.T) {
	s := New()
	s.Canvas = Canvas{OriginX: 10, OriginY: 20, OriginZ: 30}
	n := s.AddNode("n1", Attrs{})
	n.X, n.Y, n.Z = 1, 2, 3

	x, y, z := s.NodePosition(n)
	if x != -9 {
		t.Fatalf("expected x = 1-10 = -9, got %v", x)
	}
	if y != 18 {
		t.Fatalf("expected y = 20-2 = 18, got %v", y)
	}
	if z != 27 {
		t.Fatalf("expected z = 30-3 = 27, got %v", z)
	}
}

func TestAddNodeTracksDocumentOrder(t *testing.T) {
	s := New()
	s.AddNode("b", Attrs{})
	s.AddNode("a", Attrs{})
	if len(s.NodeOrder) != 2 || s.NodeOrder[0] != "b" || s.NodeOrder[1] != "a" {
		t.Fatalf("expected NodeOrder to record insertion order [b a], got %v", s.NodeOrder)
	}
}

func TestAddEdgeParsesFromToPartID(t *testing.T) {
	s := New()
	e := s.AddEdge("e1", Attrs{"from": "n1", "to": "n2", "partId": "p1"})
	if e.From != "n1" || e.To != "n2" || e.PartID != "p1" {
		t.Fatalf("expected edge fields to be parsed from attrs, got %+v", e)
	}
}

func TestAddComponentParsesChildrenCSV(t *testing.T) {
	s := New()
	c := s.AddComponent("root", Attrs{"children": "a, b ,c"})
	if len(c.Children) != 3 || c.Children[0] != "a" || c.Children[1] != "b" || c.Children[2] != "c" {
		t.Fatalf("expected trimmed children [a b c], got %v", c.Children)
	}
}

func TestComponentIsLeafAndLinkedPartID(t *testing.T) {
	s := New()
	leaf := s.AddComponent("leaf", Attrs{"linkDataType": "partId", "linkData": "p1"})
	branch := s.AddComponent("branch", Attrs{"children": "leaf"})
	if !leaf.IsLeaf() || leaf.LinkedPartID() != "p1" {
		t.Fatalf("expected leaf to report IsLeaf and resolve to p1")
	}
	if branch.IsLeaf() || branch.LinkedPartID() != "" {
		t.Fatalf("expected a branch component to report not-leaf with no linked part")
	}
}

func TestComponentModeResolvesInverseFlag(t *testing.T) {
	s := New()
	normal := s.AddComponent("c1", Attrs{})
	inverted := s.AddComponent("c2", Attrs{"inverse": "true"})
	explicit := s.AddComponent("c3", Attrs{"combineMode": "Inversion"})
	uncombined := s.AddComponent("c4", Attrs{"combineMode": "Uncombined"})

	if normal.Mode() != CombineNormal {
		t.Fatalf("expected a bare component to default to CombineNormal")
	}
	if inverted.Mode() != CombineInversion {
		t.Fatalf("expected inverse=true to fold into CombineInversion")
	}
	if explicit.Mode() != CombineInversion {
		t.Fatalf("expected an explicit combineMode=Inversion to resolve to CombineInversion")
	}
	if uncombined.Mode() != CombineUncombined {
		t.Fatalf("expected combineMode=Uncombined to resolve to CombineUncombined")
	}
}
