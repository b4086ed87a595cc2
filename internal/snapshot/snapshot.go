// Package snapshot models the immutable scene input: a flat, string-attributed
// table of parts, nodes, edges and components, plus the canvas origin. The
// snapshot parser itself (XML or otherwise) is out of scope — this package
// only defines the in-memory shape and a typed accessor over it, mirroring
// the teacher's registry.BlockDefinition pattern of centralizing parsing of
// loosely-typed input behind a small strongly-typed surface.
package snapshot

import (
	"strconv"

	"github.com/google/uuid"
)

// Canvas is the scene's coordinate origin.
type Canvas struct {
	OriginX, OriginY, OriginZ float64
}

// Attrs is a string-valued attribute bag with typed readers. Every Part,
// Node, Edge and Component attribute map is an Attrs.
type Attrs map[string]string

// ReadBool returns true iff the attribute is present and equal to "true".
func (a Attrs) ReadBool(key string) bool {
	return a[key] == "true"
}

// ReadFloat parses the attribute as a float64, returning def if the
// attribute is absent or unparsable.
func (a Attrs) ReadFloat(key string, def float64) float64 {
	v, ok := a[key]
	if !ok || v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// ReadString returns the raw string value, or def if absent or empty.
func (a Attrs) ReadString(key string, def string) string {
	if v, ok := a[key]; ok && v != "" {
		return v
	}
	return def
}

// ReadUUID parses the attribute as a UUID. ok is false if the attribute is
// absent, empty, or not a valid UUID (e.g. a preset enum name instead of a
// part reference — that is not an error, just not a UUID).
func (a Attrs) ReadUUID(key string) (id uuid.UUID, ok bool) {
	v, present := a[key]
	if !present || v == "" {
		return uuid.Nil, false
	}
	parsed, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, false
	}
	return parsed, true
}

// Node is a sphere in a part's skeleton.
type Node struct {
	ID     string
	Attrs  Attrs
	Radius float64
	X, Y, Z float64
}

// Edge connects two nodes within a single part.
type Edge struct {
	ID      string
	Attrs   Attrs
	From    string
	To      string
	PartID  string
}

// Part is a leaf shape: a node/edge skeleton plus sweep parameters.
type Part struct {
	ID    string
	Attrs Attrs
}

// Component is a node of the scene tree.
type Component struct {
	ID       string
	Attrs    Attrs
	Children []string
}

// Snapshot is the full, immutable scene description.
type Snapshot struct {
	Canvas        Canvas
	Parts         map[string]*Part
	Nodes         map[string]*Node
	Edges         map[string]*Edge
	Components    map[string]*Component
	RootComponent string

	// NodeOrder preserves original document order, needed to break ties
	// deterministically when picking a cut-template walk's start node.
	NodeOrder []string
}

// New builds an empty, ready-to-populate Snapshot.
func New() *Snapshot {
	return &Snapshot{
		Parts:      make(map[string]*Part),
		Nodes:      make(map[string]*Node),
		Edges:      make(map[string]*Edge),
		Components: make(map[string]*Component),
	}
}

// NodePosition returns the node's position relative to the canvas origin:
// (x-originX, originY-y, originZ-z), per spec.
func (s *Snapshot) NodePosition(n *Node) (x, y, z float64) {
	return n.X - s.Canvas.OriginX, s.Canvas.OriginY - n.Y, s.Canvas.OriginZ - n.Z
}
