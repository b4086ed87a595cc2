// Package meshmodel defines the generator's public output shape, per
// spec §6.
package meshmodel

import "meshforge/internal/geom"

// SourceNode names the skeleton node a triangle or vertex is attributed to.
type SourceNode struct {
	PartID string
	NodeID string
}

// Object is the final generated mesh, exactly the fields spec §6's Output
// section names.
type Object struct {
	ID string

	Vertices []geom.Vec3

	Triangles        []geom.Face // always 3-vertex
	TriangleAndQuads []geom.Face // 3- or 4-vertex, post quad recovery

	TriangleNormals       []geom.Vec3
	TriangleVertexNormals [][]geom.Vec3 // 3 per triangle, indexed like Triangles

	TriangleColors       []Color
	TriangleSourceNodes  []SourceNode
	VertexSourceNodes    []SourceNode

	Nodes []NodeRef
	Edges []EdgeRef

	// IsSuccessful mirrors the per-part isSuccessful flag, folded up to the
	// whole object: false if the final combined mesh is null.
	IsSuccessful bool

	// Incombinable holds any sub-meshes the CSG engine flagged non-manifold
	// along the way (spec §3's incombinableMeshes), kept so callers can
	// still render/inspect them.
	Incombinable []Submesh
}

// NodeRef is a presentational (id, position) pair for the object's
// skeleton overlay (objectNodes/objectNodeVertices in spec §3).
type NodeRef struct {
	ID       string
	Position geom.Vec3
}

// EdgeRef is a presentational skeleton edge.
type EdgeRef struct {
	ID       string
	From, To string
}

// Color is an RGB triple in [0,1], defaulting to white per spec §4.8.
type Color struct {
	R, G, B float64
}

// White is the default triangle color used when a part has no color
// attribute.
var White = Color{R: 1, G: 1, B: 1}

// Submesh is one uncombined or incombinable sub-mesh carried alongside the
// main object.
type Submesh struct {
	Vertices []geom.Vec3
	Faces    []geom.Face
}
