// Package stroke implements the two external collaborators spec §6 calls
// the "stroke modifier" and "stroke mesh builder": the modifier assembles
// and massages a node/edge skeleton before sweeping, and the builder sweeps
// a cut-section polygon along that skeleton into a quad-dominant mesh.
package stroke

import (
	"meshforge/internal/cutface"
	"meshforge/internal/geom"
)

// NodeInput is one sphere of a part's skeleton as seen by the stroke
// pipeline: its position and radius, plus an optional per-node cut template
// override (a node may carry its own cutFace/cutRotation, spec §3).
type NodeInput struct {
	ID          string
	Position    geom.Vec3
	Radius      float64
	CutTemplate cutface.Polygon // nil: the Builder reuses another chain node's template, or Circle
	CutRotation float64         // radians
}

// EdgeInput connects two node ids within a part's skeleton.
type EdgeInput struct {
	From, To string
}

// Modifier assembles a node/edge skeleton, applies the pre-sweep transforms
// (subdivision, intermediate bend nodes) and takes the end-rounding and
// smoothing settings, before the result is handed to a Builder.
type Modifier interface {
	AddNode(n NodeInput)
	AddEdge(e EdgeInput)
	Subdivide()
	RoundEnd(nodeID string)
	EnableSmooth(on bool)
	EnableIntermediateAddition(on bool)
	Finalize() error
	Nodes() []NodeInput
	Edges() []EdgeInput
}

// Builder sweeps a cut-section polygon along a node chain into a mesh.
type Builder interface {
	AddNode(n NodeInput)
	AddEdge(e EdgeInput)
	SetDeformThickness(v float64)
	SetDeformWidth(v float64)
	SetDeformUnified(on bool)
	SetHollowThickness(v float64)
	EnableBaseNormalX(on bool)
	EnableBaseNormalY(on bool)
	EnableBaseNormalZ(on bool)
	EnableAverageBaseNormal(on bool)
	Build() error
	GeneratedVertices() []geom.Vec3
	GeneratedFaces() []geom.Face
	// GeneratedVerticesSourceNodeIndices maps each generated vertex back to
	// the index, in swept chain order, of the skeleton node that produced it.
	GeneratedVerticesSourceNodeIndices() []int
}
