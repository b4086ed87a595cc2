package stroke

import (
	"math"

	"meshforge/internal/cutface"
	"meshforge/internal/geom"
)

// DefaultBuilder is the production Builder: it sweeps a cut-section polygon
// along an ordered node chain using a rotation-minimizing frame, per spec
// §4.4's "stroke mesh builder" collaborator.
type DefaultBuilder struct {
	nodes []NodeInput
	edges []EdgeInput

	deformThickness float64
	deformWidth     float64
	deformUnified   bool
	hollowThickness float64

	baseNormalX, baseNormalY, baseNormalZ bool
	averageBaseNormal                     bool

	vertices   []geom.Vec3
	faces      []geom.Face
	sourceNode []int
	chainIDs   []string
}

// NewBuilder returns a DefaultBuilder with the spec's default deform scale
// of 1 (no thickening/thinning) until overridden.
func NewBuilder() *DefaultBuilder {
	return &DefaultBuilder{deformThickness: 1, deformWidth: 1}
}

func (b *DefaultBuilder) AddNode(n NodeInput) { b.nodes = append(b.nodes, n) }
func (b *DefaultBuilder) AddEdge(e EdgeInput) { b.edges = append(b.edges, e) }

func (b *DefaultBuilder) SetDeformThickness(v float64) { b.deformThickness = v }
func (b *DefaultBuilder) SetDeformWidth(v float64)     { b.deformWidth = v }
func (b *DefaultBuilder) SetDeformUnified(on bool)     { b.deformUnified = on }
func (b *DefaultBuilder) SetHollowThickness(v float64) { b.hollowThickness = v }

func (b *DefaultBuilder) EnableBaseNormalX(on bool) { b.baseNormalX = on }
func (b *DefaultBuilder) EnableBaseNormalY(on bool) { b.baseNormalY = on }
func (b *DefaultBuilder) EnableBaseNormalZ(on bool) { b.baseNormalZ = on }
func (b *DefaultBuilder) EnableAverageBaseNormal(on bool) {
	b.averageBaseNormal = on
}

// baseNormalHint derives the reference "up" vector used to seed the sweep's
// rotation-minimizing frame from the enabled base-normal axes: each enabled
// axis's component is zeroed out of the world-up reference before it is
// renormalized, per spec §4.4's base-normal axis suppression. Average
// ignores individual axis flags and starts from the symmetric (1,1,1)
// direction instead.
func (b *DefaultBuilder) baseNormalHint() geom.Vec3 {
	if b.averageBaseNormal {
		return geom.Vec3{1, 1, 1}.Normalize()
	}
	hint := geom.Vec3{0, 1, 0}
	if b.baseNormalX {
		hint[0] = 0
	}
	if b.baseNormalY {
		hint[1] = 0
	}
	if b.baseNormalZ {
		hint[2] = 0
	}
	if hint.Len() < 1e-9 {
		return geom.Vec3{0, 1, 0}
	}
	return hint.Normalize()
}

// ring holds one emitted cross-section: the outer profile vertex range and,
// when hollowThickness > 0, a parallel inner profile range.
type ring struct {
	outerStart, size int
	innerStart       int // -1 when not hollow
}

// Build sweeps the accumulated skeleton. It returns the same chain-topology
// errors orderChain does; callers (internal/partmesh) are expected to retry
// with intermediate-addition disabled on failure, per spec §4.4/§7.
func (b *DefaultBuilder) Build() error {
	order, closed, err := orderChain(b.nodes, b.edges)
	if err != nil {
		return err
	}
	b.chainIDs = order

	n := len(order)
	byID := make(map[string]NodeInput, n)
	for _, nd := range b.nodes {
		byID[nd.ID] = nd
	}
	positions := make([]geom.Vec3, n)
	templates := make([]cutface.Polygon, n)
	var lastTemplate cutface.Polygon
	for i, id := range order {
		nd := byID[id]
		positions[i] = nd.Position
		if len(nd.CutTemplate) >= 3 {
			lastTemplate = nd.CutTemplate
		}
		templates[i] = lastTemplate
	}
	if lastTemplate == nil {
		lastTemplate, _ = cutface.Preset("Circle")
	}
	for i := range templates {
		if templates[i] == nil {
			templates[i] = lastTemplate
		}
	}

	frames := buildFrames(positions, closed, b.baseNormalHint())

	thickness, width := b.deformThickness, b.deformWidth
	if b.deformUnified {
		width = thickness
	}
	hollow := b.hollowThickness > 0

	rings := make([]ring, n)
	for i := 0; i < n; i++ {
		nd := byID[order[i]]
		poly := templates[i]
		rings[i].size = len(poly)
		rings[i].innerStart = -1
		rings[i].outerStart = b.emitRing(poly, positions[i], frames[i], nd, 1.0, thickness, width, i)
		if hollow && nd.Radius > 1e-9 {
			innerScale := 1 - b.hollowThickness/nd.Radius
			if innerScale < 0 {
				innerScale = 0
			}
			rings[i].innerStart = b.emitRing(poly, positions[i], frames[i], nd, innerScale, thickness, width, i)
		}
	}

	segments := n - 1
	if closed {
		segments = n
	}
	for i := 0; i < segments; i++ {
		j := (i + 1) % n
		b.connectRings(rings[i].outerStart, rings[i].size, rings[j].outerStart, rings[j].size)
		if hollow {
			// Inner wall faces point inward, so reverse the winding.
			b.connectRings(rings[j].innerStart, rings[j].size, rings[i].innerStart, rings[i].size)
		}
	}

	if !closed {
		if hollow {
			b.closeHollowEnd(rings[0], true)
			b.closeHollowEnd(rings[n-1], false)
		} else {
			b.capEnd(rings[0].outerStart, rings[0].size, true)
			b.capEnd(rings[n-1].outerStart, rings[n-1].size, false)
		}
	}

	return nil
}

// emitRing appends one cross-section ring's vertices (profile scaled by
// node radius, deform thickness/width, and an optional uniform innerScale
// for the hollow inner wall) and returns the start index.
func (b *DefaultBuilder) emitRing(poly cutface.Polygon, center geom.Vec3, fr frame, nd NodeInput, innerScale, thickness, width float64, nodeIdx int) int {
	start := len(b.vertices)
	cos, sin := math.Cos(nd.CutRotation), math.Sin(nd.CutRotation)
	for _, p := range poly {
		x := p.X*cos - p.Y*sin
		y := p.X*sin + p.Y*cos
		off := fr.right.Mul(x * width * nd.Radius * innerScale).Add(fr.up.Mul(y * thickness * nd.Radius * innerScale))
		b.vertices = append(b.vertices, center.Add(off))
		b.sourceNode = append(b.sourceNode, nodeIdx)
	}
	return start
}

// connectRings emits quads between two consecutive rings of equal vertex
// count (the common case: both rings share the chain's cut template), or
// falls back to a fan-mapped strip when counts differ (a per-node template
// override changed vertex count between adjacent rings).
func (b *DefaultBuilder) connectRings(startA, sizeA, startB, sizeB int) {
	if sizeA == 0 || sizeB == 0 {
		return
	}
	if sizeA == sizeB {
		for k := 0; k < sizeA; k++ {
			a0 := startA + k
			a1 := startA + (k+1)%sizeA
			b0 := startB + k
			b1 := startB + (k+1)%sizeB
			b.faces = append(b.faces, geom.Face{a0, a1, b1, b0})
		}
		return
	}
	maxN := sizeA
	if sizeB > maxN {
		maxN = sizeB
	}
	for k := 0; k < maxN; k++ {
		a0 := startA + (k*sizeA)/maxN
		a1 := startA + ((k+1)*sizeA)/maxN%sizeA
		b0 := startB + (k*sizeB)/maxN
		b1 := startB + ((k+1)*sizeB)/maxN%sizeB
		b.faces = append(b.faces, geom.Face{a0, a1, b1, b0})
	}
}

// capEnd closes an open chain endpoint with a triangle fan to the ring's
// centroid. DefaultModifier's end-rounding flag is not read here or
// anywhere upstream, so every open end gets this same flat-fan cap.
func (b *DefaultBuilder) capEnd(ringStart, size int, isStart bool) {
	if size < 3 {
		return
	}
	var centroid geom.Vec3
	for k := 0; k < size; k++ {
		centroid = centroid.Add(b.vertices[ringStart+k])
	}
	centroid = centroid.Mul(1 / float64(size))
	centerIdx := len(b.vertices)
	b.vertices = append(b.vertices, centroid)
	if len(b.sourceNode) > 0 {
		b.sourceNode = append(b.sourceNode, b.sourceNode[ringStart])
	}
	for k := 0; k < size; k++ {
		a := ringStart + k
		c := ringStart + (k+1)%size
		if isStart {
			b.faces = append(b.faces, geom.Face{centerIdx, c, a})
		} else {
			b.faces = append(b.faces, geom.Face{centerIdx, a, c})
		}
	}
}

// closeHollowEnd closes an open chain endpoint of a hollow tube with a flat
// washer band between the outer and inner rings, instead of a solid fan.
func (b *DefaultBuilder) closeHollowEnd(r ring, isStart bool) {
	if r.size < 3 || r.innerStart < 0 {
		b.capEnd(r.outerStart, r.size, isStart)
		return
	}
	for k := 0; k < r.size; k++ {
		o0 := r.outerStart + k
		o1 := r.outerStart + (k+1)%r.size
		i0 := r.innerStart + k
		i1 := r.innerStart + (k+1)%r.size
		if isStart {
			b.faces = append(b.faces, geom.Face{o1, o0, i0, i1})
		} else {
			b.faces = append(b.faces, geom.Face{o0, o1, i1, i0})
		}
	}
}

func (b *DefaultBuilder) GeneratedVertices() []geom.Vec3 { return b.vertices }
func (b *DefaultBuilder) GeneratedFaces() []geom.Face    { return b.faces }
func (b *DefaultBuilder) GeneratedVerticesSourceNodeIndices() []int {
	return b.sourceNode
}

// ChainNodeIDs returns the chain-ordered node ids Build resolved the
// skeleton into; GeneratedVerticesSourceNodeIndices indexes into this
// slice, not into the order AddNode was called in.
func (b *DefaultBuilder) ChainNodeIDs() []string { return b.chainIDs }
