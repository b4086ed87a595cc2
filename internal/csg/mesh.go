package csg

import "meshforge/internal/geom"

// Mesh is the CSG engine's working representation: a flat vertex list, a
// parallel source-node tag per vertex, and faces. Combine always returns
// triangles; internal/combine may replace them with recovered 3- and
// 4-vertex faces. The part builder, the caches, the combiner and
// post-processing all pass meshes around in this shape.
type Mesh struct {
	Vertices   []geom.Vec3
	SourceNode []int
	Faces      []geom.Face
}

// Op identifies a boolean operation. internal/combine uses Union for
// Normal operands and Difference for Inversion operands.
type Op int

const (
	Union Op = iota
	Difference
	Intersection
)

// IsNull reports whether m has no geometry at all.
func IsNull(m Mesh) bool {
	return len(m.Faces) == 0 || len(m.Vertices) == 0
}

// IsCombinable reports whether a and b are both non-null, i.e. whether
// running Combine on them can produce anything but an empty result. Callers
// use this to skip the (relatively expensive) BSP build for degenerate
// inputs rather than special-casing the result afterward.
func IsCombinable(a, b Mesh) bool {
	return !IsNull(a) && !IsNull(b)
}

func toPolygons(m Mesh) []polygon {
	tris := geom.Triangulate(m.Faces)
	out := make([]polygon, 0, len(tris))
	for _, f := range tris {
		vs := make([]vertex, len(f))
		for i, idx := range f {
			src := 0
			if idx < len(m.SourceNode) {
				src = m.SourceNode[idx]
			}
			vs[i] = vertex{pos: m.Vertices[idx], sourceNode: src}
		}
		if p, ok := newPolygon(vs); ok {
			out = append(out, p)
		}
	}
	return out
}

func fromPolygons(polys []polygon) Mesh {
	var m Mesh
	for _, p := range polys {
		if len(p.vertices) < 3 {
			continue
		}
		base := len(m.Vertices)
		for _, v := range p.vertices {
			m.Vertices = append(m.Vertices, v.pos)
			m.SourceNode = append(m.SourceNode, v.sourceNode)
		}
		for i := 1; i < len(p.vertices)-1; i++ {
			m.Faces = append(m.Faces, geom.Face{base, base + i, base + i + 1})
		}
	}
	return m
}

// Combine runs the requested boolean operation over a and b and returns the
// resulting triangle soup. A null input short-circuits: union with a null
// operand returns the other operand and difference with a null b returns a
// (in both cases with its faces fan-triangulated); difference from a null a
// and intersection with a null operand return the empty mesh.
func Combine(a, b Mesh, op Op) Mesh {
	switch {
	case IsNull(a) && IsNull(b):
		return Mesh{}
	case IsNull(a):
		if op == Union {
			return Mesh{Vertices: b.Vertices, SourceNode: b.SourceNode, Faces: geom.Triangulate(b.Faces)}
		}
		return Mesh{}
	case IsNull(b):
		if op == Difference || op == Union {
			return Mesh{Vertices: a.Vertices, SourceNode: a.SourceNode, Faces: geom.Triangulate(a.Faces)}
		}
		return Mesh{}
	}

	an := buildNode(toPolygons(a))
	bn := buildNode(toPolygons(b))

	switch op {
	case Union:
		return fromPolygons(unionNodes(an, bn).allPolygons())
	case Difference:
		return fromPolygons(differenceNodes(an, bn).allPolygons())
	case Intersection:
		return fromPolygons(intersectNodes(an, bn).allPolygons())
	default:
		return Mesh{}
	}
}

// unionNodes, differenceNodes and intersectNodes implement the standard BSP
// CSG recipe (as in the Thibault/Evans "csg.js" algorithm): clip each tree
// against the other, invert where the operation calls for the complement of
// a solid, then merge b's surviving polygons back into a's tree.
func unionNodes(a, b *node) *node {
	a, b = a.clone(), b.clone()
	a.clipTo(b)
	b.clipTo(a)
	b.invert()
	b.clipTo(a)
	b.invert()
	a.build(b.allPolygons())
	return a
}

func differenceNodes(a, b *node) *node {
	a, b = a.clone(), b.clone()
	a.invert()
	a.clipTo(b)
	b.clipTo(a)
	b.invert()
	b.clipTo(a)
	b.invert()
	a.build(b.allPolygons())
	a.invert()
	return a
}

func intersectNodes(a, b *node) *node {
	a, b = a.clone(), b.clone()
	a.invert()
	b.clipTo(a)
	b.invert()
	a.clipTo(b)
	b.clipTo(a)
	a.build(b.allPolygons())
	a.invert()
	return a
}
