package csg

import "meshforge/internal/geom"

// vertex is one corner of a CSG polygon: its position plus the index, into
// the originating Mesh's node list, of the skeleton node that produced it
// (carried through splits so downstream source-node resolution still works
// after boolean combination, per spec §4.8).
type vertex struct {
	pos        geom.Vec3
	sourceNode int
}

func lerpVertex(a, b vertex, t float64) vertex {
	pos := a.pos.Add(b.pos.Sub(a.pos).Mul(t))
	// An interpolated vertex inherits whichever endpoint it sits closer to;
	// ties favor a, matching spec's "majority of the originating triangle"
	// resolution used downstream.
	src := a.sourceNode
	if t > 0.5 {
		src = b.sourceNode
	}
	return vertex{pos: pos, sourceNode: src}
}

// polygon is a planar, convex face (input meshes enter the BSP tree as
// triangles; pieces produced by splitting can have more vertices).
type polygon struct {
	vertices []vertex
	pl       plane
}

func newPolygon(vs []vertex) (polygon, bool) {
	if len(vs) < 3 {
		return polygon{}, false
	}
	pl, ok := planeFromTriangle(vs[0].pos, vs[1].pos, vs[2].pos)
	if !ok {
		return polygon{}, false
	}
	return polygon{vertices: vs, pl: pl}, true
}

func (p polygon) flipped() polygon {
	vs := make([]vertex, len(p.vertices))
	for i, v := range p.vertices {
		vs[len(p.vertices)-1-i] = v
	}
	return polygon{vertices: vs, pl: p.pl.flipped()}
}

// splitPolygon partitions poly against p into up to four buckets, per the
// classic BSP CSG split: coplanar polygons go to front/back by orientation,
// wholly front/back polygons pass straight through, and spanning polygons
// are clipped into a front and a back piece along the plane intersection.
func splitPolygon(p plane, poly polygon, coplanarFront, coplanarBack, frontOut, backOut *[]polygon) {
	kind, types := classifyPolygon(p, poly)
	switch kind {
	case coplanar:
		if p.normal.Dot(poly.pl.normal) > 0 {
			*coplanarFront = append(*coplanarFront, poly)
		} else {
			*coplanarBack = append(*coplanarBack, poly)
		}
	case front:
		*frontOut = append(*frontOut, poly)
	case back:
		*backOut = append(*backOut, poly)
	case spanning:
		var fVerts, bVerts []vertex
		n := len(poly.vertices)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			ti, tj := types[i], types[j]
			vi, vj := poly.vertices[i], poly.vertices[j]
			if ti != back {
				fVerts = append(fVerts, vi)
			}
			if ti != front {
				bVerts = append(bVerts, vi)
			}
			if (ti | tj) == spanning {
				t := p.distance(vi.pos) / (p.distance(vi.pos) - p.distance(vj.pos))
				mid := lerpVertex(vi, vj, t)
				fVerts = append(fVerts, mid)
				bVerts = append(bVerts, mid)
			}
		}
		if fp, ok := newPolygon(fVerts); ok {
			*frontOut = append(*frontOut, fp)
		}
		if bp, ok := newPolygon(bVerts); ok {
			*backOut = append(*backOut, bp)
		}
	}
}
