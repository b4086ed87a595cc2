// Package quadrecover reconstructs 4-gon faces from a triangulated CSG
// result, per spec §4.6.
package quadrecover

import "meshforge/internal/geom"

// SharedQuadEdges records the diagonal pairs — vertex-0↔vertex-2 and
// vertex-1↔vertex-3 — of every quad face built by the stroke sweep, keyed
// by position so the set survives the CSG engine's own re-triangulation.
type SharedQuadEdges map[geom.EdgeKey]bool

// CollectDiagonals records both diagonals of every 4-vertex face in faces.
// Triangular faces never contribute, per the invariant in spec §3.
func CollectDiagonals(vertices []geom.Vec3, faces []geom.Face) SharedQuadEdges {
	set := make(SharedQuadEdges)
	for _, f := range faces {
		if !f.IsQuad() {
			continue
		}
		set[geom.MakeEdgeKey(vertices[f[0]], vertices[f[2]])] = true
		set[geom.MakeEdgeKey(vertices[f[1]], vertices[f[3]])] = true
	}
	return set
}

// Merge unions b into a (mutating a) and returns it.
func (a SharedQuadEdges) Merge(b SharedQuadEdges) SharedQuadEdges {
	for k := range b {
		a[k] = true
	}
	return a
}

// Recover scans triangles for adjacent pairs whose shared edge is a
// recorded quad diagonal, and emits the recombined 4-gon
// [t1.opposite, shared.a, t2.opposite, shared.b] for each qualifying pair.
// Every triangle participates in at most one recovered quad; the rest pass
// through unchanged.
func Recover(vertices []geom.Vec3, faces []geom.Face, diagonals SharedQuadEdges) []geom.Face {
	// edgeOwners maps an undirected triangle edge to the list of
	// (faceIndex, thirdVertexIndex) pairs sharing it.
	type owner struct {
		face  int
		third int
	}
	edgeOwners := make(map[geom.EdgeKey][]owner)
	for fi, f := range faces {
		if !f.IsTriangle() {
			continue
		}
		for i := 0; i < 3; i++ {
			a, b := f[i], f[(i+1)%3]
			third := f[(i+2)%3]
			key := geom.MakeEdgeKey(vertices[a], vertices[b])
			edgeOwners[key] = append(edgeOwners[key], owner{face: fi, third: third})
		}
	}

	used := make([]bool, len(faces))
	var out []geom.Face

	for key, owners := range edgeOwners {
		if !diagonals[key] || len(owners) < 2 {
			continue
		}
		var a, b *owner
		for i := range owners {
			if used[owners[i].face] {
				continue
			}
			if a == nil {
				a = &owners[i]
			} else if b == nil {
				b = &owners[i]
				break
			}
		}
		if a == nil || b == nil {
			continue
		}
		f1 := faces[a.face]
		sharedA, sharedB := sharedEdgeEndpoints(f1, a.third)
		out = append(out, geom.Face{a.third, sharedA, b.third, sharedB})
		used[a.face] = true
		used[b.face] = true
	}

	for fi, f := range faces {
		if !used[fi] {
			out = append(out, f)
		}
	}
	return out
}

// sharedEdgeEndpoints returns the two vertices of triangle f other than
// third, in f's own winding order.
func sharedEdgeEndpoints(f geom.Face, third int) (int, int) {
	for i := 0; i < 3; i++ {
		if f[i] == third {
			return f[(i+1)%3], f[(i+2)%3]
		}
	}
	return f[0], f[1]
}
