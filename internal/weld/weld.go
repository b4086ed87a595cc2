// Package weld merges coincident vertices left behind by sweeping and CSG
// combination, per spec §4.7.
package weld

import "meshforge/internal/geom"

// Weld merges vertices of verts that lie within threshold of each other,
// except for any position present in protected, and remaps faces
// accordingly. protected guards the "noneSeamVertices" spec calls out:
// positions that must stay distinct even if another vertex lands within
// threshold of them (e.g. a deliberate seam at a mirrored part boundary).
func Weld(verts []geom.Vec3, faces []geom.Face, threshold float64, protected map[geom.PosKey]bool) ([]geom.Vec3, []geom.Face) {
	out, remap := Merge(verts, threshold, protected)
	return out, remapFaces(faces, remap)
}

// Merge computes the vertex merge without touching faces, returning the
// deduplicated vertex list and a remap table (old index -> new index), so
// a caller can apply the same remap to parallel per-vertex data (e.g. a
// source-node tag) alongside the face list.
func Merge(verts []geom.Vec3, threshold float64, protected map[geom.PosKey]bool) ([]geom.Vec3, []int) {
	if threshold <= 0 {
		remap := make([]int, len(verts))
		for i := range remap {
			remap[i] = i
		}
		return verts, remap
	}

	n := len(verts)
	remap := make([]int, n)
	for i := range remap {
		remap[i] = -1
	}

	buckets := make(map[geom.PosKey][]int)
	cell := threshold
	if cell <= 0 {
		cell = 1e-9
	}

	out := make([]geom.Vec3, 0, n)
	for i, v := range verts {
		if remap[i] != -1 {
			continue
		}
		if protected[geom.KeyOf(v)] {
			remap[i] = len(out)
			out = append(out, v)
			continue
		}
		key := hashCell(v, cell)
		merged := -1
		for _, c := range neighborCells(key) {
			for _, j := range buckets[c] {
				if remap[j] == -1 {
					continue
				}
				if verts[j].Sub(v).Len() <= threshold && !protected[geom.KeyOf(verts[j])] {
					merged = remap[j]
					break
				}
			}
			if merged != -1 {
				break
			}
		}
		if merged != -1 {
			remap[i] = merged
		} else {
			remap[i] = len(out)
			out = append(out, v)
		}
		buckets[key] = append(buckets[key], i)
	}
	return out, remap
}

func remapFaces(faces []geom.Face, remap []int) []geom.Face {
	outFaces := make([]geom.Face, 0, len(faces))
	for _, f := range faces {
		nf := make(geom.Face, len(f))
		degenerate := false
		for i, idx := range f {
			nf[i] = remap[idx]
		}
		for i := 0; i < len(nf); i++ {
			for j := i + 1; j < len(nf); j++ {
				if nf[i] == nf[j] {
					degenerate = true
				}
			}
		}
		if !degenerate {
			outFaces = append(outFaces, nf)
		}
	}
	return outFaces
}

func hashCell(v geom.Vec3, cell float64) geom.PosKey {
	scale := 1.0 / cell
	return geom.PosKey{
		X: int64(v.X() * scale),
		Y: int64(v.Y() * scale),
		Z: int64(v.Z() * scale),
	}
}

// neighborCells returns the 3x3x3 block of cells around key, since a vertex
// near a cell boundary may have its nearest neighbor in an adjacent cell.
func neighborCells(key geom.PosKey) []geom.PosKey {
	out := make([]geom.PosKey, 0, 27)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				out = append(out, geom.PosKey{X: key.X + dx, Y: key.Y + dy, Z: key.Z + dz})
			}
		}
	}
	return out
}
