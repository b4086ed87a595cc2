// Package normals computes per-vertex smoothed normals from per-face
// normals, per spec §4.7.
package normals

import "meshforge/internal/geom"

// Smooth returns one normal per (face, corner) pair — i.e. per
// triangleVertexNormals entry, matching the object's flattened
// face/corner addressing (spec §6) — averaging the normals of every face
// sharing that vertex position whose own normal is within creaseAngleDeg
// of the reference face's normal. Faces on the far side of a crease do not
// contribute, so a hard edge stays sharp.
func Smooth(vertices []geom.Vec3, faces []geom.Face, faceNormals []geom.Vec3, creaseAngleDeg float64) [][]geom.Vec3 {
	byPos := make(map[geom.PosKey][]int)
	for fi, f := range faces {
		for _, idx := range f {
			key := geom.KeyOf(vertices[idx])
			byPos[key] = appendUnique(byPos[key], fi)
		}
	}

	out := make([][]geom.Vec3, len(faces))
	for fi, f := range faces {
		corners := make([]geom.Vec3, len(f))
		for ci, idx := range f {
			key := geom.KeyOf(vertices[idx])
			var sum geom.Vec3
			count := 0
			for _, other := range byPos[key] {
				if geom.AngleBetween(faceNormals[fi], faceNormals[other]) <= creaseAngleDeg {
					sum = sum.Add(faceNormals[other])
					count++
				}
			}
			if count == 0 {
				corners[ci] = faceNormals[fi]
				continue
			}
			if l := sum.Len(); l > 1e-12 {
				corners[ci] = sum.Mul(1 / l)
			} else {
				corners[ci] = faceNormals[fi]
			}
		}
		out[fi] = corners
	}
	return out
}

func appendUnique(s []int, v int) []int {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}
