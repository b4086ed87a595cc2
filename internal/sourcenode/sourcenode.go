// Package sourcenode resolves, for every face of a combined mesh, which
// originating skeleton node it is attributed to, per spec §4.8.
package sourcenode

import "meshforge/internal/geom"

// Resolve returns one node index per face, chosen by majority vote among
// the face's corner vertices' source-node tags (ties keep the first
// corner's tag, so the result is deterministic).
func Resolve(faces []geom.Face, vertexSourceNode []int) []int {
	out := make([]int, len(faces))
	for fi, f := range faces {
		counts := make(map[int]int, len(f))
		best, bestCount := -1, -1
		for _, idx := range f {
			if idx < 0 || idx >= len(vertexSourceNode) {
				continue
			}
			n := vertexSourceNode[idx]
			counts[n]++
			if counts[n] > bestCount {
				best, bestCount = n, counts[n]
			}
		}
		out[fi] = best
	}
	return out
}
