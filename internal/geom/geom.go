// Package geom holds the small vector/position/face primitives shared by
// every stage of the mesh pipeline: stroke sweeping, CSG, quad recovery,
// welding and normal smoothing all operate on the same Vec3/Face vocabulary.
package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is the position/direction type used throughout the pipeline.
type Vec3 = mgl64.Vec3

// Face is a 3- or 4-vertex polygon referencing indices into a shared vertex
// slice. Length 3 means a triangle, length 4 a quad; no other length is
// valid once quad recovery has run.
type Face []int

// IsTriangle reports whether f is a 3-vertex face.
func (f Face) IsTriangle() bool { return len(f) == 3 }

// IsQuad reports whether f is a 4-vertex face.
func (f Face) IsQuad() bool { return len(f) == 4 }

// posKeyScale quantizes a coordinate to 1e-4 before hashing, so coincident
// floating point vertices (from independent sweep/CSG passes) compare equal.
const posKeyScale = 10000.0

// PosKey is a fixed-precision quantization of a 3D point, used as a map key
// wherever the spec calls for positions to "hash equal" under rounding
// (shared quad edges, noneSeamVertices, weld buckets).
type PosKey struct {
	X, Y, Z int64
}

// KeyOf quantizes v into a PosKey.
func KeyOf(v Vec3) PosKey {
	return PosKey{
		X: int64(math.Round(v.X() * posKeyScale)),
		Y: int64(math.Round(v.Y() * posKeyScale)),
		Z: int64(math.Round(v.Z() * posKeyScale)),
	}
}

// EdgeKey identifies an undirected pair of position keys, used for the
// shared-quad-edge diagonal set (spec §4.6) and for weld-protected vertex
// lookups keyed by endpoint pair.
type EdgeKey struct {
	A, B PosKey
}

// MakeEdgeKey builds a canonical (order-independent) EdgeKey from two
// positions.
func MakeEdgeKey(a, b Vec3) EdgeKey {
	ka, kb := KeyOf(a), KeyOf(b)
	if less(kb, ka) {
		ka, kb = kb, ka
	}
	return EdgeKey{A: ka, B: kb}
}

func less(a, b PosKey) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

// Triangulate fans every face with more than 3 vertices into triangles.
// Triangles pass through unchanged. Used for preview generation when the
// stroke-built mesh could not be wrapped by the CSG engine (spec §4.4).
func Triangulate(faces []Face) []Face {
	out := make([]Face, 0, len(faces))
	for _, f := range faces {
		if len(f) < 3 {
			continue
		}
		for i := 1; i < len(f)-1; i++ {
			out = append(out, Face{f[0], f[i], f[i+1]})
		}
	}
	return out
}

// TrimVertices removes vertices no face references and reindexes faces
// accordingly, preserving relative order of the vertices that remain.
func TrimVertices(vertices []Vec3, faces []Face) ([]Vec3, []Face) {
	used := make([]bool, len(vertices))
	for _, f := range faces {
		for _, idx := range f {
			if idx >= 0 && idx < len(used) {
				used[idx] = true
			}
		}
	}
	remap := make([]int, len(vertices))
	out := make([]Vec3, 0, len(vertices))
	for i, v := range vertices {
		if !used[i] {
			remap[i] = -1
			continue
		}
		remap[i] = len(out)
		out = append(out, v)
	}
	outFaces := make([]Face, len(faces))
	for i, f := range faces {
		nf := make(Face, len(f))
		for j, idx := range f {
			nf[j] = remap[idx]
		}
		outFaces[i] = nf
	}
	return out, outFaces
}

// FaceNormal computes the unit normal of a planar face from its first three
// vertices (Newell's method would be needed for non-planar polygons, but
// every face this pipeline produces is planar by construction).
func FaceNormal(vertices []Vec3, f Face) Vec3 {
	if len(f) < 3 {
		return Vec3{}
	}
	a, b, c := vertices[f[0]], vertices[f[1]], vertices[f[2]]
	n := b.Sub(a).Cross(c.Sub(a))
	if l := n.Len(); l > 1e-12 {
		return n.Mul(1 / l)
	}
	return Vec3{}
}

// AngleBetween returns the angle, in degrees, between two unit vectors.
func AngleBetween(a, b Vec3) float64 {
	d := a.Dot(b)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return math.Acos(d) * 180 / math.Pi
}

// IsWatertight reports whether every directed half-edge of faces has a
// matching opposite and no directed half-edge repeats, per spec §4/§8.
func IsWatertight(faces []Face) bool {
	seen := make(map[[2]int]bool)
	for _, f := range faces {
		n := len(f)
		for i := 0; i < n; i++ {
			a, b := f[i], f[(i+1)%n]
			dir := [2]int{a, b}
			if seen[dir] {
				return false
			}
			seen[dir] = true
		}
	}
	for dir := range seen {
		opp := [2]int{dir[1], dir[0]}
		if !seen[opp] {
			return false
		}
	}
	return true
}

func (k PosKey) String() string {
	return fmt.Sprintf("%d,%d,%d", k.X, k.Y, k.Z)
}
