package stroke

import "meshforge/internal/geom"

// frame is an orthonormal basis (tangent, right, up) at one ring of the
// sweep.
type frame struct {
	tangent, right, up geom.Vec3
}

// buildFrames computes a rotation-minimizing frame at every node of an
// ordered chain, avoiding the twist a naive per-segment Frenet frame would
// introduce on nearly-straight runs. hint seeds the very first frame's
// "up" direction (derived from the part's base-normal-axis selection).
func buildFrames(positions []geom.Vec3, closed bool, hint geom.Vec3) []frame {
	n := len(positions)
	frames := make([]frame, n)
	if n == 0 {
		return frames
	}
	if n == 1 {
		t := hint
		if t.Len() < 1e-9 {
			t = geom.Vec3{0, 0, 1}
		}
		frames[0] = orthoFrame(t.Normalize(), hint)
		return frames
	}

	tangents := make([]geom.Vec3, n)
	for i := 0; i < n; i++ {
		var prev, next geom.Vec3
		switch {
		case closed:
			prev = positions[i]
			next = positions[(i+1)%n]
		case i == 0:
			prev, next = positions[0], positions[1]
		case i == n-1:
			prev, next = positions[n-2], positions[n-1]
		default:
			prev, next = positions[i-1], positions[i+1]
		}
		d := next.Sub(prev)
		if d.Len() < 1e-12 {
			d = geom.Vec3{0, 0, 1}
		}
		tangents[i] = d.Normalize()
	}

	frames[0] = orthoFrame(tangents[0], hint)
	for i := 1; i < n; i++ {
		frames[i] = transport(frames[i-1], tangents[i])
	}
	if closed {
		// Blend the seam: the loop's last frame was transported
		// independently of the first; nothing further is done here since
		// perfect seam-matching twist correction is out of scope for this
		// sweep implementation.
		_ = frames[n-1]
	}
	return frames
}

func orthoFrame(tangent, hint geom.Vec3) frame {
	ref := hint
	if ref.Len() < 1e-6 || sameLine(ref, tangent) {
		ref = geom.Vec3{0, 1, 0}
		if sameLine(ref, tangent) {
			ref = geom.Vec3{1, 0, 0}
		}
	}
	right := tangent.Cross(ref)
	if right.Len() < 1e-9 {
		right = tangent.Cross(geom.Vec3{1, 0, 0})
	}
	right = right.Normalize()
	up := right.Cross(tangent).Normalize()
	return frame{tangent: tangent, right: right, up: up}
}

func sameLine(a, b geom.Vec3) bool {
	c := a.Cross(b)
	return c.Len() < 1e-6
}

// transport rotates prev's right/up minimally so the tangent changes from
// prev.tangent to newTangent (double-reflection-free, single-axis Rodrigues
// rotation — adequate for the gentle bends a node chain produces).
func transport(prev frame, newTangent geom.Vec3) frame {
	axis := prev.tangent.Cross(newTangent)
	sinAngle := axis.Len()
	cosAngle := prev.tangent.Dot(newTangent)
	if sinAngle < 1e-9 {
		if cosAngle > 0 {
			return frame{tangent: newTangent, right: prev.right, up: prev.up}
		}
		// 180-degree reversal: flip both basis vectors.
		return frame{tangent: newTangent, right: prev.right.Mul(-1), up: prev.up.Mul(-1)}
	}
	axis = axis.Normalize()
	right := rotateAroundAxis(prev.right, axis, cosAngle, sinAngle)
	up := rotateAroundAxis(prev.up, axis, cosAngle, sinAngle)
	return frame{tangent: newTangent, right: right.Normalize(), up: up.Normalize()}
}

// rotateAroundAxis applies Rodrigues' rotation formula given precomputed
// cos/sin of the rotation angle.
func rotateAroundAxis(v, axis geom.Vec3, cosA, sinA float64) geom.Vec3 {
	term1 := v.Mul(cosA)
	term2 := axis.Cross(v).Mul(sinA)
	term3 := axis.Mul(axis.Dot(v) * (1 - cosA))
	return term1.Add(term2).Add(term3)
}
