// Package postprocess assembles the final exported Object: it welds the
// combined mesh, resolves per-triangle source nodes, assigns colors, and
// computes smooth vertex normals, per spec §4.7-4.8.
package postprocess

import (
	"strconv"
	"strings"

	"meshforge/internal/combine"
	"meshforge/internal/genconfig"
	"meshforge/internal/geom"
	"meshforge/internal/noderef"
	"meshforge/internal/normals"
	"meshforge/internal/snapshot"
	"meshforge/internal/sourcenode"
	"meshforge/internal/weld"
	"meshforge/pkg/meshmodel"
)

// Finalize welds result's mesh, recovers quads (already applied upstream
// in internal/combine at every combination step), resolves source nodes,
// colors and smooth normals, and assembles the exported Object.
func Finalize(snap *snapshot.Snapshot, reg *noderef.Registry, result combine.Result, noneSeam map[geom.PosKey]bool, nodes []meshmodel.NodeRef, edges []meshmodel.EdgeRef, meshID string) *meshmodel.Object {
	obj := &meshmodel.Object{ID: meshID, Nodes: nodes, Edges: edges}

	vertices := result.Mesh.Vertices
	faces := result.Mesh.Faces
	sourceByVertex := result.Mesh.SourceNode

	if len(faces) == 0 {
		obj.IsSuccessful = false
		return obj
	}

	vertices, faces, sourceByVertex = weldFixedPoint(vertices, faces, sourceByVertex, noneSeam)

	obj.Vertices = vertices
	obj.TriangleAndQuads = faces
	obj.Triangles = geom.Triangulate(faces)

	faceNormals := make([]geom.Vec3, len(obj.Triangles))
	for i, f := range obj.Triangles {
		faceNormals[i] = geom.FaceNormal(vertices, f)
	}
	obj.TriangleNormals = faceNormals
	obj.TriangleVertexNormals = normals.Smooth(vertices, obj.Triangles, faceNormals, genconfig.GetCreaseAngle())

	triSourceIDs := sourcenode.Resolve(obj.Triangles, sourceByVertex)
	obj.TriangleSourceNodes = make([]meshmodel.SourceNode, len(triSourceIDs))
	obj.TriangleColors = make([]meshmodel.Color, len(triSourceIDs))
	for i, id := range triSourceIDs {
		ref := reg.Lookup(id)
		obj.TriangleSourceNodes[i] = meshmodel.SourceNode{PartID: ref.PartID, NodeID: ref.NodeID}
		obj.TriangleColors[i] = partColor(snap, ref.PartID)
	}

	obj.VertexSourceNodes = make([]meshmodel.SourceNode, len(sourceByVertex))
	for i, id := range sourceByVertex {
		ref := reg.Lookup(id)
		obj.VertexSourceNodes[i] = meshmodel.SourceNode{PartID: ref.PartID, NodeID: ref.NodeID}
	}

	for _, m := range result.IncombinableMeshes {
		obj.Incombinable = append(obj.Incombinable, meshmodel.Submesh{Vertices: m.Vertices, Faces: m.Faces})
	}

	obj.IsSuccessful = true
	return obj
}

// weldFixedPoint repeats the weld pass until a pass changes nothing,
// propagating the same vertex remap to the parallel source-node tags.
// Quadratic convergence is unnecessary: each pass strictly decreases
// vertex count, per spec §4.7.
func weldFixedPoint(vertices []geom.Vec3, faces []geom.Face, sourceByVertex []int, noneSeam map[geom.PosKey]bool) ([]geom.Vec3, []geom.Face, []int) {
	threshold := genconfig.GetWeldThreshold()
	for {
		merged, remap := weld.Merge(vertices, threshold, noneSeam)
		if len(merged) == len(vertices) {
			return vertices, faces, sourceByVertex
		}
		newSource := make([]int, len(merged))
		for i, src := range sourceByVertex {
			newSource[remap[i]] = src
		}
		newFaces := make([]geom.Face, 0, len(faces))
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
				newFaces = append(newFaces, nf)
			}
		}
		vertices, faces, sourceByVertex = merged, newFaces, newSource
	}
}

func partColor(snap *snapshot.Snapshot, partID string) meshmodel.Color {
	part, ok := snap.Parts[partID]
	if !ok {
		return meshmodel.White
	}
	raw := part.Attrs.ReadString("color", "")
	c, ok := parseHexColor(raw)
	if !ok {
		return meshmodel.White
	}
	return c
}

func parseHexColor(s string) (meshmodel.Color, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return meshmodel.Color{}, false
	}
	r, err1 := strconv.ParseUint(s[0:2], 16, 8)
	g, err2 := strconv.ParseUint(s[2:4], 16, 8)
	b, err3 := strconv.ParseUint(s[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return meshmodel.Color{}, false
	}
	return meshmodel.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, true
}
