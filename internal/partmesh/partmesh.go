// Package partmesh builds the per-part mesh: it resolves a part's cut
// template, drives the stroke modifier/builder, and wraps the result as a
// combinable CSG mesh, per spec §4.4.
package partmesh

import (
	"fmt"

	"meshforge/internal/csg"
	"meshforge/internal/cutface"
	"meshforge/internal/geom"
	"meshforge/internal/noderef"
	"meshforge/internal/quadrecover"
	"meshforge/internal/snapshot"
	"meshforge/internal/stroke"
)

// Result is the per-part cache entry spec §3 describes.
type Result struct {
	ObjectNodes        []string
	ObjectEdges        []string
	ObjectNodeVertices []geom.Vec3

	Vertices []geom.Vec3
	Faces    []geom.Face

	PreviewVertices  []geom.Vec3
	PreviewTriangles []geom.Face

	Mesh      csg.Mesh
	Diagonals quadrecover.SharedQuadEdges

	IsSuccessful bool
	Joined       bool
}

// Build assembles the stroke skeleton for partID, sweeps it, and wraps the
// output as a CSG mesh tagged with global node-reference ids from reg.
func Build(snap *snapshot.Snapshot, idx *snapshot.Index, partID string, reg *noderef.Registry) (*Result, error) {
	part, ok := snap.Parts[partID]
	if !ok {
		return nil, fmt.Errorf("partmesh: unknown part %q", partID)
	}
	if part.Attrs.ReadBool("disabled") {
		return &Result{IsSuccessful: true, Joined: false}, nil
	}

	// A mirror twin has no nodes/edges of its own: its skeleton is the
	// source part's, mirrored at build time (spec §4.1/§4.4).
	skeletonPartID := partID
	if mirrorFrom := part.Attrs.ReadString("__mirrorFromPartId", ""); mirrorFrom != "" {
		skeletonPartID = mirrorFrom
	}

	nodeIDs := idx.NodesOf(skeletonPartID)
	if len(nodeIDs) == 0 {
		return &Result{IsSuccessful: false}, nil
	}
	orderedIDs := orderByDocument(snap, nodeIDs)
	res := &Result{ObjectNodes: append([]string(nil), orderedIDs...), ObjectEdges: idx.EdgesOf(skeletonPartID)}
	for _, id := range orderedIDs {
		n := snap.Nodes[id]
		x, y, z := snap.NodePosition(n)
		res.ObjectNodeVertices = append(res.ObjectNodeVertices, geom.Vec3{x, y, z})
	}

	chamfered := part.Attrs.ReadBool("chamfered")
	template := resolveTemplate(snap, idx, part, chamfered)

	smooth := part.Attrs.ReadBool("smooth")
	subdivide := part.Attrs.ReadBool("subdived")
	rounded := part.Attrs.ReadBool("rounded")
	cutRotation := part.Attrs.ReadFloat("cutRotation", 0)

	assemble := func(intermediate bool) (*stroke.DefaultBuilder, error) {
		mod := stroke.NewModifier()
		for _, id := range orderedIDs {
			n := snap.Nodes[id]
			x, y, z := snap.NodePosition(n)
			mod.AddNode(stroke.NodeInput{
				ID:          id,
				Position:    geom.Vec3{x, y, z},
				Radius:      n.Radius,
				CutTemplate: template,
				CutRotation: cutRotation,
			})
		}
		for _, eid := range idx.EdgesOf(skeletonPartID) {
			e := snap.Edges[eid]
			mod.AddEdge(stroke.EdgeInput{From: e.From, To: e.To})
		}
		mod.EnableSmooth(smooth)
		mod.EnableIntermediateAddition(intermediate)
		if subdivide {
			mod.Subdivide()
		}
		if rounded {
			for _, id := range orderedIDs {
				mod.RoundEnd(id)
			}
		}
		if err := mod.Finalize(); err != nil {
			return nil, err
		}

		b := stroke.NewBuilder()
		for _, n := range mod.Nodes() {
			b.AddNode(n)
		}
		for _, e := range mod.Edges() {
			b.AddEdge(e)
		}
		b.SetDeformThickness(part.Attrs.ReadFloat("deformThickness", 1))
		b.SetDeformWidth(part.Attrs.ReadFloat("deformWidth", 1))
		b.SetDeformUnified(part.Attrs.ReadBool("deformUnified"))
		b.SetHollowThickness(part.Attrs.ReadFloat("hollowThickness", 0))
		applyBaseNormal(b, part.Attrs.ReadString("base", ""))
		if err := b.Build(); err != nil {
			return nil, err
		}
		return b, nil
	}

	// First attempt always inserts intermediate bend nodes (spec §4.4). A
	// part whose target attribute is CutFace counts as an external fill mesh
	// (isExternalFillMesh) and is not retried.
	retryable := !isExternalFillMesh(part)
	b, err := assemble(true)
	if err != nil && retryable {
		b, err = assemble(false)
	}
	if err != nil {
		res.IsSuccessful = false
		return res, nil
	}

	res.Vertices = b.GeneratedVertices()
	res.Faces = b.GeneratedFaces()

	if mirrorFrom := part.Attrs.ReadString("__mirrorFromPartId", ""); mirrorFrom != "" {
		mirrorVertices(res.Vertices, res.Faces)
	}

	chainIDs := b.ChainNodeIDs()
	sourceNodeIdx := b.GeneratedVerticesSourceNodeIndices()
	globalSource := make([]int, len(res.Vertices))
	for i, localIdx := range sourceNodeIdx {
		nodeID := partID
		if localIdx >= 0 && localIdx < len(chainIDs) {
			nodeID = chainIDs[localIdx]
		}
		globalSource[i] = reg.Intern(partID, nodeID)
	}

	res.Diagonals = quadrecover.CollectDiagonals(res.Vertices, res.Faces)
	tris := geom.Triangulate(res.Faces)
	res.Mesh = csg.Mesh{Vertices: res.Vertices, SourceNode: globalSource, Faces: tris}

	fillPreview(res, res.Vertices, res.Faces)
	res.IsSuccessful = true
	res.Joined = part.Attrs.ReadString("target", "Model") == "Model" && !part.Attrs.ReadBool("disabled")
	return res, nil
}

func isExternalFillMesh(part *snapshot.Part) bool {
	return part.Attrs.ReadString("target", "") == "CutFace"
}

func orderByDocument(snap *snapshot.Snapshot, ids []string) []string {
	rank := make(map[string]int, len(snap.NodeOrder))
	for i, id := range snap.NodeOrder {
		rank[id] = i
	}
	out := append([]string(nil), ids...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && rank[out[j-1]] > rank[out[j]]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func resolveTemplate(snap *snapshot.Snapshot, idx *snapshot.Index, part *snapshot.Part, chamfered bool) cutface.Polygon {
	cf := part.Attrs.ReadString("cutFace", "")
	if cf == "" {
		return nil
	}
	poly, _ := cutface.Extract(snap, idx, cf, chamfered)
	return poly
}

func applyBaseNormal(b *stroke.DefaultBuilder, base string) {
	switch base {
	case "YZ":
		b.EnableBaseNormalX(true)
	case "XY":
		b.EnableBaseNormalZ(true)
	case "ZX":
		b.EnableBaseNormalY(true)
	case "Average":
		b.EnableAverageBaseNormal(true)
	}
}

func mirrorVertices(vertices []geom.Vec3, faces []geom.Face) {
	for i, v := range vertices {
		vertices[i] = geom.Vec3{-v.X(), v.Y(), v.Z()}
	}
	for i, f := range faces {
		rev := make(geom.Face, len(f))
		for j, idx := range f {
			rev[len(f)-1-j] = idx
		}
		faces[i] = rev
	}
}

func fillPreview(res *Result, vertices []geom.Vec3, faces []geom.Face) {
	if len(faces) == 0 {
		return
	}
	tris := geom.Triangulate(faces)
	pv, pf := geom.TrimVertices(vertices, tris)
	for i, v := range pv {
		pv[i] = v.Mul(2)
	}
	res.PreviewVertices = pv
	res.PreviewTriangles = pf
}
