// Package cutface extracts the 2D sweep cross-section ("cut template") a
// part's node skeleton describes, per spec §4.3, and the chamfer transform
// applied to it.
package cutface

import (
	"errors"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/katalvlaran/lvlath/graph"

	"meshforge/internal/snapshot"
)

var (
	errNotUUID    = errors.New("cutface: attribute is not a part reference")
	errNoSuchPart = errors.New("cutface: referenced part not found")
)

// refDirX, refDirY are normalize(-1,-1,0) projected onto the cut plane, the
// fixed direction chain-endpoint selection measures angles against.
var refDirX, refDirY = normalize2(-1, -1)

func normalize2(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l < 1e-12 {
		return 0, 0
	}
	return x / l, y / l
}

// Extract resolves cutFaceAttr (a UUID referencing another part, or a
// preset name) into a walked or preset polygon. chamfered applies the
// edge-doubling chamfer transform (spec §4.3) to the result.
func Extract(snap *snapshot.Snapshot, idx *snapshot.Index, cutFaceAttr string, chamfered bool) (Polygon, bool) {
	poly, ok := extractFromPartGraph(snap, idx, cutFaceAttr)
	if !ok || len(poly) < 3 {
		preset, presetOK := Preset(cutFaceAttr)
		if !presetOK {
			return nil, false
		}
		poly = preset
	}
	if chamfered {
		poly = Chamfer(poly)
	}
	return poly, true
}

func extractFromPartGraph(snap *snapshot.Snapshot, idx *snapshot.Index, cutFaceAttr string) (Polygon, bool) {
	refPart, err := parseRefPart(snap, cutFaceAttr)
	if err != nil {
		return nil, false
	}

	nodeIDs := orderedPartNodes(snap, idx, refPart)
	if len(nodeIDs) == 0 {
		return nil, false
	}
	orderIndex := make(map[string]int, len(nodeIDs))
	for i, id := range nodeIDs {
		orderIndex[id] = i
	}

	points := make(map[string]Point, len(nodeIDs))
	for _, id := range nodeIDs {
		n := snap.Nodes[id]
		x := n.X - snap.Canvas.OriginX
		y := snap.Canvas.OriginY - n.Y
		points[id] = Point{Radius: n.Radius, X: x, Y: y, NodeID: id}
	}

	g := graph.NewGraph(false, false)
	for _, id := range nodeIDs {
		g.AddVertex(&graph.Vertex{ID: id, Metadata: map[string]interface{}{}})
	}
	for _, eid := range idx.EdgesOf(refPart) {
		e := snap.Edges[eid]
		if e == nil || e.From == "" || e.To == "" {
			continue
		}
		if _, ok := points[e.From]; !ok {
			continue
		}
		if _, ok := points[e.To]; !ok {
			continue
		}
		g.AddEdge(e.From, e.To, 0)
	}

	if len(nodeIDs) == 1 {
		p := points[nodeIDs[0]]
		return Polygon{p}, true
	}

	degree := make(map[string]int, len(nodeIDs))
	isRing := true
	var endpoints []string
	for _, id := range nodeIDs {
		d := len(g.Neighbors(id))
		degree[id] = d
		if d != 2 {
			isRing = false
		}
		if d == 1 {
			endpoints = append(endpoints, id)
		}
	}

	var start string
	if isRing {
		start = nodeIDs[0]
	} else if len(endpoints) > 0 {
		start = pickChainStart(points, endpoints, orderIndex)
	} else {
		start = nodeIDs[0]
	}

	order := walk(g, start, orderIndex)
	poly := make(Polygon, 0, len(order))
	for _, id := range order {
		poly = append(poly, points[id])
	}
	return poly, true
}

func parseRefPart(snap *snapshot.Snapshot, cutFaceAttr string) (string, error) {
	id, err := uuid.Parse(cutFaceAttr)
	if err != nil || id == uuid.Nil {
		return "", errNotUUID
	}
	idStr := id.String()
	if _, exists := snap.Parts[idStr]; !exists {
		return "", errNoSuchPart
	}
	return idStr, nil
}

// orderedPartNodes returns the referenced part's node ids in original
// document order.
func orderedPartNodes(snap *snapshot.Snapshot, idx *snapshot.Index, partID string) []string {
	members := idx.PartNodes[partID]
	if len(members) == 0 {
		return nil
	}
	out := make([]string, 0, len(members))
	for _, id := range snap.NodeOrder {
		if members[id] {
			out = append(out, id)
		}
	}
	return out
}

// pickChainStart chooses the endpoint whose direction from the point-set
// centroid has the smallest angle to referenceDirection, breaking ties by
// document order.
func pickChainStart(points map[string]Point, endpoints []string, orderIndex map[string]int) string {
	var cx, cy float64
	for _, p := range points {
		cx += p.X
		cy += p.Y
	}
	n := float64(len(points))
	cx /= n
	cy /= n

	sort.Slice(endpoints, func(i, j int) bool { return orderIndex[endpoints[i]] < orderIndex[endpoints[j]] })

	best := endpoints[0]
	bestAngle := math.Inf(1)
	for _, id := range endpoints {
		p := points[id]
		dx, dy := normalize2(p.X-cx, p.Y-cy)
		cosA := dx*refDirX + dy*refDirY
		if cosA > 1 {
			cosA = 1
		} else if cosA < -1 {
			cosA = -1
		}
		angle := math.Acos(cosA)
		if angle < bestAngle {
			bestAngle = angle
			best = id
		}
	}
	return best
}

// walk traverses g from start, at each step advancing to the first
// unvisited neighbor in document order, emitting the visited sequence.
func walk(g *graph.Graph, start string, orderIndex map[string]int) []string {
	visited := map[string]bool{start: true}
	order := []string{start}
	cur := start
	for {
		nbrs := g.Neighbors(cur)
		sort.Slice(nbrs, func(i, j int) bool { return orderIndex[nbrs[i].ID] < orderIndex[nbrs[j].ID] })
		advanced := false
		for _, nb := range nbrs {
			if !visited[nb.ID] {
				visited[nb.ID] = true
				order = append(order, nb.ID)
				cur = nb.ID
				advanced = true
				break
			}
		}
		if !advanced {
			break
		}
	}
	return order
}
