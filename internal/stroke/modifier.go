package stroke

import (
	"meshforge/internal/genconfig"
	"meshforge/internal/geom"
)

// DefaultModifier is the production Modifier. It accumulates nodes/edges,
// then applies subdivision and bend-node insertion in Finalize; end
// rounding and smoothing are only recorded as flags.
type DefaultModifier struct {
	nodes []NodeInput
	edges []EdgeInput

	smooth               bool
	intermediateAddition bool
	roundedEnds          map[string]bool
	subdivideRequested   bool
}

// NewModifier returns a ready-to-use DefaultModifier.
func NewModifier() *DefaultModifier {
	return &DefaultModifier{roundedEnds: make(map[string]bool)}
}

func (m *DefaultModifier) AddNode(n NodeInput) { m.nodes = append(m.nodes, n) }
func (m *DefaultModifier) AddEdge(e EdgeInput) { m.edges = append(m.edges, e) }

func (m *DefaultModifier) Subdivide() { m.subdivideRequested = true }

func (m *DefaultModifier) RoundEnd(nodeID string) { m.roundedEnds[nodeID] = true }

func (m *DefaultModifier) EnableSmooth(on bool) { m.smooth = on }

func (m *DefaultModifier) EnableIntermediateAddition(on bool) { m.intermediateAddition = on }

// Finalize runs subdivision (midpoint insertion), then — only if
// intermediate addition is enabled — inserts an extra node at sharp bends
// so the sweep doesn't pinch. Rounding and smoothing are recorded as flags
// (IsSmooth, RoundedEnd) and do not change the geometry; the Builder does
// not read them.
func (m *DefaultModifier) Finalize() error {
	order, closed, err := orderChain(m.nodes, m.edges)
	if err != nil {
		return err
	}
	if m.subdivideRequested {
		m.nodes, m.edges = subdivideChain(m.nodes, order, closed)
		order, closed, err = orderChain(m.nodes, m.edges)
		if err != nil {
			return err
		}
	}
	if m.intermediateAddition {
		m.nodes, m.edges = insertBendNodes(m.nodes, order, closed)
	}
	return nil
}

func (m *DefaultModifier) Nodes() []NodeInput { return m.nodes }
func (m *DefaultModifier) Edges() []EdgeInput { return m.edges }

// IsSmooth reports whether EnableSmooth(true) was called.
func (m *DefaultModifier) IsSmooth() bool { return m.smooth }

// RoundedEnd reports whether the node was flagged for end-rounding.
func (m *DefaultModifier) RoundedEnd(nodeID string) bool { return m.roundedEnds[nodeID] }

func nodeByID(nodes []NodeInput, id string) NodeInput {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
	}
	return NodeInput{}
}

func midpoint(a, b NodeInput, suffix string) NodeInput {
	return NodeInput{
		ID:          a.ID + "~" + b.ID + suffix,
		Position:    a.Position.Add(b.Position).Mul(0.5),
		Radius:      (a.Radius + b.Radius) / 2,
		CutTemplate: a.CutTemplate,
		CutRotation: (a.CutRotation + b.CutRotation) / 2,
	}
}

// subdivideChain inserts one midpoint node on every edge of the ordered
// chain.
func subdivideChain(nodes []NodeInput, order []string, closed bool) ([]NodeInput, []EdgeInput) {
	outNodes := make([]NodeInput, 0, len(nodes)*2)
	outEdges := make([]EdgeInput, 0, len(nodes)*2)
	segments := len(order) - 1
	if closed {
		segments = len(order)
	}
	for i := 0; i < len(order); i++ {
		a := nodeByID(nodes, order[i])
		outNodes = append(outNodes, a)
	}
	for i := 0; i < segments; i++ {
		a := nodeByID(nodes, order[i])
		b := nodeByID(nodes, order[(i+1)%len(order)])
		mid := midpoint(a, b, "~mid")
		outNodes = append(outNodes, mid)
		outEdges = append(outEdges, EdgeInput{From: a.ID, To: mid.ID}, EdgeInput{From: mid.ID, To: b.ID})
	}
	return outNodes, outEdges
}

// insertBendNodes checks each chain vertex order[i] that has a predecessor
// and a node two steps ahead (every vertex of a ring; in an open chain,
// every interior vertex except the last one), and where the incoming and
// outgoing directions diverge by more than genconfig's bend-angle threshold
// it adds an extra node halfway along the outgoing edge, so the sweep gets
// an additional ring to miter around the bend instead of pinching. This is the "intermediate node insertion" spec
// §4.4/§7 retry toggles.
func insertBendNodes(nodes []NodeInput, order []string, closed bool) ([]NodeInput, []EdgeInput) {
	bendThresholdDeg := genconfig.GetBendAngle()
	outNodes := make([]NodeInput, 0, len(nodes))
	for _, id := range order {
		outNodes = append(outNodes, nodeByID(nodes, id))
	}
	outEdges := make([]EdgeInput, 0, len(order))

	n := len(order)
	for i := 0; i < n; i++ {
		if !closed && i == n-1 {
			break
		}
		a := nodeByID(nodes, order[i])
		b := nodeByID(nodes, order[(i+1)%n])
		outEdges = append(outEdges, EdgeInput{From: a.ID, To: b.ID})

		hasPrev := closed || i > 0
		hasNext := closed || i+2 < n
		if !hasPrev || !hasNext {
			continue
		}
		prev := nodeByID(nodes, order[(i-1+n)%n])
		next := nodeByID(nodes, order[(i+2)%n])
		dirIn := b.Position.Sub(a.Position)
		dirPrev := a.Position.Sub(prev.Position)
		_ = next
		if dirIn.Len() < 1e-9 || dirPrev.Len() < 1e-9 {
			continue
		}
		angle := geom.AngleBetween(dirPrev.Normalize(), dirIn.Normalize())
		if angle > bendThresholdDeg {
			mid := midpoint(a, b, "~bend")
			outNodes = append(outNodes, mid)
			outEdges[len(outEdges)-1] = EdgeInput{From: a.ID, To: mid.ID}
			outEdges = append(outEdges, EdgeInput{From: mid.ID, To: b.ID})
		}
	}
	return outNodes, outEdges
}
