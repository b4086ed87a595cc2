package csg

// node is one partition of a BSP tree: a splitting plane, the polygons that
// lie exactly on it, and the front/back subtrees.
type node struct {
	pl       *plane
	front    *node
	back     *node
	polygons []polygon
}

func buildNode(polygons []polygon) *node {
	n := &node{}
	n.build(polygons)
	return n
}

func (n *node) build(polygons []polygon) {
	if len(polygons) == 0 {
		return
	}
	if n.pl == nil {
		pl := polygons[0].pl
		n.pl = &pl
	}
	var frontList, backList []polygon
	for _, p := range polygons {
		splitPolygon(*n.pl, p, &n.polygons, &n.polygons, &frontList, &backList)
	}
	if len(frontList) > 0 {
		if n.front == nil {
			n.front = &node{}
		}
		n.front.build(frontList)
	}
	if len(backList) > 0 {
		if n.back == nil {
			n.back = &node{}
		}
		n.back.build(backList)
	}
}

// invert flips every plane and polygon in the tree and swaps front/back,
// turning "inside" into "outside" (used to implement difference as
// intersect-with-complement).
func (n *node) invert() {
	if n == nil {
		return
	}
	for i := range n.polygons {
		n.polygons[i] = n.polygons[i].flipped()
	}
	if n.pl != nil {
		flipped := n.pl.flipped()
		n.pl = &flipped
	}
	n.front.invert()
	n.back.invert()
	n.front, n.back = n.back, n.front
}

// clipPolygons removes the parts of each polygon that lie inside this tree.
func (n *node) clipPolygons(polygons []polygon) []polygon {
	if n == nil || n.pl == nil {
		return append([]polygon(nil), polygons...)
	}
	var frontList, backList []polygon
	for _, p := range polygons {
		splitPolygon(*n.pl, p, &frontList, &backList, &frontList, &backList)
	}
	if n.front != nil {
		frontList = n.front.clipPolygons(frontList)
	}
	if n.back != nil {
		backList = n.back.clipPolygons(backList)
	} else {
		backList = nil
	}
	return append(frontList, backList...)
}

// clipTo removes everything in n's polygon set that lies inside other.
func (n *node) clipTo(other *node) {
	if n == nil {
		return
	}
	n.polygons = other.clipPolygons(n.polygons)
	n.front.clipTo(other)
	n.back.clipTo(other)
}

// allPolygons collects every polygon stored anywhere in the tree.
func (n *node) allPolygons() []polygon {
	if n == nil {
		return nil
	}
	out := append([]polygon(nil), n.polygons...)
	out = append(out, n.front.allPolygons()...)
	out = append(out, n.back.allPolygons()...)
	return out
}

func (n *node) clone() *node {
	if n == nil {
		return nil
	}
	out := &node{polygons: append([]polygon(nil), n.polygons...)}
	if n.pl != nil {
		pl := *n.pl
		out.pl = &pl
	}
	out.front = n.front.clone()
	out.back = n.back.clone()
	return out
}
