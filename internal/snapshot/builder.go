package snapshot

import "strings"

// AddPart registers a part with its raw attributes.
func (s *Snapshot) AddPart(id string, attrs Attrs) *Part {
	p := &Part{ID: id, Attrs: attrs}
	s.Parts[id] = p
	return p
}

// AddNode registers a node, eagerly parsing its numeric fields.
func (s *Snapshot) AddNode(id string, attrs Attrs) *Node {
	n := &Node{
		ID:     id,
		Attrs:  attrs,
		Radius: attrs.ReadFloat("radius", 0),
		X:      attrs.ReadFloat("x", 0),
		Y:      attrs.ReadFloat("y", 0),
		Z:      attrs.ReadFloat("z", 0),
	}
	s.Nodes[id] = n
	s.NodeOrder = append(s.NodeOrder, id)
	return n
}

// AddEdge registers an edge, eagerly parsing its from/to/partId fields.
func (s *Snapshot) AddEdge(id string, attrs Attrs) *Edge {
	e := &Edge{
		ID:     id,
		Attrs:  attrs,
		From:   attrs["from"],
		To:     attrs["to"],
		PartID: attrs["partId"],
	}
	s.Edges[id] = e
	return e
}

// AddComponent registers a component, eagerly parsing its children CSV.
func (s *Snapshot) AddComponent(id string, attrs Attrs) *Component {
	var children []string
	if csv := attrs["children"]; csv != "" {
		for _, c := range strings.Split(csv, ",") {
			c = strings.TrimSpace(c)
			if c != "" {
				children = append(children, c)
			}
		}
	}
	c := &Component{ID: id, Attrs: attrs, Children: children}
	s.Components[id] = c
	return c
}

// IsLeaf reports whether a component links directly to a part.
func (c *Component) IsLeaf() bool {
	return c.Attrs["linkDataType"] == "partId"
}

// LinkedPartID returns the part id a leaf component links to ("" if not a
// leaf).
func (c *Component) LinkedPartID() string {
	if !c.IsLeaf() {
		return ""
	}
	return c.Attrs["linkData"]
}

// CombineMode enumerates how a component contributes to its parent.
type CombineMode int

const (
	CombineNormal CombineMode = iota
	CombineInversion
	CombineUncombined
)

// Mode resolves the component's effective combine mode, folding the
// `inverse` flag into Inversion per spec ("if Normal and inverse then
// Inversion").
func (c *Component) Mode() CombineMode {
	mode := CombineNormal
	switch c.Attrs["combineMode"] {
	case "Inversion":
		return CombineInversion
	case "Uncombined":
		return CombineUncombined
	case "Normal", "":
		mode = CombineNormal
	}
	if mode == CombineNormal && c.Attrs.ReadBool("inverse") {
		return CombineInversion
	}
	return mode
}
