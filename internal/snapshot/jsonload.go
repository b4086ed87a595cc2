package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
)

// document is the on-disk JSON shape: a flat table per entity kind, mirroring
// the Attrs-bag model directly so no separate DTO layer is needed.
type document struct {
	Canvas struct {
		OriginX float64 `json:"originX"`
		OriginY float64 `json:"originY"`
		OriginZ float64 `json:"originZ"`
	} `json:"canvas"`
	RootComponent string                       `json:"rootComponent"`
	Parts         map[string]map[string]string `json:"parts"`
	Nodes         map[string]map[string]string `json:"nodes"`
	Edges         map[string]map[string]string `json:"edges"`
	Components    map[string]map[string]string `json:"components"`
	// NodeOrder preserves document order; JSON object key order isn't
	// guaranteed, so callers that care about deterministic node ordering
	// must supply it explicitly.
	NodeOrder []string `json:"nodeOrder"`
}

// LoadJSON decodes a scene document from r into a Snapshot.
func LoadJSON(r io.Reader) (*Snapshot, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("snapshot: decode json: %w", err)
	}

	s := New()
	s.Canvas = Canvas{OriginX: doc.Canvas.OriginX, OriginY: doc.Canvas.OriginY, OriginZ: doc.Canvas.OriginZ}
	s.RootComponent = doc.RootComponent

	if len(doc.NodeOrder) > 0 {
		for _, id := range doc.NodeOrder {
			if attrs, ok := doc.Nodes[id]; ok {
				s.AddNode(id, attrs)
			}
		}
	} else {
		for id, attrs := range doc.Nodes {
			s.AddNode(id, attrs)
		}
	}
	for id, attrs := range doc.Parts {
		s.AddPart(id, attrs)
	}
	for id, attrs := range doc.Edges {
		s.AddEdge(id, attrs)
	}
	for id, attrs := range doc.Components {
		s.AddComponent(id, attrs)
	}
	return s, nil
}
