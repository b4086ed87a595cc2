// Package mirror synthesizes mirrored twin parts and components for any
// part flagged xMirrored, per spec §4.1.
package mirror

import (
	"github.com/google/uuid"

	"meshforge/internal/snapshot"
)

// ReverseUUID derives a deterministic twin id from id by reversing its byte
// order and re-stamping RFC-4122 version/variant bits so the result is
// still a well-formed UUID. Applying it to a part id always yields the same
// twin id (stable regeneration) and, for any non-palindromic input, a value
// distinct from the source.
func ReverseUUID(id uuid.UUID) uuid.UUID {
	var out uuid.UUID
	for i, b := range id {
		out[len(id)-1-i] = b
	}
	out[6] = (out[6] & 0x0f) | 0x40
	out[8] = (out[8] & 0x3f) | 0x80
	return out
}

// Preprocess scans s for xMirrored parts and, for each one, creates a twin
// part and a twin component appended as a sibling of every component that
// links to the source part (root if the linking component has no parent).
// It mutates s in place and returns the set of newly created part ids
// (these are also marked __dirty on the part itself, per spec).
func Preprocess(s *snapshot.Snapshot) []string {
	parent := parentOf(s)

	var created []string
	// Snapshot the part id list before mutation so newly created twins are
	// never themselves re-mirrored.
	sourceIDs := make([]string, 0, len(s.Parts))
	for id := range s.Parts {
		sourceIDs = append(sourceIDs, id)
	}

	for _, srcID := range sourceIDs {
		part := s.Parts[srcID]
		if !part.Attrs.ReadBool("xMirrored") {
			continue
		}
		srcUUID, err := uuid.Parse(srcID)
		if err != nil {
			continue
		}
		twinID := ReverseUUID(srcUUID).String()
		if twinID == srcID {
			continue
		}

		twinAttrs := snapshot.Attrs{}
		for k, v := range part.Attrs {
			twinAttrs[k] = v
		}
		twinAttrs["__mirrorFromPartId"] = srcID
		twinAttrs["__dirty"] = "true"
		delete(twinAttrs, "xMirrored")
		s.AddPart(twinID, twinAttrs)
		part.Attrs["__mirroredByPartId"] = twinID
		created = append(created, twinID)

		for _, linkingComp := range componentsLinkingTo(s, srcID) {
			parentID, hasParent := parent[linkingComp.ID]
			twinComp := snapshot.Attrs{
				"linkDataType": "partId",
				"linkData":     twinID,
			}
			twinCompID := ReverseUUID(mustParse(linkingComp.ID)).String() + "-twin-" + twinID[:8]
			s.AddComponent(twinCompID, twinComp)
			if hasParent {
				appendChild(s.Components[parentID], twinCompID)
			} else {
				appendChild(s.Components[s.RootComponent], twinCompID)
			}
		}
	}
	return created
}

func mustParse(id string) uuid.UUID {
	u, err := uuid.Parse(id)
	if err != nil {
		// Component ids that are not UUIDs still need a stable derived
		// companion id; fall back to a name-based UUID over the raw string.
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(id))
	}
	return u
}

func appendChild(c *snapshot.Component, childID string) {
	for _, existing := range c.Children {
		if existing == childID {
			return
		}
	}
	c.Children = append(c.Children, childID)
	if c.Attrs["children"] == "" {
		c.Attrs["children"] = childID
	} else {
		c.Attrs["children"] = c.Attrs["children"] + "," + childID
	}
}

// parentOf maps every non-root component id to its parent component id.
func parentOf(s *snapshot.Snapshot) map[string]string {
	parent := make(map[string]string)
	for id, c := range s.Components {
		for _, child := range c.Children {
			parent[child] = id
		}
	}
	return parent
}

// componentsLinkingTo returns every leaf component whose linkData is partID.
func componentsLinkingTo(s *snapshot.Snapshot, partID string) []*snapshot.Component {
	var out []*snapshot.Component
	for _, c := range s.Components {
		if c.IsLeaf() && c.LinkedPartID() == partID {
			out = append(out, c)
		}
	}
	return out
}
