// Package dirty computes the dirty closure over the component tree and the
// parts it references, per spec §4.2.
package dirty

import (
	"github.com/google/uuid"

	"meshforge/internal/snapshot"
)

// Analyzer computes and caches dirty-ness for parts and components within a
// single generate pass. It is not safe for concurrent use (the pipeline is
// single-threaded, spec §5).
type Analyzer struct {
	snap *snapshot.Snapshot

	partDirty      map[string]bool
	componentDirty map[string]bool
}

// New builds an Analyzer over snap.
func New(snap *snapshot.Snapshot) *Analyzer {
	return &Analyzer{
		snap:           snap,
		partDirty:      make(map[string]bool),
		componentDirty: make(map[string]bool),
	}
}

// IsPartDirty reports whether a part, or any part its cutFace transitively
// references, is dirty.
func (a *Analyzer) IsPartDirty(id string) bool {
	return a.isPartDirty(id, make(map[string]bool))
}

func (a *Analyzer) isPartDirty(id string, visiting map[string]bool) bool {
	if v, ok := a.partDirty[id]; ok {
		return v
	}
	if visiting[id] {
		// Cyclic cutFace reference; treat as not-dirty to break the cycle
		// rather than recursing forever (snapshots are otherwise acyclic).
		return false
	}
	visiting[id] = true

	part, ok := a.snap.Parts[id]
	if !ok {
		a.partDirty[id] = false
		return false
	}
	dirty := part.Attrs.ReadBool("__dirty")
	if !dirty {
		if refID, isUUID := part.Attrs.ReadUUID("cutFace"); isUUID {
			if _, exists := a.snap.Parts[refID.String()]; exists {
				dirty = a.isPartDirty(refID.String(), visiting)
			}
		}
	}
	a.partDirty[id] = dirty
	return dirty
}

// IsComponentDirty reports whether a component, any part it leafs to (and
// that part's cutFace closure), or any descendant component, is dirty.
func (a *Analyzer) IsComponentDirty(id string) bool {
	if v, ok := a.componentDirty[id]; ok {
		return v
	}
	// Pre-seed to break cycles defensively; component trees are acyclic by
	// invariant but a defensive default avoids infinite recursion on bad data.
	a.componentDirty[id] = false

	comp, ok := a.snap.Components[id]
	if !ok {
		return false
	}

	dirty := comp.Attrs.ReadBool("__dirty")
	if !dirty && comp.IsLeaf() {
		if partID := comp.LinkedPartID(); partID != "" {
			dirty = a.IsPartDirty(partID)
		}
	}
	if !dirty {
		for _, childID := range comp.Children {
			if a.IsComponentDirty(childID) {
				dirty = true
				break
			}
		}
	}
	a.componentDirty[id] = dirty
	return dirty
}

// DirtyComponentSet returns every dirty component id in the tree rooted at
// s.RootComponent, with the virtual root (nil UUID) always included so the
// final combine always proceeds.
func (a *Analyzer) DirtyComponentSet() map[string]bool {
	set := make(map[string]bool)
	var walk func(id string)
	walk = func(id string) {
		if _, visited := set[id]; visited {
			return
		}
		if a.IsComponentDirty(id) {
			set[id] = true
		} else {
			set[id] = false
		}
		comp := a.snap.Components[id]
		if comp == nil {
			return
		}
		for _, child := range comp.Children {
			walk(child)
		}
	}
	if a.snap.RootComponent != "" {
		walk(a.snap.RootComponent)
	}
	out := make(map[string]bool)
	for id, d := range set {
		if d {
			out[id] = true
		}
	}
	out[uuid.Nil.String()] = true
	return out
}

// DirtyPartSet returns every part id found dirty during this analysis.
func (a *Analyzer) DirtyPartSet() map[string]bool {
	out := make(map[string]bool)
	for id, d := range a.partDirty {
		if d {
			out[id] = true
		}
	}
	return out
}
