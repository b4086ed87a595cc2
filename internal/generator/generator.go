// Package generator wires the full pipeline together: indexing, mirror
// preprocessing, dirty analysis, per-part building, component combination
// and post-processing, per spec §2/§5.
package generator

import (
	"fmt"

	"github.com/google/uuid"

	"meshforge/internal/cache"
	"meshforge/internal/combine"
	"meshforge/internal/csg"
	"meshforge/internal/dirty"
	"meshforge/internal/genlog"
	"meshforge/internal/geom"
	"meshforge/internal/mirror"
	"meshforge/internal/noderef"
	"meshforge/internal/partmesh"
	"meshforge/internal/postprocess"
	"meshforge/internal/profiling"
	"meshforge/internal/snapshot"
	"meshforge/pkg/meshmodel"
)

// Generator is the single entry point into the mesh pipeline. It owns
// exactly one cache.Context, which may be reused across repeated Generate
// calls against edits of the same snapshot (spec §5); it is not safe for
// concurrent use — callers wanting parallelism run independent Generator
// instances (internal/genpool does this across goroutines).
type Generator struct {
	cache *cache.Context

	// seenParts/seenComponents record every id a prior Generate call saw,
	// so the next call can tell a dirty id (still present, re-evicted by
	// EvictDirty) apart from a removed id (gone from the snapshot
	// entirely) and evict the latter via cache.EvictRemoved, per spec §3's
	// Lifecycle rule.
	seenParts      map[string]bool
	seenComponents map[string]bool
}

// New returns a Generator with a fresh, empty cache.
func New() *Generator {
	return &Generator{
		cache:          cache.NewContext(),
		seenParts:      make(map[string]bool),
		seenComponents: make(map[string]bool),
	}
}

// evictRemovedIDs drops cache entries for any part/component this Generator
// has previously built but which no longer exists in snap, then records
// snap's current id sets for the next call.
func (g *Generator) evictRemovedIDs(snap *snapshot.Snapshot) {
	for id := range g.seenParts {
		if _, ok := snap.Parts[id]; !ok {
			g.cache.EvictRemoved(id)
			delete(g.seenParts, id)
		}
	}
	for id := range g.seenComponents {
		if _, ok := snap.Components[id]; !ok {
			g.cache.EvictRemoved(id)
			delete(g.seenComponents, id)
		}
	}
	for id := range snap.Parts {
		g.seenParts[id] = true
	}
	for id := range snap.Components {
		g.seenComponents[id] = true
	}
}

// Generate runs the full pipeline against snap and returns the resulting
// Object. snap is mutated in place by mirror preprocessing.
func (g *Generator) Generate(snap *snapshot.Snapshot) (*meshmodel.Object, error) {
	defer profiling.Track("generator.Generate")()

	if snap.RootComponent == "" {
		return nil, fmt.Errorf("generator: snapshot has no root component")
	}

	func() {
		defer profiling.Track("generator.mirror")()
		mirror.Preprocess(snap)
	}()

	idx := func() *snapshot.Index {
		defer profiling.Track("generator.index")()
		return snapshot.BuildIndex(snap)
	}()

	g.evictRemovedIDs(snap)

	da := dirty.New(snap)
	dirtyComponents := da.DirtyComponentSet()
	dirtyParts := da.DirtyPartSet()
	g.cache.EvictDirty(dirtyParts, dirtyComponents)

	reg := noderef.NewRegistry()

	var result combine.Result
	var noneSeam map[geom.PosKey]bool
	func() {
		defer profiling.Track("generator.combine")()
		result, noneSeam = g.combineComponent(snap, idx, reg, snap.RootComponent)
	}()

	nodes, edges := g.collectObjectGraph(snap, idx, snap.RootComponent, map[string]bool{})

	var obj *meshmodel.Object
	func() {
		defer profiling.Track("generator.postprocess")()
		obj = postprocess.Finalize(snap, reg, result, noneSeam, nodes, edges, uuid.New().String())
	}()
	return obj, nil
}

// combineComponent recursively resolves a component's contribution: a leaf
// builds (or reuses the cached build of) its linked part; a branch combines
// its children per spec §4.5.
func (g *Generator) combineComponent(snap *snapshot.Snapshot, idx *snapshot.Index, reg *noderef.Registry, compID string) (combine.Result, map[geom.PosKey]bool) {
	comp, ok := snap.Components[compID]
	if !ok {
		return combine.Result{ID: compID}, nil
	}

	if comp.IsLeaf() {
		partID := comp.LinkedPartID()
		res := g.buildPartCached(snap, idx, reg, partID)

		mesh := csg.Mesh{}
		if res.Joined && res.IsSuccessful {
			mesh = res.Mesh
		}
		noneSeam := make(map[geom.PosKey]bool, len(res.Vertices))
		for _, v := range res.Vertices {
			noneSeam[geom.KeyOf(v)] = true
		}
		return combine.Result{ID: compID, Mesh: mesh, Diagonals: res.Diagonals}, noneSeam
	}

	var operands []combine.Operand
	noneSeam := make(map[geom.PosKey]bool)
	for _, childID := range comp.Children {
		childComp, ok := snap.Components[childID]
		if !ok {
			genlog.Warnf("component %s references missing child %s", compID, childID)
			continue
		}
		childResult, childNoneSeam := g.combineComponent(snap, idx, reg, childID)
		for k := range childNoneSeam {
			noneSeam[k] = true
		}
		operands = append(operands, combine.Operand{
			ID:        childID,
			Mesh:      childResult.Mesh,
			Diagonals: childResult.Diagonals,
			Mode:      childComp.Mode(),
		})
	}

	final := combine.CombineChildren(g.cache, operands)
	g.cache.PutComponent(compID, &cache.ComponentEntry{Result: final, NoneSeamVertices: noneSeam})
	return final, noneSeam
}

func (g *Generator) buildPartCached(snap *snapshot.Snapshot, idx *snapshot.Index, reg *noderef.Registry, partID string) *partmesh.Result {
	if cached, ok := g.cache.GetPart(partID); ok {
		return cached
	}
	res, err := partmesh.Build(snap, idx, partID, reg)
	if err != nil {
		genlog.Warnf("part %s failed to build: %v", partID, err)
		res = &partmesh.Result{IsSuccessful: false}
	}
	g.cache.PutPart(partID, res)
	return res
}

// collectObjectGraph walks the component tree gathering every leaf part's
// presentational node/edge data, for the Object's Nodes/Edges fields.
func (g *Generator) collectObjectGraph(snap *snapshot.Snapshot, idx *snapshot.Index, compID string, visited map[string]bool) ([]meshmodel.NodeRef, []meshmodel.EdgeRef) {
	if visited[compID] {
		return nil, nil
	}
	visited[compID] = true

	comp, ok := snap.Components[compID]
	if !ok {
		return nil, nil
	}
	if comp.IsLeaf() {
		partID := comp.LinkedPartID()
		res, ok := g.cache.GetPart(partID)
		if !ok || res == nil {
			return nil, nil
		}
		var nodes []meshmodel.NodeRef
		for i, id := range res.ObjectNodes {
			if i < len(res.ObjectNodeVertices) {
				nodes = append(nodes, meshmodel.NodeRef{ID: id, Position: res.ObjectNodeVertices[i]})
			}
		}
		var edges []meshmodel.EdgeRef
		for _, eid := range res.ObjectEdges {
			if e, ok := snap.Edges[eid]; ok {
				edges = append(edges, meshmodel.EdgeRef{ID: eid, From: e.From, To: e.To})
			}
		}
		return nodes, edges
	}

	var nodes []meshmodel.NodeRef
	var edges []meshmodel.EdgeRef
	for _, childID := range comp.Children {
		n, e := g.collectObjectGraph(snap, idx, childID, visited)
		nodes = append(nodes, n...)
		edges = append(edges, e...)
	}
	return nodes, edges
}
