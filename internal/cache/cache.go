// Package cache owns the per-part and per-component mesh results and the
// combination-string-keyed CSG result cache, and implements the dirty- and
// removal-driven eviction rules of spec §3/§4.2.
package cache

import (
	"strings"

	"meshforge/internal/combine"
	"meshforge/internal/csg"
	"meshforge/internal/genconfig"
	"meshforge/internal/genlog"
	"meshforge/internal/geom"
	"meshforge/internal/partmesh"
)

// ComponentEntry is the per-component cache entry spec §3 describes.
type ComponentEntry struct {
	combine.Result
	NoneSeamVertices   map[geom.PosKey]bool
	ObjectNodes        []string
	ObjectEdges        []string
	ObjectNodeVertices []geom.Vec3
}

// Context owns every cache table for one generator. It is exclusively
// owned by at most one running generation at a time (spec §5) and is safe
// to reuse, unmodified-but-for-eviction, across repeated Generate calls
// against edits of the same snapshot.
type Context struct {
	parts       map[string]*partmesh.Result
	components  map[string]*ComponentEntry
	combination map[string]csg.Mesh
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{
		parts:       make(map[string]*partmesh.Result),
		components:  make(map[string]*ComponentEntry),
		combination: make(map[string]csg.Mesh),
	}
}

func (c *Context) GetPart(id string) (*partmesh.Result, bool) {
	r, ok := c.parts[id]
	return r, ok
}

func (c *Context) PutPart(id string, r *partmesh.Result) {
	c.parts[id] = r
}

func (c *Context) GetComponent(id string) (*ComponentEntry, bool) {
	r, ok := c.components[id]
	return r, ok
}

func (c *Context) PutComponent(id string, r *ComponentEntry) {
	c.components[id] = r
}

// Get implements combine.Cache.
func (c *Context) Get(key string) (csg.Mesh, bool) {
	m, ok := c.combination[key]
	return m, ok
}

// Put implements combine.Cache.
func (c *Context) Put(key string, mesh csg.Mesh) {
	c.combination[key] = mesh
}

// EvictDirty drops every part/component cache entry whose id is in the
// corresponding dirty set, and every combination-cache entry whose key
// contains a dirty component id as a substring, per spec §4.2.
func (c *Context) EvictDirty(dirtyParts, dirtyComponents map[string]bool) {
	for id := range dirtyParts {
		if _, ok := c.parts[id]; ok {
			delete(c.parts, id)
			debugEvict("part %s dirty", id)
		}
	}
	for id := range dirtyComponents {
		if _, ok := c.components[id]; ok {
			delete(c.components, id)
			debugEvict("component %s dirty", id)
		}
		c.evictCombinationsContaining(id)
	}
}

// EvictRemoved drops the cache entries for an id (part or component) that
// has vanished from the snapshot entirely, cascading into the combination
// cache exactly as dirty eviction does.
func (c *Context) EvictRemoved(id string) {
	delete(c.parts, id)
	delete(c.components, id)
	c.evictCombinationsContaining(id)
}

func (c *Context) evictCombinationsContaining(id string) {
	for key := range c.combination {
		if strings.Contains(key, id) {
			delete(c.combination, key)
			debugEvict("combination %q evicted (contains %s)", key, id)
		}
	}
}

func debugEvict(format string, args ...interface{}) {
	if genconfig.GetCacheEvictDebug() {
		genlog.Debugf(format, args...)
	}
}
