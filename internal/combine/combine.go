// Package combine implements the component combiner: it groups a
// component's children by contiguous combine mode, unions/subtracts them
// via the CSG engine, and recombines the result into quads, per spec §4.5.
package combine

import (
	"meshforge/internal/csg"
	"meshforge/internal/geom"
	"meshforge/internal/quadrecover"
	"meshforge/internal/snapshot"
)

// Operand is one child's contribution to a combine step: its stable id
// (the owning component id, so dirty-closure substring eviction still
// works on cached combination strings), its mesh, the diagonals recorded
// for that mesh's quads, and its combine mode.
type Operand struct {
	ID        string
	Mesh      csg.Mesh
	Diagonals quadrecover.SharedQuadEdges
	Mode      snapshot.CombineMode
}

// Cache memoizes the mesh produced by a combination-string key, including
// memoizing a failed (null) result, per spec §4.5.
type Cache interface {
	Get(key string) (csg.Mesh, bool)
	Put(key string, mesh csg.Mesh)
}

// Result is what combining a group/subgroup/component produces.
type Result struct {
	ID                 string
	Mesh               csg.Mesh
	Diagonals          quadrecover.SharedQuadEdges
	IncombinableMeshes []csg.Mesh
}

// CombineChildren implements spec §4.5 steps 1-5 over an already-resolved
// list of child operands (in declared order).
func CombineChildren(cache Cache, operands []Operand) Result {
	groups := groupByMode(operands)

	var groupResults []Operand
	var incombinable []csg.Mesh

	for _, g := range groups {
		if g[0].Mode == snapshot.CombineUncombined {
			for _, op := range g {
				if !csg.IsNull(op.Mesh) {
					incombinable = append(incombinable, op.Mesh)
				}
			}
			continue
		}
		subgroups := groupByColor(g)
		var subResults []Operand
		for _, sg := range subgroups {
			r := combineMultipleMeshes(cache, sg, true)
			incombinable = append(incombinable, r.IncombinableMeshes...)
			subResults = append(subResults, Operand{ID: r.ID, Mesh: r.Mesh, Diagonals: r.Diagonals, Mode: g[0].Mode})
		}
		r := combineMultipleMeshes(cache, subResults, true)
		incombinable = append(incombinable, r.IncombinableMeshes...)
		groupResults = append(groupResults, Operand{ID: r.ID, Mesh: r.Mesh, Diagonals: r.Diagonals, Mode: g[0].Mode})
	}

	final := combineMultipleMeshes(cache, groupResults, true)
	final.IncombinableMeshes = append(final.IncombinableMeshes, incombinable...)
	return final
}

// groupByMode splits operands into contiguous runs sharing the same
// combine mode, starting a new group whenever the mode changes or the
// current mode is Inversion (every inversion begins its own group).
func groupByMode(operands []Operand) [][]Operand {
	var groups [][]Operand
	var cur []Operand
	for _, op := range operands {
		if len(cur) == 0 {
			cur = append(cur, op)
			continue
		}
		if op.Mode != cur[len(cur)-1].Mode || cur[len(cur)-1].Mode == snapshot.CombineInversion {
			groups = append(groups, cur)
			cur = []Operand{op}
			continue
		}
		cur = append(cur, op)
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups
}

// groupByColor subdivides a mode group into color subgroups. The upstream
// implementation this is ported from forces every entry's effective color
// label to the constant "white", which in effect collapses every group
// into a single subgroup; that behavior (and bug) is preserved verbatim
// per the open question it was flagged under.
func groupByColor(operands []Operand) [][]Operand {
	label := func(Operand) string { return "white" }
	var groups [][]Operand
	var cur []Operand
	var curLabel string
	for _, op := range operands {
		l := label(op)
		if len(cur) > 0 && l != curLabel {
			groups = append(groups, cur)
			cur = nil
		}
		curLabel = l
		cur = append(cur, op)
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups
}

// combineMultipleMeshes iterates operands in order, starting from the
// first non-null combinable one as the accumulator, applying Diff when an
// operand's mode is Inversion and Union otherwise. Each step is cached
// under a deterministic combination string; non-combinable operands are
// collected into IncombinableMeshes instead of being combined.
func combineMultipleMeshes(cache Cache, operands []Operand, recombine bool) Result {
	startIdx := -1
	for i, op := range operands {
		if !csg.IsNull(op.Mesh) {
			startIdx = i
			break
		}
	}
	if startIdx == -1 {
		return Result{ID: concatIDs(operands)}
	}

	acc := operands[startIdx].Mesh
	accDiagonals := quadrecover.SharedQuadEdges{}
	accDiagonals.Merge(operands[startIdx].Diagonals)
	comboStr := operands[startIdx].ID
	var incombinable []csg.Mesh

	for i := startIdx + 1; i < len(operands); i++ {
		op := operands[i]
		if csg.IsNull(op.Mesh) {
			continue
		}
		if !csg.IsCombinable(acc, op.Mesh) {
			incombinable = append(incombinable, op.Mesh)
			continue
		}
		sym := "+"
		if op.Mode == snapshot.CombineInversion {
			sym = "−"
		}
		comboStr = comboStr + sym + op.ID

		key := comboStr
		if recombine {
			key += "!"
		}
		if cached, ok := cache.Get(key); ok {
			if !csg.IsNull(cached) {
				acc = csg.Mesh{
					Vertices:   append([]geom.Vec3(nil), cached.Vertices...),
					SourceNode: append([]int(nil), cached.SourceNode...),
					Faces:      append([]geom.Face(nil), cached.Faces...),
				}
				accDiagonals.Merge(op.Diagonals)
			}
			continue
		}

		opKind := csg.Union
		if op.Mode == snapshot.CombineInversion {
			opKind = csg.Difference
		}
		result := csg.Combine(acc, op.Mesh, opKind)

		diagonals := quadrecover.SharedQuadEdges{}
		diagonals.Merge(accDiagonals)
		diagonals.Merge(op.Diagonals)

		if recombine && !csg.IsNull(result) {
			recovered := quadrecover.Recover(result.Vertices, result.Faces, diagonals)
			if geom.IsWatertight(recovered) {
				result.Faces = recovered
			}
		}

		cache.Put(key, result)
		if csg.IsNull(result) {
			continue
		}
		acc = result
		accDiagonals = diagonals
	}

	return Result{ID: comboStr, Mesh: acc, Diagonals: accDiagonals, IncombinableMeshes: incombinable}
}

func concatIDs(operands []Operand) string {
	s := ""
	for i, op := range operands {
		if i > 0 {
			s += "+"
		}
		s += op.ID
	}
	return s
}
