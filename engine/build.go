package engine

import (
	"github.com/katalvlaran/wfc/geometry"
	"github.com/katalvlaran/wfc/legend"
)

// ApplyExternalBorder constrains every uncollapsed cell on the face
// orthogonal to dir against a fixed external variant array, then
// propagates from any cell whose candidates shrank.
//
// ext is addressed by reflecting each face cell's position one step past
// the grid edge and linearizing it against a size equal to the grid's own
// size with the dir axis collapsed to extent 1 — i.e. one entry per cell on
// that face, in the same column-major order the grid itself uses.
func (e *Engine[S]) ApplyExternalBorder(dir geometry.DirectionID, ext []legend.VariantID) error {
	size := e.cells.Size()
	faceSize := make(geometry.Size, len(size))
	copy(faceSize, size)
	faceSize[dir.Axis()] = 1

	for _, i := range e.cells.UncollapsedIndexesAlongDir(dir) {
		cell := e.cells.At(i)
		reflected := cell.Position().Add(dir)
		idx := reflected.IndexIn(faceSize)
		if idx < 0 || idx >= len(ext) {
			continue
		}

		exposed := e.singletonExposedSocket(ext[idx], dir.Opposite())

		oldEntropy := cell.Entropy()
		candidates := append([]legend.VariantID(nil), cell.Possibilities()...)
		shrank := false

		for _, v := range candidates {
			rule, ok := e.rules.RuleFor(v)
			keep := false
			if ok {
				if socket, ok2 := rule.SocketFor(dir); ok2 {
					keep = e.constraint.Check(socket, exposed)
				}
			}
			if keep {
				continue
			}

			_, empty := e.cells.RemoveVariant(i, v)
			shrank = true
			if empty {
				return &ContradictionError[S]{
					Position:         cell.Position(),
					Direction:        dir,
					NeighborVariants: []legend.VariantID{ext[idx]},
					NeighborSockets:  exposed,
				}
			}
		}

		if shrank && cell.Entropy() != oldEntropy {
			if err := e.propagate(i); err != nil {
				return err
			}
		}
	}

	return nil
}

// singletonExposedSocket returns the one-element socket set that variant v
// exposes toward dir, or an empty set if v has no rule entry for dir.
func (e *Engine[S]) singletonExposedSocket(v legend.VariantID, dir legend.DirectionID) map[S]struct{} {
	exposed := make(map[S]struct{}, 1)
	if rule, ok := e.rules.RuleFor(v); ok {
		if socket, ok2 := rule.SocketFor(dir); ok2 {
			exposed[socket] = struct{}{}
		}
	}
	return exposed
}

// PropagateSeeded runs the modifier chain and a propagation pass for every
// initially collapsed cell, per the build protocol's seeded-cells step.
//
// General propagation only ever reconsiders uncollapsed neighbors, so two
// cells that are both pre-collapsed at seed time are never checked against
// each other by the usual algorithm (neither was uncollapsed when the other
// ran). PropagateSeeded closes that gap with a direct pairwise check
// against already-visited collapsed neighbors before propagating.
func (e *Engine[S]) PropagateSeeded() error {
	for i := 0; i < e.cells.Len(); i++ {
		cell := e.cells.At(i)
		variant, ok := cell.Variant()
		if !ok {
			continue
		}

		if err := e.checkSeededNeighbors(i, variant); err != nil {
			return err
		}

		if e.modifier != nil {
			if err := e.modifier.Modify(variant, e.cells); err != nil {
				return e.wrapModifierError(err)
			}
		}

		if err := e.propagate(i); err != nil {
			return err
		}
	}

	return nil
}

// checkSeededNeighbors verifies cell i's variant against every already
// processed (lower-index) neighbor that is also pre-collapsed.
func (e *Engine[S]) checkSeededNeighbors(i int, variant legend.VariantID) error {
	cell := e.cells.At(i)

	for _, nb := range cell.Neighbors() {
		if nb.Index >= i {
			continue
		}
		neighbor := e.cells.At(nb.Index)
		neighborVariant, ok := neighbor.Variant()
		if !ok {
			continue
		}

		selfRule, ok := e.rules.RuleFor(variant)
		selfOK := ok
		var selfSocket S
		if selfOK {
			selfSocket, selfOK = selfRule.SocketFor(nb.Direction)
		}

		exposed := e.singletonExposedSocket(neighborVariant, nb.Direction.Opposite())

		if selfOK && e.constraint.Check(selfSocket, exposed) {
			continue
		}

		return &ContradictionError[S]{
			Position:         cell.Position(),
			Neighbor:         neighbor.Position(),
			Direction:        nb.Direction,
			NeighborVariants: []legend.VariantID{neighborVariant},
			NeighborSockets:  exposed,
		}
	}

	return nil
}
