package engine

import "github.com/katalvlaran/wfc/legend"

// propagate runs the depth-first, stack-based fixed-point algorithm
// starting from the just-changed cell at index start. Edges pop in LIFO
// order, which is deterministic given deterministic observer choices.
func (e *Engine[S]) propagate(start int) error {
	stack := []int{start}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		source := e.cells.At(i)
		sourcePossibilities := source.Possibilities()

		for _, nb := range source.Neighbors() {
			neighbor := e.cells.At(nb.Index)
			if neighbor.Collapsed() {
				continue
			}

			oldEntropy := neighbor.Entropy()
			exposed := e.cache.Sockets(sourcePossibilities, nb.Direction)

			candidates := append([]legend.VariantID(nil), neighbor.Possibilities()...)
			shrank := false

			for _, v := range candidates {
				if e.compatible(v, nb.Direction, exposed) {
					continue
				}

				_, empty := e.cells.RemoveVariant(nb.Index, v)
				shrank = true

				if empty {
					return &ContradictionError[S]{
						Position:         neighbor.Position(),
						Neighbor:         source.Position(),
						Direction:        nb.Direction,
						NeighborVariants: append([]legend.VariantID(nil), sourcePossibilities...),
						NeighborSockets:  exposed,
					}
				}
			}

			if shrank && neighbor.Entropy() != oldEntropy {
				stack = append(stack, nb.Index)
			}
		}
	}

	return nil
}

// compatible reports whether variant v, viewed from the far side of an edge
// pointing in dir, has a socket compatible with the exposed set coming from
// the near side. v exposes its socket toward the near side on the opposite
// direction, since dir is the near-to-far direction.
func (e *Engine[S]) compatible(v legend.VariantID, dir legend.DirectionID, exposed map[S]struct{}) bool {
	rule, ok := e.rules.RuleFor(v)
	if !ok {
		return false
	}
	socket, ok := rule.SocketFor(dir.Opposite())
	if !ok {
		return false
	}
	return e.constraint.Check(socket, exposed)
}
