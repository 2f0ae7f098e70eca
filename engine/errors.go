package engine

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/wfc/cells"
	"github.com/katalvlaran/wfc/geometry"
	"github.com/katalvlaran/wfc/legend"
)

// ErrNoPossibilities is raised when an observer's chooser is invoked
// against a cell that already has no remaining candidates.
var ErrNoPossibilities = cells.ErrNoPossibilities

// ErrNoRule is reserved for implementations that choose to surface a
// missing rule lookup explicitly rather than silently treating it as "no
// connection" (the default propagation policy in this engine).
var ErrNoRule = errors.New("engine: no rule for variant")

// ContradictionError reports that propagation emptied a cell's candidate
// set. It is unrecoverable: the engine does not retry or backtrack.
type ContradictionError[S comparable] struct {
	Position         geometry.IPos
	Neighbor         geometry.IPos
	Direction        geometry.DirectionID
	NeighborVariants []legend.VariantID
	NeighborSockets  map[S]struct{}
}

func (e *ContradictionError[S]) Error() string {
	return fmt.Sprintf("engine: contradiction at %v (neighbor %v, direction %d): no remaining candidate is compatible", e.Position, e.Neighbor, e.Direction)
}
