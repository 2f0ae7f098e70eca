package observer

import (
	"math/rand/v2"

	"github.com/katalvlaran/wfc/cells"
	"github.com/katalvlaran/wfc/legend"
)

// Weighted is the weighted-random reference Observer: picks uniformly at
// random among the lowest-entropy bucket's members, then chooses a variant
// proportional to Weights, optionally biased by Shape toward the picked
// cell's neighborhood.
type Weighted struct {
	rng     *rand.Rand
	Weights map[legend.VariantID]float64
	Shape   Shape
}

// NewWeighted returns a Weighted observer seeded deterministically.
func NewWeighted(seed [32]byte, weights map[legend.VariantID]float64, shape Shape) *Weighted {
	return &Weighted{
		rng:     rand.New(rand.NewChaCha8(seed)),
		Weights: weights,
		Shape:   shape,
	}
}

// Observe implements Observer.
func (w *Weighted) Observe(cs *cells.Cells) (*int, error) {
	_, members, ok := cs.Entropy().Lowest()
	if !ok {
		return nil, nil
	}

	index := members[w.rng.IntN(len(members))]
	chooser := func(possibilities []legend.VariantID) (legend.VariantID, error) {
		return weightedChoice(possibilities, w.Weights, w.Shape, cs, index, w.rng)
	}
	if err := cs.Collapse(index, chooser); err != nil {
		return nil, err
	}

	return &index, nil
}
