package observer

import (
	"math/rand/v2"

	"github.com/katalvlaran/wfc/cells"
	"github.com/katalvlaran/wfc/legend"
)

// UniformChooser returns a Chooser that picks uniformly at random among the
// live candidates, driven by rng.
func UniformChooser(rng *rand.Rand) Chooser {
	return func(possibilities []legend.VariantID) (legend.VariantID, error) {
		if len(possibilities) == 0 {
			return 0, cells.ErrNoPossibilities
		}
		return possibilities[rng.IntN(len(possibilities))], nil
	}
}

// weightedChoice samples one variant from possibilities proportional to a
// per-variant base weight plus shape's positional bias for the cell at
// index. A variant absent from weights is treated as weight 0. If every
// candidate ends up at weight 0, falls back to uniform so the collapse can
// still proceed.
func weightedChoice(possibilities []legend.VariantID, weights map[legend.VariantID]float64, shape Shape, cs *cells.Cells, index int, rng *rand.Rand) (legend.VariantID, error) {
	if len(possibilities) == 0 {
		return 0, cells.ErrNoPossibilities
	}

	cumulative := make([]float64, len(possibilities))
	total := 0.0
	for i, v := range possibilities {
		w := weights[v]
		if shape != nil {
			w += shape.Bias(cs, index, v)
		}
		if w < 0 {
			w = 0
		}
		total += w
		cumulative[i] = total
	}

	if total <= 0 {
		return possibilities[rng.IntN(len(possibilities))], nil
	}

	target := rng.Float64() * total
	for i, c := range cumulative {
		if target < c {
			return possibilities[i], nil
		}
	}
	return possibilities[len(possibilities)-1], nil
}
