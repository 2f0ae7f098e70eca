package observer

import (
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/wfc/cells"
	"github.com/katalvlaran/wfc/legend"
)

// Shape computes a positional bias added to a candidate variant's base
// weight during a weighted collapse, letting the choice read the already
// collapsed neighborhood around the cell being decided.
type Shape interface {
	Bias(cs *cells.Cells, index int, candidate legend.VariantID) float64
}

// WeightedShape is the neutral shape: no positional influence at all, so a
// Weighted observer using it behaves as plain weight-proportional sampling.
type WeightedShape struct{}

// Bias always returns 0.
func (WeightedShape) Bias(*cells.Cells, int, legend.VariantID) float64 {
	return 0
}

// InformedShape biases a candidate by how well it pairs with already
// collapsed variants within Radius grid steps (Manhattan distance) of the
// cell being decided, scaled by Magnitude. Influence maps a collapsed
// neighbor's variant to the per-candidate affinity it contributes; a nil or
// empty Influence degenerates to WeightedShape's neutral behavior.
type InformedShape struct {
	Radius    int
	Magnitude float64
	Influence map[legend.VariantID]map[legend.VariantID]float64
}

// Bias sums Magnitude * Influence[neighborVariant][candidate] over every
// collapsed cell within Radius of index.
func (s InformedShape) Bias(cs *cells.Cells, index int, candidate legend.VariantID) float64 {
	if len(s.Influence) == 0 || s.Radius <= 0 {
		return 0
	}

	center := cs.At(index).Position()
	contributions := make([]float64, 0, 8)

	for i := 0; i < cs.Len(); i++ {
		if i == index {
			continue
		}
		neighbor := cs.At(i)
		variant, collapsed := neighbor.Variant()
		if !collapsed {
			continue
		}
		if manhattan(center, neighbor.Position()) > s.Radius {
			continue
		}
		affinities, ok := s.Influence[variant]
		if !ok {
			continue
		}
		contributions = append(contributions, affinities[candidate])
	}

	return s.Magnitude * floats.Sum(contributions)
}

// MultiShape sums the bias of every wrapped Shape, letting a Weighted
// observer combine independent influences (e.g. plain weighting plus
// neighborhood affinity) without either one knowing about the other.
type MultiShape []Shape

// Bias sums Bias across every wrapped Shape.
func (m MultiShape) Bias(cs *cells.Cells, index int, candidate legend.VariantID) float64 {
	total := 0.0
	for _, s := range m {
		total += s.Bias(cs, index, candidate)
	}
	return total
}

func manhattan(a, b []int) int {
	total := 0
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		total += d
	}
	return total
}
