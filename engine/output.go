package engine

import "github.com/katalvlaran/wfc/legend"

// DataRaw returns one entry per grid cell in index order: the collapsed
// variant, or nil for a cell that never collapsed.
func (e *Engine[S]) DataRaw() []*legend.VariantID {
	out := make([]*legend.VariantID, e.cells.Len())
	for i := 0; i < e.cells.Len(); i++ {
		if v, ok := e.cells.At(i).Variant(); ok {
			vv := v
			out[i] = &vv
		}
	}
	return out
}

// Data returns one entry per grid cell in index order, substituting
// fallback for any cell that never collapsed.
func (e *Engine[S]) Data(fallback legend.VariantID) []legend.VariantID {
	out := make([]legend.VariantID, e.cells.Len())
	for i := 0; i < e.cells.Len(); i++ {
		if v, ok := e.cells.At(i).Variant(); ok {
			out[i] = v
		} else {
			out[i] = fallback
		}
	}
	return out
}
