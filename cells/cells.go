// Package cells holds the per-cell candidate-set state of a collapse run:
// the candidate sets themselves, their precomputed neighbor lists, and the
// entropy-bucket index the observer consults to pick the next cell.
//
// Every mutator here keeps the EntropyCache invariant: an uncollapsed cell
// appears in exactly one bucket, equal to its current entropy, and a
// collapsed cell appears in none. Propagation, modifiers, and the engine's
// border pass must only touch candidate sets through Collapse and
// RemoveVariant so that invariant never drifts.
package cells

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/katalvlaran/wfc/geometry"
	"github.com/katalvlaran/wfc/legend"
)

// Neighbor is one precomputed in-bounds adjacency: the neighbor's cell
// index and the direction from the owning cell toward it.
type Neighbor struct {
	Index     int
	Direction geometry.DirectionID
}

// Cell is one grid slot's mutable state.
type Cell struct {
	possibilities *orderedSet[legend.VariantID]
	collapsed     bool
	neighbors     []Neighbor
	position      geometry.IPos
}

// Entropy returns |possibilities| for an uncollapsed cell, 0 if collapsed.
func (c *Cell) Entropy() int {
	if c.collapsed {
		return 0
	}
	return c.possibilities.Len()
}

// Collapsed reports whether this cell has been reduced to a single variant.
func (c *Cell) Collapsed() bool {
	return c.collapsed
}

// Possibilities returns the remaining candidate variants, in insertion
// order as adjusted by swap-removals. The returned slice is owned by the
// cell; do not mutate.
func (c *Cell) Possibilities() []legend.VariantID {
	return c.possibilities.Items()
}

// Position returns this cell's cached grid position.
func (c *Cell) Position() geometry.IPos {
	return c.position
}

// Neighbors returns this cell's precomputed in-bounds adjacencies.
func (c *Cell) Neighbors() []Neighbor {
	return c.neighbors
}

// Variant returns the single collapsed variant and true, or the zero value
// and false if the cell is not yet collapsed.
func (c *Cell) Variant() (legend.VariantID, bool) {
	if !c.collapsed {
		return 0, false
	}
	items := c.possibilities.Items()
	return items[0], true
}

// Cells is the full grid's candidate-set state plus its entropy index.
type Cells struct {
	size    geometry.Size
	cellAt  []*Cell
	entropy *EntropyCache
}

// NewCells allocates one Cell per grid index. seeds pre-collapses the named
// indices to their given variant; every other cell starts with the full
// universe of variants and is enrolled in the entropy cache.
//
// Complexity: O(n · d) where n = size.Len() and d = 2·DIM, for neighbor
// precomputation.
func NewCells(size geometry.Size, universe []legend.VariantID, seeds map[int]legend.VariantID) *Cells {
	n := size.Len()
	dim := size.Dim()

	cs := &Cells{
		size:    size,
		cellAt:  make([]*Cell, n),
		entropy: NewEntropyCache(len(universe)),
	}

	for i := 0; i < n; i++ {
		pos := geometry.FromIndex(i, size)

		neighbors := make([]Neighbor, 0, 2*dim)
		for d := 0; d < 2*dim; d++ {
			dir := geometry.DirectionID(d)
			np := pos.Add(dir)
			if size.Contains(np) {
				neighbors = append(neighbors, Neighbor{Index: np.Index(size), Direction: dir})
			}
		}

		cell := &Cell{neighbors: neighbors, position: pos}

		if seed, ok := seeds[i]; ok {
			cell.possibilities = newOrderedSetFrom([]legend.VariantID{seed})
			cell.collapsed = true
		} else {
			cell.possibilities = newOrderedSetFrom(universe)
			cs.entropy.Insert(i, cell.possibilities.Len())
		}

		cs.cellAt[i] = cell
	}

	return cs
}

// Len returns the total number of cells.
func (cs *Cells) Len() int {
	return len(cs.cellAt)
}

// Size returns the grid size these cells were built from.
func (cs *Cells) Size() geometry.Size {
	return cs.size
}

// At returns the cell at index i.
func (cs *Cells) At(i int) *Cell {
	return cs.cellAt[i]
}

// Entropy exposes the underlying entropy-bucket index, for use by Observer
// implementations choosing the next cell.
func (cs *Cells) Entropy() *EntropyCache {
	return cs.entropy
}

// ErrNoPossibilities is returned by Collapse when the chooser is invoked
// against an empty candidate set.
var ErrNoPossibilities = fmt.Errorf("cells: chooser invoked with no possibilities")

// Collapse reduces cell i to a single variant chosen by chooser from its
// current possibilities, removes i from the entropy cache, and marks it
// collapsed.
func (cs *Cells) Collapse(i int, chooser func([]legend.VariantID) (legend.VariantID, error)) error {
	cell := cs.cellAt[i]
	if cell.possibilities.Len() == 0 {
		return ErrNoPossibilities
	}

	variant, err := chooser(cell.possibilities.Items())
	if err != nil {
		return err
	}

	oldEntropy := cell.Entropy()
	cell.possibilities = newOrderedSetFrom([]legend.VariantID{variant})
	cell.collapsed = true
	cs.entropy.Move(i, oldEntropy, 0)

	return nil
}

// RemoveVariant removes v from cell i's possibilities (a no-op if v was
// already absent or the cell is already collapsed), and keeps the entropy
// bucket index in sync.
//
// changed reports whether the candidate set actually shrank. empty reports
// whether the candidate set is now empty, i.e. a contradiction at i: the
// caller must raise it.
func (cs *Cells) RemoveVariant(i int, v legend.VariantID) (changed, empty bool) {
	cell := cs.cellAt[i]
	if cell.collapsed {
		return false, false
	}

	oldEntropy := cell.Entropy()
	if !cell.possibilities.Remove(v) {
		return false, false
	}

	newEntropy := cell.possibilities.Len()
	cs.entropy.Move(i, oldEntropy, newEntropy)

	return true, newEntropy == 0
}

// UncollapsedIndexesAlongDir returns the non-collapsed cell indices on the
// grid face orthogonal to dir: the slab where pos[dir.Axis()] equals 0 if
// dir is even, or size[dir.Axis()]-1 if dir is odd.
func (cs *Cells) UncollapsedIndexesAlongDir(dir geometry.DirectionID) []int {
	axis := dir.Axis()
	var face int
	if dir.Sign() < 0 {
		face = 0
	} else {
		face = cs.size[axis] - 1
	}

	var out []int
	for i, cell := range cs.cellAt {
		if cell.collapsed {
			continue
		}
		if cell.position[axis] == face {
			out = append(out, i)
		}
	}
	return out
}

// Render writes a human-readable grid dump to w, one row per axis-1 slab of
// a 2D slice (cells along axis 0 as columns, axis 1 as rows), intended for
// debugging small grids; higher dimensions are rendered as one table per
// fixed value of the trailing axes.
func (cs *Cells) Render(w io.Writer, format func(*Cell) string) {
	if cs.size.Dim() < 2 {
		cs.renderRow(w, format)
		return
	}

	width, height := cs.size[0], cs.size[1]
	higher := 1
	for _, extent := range cs.size[2:] {
		higher *= extent
	}

	for slab := 0; slab < higher; slab++ {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		for y := 0; y < height; y++ {
			row := make(table.Row, 0, width)
			for x := 0; x < width; x++ {
				idx := slab*width*height + y*width + x
				row = append(row, format(cs.cellAt[idx]))
			}
			t.AppendRow(row)
		}
		t.Render()
	}
}

func (cs *Cells) renderRow(w io.Writer, format func(*Cell) string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	row := make(table.Row, 0, len(cs.cellAt))
	for _, c := range cs.cellAt {
		row = append(row, format(c))
	}
	t.AppendRow(row)
	t.Render()
}
