// Package modifier implements the post-collapse hook: after every
// successful collapse, each modifier in a chain gets a chance to mutate any
// uncollapsed cell's candidate set, through the same mutators propagation
// uses so the entropy cache invariant never drifts.
package modifier

import (
	"github.com/katalvlaran/wfc/cells"
	"github.com/katalvlaran/wfc/legend"
)

// Modifier is invoked after each successful collapse with the variant that
// was just placed.
type Modifier interface {
	Modify(placed legend.VariantID, cs *cells.Cells) error
}

// Chain runs a left-to-right sequence of modifiers on every collapse.
type Chain []Modifier

// Modify invokes every modifier in order, stopping at the first error.
func (c Chain) Modify(placed legend.VariantID, cs *cells.Cells) error {
	for _, m := range c {
		if err := m.Modify(placed, cs); err != nil {
			return err
		}
	}
	return nil
}
