package modifier

import (
	"fmt"

	"github.com/katalvlaran/wfc/cells"
	"github.com/katalvlaran/wfc/legend"
)

// EmptiedCellError reports that removing a globally-limited variant left
// cell Index with no remaining candidates. Limit never has propagation
// context (no neighbor/direction) for this kind of emptiness, so it is
// reported standalone; the engine decides how to surface it as a
// contradiction.
type EmptiedCellError struct {
	Index   int
	Variant legend.VariantID
}

func (e *EmptiedCellError) Error() string {
	return fmt.Sprintf("modifier: removing variant %d emptied cell %d", e.Variant, e.Index)
}

// Limit enforces a global per-variant placement quota. Once a limited
// variant's count reaches zero, Limit removes it from every uncollapsed
// cell so it can never be chosen again.
type Limit struct {
	remaining map[legend.VariantID]int
}

// NewLimit returns a Limit enforcing the given per-variant quotas. A
// variant absent from quotas is unrestricted.
func NewLimit(quotas map[legend.VariantID]int) *Limit {
	remaining := make(map[legend.VariantID]int, len(quotas))
	for v, n := range quotas {
		remaining[v] = n
	}
	return &Limit{remaining: remaining}
}

// Modify decrements placed's remaining quota if it has one. When the quota
// reaches zero, placed is pruned from every uncollapsed cell's candidates.
func (l *Limit) Modify(placed legend.VariantID, cs *cells.Cells) error {
	remaining, tracked := l.remaining[placed]
	if !tracked {
		return nil
	}

	remaining--
	l.remaining[placed] = remaining
	if remaining > 0 {
		return nil
	}

	for i := 0; i < cs.Len(); i++ {
		if cs.At(i).Collapsed() {
			continue
		}
		_, empty := cs.RemoveVariant(i, placed)
		if empty {
			return &EmptiedCellError{Index: i, Variant: placed}
		}
	}

	return nil
}

// Remaining returns the current remaining quota for v and whether v is
// tracked at all.
func (l *Limit) Remaining(v legend.VariantID) (int, bool) {
	n, ok := l.remaining[v]
	return n, ok
}
