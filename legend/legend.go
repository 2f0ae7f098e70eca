// Package legend provides the bidirectional interning tables ("Legend") that
// map user-facing Variant and Direction values to the dense integer ID
// spaces the collapse engine's hot path operates on, plus the Rules
// structure those IDs index into.
//
// Socket values are deliberately *not* interned (see SPEC_FULL.md §3): they
// stay as the caller's own comparable type S throughout, so a Constraint can
// still inspect their real structure (needed by set-valued sockets).
//
// Construction is deterministic: both ID spaces are assigned by sorting the
// distinct values in natural order, then enumerating from zero, exactly as
// specified. Legend and Rules are built once and never mutate afterward.
package legend

import (
	"cmp"
	"slices"

	"github.com/katalvlaran/wfc/geometry"
)

// VariantID is a dense identifier for one variant (tile kind), assigned in
// the variant's sorted order.
type VariantID int

// DirectionID re-exports geometry's direction ID type: direction arithmetic
// lives in geometry, but directions are interned here alongside variants.
type DirectionID = geometry.DirectionID

// Legend is the bidirectional interning table for a pair of user-facing
// types V (variant) and D (direction). It is built once by NewLegend and
// never mutated.
type Legend[V cmp.Ordered, D cmp.Ordered] struct {
	variants    []V
	variantByID map[V]VariantID

	directions    []D
	directionByID map[D]DirectionID
}

// NewLegend builds a Legend from the distinct variant and direction values
// present in rule table keys and their per-direction entries. Both ID
// spaces are contiguous [0, n) and assigned in sorted order.
//
// Complexity: O(n log n + m log m) where n = distinct variants, m = distinct
// directions.
func NewLegend[V cmp.Ordered, D cmp.Ordered](variants []V, directions []D) *Legend[V, D] {
	sortedVariants := uniqueSorted(variants)
	sortedDirections := uniqueSorted(directions)

	l := &Legend[V, D]{
		variants:      sortedVariants,
		variantByID:   make(map[V]VariantID, len(sortedVariants)),
		directions:    sortedDirections,
		directionByID: make(map[D]DirectionID, len(sortedDirections)),
	}

	for i, v := range sortedVariants {
		l.variantByID[v] = VariantID(i)
	}
	for i, d := range sortedDirections {
		l.directionByID[d] = DirectionID(i)
	}

	return l
}

// VariantID returns the dense ID for v, and whether v is known to the legend.
func (l *Legend[V, D]) VariantID(v V) (VariantID, bool) {
	id, ok := l.variantByID[v]
	return id, ok
}

// Variant returns the original value interned under id. Panics if id is out
// of range, which indicates a programmer error (an ID from a foreign legend).
func (l *Legend[V, D]) Variant(id VariantID) V {
	return l.variants[id]
}

// DirectionID returns the dense ID for d, and whether d is known to the legend.
func (l *Legend[V, D]) DirectionID(d D) (DirectionID, bool) {
	id, ok := l.directionByID[d]
	return id, ok
}

// Direction returns the original value interned under id.
func (l *Legend[V, D]) Direction(id DirectionID) D {
	return l.directions[id]
}

// NumVariants returns the size of the Variant ID space.
func (l *Legend[V, D]) NumVariants() int {
	return len(l.variants)
}

// NumDirections returns the size of the Direction ID space (2*DIM when the
// legend was built from a well-formed direction set).
func (l *Legend[V, D]) NumDirections() int {
	return len(l.directions)
}

// AllVariantIDs returns every interned VariantID, in ID order.
func (l *Legend[V, D]) AllVariantIDs() []VariantID {
	ids := make([]VariantID, len(l.variants))
	for i := range l.variants {
		ids[i] = VariantID(i)
	}
	return ids
}

func uniqueSorted[T cmp.Ordered](values []T) []T {
	seen := make(map[T]struct{}, len(values))
	out := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
