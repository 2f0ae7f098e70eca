package builder

import (
	"cmp"
	"fmt"

	"github.com/katalvlaran/wfc/cells"
	"github.com/katalvlaran/wfc/constraint"
	"github.com/katalvlaran/wfc/engine"
	"github.com/katalvlaran/wfc/geometry"
	"github.com/katalvlaran/wfc/legend"
	"github.com/katalvlaran/wfc/modifier"
	"github.com/katalvlaran/wfc/observer"
)

type seed[V any] struct {
	pos     geometry.IPos
	variant V
}

type border[D, V any] struct {
	dir      D
	variants []V
}

// Builder accumulates the configuration for one collapse run: grid size,
// rules, pre-collapsed seeds, external borders, and the three pluggable
// capabilities. Build validates everything and returns a ready Engine.
//
// Builder is cloneable: Clone returns an independent copy so a caller can
// vary one setting (e.g. the observer's seed) across repeated runs without
// re-declaring the whole configuration.
type Builder[V cmp.Ordered, D cmp.Ordered, S comparable] struct {
	size geometry.Size

	rules *legend.RuleBuilder[V, D, S]
	seeds []seed[V]

	borders []border[D, V]

	observer   observer.Observer
	modifier   modifier.Modifier
	constraint constraint.Constraint[S]
}

// New returns an empty Builder for a grid of the given size. size must have
// a positive extent on every axis.
func New[V cmp.Ordered, D cmp.Ordered, S comparable](size geometry.Size) *Builder[V, D, S] {
	return &Builder[V, D, S]{size: size}
}

// WithRules attaches the variant/direction/socket rule table.
func (b *Builder[V, D, S]) WithRules(rules *legend.RuleBuilder[V, D, S]) *Builder[V, D, S] {
	b.rules = rules
	return b
}

// WithSeed pre-collapses the cell at pos to variant.
func (b *Builder[V, D, S]) WithSeed(pos geometry.IPos, variant V) *Builder[V, D, S] {
	b.seeds = append(b.seeds, seed[V]{pos: pos, variant: variant})
	return b
}

// WithExternalBorder attaches a fixed external variant array for the face
// orthogonal to dir, one entry per cell on that face.
func (b *Builder[V, D, S]) WithExternalBorder(dir D, variants []V) *Builder[V, D, S] {
	b.borders = append(b.borders, border[D, V]{dir: dir, variants: variants})
	return b
}

// WithObserver sets the Observer capability. Required.
func (b *Builder[V, D, S]) WithObserver(obs observer.Observer) *Builder[V, D, S] {
	b.observer = obs
	return b
}

// WithModifier sets the Modifier capability. Optional; defaults to an empty
// chain (no post-collapse adjustments).
func (b *Builder[V, D, S]) WithModifier(mod modifier.Modifier) *Builder[V, D, S] {
	b.modifier = mod
	return b
}

// WithConstraint sets the Constraint capability. Required.
func (b *Builder[V, D, S]) WithConstraint(cnst constraint.Constraint[S]) *Builder[V, D, S] {
	b.constraint = cnst
	return b
}

// Clone returns an independent copy of b. Slices are copied by value so
// appending to the clone's seeds or borders does not affect the original.
func (b *Builder[V, D, S]) Clone() *Builder[V, D, S] {
	clone := *b
	clone.seeds = append([]seed[V](nil), b.seeds...)
	clone.borders = append([]border[D, V](nil), b.borders...)
	return &clone
}

// Build validates the configuration and constructs a ready-to-run Engine,
// plus the Legend used to translate between caller types and dense IDs.
//
// Build protocol: validate dimensions, build cells from the seed set, apply
// every external border (propagating from any face cell it shrinks), then
// run the modifier/propagation pass for every initially collapsed cell.
func (b *Builder[V, D, S]) Build() (*engine.Engine[S], *legend.Legend[V, D], error) {
	for axis, extent := range b.size {
		if extent <= 0 {
			return nil, nil, fmt.Errorf("%w: axis %d has extent %d", ErrInvalidSize, axis, extent)
		}
	}
	if b.rules == nil {
		return nil, nil, ErrMissingRules
	}
	if b.constraint == nil {
		return nil, nil, ErrMissingConstraint
	}
	if b.observer == nil {
		return nil, nil, ErrMissingObserver
	}

	rules, lg := b.rules.Build()

	dim := b.size.Dim()
	if lg.NumDirections() != 2*dim {
		return nil, nil, fmt.Errorf("%w: dim=%d wants %d directions, rules use %d", ErrDimensionMismatch, dim, 2*dim, lg.NumDirections())
	}

	resolvedSeeds := make(map[int]legend.VariantID, len(b.seeds))
	for _, s := range b.seeds {
		vid, ok := lg.VariantID(s.variant)
		if !ok {
			return nil, nil, fmt.Errorf("builder: seed at %v uses unknown variant %v", s.pos, s.variant)
		}
		resolvedSeeds[s.pos.Index(b.size)] = vid
	}

	cs := cells.NewCells(b.size, lg.AllVariantIDs(), resolvedSeeds)

	mod := b.modifier
	if mod == nil {
		mod = modifier.Chain{}
	}

	eng := engine.New[S](cs, rules, b.constraint, b.observer, mod)

	for _, brd := range b.borders {
		dirID, ok := lg.DirectionID(brd.dir)
		if !ok {
			return nil, nil, fmt.Errorf("builder: external border uses unknown direction %v", brd.dir)
		}
		variantIDs := make([]legend.VariantID, len(brd.variants))
		for i, v := range brd.variants {
			vid, ok := lg.VariantID(v)
			if !ok {
				return nil, nil, fmt.Errorf("builder: external border uses unknown variant %v", v)
			}
			variantIDs[i] = vid
		}
		if err := eng.ApplyExternalBorder(dirID, variantIDs); err != nil {
			return nil, nil, err
		}
	}

	if err := eng.PropagateSeeded(); err != nil {
		return nil, nil, err
	}

	return eng, lg, nil
}
