// Package engine owns the cell state, rules, socket cache, and the three
// pluggable capabilities (observer, modifier, constraint), and runs the
// observe -> modify -> propagate loop that is the core of a collapse run.
//
// Scheduling is single-threaded and cooperative: a collapse step always
// runs to completion or to a ContradictionError, with no internal
// parallelism and no suspension points. A host that wants to pause between
// steps calls Step repeatedly instead of Run.
package engine

import (
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/wfc/cells"
	"github.com/katalvlaran/wfc/constraint"
	"github.com/katalvlaran/wfc/internal/logging"
	"github.com/katalvlaran/wfc/legend"
	"github.com/katalvlaran/wfc/modifier"
	"github.com/katalvlaran/wfc/observer"
	"github.com/katalvlaran/wfc/socketcache"
)

// Engine runs a single collapse over a fixed grid. It owns every piece of
// mutable state for the duration of the run: cells, the socket cache, and
// whatever internal state the observer and modifier carry.
type Engine[S comparable] struct {
	cells      *cells.Cells
	rules      *legend.Rules[S]
	cache      *socketcache.Cache[S]
	constraint constraint.Constraint[S]
	observer   observer.Observer
	modifier   modifier.Modifier

	log *logrus.Entry
}

// New builds an Engine over an already-constructed Cells. It does not run
// the build protocol (external borders, seeded-cell propagation); callers
// needing that should go through the builder package, which calls
// ApplyExternalBorder and PropagateSeeded before handing the engine back.
func New[S comparable](cs *cells.Cells, rules *legend.Rules[S], cnst constraint.Constraint[S], obs observer.Observer, mod modifier.Modifier) *Engine[S] {
	return &Engine[S]{
		cells:      cs,
		rules:      rules,
		cache:      socketcache.New(rules),
		constraint: cnst,
		observer:   obs,
		modifier:   mod,
		log:        logging.Default().WithField("run_id", xid.New().String()),
	}
}

// Cells exposes the underlying cell state, e.g. for reading final output.
func (e *Engine[S]) Cells() *cells.Cells {
	return e.cells
}

// Step performs one collapse step: the observer selects and collapses a
// cell, the modifier chain runs against the placed variant, and the change
// propagates to neighbors.
func (e *Engine[S]) Step() (Observation, error) {
	index, err := e.observer.Observe(e.cells)
	if err != nil {
		e.log.WithError(err).Warn("observer failed")
		return Observation{}, err
	}
	if index == nil {
		return Complete(), nil
	}

	variant, _ := e.cells.At(*index).Variant()
	e.log.WithFields(logrus.Fields{"index": *index, "variant": int(variant)}).Debug("collapsed cell")

	if e.modifier != nil {
		if err := e.modifier.Modify(variant, e.cells); err != nil {
			return Observation{}, e.wrapModifierError(err)
		}
	}

	if err := e.propagate(*index); err != nil {
		return Observation{}, err
	}

	return Incomplete(*index), nil
}

// Run invokes Step until it reports completion or returns an error.
func (e *Engine[S]) Run() (Observation, error) {
	for {
		obs, err := e.Step()
		if err != nil {
			return Observation{}, err
		}
		if obs.IsComplete() {
			return obs, nil
		}
	}
}

// wrapModifierError turns a modifier.EmptiedCellError into the same
// ContradictionError shape propagation raises, so callers handle both
// uniformly. A modifier-caused emptiness has no propagation edge, so
// Neighbor and Direction are left at their zero values.
func (e *Engine[S]) wrapModifierError(err error) error {
	if emptied, ok := err.(*modifier.EmptiedCellError); ok {
		return &ContradictionError[S]{
			Position: e.cells.At(emptied.Index).Position(),
		}
	}
	return err
}
