// Package builder assembles a configured Engine: it validates the
// direction/dimension contract, constructs cells from a seed map, applies
// any external border arrays, and runs the seeded-cell propagation pass.
package builder

import "errors"

// ErrDimensionMismatch indicates the supplied direction enumeration's size
// does not equal 2*DIM for the configured grid size. Raised by Build;
// unrecoverable, per the configuration error class.
var ErrDimensionMismatch = errors.New("builder: direction count does not match 2*dim")

// ErrMissingRules indicates Build was called without WithRules.
var ErrMissingRules = errors.New("builder: no rules configured")

// ErrMissingConstraint indicates Build was called without WithConstraint.
var ErrMissingConstraint = errors.New("builder: no constraint configured")

// ErrMissingObserver indicates Build was called without WithObserver.
var ErrMissingObserver = errors.New("builder: no observer configured")

// ErrInvalidSize indicates a Size with a non-positive extent on some axis.
var ErrInvalidSize = errors.New("builder: size has a non-positive extent")
