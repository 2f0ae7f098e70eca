// Package wfc is a constraint-propagation engine for generating a finite
// N-dimensional grid of discrete cells whose contents satisfy local
// adjacency rules, using the Wave Function Collapse algorithm.
//
// Callers provide a set of variants (tile kinds), a set of rules declaring
// which socket each variant exposes on each axial direction, and a
// constraint predicate that decides whether two opposing sockets are
// compatible. The engine produces either a fully collapsed grid or reports
// a contradiction.
//
// This package is a thin facade over builder, engine, and legend: Session
// wraps a built Engine together with the Legend needed to translate between
// a caller's own variant/direction types and the dense integer IDs the
// collapse hot path actually operates on.
package wfc
