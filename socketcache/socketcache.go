// Package socketcache memoizes the sockets a candidate set exposes toward
// each direction, keyed by a canonical encoding of the candidate set.
//
// The engine repeatedly asks "given this candidate set on one side of an
// edge, which sockets point toward the other side?" during propagation.
// Because candidate sets shrink monotonically and are revisited across many
// propagation steps, caching the per-direction union of sockets avoids
// recomputing it on every edge check.
package socketcache

import (
	"slices"
	"strconv"
	"strings"

	"github.com/katalvlaran/wfc/geometry"
	"github.com/katalvlaran/wfc/legend"
)

// Cache is the two-level candidate_set -> direction -> socket-union map.
// Entries are never evicted: candidate sets only shrink, so the number of
// distinct keys observed is bounded by the total shrinkage events across
// the grid.
type Cache[S comparable] struct {
	rules   *legend.Rules[S]
	entries map[string]map[geometry.DirectionID]map[S]struct{}
}

// New returns an empty cache consulting rules to compute misses.
func New[S comparable](rules *legend.Rules[S]) *Cache[S] {
	return &Cache[S]{
		rules:   rules,
		entries: make(map[string]map[geometry.DirectionID]map[S]struct{}),
	}
}

// Sockets returns the union of sockets exposed toward dir by every variant
// in possibilities, computing and memoizing it on a cache miss.
//
// possibilities may be in any order: the key is derived from the sorted
// members, so every ordering of the same set shares one entry.
func (c *Cache[S]) Sockets(possibilities []legend.VariantID, dir geometry.DirectionID) map[S]struct{} {
	key := canonicalKey(possibilities)

	byDir, ok := c.entries[key]
	if !ok {
		byDir = make(map[geometry.DirectionID]map[S]struct{})
		c.entries[key] = byDir
	}

	sockets, ok := byDir[dir]
	if ok {
		return sockets
	}

	sockets = make(map[S]struct{})
	for _, v := range possibilities {
		rule, ok := c.rules.RuleFor(v)
		if !ok {
			continue
		}
		if socket, ok := rule.SocketFor(dir); ok {
			sockets[socket] = struct{}{}
		}
	}
	byDir[dir] = sockets

	return sockets
}

// canonicalKey encodes a candidate set as a key independent of its current
// insertion order: two sets with the same members, in any order, collapse
// to the same cache entry.
func canonicalKey(possibilities []legend.VariantID) string {
	sorted := make([]int, len(possibilities))
	for i, v := range possibilities {
		sorted[i] = int(v)
	}
	slices.Sort(sorted)

	var b strings.Builder
	for i, v := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}
