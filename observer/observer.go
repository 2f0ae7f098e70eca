// Package observer implements the pluggable cell/variant selection step:
// consult the entropy cache for the lowest non-empty bucket, pick one
// member, and collapse it through a variant chooser.
package observer

import (
	"math/rand/v2"

	"github.com/katalvlaran/wfc/cells"
	"github.com/katalvlaran/wfc/legend"
)

// Observer selects the next cell to collapse and performs the collapse.
// Observe returns nil, nil when no uncollapsed cell remains.
type Observer interface {
	Observe(cs *cells.Cells) (*int, error)
}

// Chooser picks one variant out of a live candidate set. Implementations
// must not be called with an empty slice; cells.Cells.Collapse already
// guards that case and returns cells.ErrNoPossibilities itself.
type Chooser func(possibilities []legend.VariantID) (legend.VariantID, error)

// Random is the reference Observer: picks uniformly at random among the
// lowest-entropy bucket's members, then hands off to a Chooser for the
// variant decision.
//
// Determinism: seeded with a fixed 32-byte key, Random's internal PRNG
// (ChaCha8, via math/rand/v2) produces the same bucket pick sequence on
// every run, satisfying the observer determinism contract as long as the
// supplied Chooser is itself deterministic for the same seed.
type Random struct {
	rng    *rand.Rand
	choose Chooser
}

// NewRandom returns a Random observer seeded deterministically and driven
// by choose for the variant decision. NewRandom does not hand its PRNG to
// choose; a chooser that should draw from the same stream as the bucket
// pick has to reach it through the Rng accessor.
func NewRandom(seed [32]byte, choose Chooser) *Random {
	return &Random{rng: rand.New(rand.NewChaCha8(seed)), choose: choose}
}

// NewUniformRandom returns a Random observer whose variant chooser is
// uniform-at-random, sharing the bucket-pick PRNG stream.
func NewUniformRandom(seed [32]byte) *Random {
	r := &Random{rng: rand.New(rand.NewChaCha8(seed))}
	r.choose = UniformChooser(r.rng)
	return r
}

// Observe implements Observer.
func (r *Random) Observe(cs *cells.Cells) (*int, error) {
	_, members, ok := cs.Entropy().Lowest()
	if !ok {
		return nil, nil
	}

	index := members[r.rng.IntN(len(members))]
	if err := cs.Collapse(index, r.choose); err != nil {
		return nil, err
	}

	return &index, nil
}

// Rng exposes the observer's PRNG so a caller-supplied Chooser can share
// the same deterministic stream (e.g. UniformChooser(r.Rng())).
func (r *Random) Rng() *rand.Rand {
	return r.rng
}
