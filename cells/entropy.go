package cells

// EntropyCache buckets uncollapsed cell indices by their current entropy
// (candidate-set size), so the observer can find the lowest non-empty
// bucket without scanning every cell.
//
// Indexing is one-based: the bucket at slice position e-1 holds cells whose
// current entropy is e. Collapsed cells (entropy 0) are never stored. Each
// bucket preserves insertion order and supports O(1) swap-removal via
// orderedSet, which is what makes a fixed-seed observer's bucket scan
// reproducible across runs.
type EntropyCache struct {
	buckets []*orderedSet[int] // buckets[e-1] holds indices with entropy e
}

// NewEntropyCache returns an empty cache sized to hold entropies up to
// maxEntropy (typically the full variant count).
func NewEntropyCache(maxEntropy int) *EntropyCache {
	return &EntropyCache{buckets: make([]*orderedSet[int], maxEntropy)}
}

func (c *EntropyCache) ensure(entropy int) *orderedSet[int] {
	if entropy > len(c.buckets) {
		grown := make([]*orderedSet[int], entropy)
		copy(grown, c.buckets)
		c.buckets = grown
	}
	b := c.buckets[entropy-1]
	if b == nil {
		b = newOrderedSet[int](4)
		c.buckets[entropy-1] = b
	}
	return b
}

// Insert enrolls cell index i into the bucket for entropy. entropy must be
// >= 1; collapsed cells (entropy 0) are never enrolled.
func (c *EntropyCache) Insert(i, entropy int) {
	c.ensure(entropy).Insert(i)
}

// Remove removes cell index i from the bucket for entropy.
func (c *EntropyCache) Remove(i, entropy int) {
	if entropy < 1 || entropy > len(c.buckets) {
		return
	}
	if b := c.buckets[entropy-1]; b != nil {
		b.Remove(i)
	}
}

// Move relocates cell index i from oldEntropy's bucket to newEntropy's
// bucket. newEntropy == 0 means the cell just collapsed and is not
// re-enrolled anywhere.
func (c *EntropyCache) Move(i, oldEntropy, newEntropy int) {
	c.Remove(i, oldEntropy)
	if newEntropy > 0 {
		c.Insert(i, newEntropy)
	}
}

// Lowest returns the lowest non-empty bucket's entropy value and its
// members in the bucket's orderedSet order (insertion order, adjusted by
// swap-removals). The third return is false when every bucket is empty
// (collapse complete).
func (c *EntropyCache) Lowest() (entropy int, members []int, ok bool) {
	for e, b := range c.buckets {
		if b != nil && b.Len() > 0 {
			return e + 1, b.Items(), true
		}
	}
	return 0, nil, false
}
