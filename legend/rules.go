package legend

import "cmp"

// Rule is the user-facing per-direction socket mapping for a single variant.
// A missing entry means "no connection in that direction" and always fails
// the constraint check during propagation.
type Rule[D cmp.Ordered, S comparable] map[D]S

// RuleBuilder accumulates a user-level variant→Rule table and lowers it,
// through a freshly built Legend, into a Rules keyed by dense IDs.
//
// User types V and D are required to be cmp.Ordered (here, in Legend, and
// in builder.Builder): that ordering exists solely to make Legend
// construction deterministic (§4.2's "sort by natural order, then
// enumerate").
type RuleBuilder[V cmp.Ordered, D cmp.Ordered, S comparable] struct {
	table map[V]Rule[D, S]
}

// NewRuleBuilder returns an empty RuleBuilder.
func NewRuleBuilder[V cmp.Ordered, D cmp.Ordered, S comparable]() *RuleBuilder[V, D, S] {
	return &RuleBuilder[V, D, S]{table: make(map[V]Rule[D, S])}
}

// WithRule registers (or replaces) the rule for variant v and returns the
// builder for chaining.
func (b *RuleBuilder[V, D, S]) WithRule(v V, rule Rule[D, S]) *RuleBuilder[V, D, S] {
	b.table[v] = rule
	return b
}

// Build constructs the Legend (interning every variant seen as a key and
// every direction seen in any rule) and the dense-ID Rules.
//
// Build does not validate dimensionality; that is builder.Builder's job
// (§7 Configuration errors), since only the builder knows the caller's
// intended DIM via the grid Size.
func (b *RuleBuilder[V, D, S]) Build() (*Rules[S], *Legend[V, D]) {
	variants := make([]V, 0, len(b.table))
	directionSet := make(map[D]struct{})
	for v, rule := range b.table {
		variants = append(variants, v)
		for d := range rule {
			directionSet[d] = struct{}{}
		}
	}
	directions := make([]D, 0, len(directionSet))
	for d := range directionSet {
		directions = append(directions, d)
	}

	legend := NewLegend[V, D](variants, directions)

	abstract := &Rules[S]{table: make(map[VariantID]AbstractRule[S], len(b.table))}
	for v, rule := range b.table {
		vid, _ := legend.VariantID(v)
		ar := make(AbstractRule[S], len(rule))
		for d, socket := range rule {
			did, _ := legend.DirectionID(d)
			ar[did] = socket
		}
		abstract.table[vid] = ar
	}

	return abstract, legend
}

// AbstractRule is the dense-ID rendering of a Rule: direction ID → socket.
// A missing entry means "no connection in that direction".
type AbstractRule[S comparable] map[DirectionID]S

// SocketFor returns the socket this rule exposes toward direction dir, and
// whether the rule has an entry for that direction at all.
func (r AbstractRule[S]) SocketFor(dir DirectionID) (S, bool) {
	s, ok := r[dir]
	return s, ok
}

// Rules is the immutable mapping variant_id → AbstractRule, produced by
// RuleBuilder.Build. May be partial per variant (see AbstractRule).
type Rules[S comparable] struct {
	table map[VariantID]AbstractRule[S]
}

// RuleFor returns the AbstractRule for variant id, and whether one exists.
// A variant absent from Rules behaves, per §4.8's propagation rule, as
// having no connection on any direction.
func (r *Rules[S]) RuleFor(id VariantID) (AbstractRule[S], bool) {
	rule, ok := r.table[id]
	return rule, ok
}

// Variants returns every VariantID that has an entry in Rules.
func (r *Rules[S]) Variants() []VariantID {
	ids := make([]VariantID, 0, len(r.table))
	for id := range r.table {
		ids = append(ids, id)
	}
	return ids
}
