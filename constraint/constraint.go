// Package constraint implements the socket-compatibility predicate that
// gates every candidate-pruning decision during propagation.
package constraint

// Constraint decides whether selfSocket, exposed by a candidate on one side
// of an edge, is compatible with neighborSockets, the union of sockets the
// neighbor's remaining candidates expose toward it.
//
// Implementations must be pure and fast: this is called once per candidate
// of every reconsidered cell on the propagation hot path.
type Constraint[S comparable] interface {
	Check(selfSocket S, neighborSockets map[S]struct{}) bool
}

// Unary is the equality-based constraint: selfSocket is compatible iff it
// is a member of neighborSockets.
type Unary[S comparable] struct{}

// Check reports whether neighborSockets contains selfSocket.
func (Unary[S]) Check(selfSocket S, neighborSockets map[S]struct{}) bool {
	_, ok := neighborSockets[selfSocket]
	return ok
}
