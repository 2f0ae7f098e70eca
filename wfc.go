package wfc

import (
	"cmp"
	"fmt"

	"github.com/katalvlaran/wfc/builder"
	"github.com/katalvlaran/wfc/engine"
	"github.com/katalvlaran/wfc/geometry"
	"github.com/katalvlaran/wfc/legend"
)

// NewBuilder returns an empty builder.Builder for a grid of the given
// size, parameterized by the caller's variant type V, direction type D, and
// socket type S.
func NewBuilder[V cmp.Ordered, D cmp.Ordered, S comparable](size geometry.Size) *builder.Builder[V, D, S] {
	return builder.New[V, D, S](size)
}

// Session wraps a built Engine together with the Legend needed to translate
// collapse output back into the caller's own variant type.
type Session[V cmp.Ordered, D cmp.Ordered, S comparable] struct {
	engine *engine.Engine[S]
	legend *legend.Legend[V, D]
}

// Collapse builds b and runs the collapse to completion or to the first
// error. If Build fails, the returned Session is nil. If the run fails, the
// returned Session is still valid and partial output is observable via
// Data/DataRaw.
func Collapse[V cmp.Ordered, D cmp.Ordered, S comparable](b *builder.Builder[V, D, S]) (*Session[V, D, S], error) {
	eng, lg, err := b.Build()
	if err != nil {
		return nil, err
	}

	session := &Session[V, D, S]{engine: eng, legend: lg}

	if _, err := eng.Run(); err != nil {
		return session, err
	}

	return session, nil
}

// Step advances the underlying engine by one collapse step. Hosts that want
// to pause between steps (e.g. for visualization) call this directly
// instead of going through Collapse.
func (s *Session[V, D, S]) Step() (engine.Observation, error) {
	return s.engine.Step()
}

// Engine exposes the underlying engine for advanced use (direct access to
// cell state, repeated Step calls, etc).
func (s *Session[V, D, S]) Engine() *engine.Engine[S] {
	return s.engine
}

// Data returns one variant per grid cell in index order, substituting
// fallback for any cell that never collapsed.
func (s *Session[V, D, S]) Data(fallback V) []V {
	raw := s.engine.DataRaw()
	out := make([]V, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = fallback
		} else {
			out[i] = s.legend.Variant(*v)
		}
	}
	return out
}

// DataRaw returns one entry per grid cell in index order: a pointer to the
// collapsed variant, or nil for a cell that never collapsed.
func (s *Session[V, D, S]) DataRaw() []*V {
	raw := s.engine.DataRaw()
	out := make([]*V, len(raw))
	for i, v := range raw {
		if v == nil {
			continue
		}
		variant := s.legend.Variant(*v)
		out[i] = &variant
	}
	return out
}

// Into consumes the session into a plain variant sequence, failing if any
// cell never collapsed.
func (s *Session[V, D, S]) Into() ([]V, error) {
	raw := s.engine.DataRaw()
	out := make([]V, len(raw))
	for i, v := range raw {
		if v == nil {
			return nil, fmt.Errorf("wfc: cell %d never collapsed", i)
		}
		out[i] = s.legend.Variant(*v)
	}
	return out, nil
}
