package setcover

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/cohensara/coverenum/pkg/errors"
)

// Problem describes a weighted set-cover instance: a universe [0, UniverseSize)
// and NumSets candidate sets, each with a positive weight.
//
// A Problem is read-only once constructed. Weights and memberships are owned by
// the value; [Problem.Clone] returns a copy whose mutation never reaches the
// receiver.
type Problem struct {
	universeSize int
	weights      []int
	members      []*bitset.BitSet
}

// NewProblem builds a Problem from 0-based element lists. members[i] holds the
// elements covered by set i and weights[i] its weight.
func NewProblem(universeSize int, weights []int, members [][]int) (*Problem, error) {
	if universeSize <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInstance, "universe size must be positive, got %d", universeSize)
	}
	if len(weights) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInstance, "instance has no sets")
	}
	if len(weights) != len(members) {
		return nil, errors.New(errors.ErrCodeInvalidInstance, "%d weights for %d sets", len(weights), len(members))
	}

	p := &Problem{
		universeSize: universeSize,
		weights:      make([]int, len(weights)),
		members:      make([]*bitset.BitSet, len(members)),
	}
	for i, w := range weights {
		if w <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInstance, "set %d has non-positive weight %d", i, w)
		}
		p.weights[i] = w
	}
	for i, elems := range members {
		b := bitset.New(uint(universeSize))
		for _, e := range elems {
			if e < 0 || e >= universeSize {
				return nil, errors.New(errors.ErrCodeInvalidInstance, "set %d: element %d outside universe [0, %d)", i, e, universeSize)
			}
			b.Set(uint(e))
		}
		p.members[i] = b
	}
	return p, nil
}

// NumSets returns the number of candidate sets.
func (p *Problem) NumSets() int { return len(p.weights) }

// UniverseSize returns the number of elements to cover.
func (p *Problem) UniverseSize() int { return p.universeSize }

// Weight returns the weight of set i.
func (p *Problem) Weight(i int) int { return p.weights[i] }

// Weights returns a copy of the weight vector.
func (p *Problem) Weights() []int {
	out := make([]int, len(p.weights))
	copy(out, p.weights)
	return out
}

// Elements returns the sorted elements of set i.
func (p *Problem) Elements(i int) []int {
	return indices(p.members[i])
}

// Members returns a copy of the membership bitset of set i.
func (p *Problem) Members(i int) *bitset.BitSet {
	return p.members[i].Clone()
}

// Clone returns an independent scratch copy of the problem.
func (p *Problem) Clone() *Problem {
	c := &Problem{
		universeSize: p.universeSize,
		weights:      make([]int, len(p.weights)),
		members:      make([]*bitset.BitSet, len(p.members)),
	}
	copy(c.weights, p.weights)
	for i, m := range p.members {
		c.members[i] = m.Clone()
	}
	return c
}

// AllSets returns a bitset with every set index present.
func (p *Problem) AllSets() *bitset.BitSet {
	b := bitset.New(uint(p.NumSets()))
	for i := range p.weights {
		b.Set(uint(i))
	}
	return b
}

// CoveredBy returns the union of the memberships of the given set indices.
func (p *Problem) CoveredBy(sets *bitset.BitSet) *bitset.BitSet {
	covered := bitset.New(uint(p.universeSize))
	if sets == nil {
		return covered
	}
	for i, ok := sets.NextSet(0); ok; i, ok = sets.NextSet(i + 1) {
		covered.InPlaceUnion(p.members[i])
	}
	return covered
}

// IsCover reports whether the given sets cover the whole universe.
func (p *Problem) IsCover(sets *bitset.BitSet) bool {
	return p.full(p.CoveredBy(sets))
}

// full reports whether covered spans the universe. Memberships never hold
// elements outside the universe, so cardinality is sufficient.
func (p *Problem) full(covered *bitset.BitSet) bool {
	return covered.Count() == uint(p.universeSize)
}

func indices(b *bitset.BitSet) []int {
	out := make([]int, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}
