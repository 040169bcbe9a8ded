package setcover

import (
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Solution is a set of chosen set indices with its total weight kept in step.
// It may be a partial construct during search; only a Solution whose sets
// cover the universe is reported.
type Solution struct {
	chosen *bitset.BitSet
	weight int
}

// NewSolution returns an empty solution.
func NewSolution() *Solution {
	return &Solution{chosen: bitset.New(0)}
}

// Add inserts set i of weight w. Adding a set that is already present is a no-op.
func (s *Solution) Add(i, w int) {
	if s.chosen.Test(uint(i)) {
		return
	}
	s.chosen.Set(uint(i))
	s.weight += w
}

// Remove drops set i of weight w. Removing an absent set is a no-op.
func (s *Solution) Remove(i, w int) {
	if !s.chosen.Test(uint(i)) {
		return
	}
	s.chosen.Clear(uint(i))
	s.weight -= w
}

// include adds set i with the weight p assigns it.
func (s *Solution) include(p *Problem, i int) { s.Add(i, p.weights[i]) }

// exclude drops set i with the weight p assigns it.
func (s *Solution) exclude(p *Problem, i int) { s.Remove(i, p.weights[i]) }

// Contains reports whether set i is chosen.
func (s *Solution) Contains(i int) bool { return s.chosen.Test(uint(i)) }

// Weight returns the sum of the weights of the chosen sets.
func (s *Solution) Weight() int { return s.weight }

// Len returns the number of chosen sets.
func (s *Solution) Len() int { return int(s.chosen.Count()) }

// Sets returns the chosen set indices in ascending order.
func (s *Solution) Sets() []int { return indices(s.chosen) }

// Chosen returns a copy of the chosen-set bitset.
func (s *Solution) Chosen() *bitset.BitSet { return s.chosen.Clone() }

// Clone returns a deep copy.
func (s *Solution) Clone() *Solution {
	return &Solution{chosen: s.chosen.Clone(), weight: s.weight}
}

// Key returns a canonical key for the chosen-index pattern.
func (s *Solution) Key() string {
	var b strings.Builder
	for i, ok := s.chosen.NextSet(0); ok; i, ok = s.chosen.NextSet(i + 1) {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(i), 10))
	}
	return b.String()
}

// String formats the solution as "{0,1}=4".
func (s *Solution) String() string {
	return "{" + s.Key() + "}=" + strconv.Itoa(s.weight)
}
