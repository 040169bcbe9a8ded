package setcover

import (
	"github.com/bits-and-blooms/bitset"
)

// Greedy computes an approximate minimum-weight cover of the elements not in
// covered, using only the sets in eligible. A nil covered means nothing is
// covered yet; a nil eligible means every set may be used.
//
// The second return value is false when the eligible sets cannot cover the
// remaining elements. In that case no set is picked.
//
// Each round picks the set with the smallest weight per newly covered element.
// Ties go to the lowest index. Every call works on private residual copies of
// the memberships; p is never modified.
func Greedy(p *Problem, covered, eligible *bitset.BitSet) (*Solution, bool) {
	done := bitset.New(uint(p.universeSize))
	if covered != nil {
		done.InPlaceUnion(covered)
	}

	// residual[i] is nil for sets outside the pool.
	residual := make([]*bitset.BitSet, len(p.members))
	reachable := done.Clone()
	for i, m := range p.members {
		if eligible != nil && !eligible.Test(uint(i)) {
			continue
		}
		residual[i] = m.Difference(done)
		reachable.InPlaceUnion(residual[i])
	}
	if !p.full(reachable) {
		return nil, false
	}

	sol := NewSolution()
	for !p.full(done) {
		best := -1
		var bestWeight, bestCount int64
		for i, r := range residual {
			if r == nil {
				continue
			}
			r.InPlaceDifference(done)
			n := int64(r.Count())
			if n == 0 {
				continue
			}
			w := int64(p.weights[i])
			// w/n < bestWeight/bestCount without floating point.
			if best < 0 || w*bestCount < bestWeight*n {
				best, bestWeight, bestCount = i, w, n
			}
		}
		sol.include(p, best)
		done.InPlaceUnion(residual[best])
	}
	return sol, true
}
