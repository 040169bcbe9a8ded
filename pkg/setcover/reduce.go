package setcover

import (
	"github.com/bits-and-blooms/bitset"
)

// Minimize returns a subset-minimal cover contained in cover. Chosen sets are
// tried in ascending index order; a set is dropped when baseline together with
// the remaining sets still covers the universe. A nil baseline is empty.
//
// The result depends on the iteration order and need not be the cheapest
// minimal subset. cover is not modified.
func Minimize(p *Problem, cover *Solution, baseline *bitset.BitSet) *Solution {
	out := cover.Clone()
	for _, i := range cover.Sets() {
		out.exclude(p, i)
		covered := p.CoveredBy(out.chosen)
		if baseline != nil {
			covered.InPlaceUnion(baseline)
		}
		if !p.full(covered) {
			out.include(p, i)
		}
	}
	return out
}

// IsMinimal reports whether every chosen set of a cover is needed.
func IsMinimal(p *Problem, cover *Solution) bool {
	if !p.IsCover(cover.chosen) {
		return false
	}
	for _, i := range cover.Sets() {
		rest := cover.chosen.Clone()
		rest.Clear(uint(i))
		if p.IsCover(rest) {
			return false
		}
	}
	return true
}
