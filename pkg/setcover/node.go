package setcover

import (
	"github.com/bits-and-blooms/bitset"
)

// Node is an element of the search frontier: a representative solution plus
// the constraints that define its subtree.
//
// Forced sets appear in every solution of the subtree. Eligible sets may still
// be added or removed. Sets in neither are excluded from the subtree. Forced
// and Eligible are disjoint.
type Node struct {
	Solution *Solution
	Forced   *bitset.BitSet
	Eligible *bitset.BitSet
	Branch   Branch

	seq uint64
}

// Weight returns the weight of the node's solution.
func (n *Node) Weight() int { return n.Solution.weight }

// Branch is the rule that governs how a node is expanded. The only
// implementations are [Partition] and [Extension].
type Branch interface {
	expand(e *Enumerator, n *Node)
	String() string
}

// Partition splits the covers reachable from a node into disjoint subtrees,
// one per non-forced chosen set, so every cover is reached exactly once.
// Its nodes always contain their forced sets.
type Partition struct{}

// Extension explores supersets and single-set substitutions. It is only used
// when redundant covers are requested.
type Extension struct{}

func (Partition) String() string { return "Q1" }
func (Extension) String() string { return "Q2" }

func (Partition) expand(e *Enumerator, n *Node) {
	p := e.problem
	if !e.opts.OnlyMinimal {
		e.pushExtensionSeed(n)
	}

	removable := n.Solution.chosen.Difference(n.Forced)
	locked := n.Forced.Clone()
	remaining := n.Eligible
	for s, ok := removable.NextSet(0); ok; s, ok = removable.NextSet(s + 1) {
		remaining = remaining.Clone()
		remaining.Clear(s)

		if sol, ok := e.greedy(p.CoveredBy(locked), remaining); ok {
			for j, ok := locked.NextSet(0); ok; j, ok = locked.NextSet(j + 1) {
				sol.include(p, int(j))
			}
			e.push(&Node{Solution: sol, Forced: locked, Eligible: remaining, Branch: Partition{}})
		}

		locked = locked.Clone()
		locked.Set(s)
	}
}

func (Extension) expand(e *Enumerator, n *Node) {
	p := e.problem
	b, ok := lightest(p, n.Eligible)
	if !ok {
		return
	}

	swap := n.Solution.Clone()
	swap.include(p, b)
	if f, ok := n.Forced.NextSet(0); ok {
		swap.exclude(p, int(f))
	}
	extend := n.Solution.Clone()
	extend.include(p, b)

	for _, sol := range []*Solution{swap, extend} {
		eligible := n.Eligible.Clone()
		eligible.Clear(uint(b))
		e.push(&Node{Solution: sol, Forced: single(p, b), Eligible: eligible, Branch: Extension{}})
	}
}

// pushExtensionSeed adds the cheapest unused eligible set to a copy of the
// node's solution and queues it as an Extension node.
func (e *Enumerator) pushExtensionSeed(n *Node) {
	p := e.problem
	pool := n.Eligible.Difference(n.Solution.chosen)
	b, ok := lightest(p, pool)
	if !ok {
		return
	}
	sol := n.Solution.Clone()
	sol.include(p, b)
	pool.Clear(uint(b))
	e.push(&Node{Solution: sol, Forced: single(p, b), Eligible: pool, Branch: Extension{}})
}

// lightest returns the set of smallest weight in pool, lowest index on ties.
func lightest(p *Problem, pool *bitset.BitSet) (int, bool) {
	best := -1
	for i, ok := pool.NextSet(0); ok; i, ok = pool.NextSet(i + 1) {
		if best < 0 || p.weights[i] < p.weights[best] {
			best = int(i)
		}
	}
	return best, best >= 0
}

func single(p *Problem, i int) *bitset.BitSet {
	b := bitset.New(uint(p.NumSets()))
	b.Set(uint(i))
	return b
}
