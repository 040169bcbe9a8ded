// Package setcover enumerates weighted set covers in approximately
// non-decreasing weight order.
//
// A [Problem] holds the universe size, the candidate sets and their weights.
// [Greedy] finds an approximate cover under a partial-coverage baseline and a
// restricted pool of sets, and [Minimize] trims a cover to a minimal one.
// The [Enumerator] runs a best-first search over a tree of subproblems: each
// node carries a greedy cover of its subtree, and expanding a node partitions
// the covers that remain so every cover is reached at most once.
//
// # Usage
//
//	p, err := setcover.NewProblem(3, []int{2, 2, 2, 3}, [][]int{{0, 1}, {1, 2}, {0, 2}, {0, 1, 2}})
//	if err != nil {
//	    return err
//	}
//	covers, err := setcover.Enumerate(ctx, p, setcover.Options{MaxResults: 10, OnlyMinimal: true})
//
// The ranking is heuristic. A child subtree can yield a cheaper greedy cover
// than its parent, so emitted weights are not guaranteed to be monotone and the
// lowest weight may appear after rank 1. A [Recorder] reports where the best
// weight was found.
package setcover
