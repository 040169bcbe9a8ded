package setcover

import (
	"container/heap"
	"fmt"
)

// ThresholdPolicy selects how a full frontier decides whether to admit a node.
type ThresholdPolicy int

const (
	// HighWater rejects a node unless it is strictly lighter than the largest
	// weight ever admitted while the frontier was filling. The mark is never
	// lowered, so nodes may be rejected after pops have freed room.
	HighWater ThresholdPolicy = iota

	// Exact compares against the heaviest node currently held.
	Exact
)

// String returns the flag spelling of the policy.
func (t ThresholdPolicy) String() string {
	switch t {
	case HighWater:
		return "high-water"
	case Exact:
		return "exact"
	}
	return fmt.Sprintf("ThresholdPolicy(%d)", int(t))
}

// ParseThresholdPolicy parses "high-water" or "exact". The empty string is HighWater.
func ParseThresholdPolicy(s string) (ThresholdPolicy, error) {
	switch s {
	case "", "high-water", "highwater":
		return HighWater, nil
	case "exact":
		return Exact, nil
	}
	return 0, fmt.Errorf("unknown threshold policy %q (must be high-water or exact)", s)
}

// frontier is a min-priority queue of nodes bounded by an admission threshold.
// Nodes of equal weight leave in insertion order.
type frontier struct {
	nodes     nodeHeap
	capacity  int
	threshold int
	policy    ThresholdPolicy
	seq       uint64
	dropped   int
}

func newFrontier(capacity int, policy ThresholdPolicy) *frontier {
	return &frontier{capacity: capacity, policy: policy}
}

// push offers n to the frontier and reports whether it was admitted.
func (f *frontier) push(n *Node) bool {
	w := n.Weight()
	if len(f.nodes) < f.capacity {
		if w > f.threshold {
			f.threshold = w
		}
		f.add(n)
		return true
	}

	limit := f.threshold
	if f.policy == Exact {
		limit = f.heaviest()
	}
	if w >= limit {
		f.dropped++
		return false
	}
	f.add(n)
	return true
}

func (f *frontier) add(n *Node) {
	n.seq = f.seq
	f.seq++
	heap.Push(&f.nodes, n)
}

func (f *frontier) pop() *Node {
	return heap.Pop(&f.nodes).(*Node)
}

func (f *frontier) Len() int { return len(f.nodes) }

func (f *frontier) heaviest() int {
	max := 0
	for _, n := range f.nodes {
		if w := n.Weight(); w > max {
			max = w
		}
	}
	return max
}

type nodeHeap []*Node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].Weight() != h[j].Weight() {
		return h[i].Weight() < h[j].Weight()
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(*Node)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}
