package setcover

import (
	"context"
	"time"

	"github.com/bits-and-blooms/bitset"
)

// DefaultInterval is the number of emitted covers between interval samples.
const DefaultInterval = 500

// Options configures an enumeration run.
type Options struct {
	// MaxResults bounds the number of emitted covers and the frontier capacity.
	MaxResults int

	// OnlyMinimal restricts output to minimal covers and suppresses duplicates.
	OnlyMinimal bool

	// Interval is the number of emitted covers per statistics sample.
	// Zero means DefaultInterval.
	Interval int

	// Threshold selects the frontier admission rule.
	Threshold ThresholdPolicy

	// Recorder receives run statistics. Nil discards them.
	Recorder Recorder

	// Now is the clock used for interval timing. Nil means time.Now.
	Now func() time.Time
}

// Cover is one emitted result.
type Cover struct {
	Rank   int   `json:"rank" yaml:"rank"`
	Weight int   `json:"weight" yaml:"weight"`
	Sets   []int `json:"sets" yaml:"sets"`
}

// Enumerator produces distinct covers of a problem in approximately
// non-decreasing weight order.
//
// Each frontier node carries a greedy cover of its subtree. The cheapest node
// is popped, emitted, and expanded by its [Branch] into child nodes whose
// subtrees partition what remains. Output is deterministic for a given
// problem and options.
//
// An Enumerator is not safe for concurrent use.
type Enumerator struct {
	problem  *Problem
	opts     Options
	rec      Recorder
	now      func() time.Time
	frontier *frontier
}

// New returns an enumerator for p.
func New(p *Problem, opts Options) *Enumerator {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	e := &Enumerator{problem: p, opts: opts, rec: opts.Recorder, now: opts.Now}
	if e.rec == nil {
		e.rec = NopRecorder{}
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// Run enumerates covers and calls emit for each one in rank order. It stops
// after MaxResults covers, when the frontier is exhausted, when emit returns
// an error, or when ctx is done. An infeasible problem emits nothing.
func (e *Enumerator) Run(ctx context.Context, emit func(Cover) error) error {
	if e.opts.MaxResults <= 0 {
		return nil
	}
	start := e.now()
	p := e.problem
	e.frontier = newFrontier(e.opts.MaxResults, e.opts.Threshold)

	seed, ok := e.greedy(nil, p.AllSets())
	if !ok {
		return nil
	}
	if e.opts.OnlyMinimal {
		seed = Minimize(p, seed, nil)
	}
	e.rec.FirstWeight(seed.weight)
	e.push(&Node{
		Solution: seed,
		Forced:   bitset.New(uint(p.NumSets())),
		Eligible: p.AllSets(),
		Branch:   Partition{},
	})

	var (
		seen         = make(map[string]struct{})
		emitted      int
		best         int
		intervalBest = -1
	)
	for e.frontier.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := e.frontier.pop()

		out := n.Solution
		fresh := true
		if e.opts.OnlyMinimal {
			out = Minimize(p, out, nil)
			key := out.Key()
			if _, dup := seen[key]; dup {
				fresh = false
			} else {
				seen[key] = struct{}{}
			}
		}

		if fresh {
			emitted++
			w := out.weight
			if intervalBest < 0 || w < intervalBest {
				intervalBest = w
			}
			if emitted == 1 || w < best {
				best = w
				e.rec.BestWeight(w, emitted)
			}
			if emitted%e.opts.Interval == 0 {
				e.rec.Interval(e.now().Sub(start), intervalBest)
				intervalBest = -1
			}
			if err := emit(Cover{Rank: emitted, Weight: w, Sets: out.Sets()}); err != nil {
				return err
			}
			if emitted == e.opts.MaxResults {
				return nil
			}
		}

		n.Branch.expand(e, n)
	}
	return nil
}

// Enumerate runs an enumerator over p and collects the covers.
func Enumerate(ctx context.Context, p *Problem, opts Options) ([]Cover, error) {
	var covers []Cover
	err := New(p, opts).Run(ctx, func(c Cover) error {
		covers = append(covers, c)
		return nil
	})
	return covers, err
}

// Dropped returns the number of nodes the frontier rejected in the last run.
func (e *Enumerator) Dropped() int {
	if e.frontier == nil {
		return 0
	}
	return e.frontier.dropped
}

func (e *Enumerator) greedy(covered, eligible *bitset.BitSet) (*Solution, bool) {
	e.rec.GreedyCall()
	return Greedy(e.problem, covered, eligible)
}

func (e *Enumerator) push(n *Node) {
	e.frontier.push(n)
}
