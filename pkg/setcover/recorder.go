package setcover

import "time"

// Recorder receives run statistics from an [Enumerator]. Calls are made
// synchronously from the enumerating goroutine.
type Recorder interface {
	// FirstWeight records the weight of the seed cover.
	FirstWeight(weight int)

	// BestWeight records a new lowest emitted weight and the 1-based rank
	// at which it was emitted.
	BestWeight(weight, rank int)

	// Interval records, every Options.Interval emitted covers, the elapsed
	// time since the run started and the lowest weight emitted in that interval.
	Interval(elapsed time.Duration, weight int)

	// GreedyCall counts one invocation of the greedy solver.
	GreedyCall()
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) FirstWeight(int)             {}
func (NopRecorder) BestWeight(int, int)         {}
func (NopRecorder) Interval(time.Duration, int) {}
func (NopRecorder) GreedyCall()                 {}

// Recorders fans calls out to every non-nil recorder in order.
func Recorders(rs ...Recorder) Recorder {
	out := make(multiRecorder, 0, len(rs))
	for _, r := range rs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

type multiRecorder []Recorder

func (m multiRecorder) FirstWeight(w int) {
	for _, r := range m {
		r.FirstWeight(w)
	}
}

func (m multiRecorder) BestWeight(w, rank int) {
	for _, r := range m {
		r.BestWeight(w, rank)
	}
}

func (m multiRecorder) Interval(elapsed time.Duration, w int) {
	for _, r := range m {
		r.Interval(elapsed, w)
	}
}

func (m multiRecorder) GreedyCall() {
	for _, r := range m {
		r.GreedyCall()
	}
}
