// Package stats collects per-run statistics from an enumeration.
//
// A [Statistics] value is created for each run and handed to the enumerator
// as its recorder. When the run ends, [Statistics.Summary] returns a
// snapshot suitable for CSV rows, JSON export and API responses.
package stats

import (
	"sync"
	"time"

	"github.com/cohensara/coverenum/pkg/setcover"
)

// Sample is one interval measurement.
type Sample struct {
	// Index is the number of covers emitted when the sample was taken.
	Index int `json:"index" yaml:"index"`

	// Elapsed is the time since the run started.
	Elapsed time.Duration `json:"elapsed_ns" yaml:"elapsed"`

	// Weight is the lowest weight emitted during the interval.
	Weight int `json:"weight" yaml:"weight"`
}

// Summary is a snapshot of a run's statistics.
type Summary struct {
	FirstWeight int      `json:"first_weight" yaml:"first_weight"`
	BestWeight  int      `json:"best_weight" yaml:"best_weight"`
	BestRank    int      `json:"best_rank" yaml:"best_rank"`
	GreedyCalls int      `json:"greedy_calls" yaml:"greedy_calls"`
	Interval    int      `json:"interval" yaml:"interval"`
	Samples     []Sample `json:"samples,omitempty" yaml:"samples,omitempty"`
}

// HasResult reports whether the run emitted at least one cover.
func (s Summary) HasResult() bool { return s.BestRank > 0 }

// Statistics implements setcover.Recorder. It is safe for concurrent reads
// while a run writes to it.
type Statistics struct {
	mu       sync.Mutex
	interval int
	sum      Summary
}

// New returns an empty recorder. interval must match the enumerator's
// Options.Interval so that sample indices line up; zero means
// setcover.DefaultInterval.
func New(interval int) *Statistics {
	if interval <= 0 {
		interval = setcover.DefaultInterval
	}
	return &Statistics{interval: interval, sum: Summary{Interval: interval}}
}

// FirstWeight implements setcover.Recorder.
func (s *Statistics) FirstWeight(w int) {
	s.mu.Lock()
	s.sum.FirstWeight = w
	s.mu.Unlock()
}

// BestWeight implements setcover.Recorder.
func (s *Statistics) BestWeight(w, rank int) {
	s.mu.Lock()
	s.sum.BestWeight = w
	s.sum.BestRank = rank
	s.mu.Unlock()
}

// Interval implements setcover.Recorder.
func (s *Statistics) Interval(elapsed time.Duration, w int) {
	s.mu.Lock()
	s.sum.Samples = append(s.sum.Samples, Sample{
		Index:   (len(s.sum.Samples) + 1) * s.interval,
		Elapsed: elapsed,
		Weight:  w,
	})
	s.mu.Unlock()
}

// GreedyCall implements setcover.Recorder.
func (s *Statistics) GreedyCall() {
	s.mu.Lock()
	s.sum.GreedyCalls++
	s.mu.Unlock()
}

// Summary returns a copy of the collected statistics.
func (s *Statistics) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.sum
	out.Samples = append([]Sample(nil), s.sum.Samples...)
	return out
}

var _ setcover.Recorder = (*Statistics)(nil)
