package cli

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cohensara/coverenum/pkg/setcover"
)

// heartbeatEvery is how often a long enumeration reports that it is still running.
const heartbeatEvery = 10 * time.Second

// progressRecorder logs enumeration progress: the greedy seed, every
// improvement of the best weight, and a periodic heartbeat driven by the
// interval samples.
type progressRecorder struct {
	prog    *progress
	logger  *log.Logger
	now     func() time.Time
	lastLog time.Time

	mu          sync.Mutex
	first       int
	best        int
	bestRank    int
	greedyCalls int
}

func newProgressRecorder(l *log.Logger) *progressRecorder {
	r := &progressRecorder{
		prog:   newProgress(l),
		logger: l,
		now:    time.Now,
		first:  -1,
		best:   -1,
	}
	r.lastLog = r.now()
	return r
}

func (r *progressRecorder) FirstWeight(w int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.first, r.best, r.bestRank = w, w, 1
	r.logger.Infof("Initial: greedy cover of weight %d", w)
	r.lastLog = r.now()
}

func (r *progressRecorder) BestWeight(w, rank int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.best >= 0 && w < r.best {
		r.logger.Infof("Improved: weight %d at rank %d (↓%d)", w, rank, r.best-w)
		r.lastLog = r.now()
	}
	r.best, r.bestRank = w, rank
}

func (r *progressRecorder) Interval(elapsed time.Duration, w int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.now().Sub(r.lastLog) < heartbeatEvery {
		return
	}
	r.logger.Infof("Searching... %v elapsed, best weight %d, interval best %d (greedy calls: %d)",
		elapsed.Truncate(time.Second), r.best, w, r.greedyCalls)
	r.lastLog = r.now()
}

func (r *progressRecorder) GreedyCall() {
	r.mu.Lock()
	r.greedyCalls++
	r.mu.Unlock()
}

// finish logs the summary line once the enumeration returns.
func (r *progressRecorder) finish(covers int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prog.done(fmt.Sprintf("Enumerated %d covers", covers))
	if r.best >= 0 {
		r.logger.Debugf("Best: weight %d at rank %d (greedy calls: %d)", r.best, r.bestRank, r.greedyCalls)
	}
}

var _ setcover.Recorder = (*progressRecorder)(nil)
