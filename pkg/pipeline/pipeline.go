// Package pipeline runs the load → enumerate pipeline with result caching.
//
// The CLI, the batch harness and the HTTP API all go through a [Runner] so
// that instance loading, cache keys, statistics and observability hooks
// behave the same everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:        "data/scp41.txt",
//	    MaxResults:  1000,
//	    OnlyMinimal: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stats.FirstWeight, result.Stats.BestWeight)
//
// Pass Problem instead of Path to enumerate an instance already in memory.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cohensara/coverenum/pkg/errors"
	"github.com/cohensara/coverenum/pkg/instance"
	"github.com/cohensara/coverenum/pkg/setcover"
	"github.com/cohensara/coverenum/pkg/stats"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, Batch and API
// =============================================================================

const (
	// DefaultMaxResults is used by the API when a request omits max_results.
	DefaultMaxResults = 100

	// DefaultInterval is the statistics interval length.
	DefaultInterval = setcover.DefaultInterval
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one enumeration run. It supports JSON for API requests.
type Options struct {
	// Input: exactly one of Path or Problem.
	Path    string            `json:"path,omitempty"`
	Format  string            `json:"format,omitempty"` // instance format; detected from Path when empty
	Problem *setcover.Problem `json:"-"`

	// Enumeration
	MaxResults  int    `json:"max_results"`
	OnlyMinimal bool   `json:"only_minimal"`
	Interval    int    `json:"interval,omitempty"`
	Threshold   string `json:"threshold,omitempty"`
	Refresh     bool   `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger       `json:"-"`
	Recorder setcover.Recorder `json:"-"` // receives live statistics in addition to the run's own

	policy    setcover.ThresholdPolicy
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string `json:"run_id"`

	// ProblemHash is the content hash of the instance.
	ProblemHash string `json:"problem_hash"`

	// Problem is the enumerated instance.
	Problem *setcover.Problem `json:"-"`

	// Covers are the emitted covers in rank order.
	Covers []setcover.Cover `json:"covers"`

	// Stats are the run statistics. On a cache hit they describe the run
	// that populated the cache.
	Stats stats.Summary `json:"stats"`

	// Dropped counts frontier rejections.
	Dropped int `json:"dropped"`

	// Duration is the wall time of the enumeration.
	Duration time.Duration `json:"duration_ns"`

	// CacheHit reports whether Covers came from the cache.
	CacheHit bool `json:"cache_hit"`
}

// cachedResult is the cached part of a Result.
type cachedResult struct {
	Covers   []setcover.Cover `json:"covers"`
	Stats    stats.Summary    `json:"stats"`
	Dropped  int              `json:"dropped"`
	Duration time.Duration    `json:"duration_ns"`
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Path == "" && o.Problem == nil {
		return errors.New(errors.ErrCodeInvalidInput, "path or problem is required")
	}
	if o.Path != "" && o.Problem != nil {
		return errors.New(errors.ErrCodeInvalidInput, "path and problem are mutually exclusive")
	}
	if o.Format != "" {
		if _, err := instance.ByName(o.Format); err != nil {
			return err
		}
	}
	if err := errors.ValidateMaxResults(o.MaxResults); err != nil {
		return err
	}
	if err := errors.ValidateInterval(o.Interval); err != nil {
		return err
	}
	if o.Interval == 0 {
		o.Interval = DefaultInterval
	}
	policy, err := setcover.ParseThresholdPolicy(o.Threshold)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "threshold")
	}
	o.policy = policy
	o.Threshold = policy.String()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// EnumerateOptions returns the core enumerator options for o.
func (o *Options) EnumerateOptions(rec setcover.Recorder) setcover.Options {
	return setcover.Options{
		MaxResults:  o.MaxResults,
		OnlyMinimal: o.OnlyMinimal,
		Interval:    o.Interval,
		Threshold:   o.policy,
		Recorder:    setcover.Recorders(rec, o.Recorder),
	}
}
