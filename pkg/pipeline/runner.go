package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/cohensara/coverenum/pkg/cache"
	"github.com/cohensara/coverenum/pkg/errors"
	"github.com/cohensara/coverenum/pkg/exact"
	"github.com/cohensara/coverenum/pkg/instance"
	"github.com/cohensara/coverenum/pkg/observability"
	"github.com/cohensara/coverenum/pkg/setcover"
	"github.com/cohensara/coverenum/pkg/stats"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state; several goroutines may call Execute
// on the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides cache.TTLResult for stored enumerations when positive.
	TTL time.Duration
}

// NewRunner creates a runner. A nil keyer selects DefaultKeyer and a nil
// cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute loads the instance, then serves the enumeration from the cache or
// runs it and stores the result.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	p, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	hash, err := ProblemHash(p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash instance")
	}

	result := &Result{
		RunID:       uuid.NewString(),
		ProblemHash: hash,
		Problem:     p,
	}
	logger := r.Logger.With("run", result.RunID[:8])

	key := r.Keyer.ResultKey(hash, cache.ResultKeyOpts{
		MaxResults:  opts.MaxResults,
		OnlyMinimal: opts.OnlyMinimal,
		Threshold:   opts.Threshold,
		Interval:    opts.Interval,
	})

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key); ok {
			result.Covers = cached.Covers
			result.Stats = cached.Stats
			result.Dropped = cached.Dropped
			result.Duration = cached.Duration
			result.CacheHit = true
			logger.Info("served from cache", "covers", len(result.Covers))
			return result, nil
		}
	}

	rec := stats.New(opts.Interval)
	hooks := observability.Pipeline()
	hooks.OnEnumerateStart(ctx, p.NumSets(), p.UniverseSize(), opts.MaxResults)

	start := time.Now()
	e := setcover.New(p, opts.EnumerateOptions(rec))
	err = e.Run(ctx, func(c setcover.Cover) error {
		result.Covers = append(result.Covers, c)
		return nil
	})
	result.Duration = time.Since(start)
	hooks.OnEnumerateComplete(ctx, len(result.Covers), result.Duration, err)
	if err != nil {
		return nil, fmt.Errorf("enumerate: %w", err)
	}
	result.Stats = rec.Summary()
	result.Dropped = e.Dropped()

	logger.Info("enumerated covers",
		"covers", len(result.Covers),
		"first", result.Stats.FirstWeight,
		"best", result.Stats.BestWeight,
		"greedy", result.Stats.GreedyCalls,
		"duration", result.Duration)

	r.store(ctx, "result", key, cachedResult{
		Covers:   result.Covers,
		Stats:    result.Stats,
		Dropped:  result.Dropped,
		Duration: result.Duration,
	}, r.resultTTL())
	return result, nil
}

// Load returns opts.Problem, or reads opts.Path.
func (r *Runner) Load(ctx context.Context, opts Options) (*setcover.Problem, error) {
	if opts.Problem != nil {
		return opts.Problem, nil
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Path)
	start := time.Now()

	format := instance.Detect(opts.Path)
	if opts.Format != "" {
		f, err := instance.ByName(opts.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}
	p, err := instance.LoadAs(opts.Path, format)

	var numSets, universe int
	if p != nil {
		numSets, universe = p.NumSets(), p.UniverseSize()
	}
	hooks.OnLoadComplete(ctx, opts.Path, numSets, universe, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded instance",
		"path", opts.Path,
		"format", format.Name(),
		"sets", numSets,
		"universe", universe)
	return p, nil
}

// OptimumResult is the exact optimum of an instance.
type OptimumResult struct {
	ProblemHash string `json:"problem_hash"`
	Weight      int    `json:"weight"`
	Sets        []int  `json:"sets"`
	CacheHit    bool   `json:"cache_hit"`
}

// Optimum computes the minimum-weight cover of p, using the cache when
// possible. An instance without a cover yields an INFEASIBLE error.
func (r *Runner) Optimum(ctx context.Context, p *setcover.Problem) (*OptimumResult, error) {
	hash, err := ProblemHash(p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash instance")
	}
	key := r.Keyer.OptimumKey(hash)

	var out OptimumResult
	if data, err := cache.GetOrMiss(ctx, r.Cache, key); err == nil {
		if json.Unmarshal(data, &out) == nil {
			observability.Cache().OnCacheHit(ctx, "optimum")
			out.CacheHit = true
			return &out, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "optimum")

	sol, ok := exact.Optimum(p)
	if !ok {
		return nil, errors.New(errors.ErrCodeInfeasible, "the sets do not cover the universe")
	}
	out = OptimumResult{ProblemHash: hash, Weight: sol.Weight(), Sets: sol.Sets()}
	r.store(ctx, "optimum", key, out, cache.TTLOptimum)
	return &out, nil
}

// ProblemHash fingerprints an instance by its canonical JSON document.
func ProblemHash(p *setcover.Problem) (string, error) {
	return cache.HashJSON(instance.NewDocument(p))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) lookup(ctx context.Context, key string) (cachedResult, bool) {
	var cached cachedResult
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
	}
	if err != nil || !hit || json.Unmarshal(data, &cached) != nil {
		observability.Cache().OnCacheMiss(ctx, "result")
		return cached, false
	}
	observability.Cache().OnCacheHit(ctx, "result")
	return cached, true
}

func (r *Runner) resultTTL() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLResult
}

func (r *Runner) store(ctx context.Context, kind, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}
