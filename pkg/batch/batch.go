// Package batch enumerates every instance in a folder and tabulates the
// run statistics as CSV.
//
// The table has one row per instance, in file-name order:
//
//	name, maxResults, onlyMinimal, universe, sets, ms, first, best, rank,
//	[index, ms, weight]..., greedyCalls
//
// where each bracketed triple is one interval sample. Instances are solved
// concurrently when Jobs > 1; rows are still written in order as soon as
// every earlier row is done. The first instance that fails to load stops
// the batch.
package batch

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cohensara/coverenum/pkg/errors"
	"github.com/cohensara/coverenum/pkg/pipeline"
)

// Header is the first CSV record.
var Header = []string{
	"Test Name", "Max Num of Results", "Only Nonredundant", "Universe Size", "Number of Sets",
	"Time", "First Weight", "Best Weight", "When Found", "Interval Times", "Weights", "....",
	"Number of Times Running Greedy",
}

// Harness runs a folder of instances through a pipeline.Runner.
type Harness struct {
	Runner      *pipeline.Runner
	MaxResults  int
	OnlyMinimal bool
	Interval    int    // zero means pipeline.DefaultInterval
	Threshold   string // frontier admission policy; empty means high-water
	Jobs        int    // concurrent instances; values below 1 mean 1
	Logger      *log.Logger

	// OnRow, when set, is called after each row is written.
	OnRow func(Row)
}

// Row is the outcome for one instance file.
type Row struct {
	Name   string
	Result *pipeline.Result
	Err    error
}

// Report summarises a batch.
type Report struct {
	Written int
	Cached  int // rows whose statistics came from the cache
}

// Files returns the regular files of folder in name order.
func Files(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "tests folder %s", folder)
	}
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, filepath.Join(folder, e.Name()))
		}
	}
	return files, nil
}

// Run solves every file in folder and writes the table to w. It stops at
// the first instance that fails to load, returning an error naming the
// file; rows already written to w are not withdrawn.
func (h *Harness) Run(ctx context.Context, folder string, w io.Writer) (Report, error) {
	var report Report
	files, err := Files(folder)
	if err != nil {
		return report, err
	}
	logger := h.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	runner := h.Runner
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return report, err
	}
	cw.Flush()

	ctx, cancel := context.WithCancel(ctx)

	jobs := max(h.Jobs, 1)
	g := new(errgroup.Group)
	g.SetLimit(jobs)

	slots := make([]chan Row, len(files))
	for i := range slots {
		slots[i] = make(chan Row, 1)
	}
	launched := make(chan struct{})
	go func() {
		defer close(launched)
		for i, path := range files {
			g.Go(func() error {
				slots[i] <- h.solve(ctx, runner, path)
				return nil
			})
		}
	}()
	defer func() {
		cancel()
		<-launched
		_ = g.Wait()
	}()

	for i := range files {
		row := <-slots[i]
		if row.Err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			return report, instanceError(row)
		}
		if err := cw.Write(h.record(row)); err != nil {
			return report, err
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return report, err
		}
		report.Written++
		if row.Result.CacheHit {
			report.Cached++
		}
		logger.Info("solved", "file", row.Name,
			"cached", row.Result.CacheHit,
			"best", row.Result.Stats.BestWeight,
			"duration", row.Result.Duration)
		if h.OnRow != nil {
			h.OnRow(row)
		}
	}
	return report, nil
}

func (h *Harness) solve(ctx context.Context, runner *pipeline.Runner, path string) Row {
	row := Row{Name: filepath.Base(path)}
	if err := ctx.Err(); err != nil {
		row.Err = err
		return row
	}
	row.Result, row.Err = runner.Execute(ctx, pipeline.Options{
		Path:        path,
		MaxResults:  h.MaxResults,
		OnlyMinimal: h.OnlyMinimal,
		Interval:    h.Interval,
		Threshold:   h.Threshold,
	})
	return row
}

// instanceError names the failing file and keeps the cause's code.
func instanceError(row Row) error {
	code := errors.GetCode(row.Err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, row.Err, "%s: %s", row.Name, errors.UserMessage(row.Err))
}

func (h *Harness) record(row Row) []string {
	res := row.Result
	s := res.Stats
	rec := []string{
		row.Name,
		strconv.Itoa(h.MaxResults),
		strconv.FormatBool(h.OnlyMinimal),
		strconv.Itoa(res.Problem.UniverseSize()),
		strconv.Itoa(res.Problem.NumSets()),
		strconv.FormatInt(res.Duration.Milliseconds(), 10),
		strconv.Itoa(s.FirstWeight),
		strconv.Itoa(s.BestWeight),
		strconv.Itoa(s.BestRank),
	}
	for _, sample := range s.Samples {
		rec = append(rec,
			strconv.Itoa(sample.Index),
			strconv.FormatInt(sample.Elapsed.Milliseconds(), 10),
			strconv.Itoa(sample.Weight))
	}
	return append(rec, strconv.Itoa(s.GreedyCalls))
}

// OutputPath returns the CSV path for an output base name.
func OutputPath(base string) string {
	return fmt.Sprintf("%s.csv", base)
}
