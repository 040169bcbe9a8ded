package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cohensara/coverenum/pkg/batch"
	"github.com/cohensara/coverenum/pkg/errors"
	"github.com/cohensara/coverenum/pkg/pipeline"
)

// batchOpts holds the flags of the batch command.
type batchOpts struct {
	interval  int
	threshold string
	jobs      int
	useCache  bool
}

// batchCommand creates the batch command: enumerate every instance in a
// folder and write one CSV row per instance.
func (c *CLI) batchCommand() *cobra.Command {
	var opts batchOpts

	cmd := &cobra.Command{
		Use:   "batch <testsFolder> <maxResults> <onlyNonRedundant> <outputBaseName>",
		Short: "Enumerate every instance in a folder into a CSV table",
		Long: `Enumerate every file in testsFolder and write <outputBaseName>.csv with one
row per instance: parameters, sizes, duration, first and best weights, the rank
at which the best was found, the interval samples and the greedy-call count.

The first file that fails to load stops the batch with an error and no table
is kept. Results are computed fresh unless --cache is given, since cached rows
carry the timings of the run that filled the cache.`,
		Example: `  coverenum batch ./instances 1000 true results
  coverenum batch ./instances 100 false results --jobs 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 4 {
				return usageError(cmd, errors.New(errors.ErrCodeInvalidInput, "expected 4 arguments, got %d", len(args)))
			}
			ra, err := parseRunArgs(args[:3])
			if err != nil {
				return usageError(cmd, err)
			}
			if err := errors.ValidateOutputName(args[3]); err != nil {
				return usageError(cmd, err)
			}
			if !cmd.Flags().Changed("interval") {
				opts.interval = c.Config.Enumerate.Interval
			}
			if !cmd.Flags().Changed("threshold") {
				opts.threshold = c.Config.Enumerate.Threshold
			}
			if !cmd.Flags().Changed("jobs") && c.Config.Batch.Jobs > 0 {
				opts.jobs = c.Config.Batch.Jobs
			}
			return c.runBatch(cmd.Context(), ra, batch.OutputPath(args[3]), opts)
		},
	}

	cmd.Flags().IntVar(&opts.interval, "interval", pipeline.DefaultInterval, "covers per statistics interval")
	cmd.Flags().StringVar(&opts.threshold, "threshold", "high-water", "frontier admission: high-water, exact")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 1, "instances solved concurrently")
	cmd.Flags().BoolVar(&opts.useCache, "cache", false, "reuse cached results (timings come from the cached run)")

	return cmd
}

func (c *CLI) runBatch(ctx context.Context, ra runArgs, outPath string, opts batchOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(ctx, !opts.useCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}

	h := &batch.Harness{
		Runner:      runner,
		MaxResults:  ra.maxResults,
		OnlyMinimal: ra.onlyMinimal,
		Interval:    opts.interval,
		Threshold:   opts.threshold,
		Jobs:        opts.jobs,
		Logger:      logger,
	}
	report, runErr := h.Run(ctx, ra.path, f)
	if err := f.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		_ = os.Remove(outPath)
		return runErr
	}

	prog.done(fmt.Sprintf("Solved %d instances", report.Written))
	printSuccess("Wrote %d rows", report.Written)
	printFile(outPath)
	if report.Cached > 0 {
		printWarning("%d rows came from the cache; their timings are from an earlier run", report.Cached)
	}
	return nil
}
