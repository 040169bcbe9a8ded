package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cohensara/coverenum/pkg/errors"
	coverio "github.com/cohensara/coverenum/pkg/io"
	"github.com/cohensara/coverenum/pkg/pipeline"
)

// runOpts holds the flags of the run command.
type runOpts struct {
	format    string // instance format; detected from the file name when empty
	interval  int    // statistics interval length
	threshold string // frontier admission policy
	show      int    // covers to print as a table
	output    string // report file (.json, .yaml or .yml)
	noCache   bool
	refresh   bool
}

// runArgs are the positional arguments of the run command.
type runArgs struct {
	path        string
	maxResults  int
	onlyMinimal bool
}

// runCommand creates the run command: enumerate covers of one instance.
func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run <problemFile|dir> <maxResults> <onlyNonRedundant>",
		Short: "Enumerate covers of an instance and report the first and best weights",
		Long: `Enumerate up to maxResults covers of the instance in problemFile, cheapest
first. With onlyNonRedundant=true only covers with no removable set are emitted.

The file format is detected from the file name: names containing "rail",
"dblp" or "accidents" select those formats, *.json selects the JSON document
form, and anything else is read as an OR-Library file. When problemFile is a
directory an interactive picker lists its instances.`,
		Example: `  coverenum run scp41.txt 1000 true
  coverenum run rail507.txt 100 false --show 10 --output rail507.yaml
  coverenum run ./instances 500 true`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ra, err := parseRunArgs(args)
			if err != nil {
				return usageError(cmd, err)
			}
			if !cmd.Flags().Changed("interval") {
				opts.interval = c.Config.Enumerate.Interval
			}
			if !cmd.Flags().Changed("threshold") {
				opts.threshold = c.Config.Enumerate.Threshold
			}
			if info, err := os.Stat(ra.path); err == nil && info.IsDir() {
				picked, err := pickInstance(ra.path)
				if err != nil {
					return err
				}
				if picked == "" {
					return nil
				}
				ra.path = picked
			}
			return c.runEnumerate(cmd.Context(), cmd.OutOrStdout(), ra, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "", "instance format: orlib, rail, dblp, fis, json (default: detect)")
	cmd.Flags().IntVar(&opts.interval, "interval", pipeline.DefaultInterval, "covers per statistics interval")
	cmd.Flags().StringVar(&opts.threshold, "threshold", "high-water", "frontier admission: high-water, exact")
	cmd.Flags().IntVar(&opts.show, "show", 0, "print the first N covers as a table")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write a report (.json, .yaml)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// parseRunArgs validates the three positional arguments shared by run and batch.
func parseRunArgs(args []string) (runArgs, error) {
	if len(args) != 3 {
		return runArgs{}, errors.New(errors.ErrCodeInvalidInput, "expected 3 arguments, got %d", len(args))
	}
	n, err := errors.ParseMaxResults(args[1])
	if err != nil {
		return runArgs{}, err
	}
	only, err := errors.ParseOnlyMinimal(args[2])
	if err != nil {
		return runArgs{}, err
	}
	return runArgs{path: args[0], maxResults: n, onlyMinimal: only}, nil
}

// usageError prints the command usage before returning err, since the root
// command silences usage for runtime failures.
func usageError(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
	return err
}

func (c *CLI) runEnumerate(ctx context.Context, w io.Writer, ra runArgs, opts runOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	rec := newProgressRecorder(logger)
	popts := pipeline.Options{
		Path:        ra.path,
		Format:      opts.format,
		MaxResults:  ra.maxResults,
		OnlyMinimal: ra.onlyMinimal,
		Interval:    opts.interval,
		Threshold:   opts.threshold,
		Refresh:     opts.refresh,
		Logger:      logger,
		Recorder:    rec,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	res, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	if !res.CacheHit {
		rec.finish(len(res.Covers))
	}

	if err := writeRunResult(w, res); err != nil {
		return err
	}
	printRunStats(w, res.Problem.NumSets(), res.Problem.UniverseSize(), len(res.Covers), res.CacheHit)
	if table := coverTable(res.Covers, opts.show); table != "" {
		fmt.Fprintln(w, table)
	}

	if opts.output != "" {
		if err := coverio.Export(coverio.NewReport(popts, res), opts.output); err != nil {
			return err
		}
		printFile(opts.output)
		printNextStep("Draw the best cover", fmt.Sprintf("%s render %s --from %s", appName, ra.path, opts.output))
	}
	return nil
}

// writeRunResult prints the first and best weights in the classic
// two-line form.
func writeRunResult(w io.Writer, res *pipeline.Result) error {
	s := res.Stats
	if !s.HasResult() {
		_, err := fmt.Fprintln(w, "No cover exists: the sets do not cover the universe")
		return err
	}
	_, err := fmt.Fprintf(w, "First Weight: %d\nBest Weight: %d at %d\n", s.FirstWeight, s.BestWeight, s.BestRank)
	return err
}
