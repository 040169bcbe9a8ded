package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cohensara/coverenum/pkg/exact"
	"github.com/cohensara/coverenum/pkg/pipeline"
	"github.com/cohensara/coverenum/pkg/setcover"
)

// optimumCommand creates the optimum command: solve an instance exactly.
func (c *CLI) optimumCommand() *cobra.Command {
	var (
		format  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "optimum <problemFile>",
		Short: "Compute the exact minimum-weight cover and the greedy gap",
		Long: `Solve the instance exactly as a weighted MaxSAT problem and compare the
optimum with the greedy cover that seeds enumeration. Exact solving is
exponential in the worst case; use it on small and medium instances.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOptimum(cmd.Context(), cmd.OutOrStdout(), args[0], format, noCache)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "instance format (default: detect)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) runOptimum(ctx context.Context, w io.Writer, path, format string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	p, err := runner.Load(ctx, pipeline.Options{Path: path, Format: format, MaxResults: 1})
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Solving %d sets over %d elements...", p.NumSets(), p.UniverseSize()))
	spinner.Start()
	opt, err := runner.Optimum(ctx, p)
	spinner.Stop()
	if err != nil {
		return err
	}

	printKeyValue(w, "Optimum", strconv.Itoa(opt.Weight))
	printKeyValue(w, "Sets", formatSets(opt.Sets, 20))
	if seed, ok := setcover.Greedy(p, nil, nil); ok {
		printKeyValue(w, "Greedy", strconv.Itoa(seed.Weight()))
		printKeyValue(w, "Gap", fmt.Sprintf("%.2f%%", 100*exact.Gap(seed.Weight(), opt.Weight)))
	}
	if opt.CacheHit {
		printKeyValue(w, "Source", iconCached)
	}
	return nil
}
