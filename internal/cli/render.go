package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cohensara/coverenum/pkg/errors"
	coverio "github.com/cohensara/coverenum/pkg/io"
	"github.com/cohensara/coverenum/pkg/pipeline"
	"github.com/cohensara/coverenum/pkg/render"
	"github.com/cohensara/coverenum/pkg/setcover"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	format     string // instance format; detected when empty
	output     string // output file; derived from the instance name when empty
	outFormat  string // dot, svg, png or pdf
	from       string // report whose cover is highlighted
	rank       int    // rank of the highlighted cover; zero means the best
	sets       string // comma-separated set indices to highlight
	hideUnused bool
	title      string
}

// renderCommand creates the render command: draw an instance as a bipartite
// graph of sets and elements.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <problemFile>",
		Short: "Draw an instance, optionally highlighting a cover",
		Long: `Draw the instance as a graph with one node per set and per element.

A cover can be highlighted from a report written by "run --output" (--from,
with --rank selecting the cover and the best cover by default) or given
directly with --sets. PNG and PDF output require rsvg-convert.`,
		Example: `  coverenum render scp41.txt --from scp41.json
  coverenum render scp41.txt --from scp41.json --rank 3 -f png
  coverenum render tiny.json --sets 0,2 -f dot -o tiny.dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "", "instance format (default: detect)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <instance>.<format>)")
	cmd.Flags().StringVarP(&opts.outFormat, "to", "f", render.FormatSVG, "output format: svg, dot, png, pdf")
	cmd.Flags().StringVar(&opts.from, "from", "", "report file to take the highlighted cover from")
	cmd.Flags().IntVar(&opts.rank, "rank", 0, "rank of the cover to highlight (default: best)")
	cmd.Flags().StringVar(&opts.sets, "sets", "", "comma-separated set indices to highlight")
	cmd.Flags().BoolVar(&opts.hideUnused, "hide-unused", false, "omit sets outside the highlighted cover")
	cmd.Flags().StringVar(&opts.title, "title", "", "diagram title")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	runner := pipeline.NewRunner(nil, nil, logger)
	p, err := runner.Load(ctx, pipeline.Options{Path: path, Format: opts.format})
	if err != nil {
		return err
	}

	highlight, err := highlightedSets(p, opts)
	if err != nil {
		return err
	}

	out, err := render.Render(ctx, p, render.Options{
		Highlight:  highlight,
		HideUnused: opts.hideUnused,
		Title:      opts.title,
	}, opts.outFormat)
	if err != nil {
		return err
	}

	dest := opts.output
	if dest == "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		dest = base + "." + opts.outFormat
	}
	if err := os.WriteFile(dest, out, 0644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	printSuccess("Rendered %d sets", p.NumSets())
	printFile(dest)
	return nil
}

// highlightedSets resolves the cover to highlight from --sets or --from.
func highlightedSets(p *setcover.Problem, opts renderOpts) ([]int, error) {
	if opts.sets != "" && opts.from != "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--sets and --from are mutually exclusive")
	}
	if opts.sets != "" {
		return parseSetList(opts.sets, p.NumSets())
	}
	if opts.from == "" {
		if opts.rank != 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--rank needs --from")
		}
		return nil, nil
	}

	rep, err := coverio.Import(opts.from)
	if err != nil {
		return nil, err
	}
	if hash, err := pipeline.ProblemHash(p); err == nil && rep.Instance.Hash != "" && rep.Instance.Hash != hash {
		return nil, errors.New(errors.ErrCodeInvalidInput, "report %s was produced for a different instance", opts.from)
	}
	rank := opts.rank
	if rank == 0 {
		rank = rep.Stats.BestRank
	}
	cover, ok := rep.Cover(rank)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "report %s has no cover at rank %d", opts.from, rank)
	}
	return cover.Sets, nil
}

// parseSetList parses "0,3,7" into set indices below numSets.
func parseSetList(s string, numSets int) ([]int, error) {
	var sets []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		i, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "set index %q", field)
		}
		if i < 0 || i >= numSets {
			return nil, errors.New(errors.ErrCodeInvalidInput, "set index %d outside [0, %d)", i, numSets)
		}
		sets = append(sets, i)
	}
	return sets, nil
}
