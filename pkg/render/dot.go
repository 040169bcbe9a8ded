package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/cohensara/coverenum/pkg/errors"
	"github.com/cohensara/coverenum/pkg/setcover"
)

// Formats accepted by Render.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// Options configures diagram generation.
type Options struct {
	// Highlight lists the set indices to emphasise, usually a cover.
	Highlight []int

	// HideUnused omits sets that are not highlighted.
	HideUnused bool

	// Title is drawn above the diagram when non-empty.
	Title string
}

// ToDOT converts p to Graphviz DOT source.
func ToDOT(p *setcover.Problem, opts Options) string {
	chosen := make(map[int]bool, len(opts.Highlight))
	for _, s := range opts.Highlight {
		chosen[s] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.15;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("\n")

	buf.WriteString("  subgraph sets {\n    rank=same;\n")
	buf.WriteString("    node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	for i := range p.NumSets() {
		if opts.HideUnused && !chosen[i] {
			continue
		}
		attrs := []string{fmt.Sprintf("label=\"S%d\\nw=%d\"", i, p.Weight(i))}
		if chosen[i] {
			attrs = append(attrs, "fillcolor=\"#ffd166\"", "penwidth=2")
		}
		fmt.Fprintf(&buf, "    s%d [%s];\n", i, strings.Join(attrs, ", "))
	}
	buf.WriteString("  }\n\n")

	covered := make([]bool, p.UniverseSize())
	for s := range chosen {
		if s < 0 || s >= p.NumSets() {
			continue
		}
		for _, e := range p.Elements(s) {
			covered[e] = true
		}
	}

	buf.WriteString("  subgraph elements {\n    rank=same;\n")
	buf.WriteString("    node [shape=circle, style=filled, fillcolor=white, fontsize=10];\n")
	for e := range p.UniverseSize() {
		attrs := []string{fmt.Sprintf("label=\"%d\"", e)}
		if covered[e] {
			attrs = append(attrs, "fillcolor=\"#06d6a0\"")
		}
		fmt.Fprintf(&buf, "    e%d [%s];\n", e, strings.Join(attrs, ", "))
	}
	buf.WriteString("  }\n\n")

	for i := range p.NumSets() {
		if opts.HideUnused && !chosen[i] {
			continue
		}
		for _, e := range p.Elements(i) {
			if chosen[i] {
				fmt.Fprintf(&buf, "  s%d -- e%d [penwidth=2];\n", i, e)
			} else {
				fmt.Fprintf(&buf, "  s%d -- e%d [color=grey];\n", i, e)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// Render draws p in the given format.
func Render(ctx context.Context, p *setcover.Problem, opts Options, format string) ([]byte, error) {
	dot := ToDOT(p, opts)
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return RenderSVG(ctx, dot)
	case FormatPNG, FormatPDF:
		svg, err := RenderSVG(ctx, dot)
		if err != nil {
			return nil, err
		}
		if format == FormatPNG {
			return ToPNG(svg, 2.0)
		}
		return ToPDF(svg)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "invalid format %q (must be one of: dot, svg, png, pdf)", format)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the SVG scales with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
