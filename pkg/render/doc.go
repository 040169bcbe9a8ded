// Package render draws set-cover instances as bipartite diagrams.
//
// Sets are boxes on the left, elements are circles on the right, and each
// membership is an edge. A cover can be highlighted: its sets are filled
// and the edges it uses are drawn bold.
//
//	dot := render.ToDOT(p, render.Options{Highlight: cover.Sets})
//	svg, err := render.RenderSVG(ctx, dot)
//
// SVG is produced in-process with [github.com/goccy/go-graphviz]. PDF and
// PNG conversion shells out to rsvg-convert from librsvg.
package render
