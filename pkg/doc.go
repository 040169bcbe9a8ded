// Package pkg provides the libraries behind coverenum, a ranked enumerator of
// weighted set covers.
//
// # Overview
//
// Given a universe of elements and a family of weighted sets, coverenum emits
// covers one at a time, roughly cheapest first. The pkg directory is
// organized into four areas:
//
//  1. Core - [setcover] (problem, greedy seed, frontier, enumerator), [stats]
//     and [exact] (weighted MaxSAT optimum)
//  2. Inputs and outputs - [instance] (file formats), [io] (run reports) and
//     [render] (Graphviz drawings)
//  3. Orchestration - [pipeline] (load, cache, enumerate) and [batch]
//     (folder runs into a CSV table)
//  4. Infrastructure - [cache], [config], [errors], [observability],
//     [metrics], [api] and [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	Instance file (OR-Library, rail, dblp, fis, JSON)
//	         ↓
//	    [instance] package (parse into a setcover.Problem)
//	         ↓
//	    [pipeline] package (cache lookup, enumerate, store)
//	         ↓
//	    [setcover] package (greedy seed, bounded frontier, dedup)
//	         ↓
//	    Covers + stats.Summary → CLI, CSV, JSON/YAML report, HTTP
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/cohensara/coverenum/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Execute(context.Background(), pipeline.Options{
//	    Path:        "scp41.txt",
//	    MaxResults:  1000,
//	    OnlyMinimal: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Stats.FirstWeight, res.Stats.BestWeight, res.Stats.BestRank)
//
// For in-memory instances, build a problem with setcover.NewProblem and pass
// it as Options.Problem, or drive setcover.Enumerate directly with a
// Recorder of your own.
//
// [setcover]: https://pkg.go.dev/github.com/cohensara/coverenum/pkg/setcover
// [stats]: https://pkg.go.dev/github.com/cohensara/coverenum/pkg/stats
// [exact]: https://pkg.go.dev/github.com/cohensara/coverenum/pkg/exact
// [instance]: https://pkg.go.dev/github.com/cohensara/coverenum/pkg/instance
// [io]: https://pkg.go.dev/github.com/cohensara/coverenum/pkg/io
// [render]: https://pkg.go.dev/github.com/cohensara/coverenum/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/cohensara/coverenum/pkg/pipeline
// [batch]: https://pkg.go.dev/github.com/cohensara/coverenum/pkg/batch
// [cache]: https://pkg.go.dev/github.com/cohensara/coverenum/pkg/cache
// [config]: https://pkg.go.dev/github.com/cohensara/coverenum/pkg/config
// [errors]: https://pkg.go.dev/github.com/cohensara/coverenum/pkg/errors
// [observability]: https://pkg.go.dev/github.com/cohensara/coverenum/pkg/observability
// [metrics]: https://pkg.go.dev/github.com/cohensara/coverenum/pkg/metrics
// [api]: https://pkg.go.dev/github.com/cohensara/coverenum/pkg/api
// [buildinfo]: https://pkg.go.dev/github.com/cohensara/coverenum/pkg/buildinfo
package pkg
