// Package io exports enumeration results as JSON or YAML and reads them back.
//
// # Format
//
// A [Report] carries the run parameters, the instance fingerprint, the run
// statistics and the emitted covers:
//
//	{
//	  "run_id": "4c0d...",
//	  "instance": {"path": "scp41.txt", "hash": "9f86...", "universe_size": 200, "num_sets": 1000},
//	  "parameters": {"max_results": 100, "only_minimal": true, "threshold": "high-water", "interval": 500},
//	  "stats": {"first_weight": 512, "best_weight": 429, "best_rank": 37, "greedy_calls": 1893, ...},
//	  "covers": [{"rank": 1, "weight": 512, "sets": [3, 17, 40]}, ...]
//	}
//
// YAML output uses the same field names.
//
// # Export
//
// Use [Export] to write a report to a file; the encoding is chosen from the
// extension (".yaml"/".yml" for YAML, anything else JSON). [WriteJSON] and
// [WriteYAML] write to any io.Writer.
//
// # Import
//
// [Import] reads a report written by [Export]. The render command uses it
// to highlight a cover from an earlier run.
package io
