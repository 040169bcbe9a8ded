package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cohensara/coverenum/pkg/pipeline"
	"github.com/cohensara/coverenum/pkg/setcover"
	"github.com/cohensara/coverenum/pkg/stats"
)

// Report is the exported form of a pipeline run.
type Report struct {
	RunID      string           `json:"run_id" yaml:"run_id"`
	Instance   Instance         `json:"instance" yaml:"instance"`
	Parameters Parameters       `json:"parameters" yaml:"parameters"`
	Stats      stats.Summary    `json:"stats" yaml:"stats"`
	Dropped    int              `json:"dropped" yaml:"dropped"`
	CacheHit   bool             `json:"cache_hit" yaml:"cache_hit"`
	Covers     []setcover.Cover `json:"covers" yaml:"covers"`
}

// Instance identifies the enumerated instance.
type Instance struct {
	Path         string `json:"path,omitempty" yaml:"path,omitempty"`
	Hash         string `json:"hash" yaml:"hash"`
	UniverseSize int    `json:"universe_size" yaml:"universe_size"`
	NumSets      int    `json:"num_sets" yaml:"num_sets"`
}

// Parameters are the enumeration settings of the run.
type Parameters struct {
	MaxResults  int    `json:"max_results" yaml:"max_results"`
	OnlyMinimal bool   `json:"only_minimal" yaml:"only_minimal"`
	Threshold   string `json:"threshold" yaml:"threshold"`
	Interval    int    `json:"interval" yaml:"interval"`
}

// NewReport builds a report from a validated options value and its result.
func NewReport(opts pipeline.Options, res *pipeline.Result) Report {
	r := Report{
		RunID: res.RunID,
		Instance: Instance{
			Path: opts.Path,
			Hash: res.ProblemHash,
		},
		Parameters: Parameters{
			MaxResults:  opts.MaxResults,
			OnlyMinimal: opts.OnlyMinimal,
			Threshold:   opts.Threshold,
			Interval:    opts.Interval,
		},
		Stats:    res.Stats,
		Dropped:  res.Dropped,
		CacheHit: res.CacheHit,
		Covers:   res.Covers,
	}
	if res.Problem != nil {
		r.Instance.UniverseSize = res.Problem.UniverseSize()
		r.Instance.NumSets = res.Problem.NumSets()
	}
	if r.Covers == nil {
		r.Covers = []setcover.Cover{}
	}
	return r
}

// Cover returns the cover with the given 1-based rank.
func (r Report) Cover(rank int) (setcover.Cover, bool) {
	for _, c := range r.Covers {
		if c.Rank == rank {
			return c, true
		}
	}
	return setcover.Cover{}, false
}

// WriteJSON encodes r as indented JSON.
func WriteJSON(r Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes r as YAML.
func WriteYAML(r Report, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// IsYAML reports whether path names a YAML file.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Export writes r to path, as YAML or JSON depending on the extension.
func Export(r Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if IsYAML(path) {
		err = WriteYAML(r, f)
	} else {
		err = WriteJSON(r, f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
