package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cohensara/coverenum/pkg/errors"
)

// ReadJSON decodes a report from JSON.
func ReadJSON(r io.Reader) (Report, error) {
	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return Report{}, fmt.Errorf("decode: %w", err)
	}
	return rep, validate(rep)
}

// ReadYAML decodes a report from YAML.
func ReadYAML(r io.Reader) (Report, error) {
	var rep Report
	if err := yaml.NewDecoder(r).Decode(&rep); err != nil {
		return Report{}, fmt.Errorf("decode: %w", err)
	}
	return rep, validate(rep)
}

// Import reads a report file written by Export.
func Import(path string) (Report, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Report{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "report %s", path)
	}
	if err != nil {
		return Report{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var rep Report
	if IsYAML(path) {
		rep, err = ReadYAML(f)
	} else {
		rep, err = ReadJSON(f)
	}
	if err != nil {
		return Report{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "report %s", path)
	}
	return rep, nil
}

func validate(r Report) error {
	for i, c := range r.Covers {
		if c.Rank != i+1 {
			return fmt.Errorf("cover %d has rank %d", i, c.Rank)
		}
		for _, s := range c.Sets {
			if s < 0 || (r.Instance.NumSets > 0 && s >= r.Instance.NumSets) {
				return fmt.Errorf("cover %d: set %d out of range", c.Rank, s)
			}
		}
	}
	return nil
}
