package io

import (
	"bytes"
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/cohensara/coverenum/pkg/errors"
	"github.com/cohensara/coverenum/pkg/pipeline"
	"github.com/cohensara/coverenum/pkg/setcover"
)

func sampleReport(t *testing.T) Report {
	t.Helper()
	p, err := setcover.NewProblem(3, []int{2, 2, 2, 3}, [][]int{{0, 1}, {1, 2}, {0, 2}, {0, 1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	opts := pipeline.Options{Problem: p, MaxResults: 10, OnlyMinimal: true, Interval: 2}
	res, err := pipeline.NewRunner(nil, nil, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	return NewReport(opts, res)
}

func TestNewReport(t *testing.T) {
	r := sampleReport(t)
	if r.Instance.NumSets != 4 || r.Instance.UniverseSize != 3 {
		t.Errorf("Instance = %+v", r.Instance)
	}
	if r.Parameters.Threshold != "high-water" || r.Parameters.Interval != 2 {
		t.Errorf("Parameters = %+v", r.Parameters)
	}
	if len(r.Covers) == 0 || r.RunID == "" || r.Instance.Hash == "" {
		t.Errorf("report missing data: %+v", r)
	}
	if c, ok := r.Cover(1); !ok || c.Rank != 1 {
		t.Errorf("Cover(1) = %+v, %v", c, ok)
	}
	if _, ok := r.Cover(99); ok {
		t.Error("Cover(99) should not exist")
	}
}

func TestNewReportEmptyCovers(t *testing.T) {
	r := NewReport(pipeline.Options{}, &pipeline.Result{})
	var buf bytes.Buffer
	if err := WriteJSON(r, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"covers": []`) {
		t.Errorf("empty covers should encode as [], got %s", buf.String())
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	r := sampleReport(t)
	dir := t.TempDir()

	for _, name := range []string{"out.json", "out.yaml", "out.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Export(r, path); err != nil {
				t.Fatalf("Export: %v", err)
			}
			back, err := Import(path)
			if err != nil {
				t.Fatalf("Import: %v", err)
			}
			if !reflect.DeepEqual(back, r) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, r)
			}
		})
	}
}

func TestWriteYAMLFieldNames(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYAML(sampleReport(t), &buf); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"run_id:", "only_minimal: true", "best_weight:", "covers:"} {
		if !strings.Contains(buf.String(), key) {
			t.Errorf("YAML output missing %q", key)
		}
	}
}

func TestImportErrors(t *testing.T) {
	if _, err := Import(filepath.Join(t.TempDir(), "none.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import(missing) = %v, want FILE_NOT_FOUND", err)
	}

	tests := []struct {
		name  string
		input string
	}{
		{"not json", "{"},
		{"bad rank", `{"covers":[{"rank":2,"weight":1,"sets":[0]}]}`},
		{"set out of range", `{"instance":{"num_sets":2},"covers":[{"rank":1,"weight":1,"sets":[5]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.input)); err == nil {
				t.Error("ReadJSON should fail")
			}
		})
	}
}

func TestIsYAML(t *testing.T) {
	tests := map[string]bool{"a.yaml": true, "a.YML": true, "a.json": false, "a": false}
	for path, want := range tests {
		if got := IsYAML(path); got != want {
			t.Errorf("IsYAML(%q) = %v, want %v", path, got, want)
		}
	}
}
