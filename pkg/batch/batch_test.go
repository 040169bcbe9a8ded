package batch

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/cohensara/coverenum/pkg/cache"
	"github.com/cohensara/coverenum/pkg/errors"
	"github.com/cohensara/coverenum/pkg/pipeline"
)

func writeFolder(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

var fixtures = map[string]string{
	"a_scp.txt":  "4 4\n4 4 4 3\n2 1 3\n2 1 2\n2 2 3\n1 4\n",
	"b_rail.txt": "3 4\n2 2 1 2\n2 2 2 3\n2 2 1 3\n3 3 1 2 3\n",
}

func readTable(t *testing.T, data []byte) [][]string {
	t.Helper()
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	return records
}

// stable drops the timing columns.
func stable(rec []string) []string {
	var out []string
	for i, f := range rec {
		if i == 5 {
			continue
		}
		if i >= 9 && i < len(rec)-1 && (i-9)%3 == 1 {
			continue
		}
		out = append(out, f)
	}
	return out
}

func TestHarnessRun(t *testing.T) {
	dir := writeFolder(t, fixtures)
	var buf bytes.Buffer
	h := &Harness{MaxResults: 10, OnlyMinimal: true, Interval: 1}

	report, err := h.Run(context.Background(), dir, &buf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Written != 2 || report.Cached != 0 {
		t.Errorf("report = %+v, want 2 written, none cached", report)
	}

	records := readTable(t, buf.Bytes())
	if len(records) != 3 {
		t.Fatalf("got %d records, want header and 2 rows", len(records))
	}
	if !reflect.DeepEqual(records[0], Header) {
		t.Errorf("header = %v", records[0])
	}

	scp := records[1]
	if scp[0] != "a_scp.txt" || scp[1] != "10" || scp[2] != "true" || scp[3] != "4" || scp[4] != "4" {
		t.Errorf("scp row prefix = %v", scp[:5])
	}
	// Three minimal covers of weight 11, one sample each.
	if got := len(scp); got != 9+3*3+1 {
		t.Errorf("scp row has %d fields, want %d", got, 9+3*3+1)
	}
	if scp[6] != "11" || scp[7] != "11" || scp[8] != "1" {
		t.Errorf("scp first/best/rank = %v", scp[6:9])
	}
	if scp[9] != "1" || scp[12] != "2" || scp[15] != "3" {
		t.Errorf("sample indices = %v %v %v", scp[9], scp[12], scp[15])
	}

	rail := records[2]
	if rail[0] != "b_rail.txt" || rail[7] != "3" {
		t.Errorf("rail row = %v, want best weight 3", rail)
	}
}

func TestHarnessParallelMatchesSequential(t *testing.T) {
	dir := writeFolder(t, fixtures)

	var seq, par bytes.Buffer
	if _, err := (&Harness{MaxResults: 5, Jobs: 1}).Run(context.Background(), dir, &seq); err != nil {
		t.Fatal(err)
	}
	var order []string
	h := &Harness{MaxResults: 5, Jobs: 4, OnRow: func(r Row) { order = append(order, r.Name) }}
	if _, err := h.Run(context.Background(), dir, &par); err != nil {
		t.Fatal(err)
	}

	a, b := readTable(t, seq.Bytes()), readTable(t, par.Bytes())
	if len(a) != len(b) {
		t.Fatalf("row counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !reflect.DeepEqual(stable(a[i]), stable(b[i])) {
			t.Errorf("row %d differs:\n%v\n%v", i, a[i], b[i])
		}
	}
	if !reflect.DeepEqual(order, []string{"a_scp.txt", "b_rail.txt"}) {
		t.Errorf("OnRow order = %v", order)
	}
}

func TestHarnessStopsOnMalformedInstance(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		written int
	}{
		{"truncated after valid", "c_bad.txt", "4 4\n1 1\n", 2},
		{"garbage before valid", "0_bad.txt", "not an instance", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := map[string]string{tt.file: tt.content}
			for name, content := range fixtures {
				files[name] = content
			}
			dir := writeFolder(t, files)

			for _, jobs := range []int{1, 3} {
				report, err := (&Harness{MaxResults: 3, Jobs: jobs}).Run(context.Background(), dir, &bytes.Buffer{})
				if !errors.Is(err, errors.ErrCodeInvalidInstance) {
					t.Fatalf("jobs=%d: Run error = %v, want INVALID_INSTANCE", jobs, err)
				}
				if !strings.Contains(err.Error(), tt.file) {
					t.Errorf("jobs=%d: error %q does not name %s", jobs, err, tt.file)
				}
				if report.Written != tt.written {
					t.Errorf("jobs=%d: Written = %d, want %d", jobs, report.Written, tt.written)
				}
			}
		})
	}
}

func TestHarnessCountsCachedRows(t *testing.T) {
	dir := writeFolder(t, fixtures)
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	h := &Harness{Runner: pipeline.NewRunner(c, nil, nil), MaxResults: 5}

	if _, err := h.Run(context.Background(), dir, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	report, err := h.Run(context.Background(), dir, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if report.Cached != 2 {
		t.Errorf("Cached = %d on the second run, want 2", report.Cached)
	}
}

func TestHarnessMissingFolder(t *testing.T) {
	_, err := (&Harness{MaxResults: 1}).Run(context.Background(), filepath.Join(t.TempDir(), "none"), &bytes.Buffer{})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Run(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestHarnessCancelled(t *testing.T) {
	dir := writeFolder(t, fixtures)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Harness{MaxResults: 5, Jobs: 2}).Run(ctx, dir, &bytes.Buffer{})
	if err != context.Canceled {
		t.Errorf("Run(cancelled) error = %v, want context.Canceled", err)
	}
}

func TestFilesSkipsDirectories(t *testing.T) {
	dir := writeFolder(t, fixtures)
	files, err := Files(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Errorf("Files = %v, want 2 regular files", files)
	}
}

func TestOutputPath(t *testing.T) {
	if got := OutputPath("results/run1"); got != "results/run1.csv" {
		t.Errorf("OutputPath = %q", got)
	}
}
