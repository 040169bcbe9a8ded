package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cohensara/coverenum/pkg/instance"
	coverio "github.com/cohensara/coverenum/pkg/io"
	"github.com/cohensara/coverenum/pkg/metrics"
	"github.com/cohensara/coverenum/pkg/observability"
	"github.com/cohensara/coverenum/pkg/pipeline"
)

var triangle = instance.Document{
	UniverseSize: 3,
	Weights:      []int{2, 2, 2, 3},
	Sets:         [][]int{{0, 1}, {1, 2}, {0, 2}, {0, 1, 2}},
}

func newTestServer(t *testing.T) (*Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return &Server{
		Runner:   pipeline.NewRunner(nil, nil, nil),
		Gatherer: reg,
	}, reg
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorDetail {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /healthz = %d, want 200", rec.Code)
	}
}

func TestEnumerate(t *testing.T) {
	s, _ := newTestServer(t)
	rec := post(t, s.Handler(), "/v1/enumerate", EnumerateRequest{
		Instance:    triangle,
		MaxResults:  10,
		OnlyMinimal: true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /v1/enumerate = %d: %s", rec.Code, rec.Body)
	}

	var rep coverio.Report
	if err := json.NewDecoder(rec.Body).Decode(&rep); err != nil {
		t.Fatal(err)
	}
	if len(rep.Covers) != 4 {
		t.Errorf("got %d covers, want 4", len(rep.Covers))
	}
	if rep.Covers[0].Weight != 4 || rep.Stats.BestWeight != 3 {
		t.Errorf("first weight %d, best %d; want 4 and 3", rep.Covers[0].Weight, rep.Stats.BestWeight)
	}
	if rep.Instance.NumSets != 4 || rep.Parameters.Threshold != "high-water" {
		t.Errorf("report metadata = %+v %+v", rep.Instance, rep.Parameters)
	}
}

func TestEnumerateDefaultsMaxResults(t *testing.T) {
	s, _ := newTestServer(t)
	rec := post(t, s.Handler(), "/v1/enumerate", EnumerateRequest{Instance: triangle})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var rep coverio.Report
	if err := json.NewDecoder(rec.Body).Decode(&rep); err != nil {
		t.Fatal(err)
	}
	if rep.Parameters.MaxResults != pipeline.DefaultMaxResults {
		t.Errorf("MaxResults = %d, want %d", rep.Parameters.MaxResults, pipeline.DefaultMaxResults)
	}
}

func TestEnumerateErrors(t *testing.T) {
	s, _ := newTestServer(t)
	s.MaxResults = 50
	h := s.Handler()

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"invalid instance", EnumerateRequest{Instance: instance.Document{UniverseSize: 1, Weights: []int{0}, Sets: [][]int{{0}}}, MaxResults: 1}, 400, "INVALID_INSTANCE"},
		{"over server limit", EnumerateRequest{Instance: triangle, MaxResults: 51}, 400, "INVALID_INPUT"},
		{"negative results", EnumerateRequest{Instance: triangle, MaxResults: -1}, 400, "INVALID_INPUT"},
		{"bad threshold", EnumerateRequest{Instance: triangle, MaxResults: 1, Threshold: "lowest"}, 400, "INVALID_INPUT"},
		{"unknown field", map[string]any{"instance": triangle, "colour": "red"}, 400, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, "/v1/enumerate", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
			if got := decodeError(t, rec); string(got.Code) != tt.code {
				t.Errorf("code = %s, want %s", got.Code, tt.code)
			}
		})
	}
}

func TestRejectsNonJSON(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/enumerate", strings.NewReader("x"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", rec.Code)
	}
}

func TestOptimum(t *testing.T) {
	s, _ := newTestServer(t)
	rec := post(t, s.Handler(), "/v1/optimum", OptimumRequest{Instance: triangle})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var resp OptimumResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Weight != 3 || resp.GreedyWeight != 4 {
		t.Errorf("optimum %d greedy %d, want 3 and 4", resp.Weight, resp.GreedyWeight)
	}
	if resp.Gap < 0.33 || resp.Gap > 0.34 {
		t.Errorf("gap = %f, want 1/3", resp.Gap)
	}
}

func TestOptimumInfeasible(t *testing.T) {
	s, _ := newTestServer(t)
	rec := post(t, s.Handler(), "/v1/optimum", OptimumRequest{Instance: instance.Document{
		UniverseSize: 2, Weights: []int{1}, Sets: [][]int{{0}},
	}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if got := decodeError(t, rec); got.Code != "INFEASIBLE" {
		t.Errorf("code = %s, want INFEASIBLE", got.Code)
	}
}

func TestRenderDOT(t *testing.T) {
	s, _ := newTestServer(t)
	rec := post(t, s.Handler(), "/v1/render", RenderRequest{Instance: triangle, Highlight: []int{3}, Format: "dot"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "graph G {") {
		t.Errorf("body = %.40s", rec.Body.String())
	}

	bad := post(t, s.Handler(), "/v1/render", RenderRequest{Instance: triangle, Format: "png"})
	if bad.Code != http.StatusBadRequest {
		t.Errorf("png status = %d, want 400", bad.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, reg := newTestServer(t)
	m := metrics.New(reg)
	m.Register()
	defer observability.Reset()
	s.Recorder = m.Recorder()
	h := s.Handler()

	post(t, h, "/v1/enumerate", EnumerateRequest{Instance: triangle, MaxResults: 2})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`coverenum_enumerate_runs_total{status="success"} 1`,
		`coverenum_http_request_duration_seconds_count{method="POST",route="/v1/enumerate",status="200"} 1`,
		"coverenum_enumerate_greedy_calls_total ",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
	if strings.Contains(body, "coverenum_enumerate_greedy_calls_total 0\n") {
		t.Error("greedy calls were not recorded")
	}
}
