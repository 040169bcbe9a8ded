package api

import (
	"net/http"

	"github.com/cohensara/coverenum/pkg/errors"
	"github.com/cohensara/coverenum/pkg/exact"
	"github.com/cohensara/coverenum/pkg/instance"
	coverio "github.com/cohensara/coverenum/pkg/io"
	"github.com/cohensara/coverenum/pkg/pipeline"
	"github.com/cohensara/coverenum/pkg/render"
	"github.com/cohensara/coverenum/pkg/setcover"
)

// EnumerateRequest is the body of POST /v1/enumerate.
type EnumerateRequest struct {
	Instance    instance.Document `json:"instance"`
	MaxResults  int               `json:"max_results"`
	OnlyMinimal bool              `json:"only_minimal"`
	Threshold   string            `json:"threshold,omitempty"`
	Interval    int               `json:"interval,omitempty"`
	Refresh     bool              `json:"refresh,omitempty"`
}

// OptimumRequest is the body of POST /v1/optimum.
type OptimumRequest struct {
	Instance instance.Document `json:"instance"`
}

// OptimumResponse reports the exact optimum next to the greedy seed.
type OptimumResponse struct {
	pipeline.OptimumResult
	GreedyWeight int     `json:"greedy_weight"`
	Gap          float64 `json:"gap"`
}

// RenderRequest is the body of POST /v1/render.
type RenderRequest struct {
	Instance   instance.Document `json:"instance"`
	Highlight  []int             `json:"highlight,omitempty"`
	HideUnused bool              `json:"hide_unused,omitempty"`
	Format     string            `json:"format,omitempty"` // svg (default) or dot
}

func (s *Server) handleEnumerate(w http.ResponseWriter, r *http.Request) {
	var req EnumerateRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := req.Instance.Problem()
	if err != nil {
		writeError(w, err)
		return
	}
	if req.MaxResults == 0 {
		req.MaxResults = pipeline.DefaultMaxResults
	}
	if s.MaxResults > 0 && req.MaxResults > s.MaxResults {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "max_results exceeds server limit %d", s.MaxResults))
		return
	}

	opts := pipeline.Options{
		Problem:     p,
		MaxResults:  req.MaxResults,
		OnlyMinimal: req.OnlyMinimal,
		Threshold:   req.Threshold,
		Interval:    req.Interval,
		Refresh:     req.Refresh,
		Recorder:    s.Recorder,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.Runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coverio.NewReport(opts, res))
}

func (s *Server) handleOptimum(w http.ResponseWriter, r *http.Request) {
	var req OptimumRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := req.Instance.Problem()
	if err != nil {
		writeError(w, err)
		return
	}
	opt, err := s.Runner.Optimum(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := OptimumResponse{OptimumResult: *opt}
	if seed, ok := setcover.Greedy(p, nil, nil); ok {
		resp.GreedyWeight = seed.Weight()
		resp.Gap = exact.Gap(seed.Weight(), opt.Weight)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := req.Instance.Problem()
	if err != nil {
		writeError(w, err)
		return
	}

	format := req.Format
	if format == "" {
		format = render.FormatSVG
	}
	contentType := map[string]string{
		render.FormatSVG: "image/svg+xml",
		render.FormatDOT: "text/vnd.graphviz",
	}[format]
	if contentType == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "format must be svg or dot, got %q", format))
		return
	}

	out, err := render.Render(r.Context(), p, render.Options{
		Highlight:  req.Highlight,
		HideUnused: req.HideUnused,
	}, format)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(out)
}
