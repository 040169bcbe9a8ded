// Package api serves enumeration over HTTP.
//
// Routes:
//
//	POST /v1/enumerate  enumerate covers of an instance in the request body
//	POST /v1/optimum    exact optimum and greedy gap
//	POST /v1/render     draw an instance, optionally highlighting a cover
//	GET  /healthz       liveness
//	GET  /metrics       Prometheus exposition (when a gatherer is configured)
//
// Instances are sent in the JSON document form of pkg/instance. Errors are
// JSON objects {"error": {"code": ..., "message": ...}} with a status
// derived from the error code.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cohensara/coverenum/pkg/errors"
	"github.com/cohensara/coverenum/pkg/observability"
	"github.com/cohensara/coverenum/pkg/pipeline"
	"github.com/cohensara/coverenum/pkg/setcover"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 32 << 20

// Server holds the API dependencies.
type Server struct {
	Runner *pipeline.Runner
	Logger *log.Logger

	// MaxResults caps max_results per request. Zero means no cap beyond
	// the global validation limit.
	MaxResults int

	// Gatherer backs GET /metrics. Nil disables the route.
	Gatherer prometheus.Gatherer

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// ReadTimeout bounds reading a request, body included.
	ReadTimeout time.Duration

	// Recorder receives live statistics from every enumeration. Optional.
	Recorder setcover.Recorder
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe(r))
	r.Use(middleware.Recoverer)
	if s.Timeout > 0 {
		r.Use(middleware.Timeout(s.Timeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/enumerate", s.handleEnumerate)
		r.Post("/optimum", s.handleOptimum)
		r.Post("/render", s.handleRender)
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.ReadTimeout,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// observe logs each request and reports it to the server hooks under its
// route pattern.
func (s *Server) observe(routes chi.Routes) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			route := "unmatched"
			if rctx := chi.NewRouteContext(); routes.Match(rctx, r.Method, r.URL.Path) {
				route = rctx.RoutePattern()
			}

			hooks := observability.Server()
			hooks.OnRequest(r.Context(), r.Method, route)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
			if s.Logger != nil {
				s.Logger.Info("request",
					"method", r.Method,
					"route", route,
					"status", status,
					"duration", time.Since(start),
					"id", middleware.GetReqID(r.Context()))
			}
		})
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, errors.HTTPStatus(err), errorBody{Error: errorDetail{
		Code:    code,
		Message: errors.UserMessage(err),
	}})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}
