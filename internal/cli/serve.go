package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowergraph/internal/metrics"
	fgerrors "github.com/matzehuels/flowergraph/pkg/errors"
	"github.com/matzehuels/flowergraph/pkg/flower"
	"github.com/matzehuels/flowergraph/pkg/observability"
	"github.com/matzehuels/flowergraph/pkg/pipeline"
	"github.com/matzehuels/flowergraph/pkg/render/flower/sink"
)

const (
	defaultAddr     = ":8080"
	shutdownTimeout = 5 * time.Second
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

// serveCommand creates the serve command: an HTTP API over one graph whose
// hover state is shared by every client.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags   graphFlags
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [records]",
		Short: "Serve a flower graph over HTTP",
		Long: `Serve a flower graph over HTTP.

Endpoints:
  GET    /graph.{svg,png,pdf,json,dot}  the graph with the current hover state
                                        (?viz=nodelink for the node-link view)
  GET    /legend                        the ranked legend
  GET    /records                       the projected records
  GET    /hover                         the hover state
  PUT    /hover                         set the hover state: {"label": "...", "types": [...]}
  DELETE /hover                         clear the hover state
  GET    /healthz                       liveness
  GET    /metrics                       Prometheus metrics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, opts, fc, err := loadGraph(cmd, &flags, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") && fc.Serve.Addr != "" {
				addr = fc.Serve.Addr
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			m := metrics.New(metrics.WithRegistry(reg))
			observability.SetPipelineHooks(m)
			observability.SetCacheHooks(m)
			observability.SetHTTPHooks(m)
			observability.SetHoverHooks(m)
			instrumentHover(g.Hover())

			opts.Logger = c.Logger
			srv := newServer(g, opts, runner, c.Logger)
			return listenAndServe(cmd.Context(), addr, srv.routes(reg), c.Logger)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

// listenAndServe runs h until ctx is cancelled, then shuts down gracefully.
func listenAndServe(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		printSuccess("Serving on %s", StyleHighlight.Render(addr))
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// server - HTTP handlers
// =============================================================================

type server struct {
	graph  *flower.Graph[flower.Record]
	opts   pipeline.Options
	runner *pipeline.Runner
	logger *log.Logger
}

func newServer(g *flower.Graph[flower.Record], opts pipeline.Options, runner *pipeline.Runner, logger *log.Logger) *server {
	return &server{graph: g, opts: opts, runner: runner, logger: logger}
}

// routes builds the router. A nil gatherer disables /metrics.
func (s *server) routes(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(instrument)

	r.Get("/graph.{format}", s.handleGraph)
	r.Get("/legend", s.handleLegend)
	r.Get("/records", s.handleRecords)
	r.Route("/hover", func(r chi.Router) {
		r.Get("/", s.handleHoverGet)
		r.Put("/", s.handleHoverPut)
		r.Delete("/", s.handleHoverDelete)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok\n"))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, fgerrors.New(fgerrors.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
	return r
}

// instrument reports requests to the HTTP hooks.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}

func (s *server) handleGraph(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	opts := s.opts
	opts.Formats = []string{format}
	if viz := r.URL.Query().Get("viz"); viz != "" {
		opts.VizType = viz
	}
	opts.Static = r.URL.Query().Has("static")

	state := s.graph.Hover().State()
	opts.HoverTypes = state.Types
	opts.HoverLabel = nil
	if state.HasLabel {
		opts.HoverLabel = &state.Label
	}

	opts.SetRenderDefaults()
	if err := opts.ValidateForRender(); err != nil {
		s.writeError(w, err)
		return
	}

	scene, nodes := sink.Place(s.graph, opts.RingStyle())
	artifacts, err := s.runner.Render(r.Context(), pipeline.Layout{Scene: scene, Nodes: nodes}, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Write(artifacts[format])
}

func (s *server) handleLegend(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.graph.Legend())
}

func (s *server) handleRecords(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.graph.Records())
}

func (s *server) handleHoverGet(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.graph.Hover().State())
}

// hoverRequest is the body of PUT /hover. An absent label leaves the label
// track idle; an absent types list leaves the types track idle.
type hoverRequest struct {
	Label *string  `json:"label"`
	Types []string `json:"types"`
}

func (s *server) handleHoverPut(w http.ResponseWriter, r *http.Request) {
	var req hoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fgerrors.Wrap(fgerrors.ErrCodeInvalidInput, err, "decode hover request"))
		return
	}
	next := flower.HoverState{Types: req.Types}
	if next.Types == nil {
		next.Types = []string{}
	}
	if req.Label != nil {
		next.Label, next.HasLabel = *req.Label, true
	}
	s.graph.Hover().Apply(next)
	writeJSON(w, http.StatusOK, s.graph.Hover().State())
}

func (s *server) handleHoverDelete(w http.ResponseWriter, _ *http.Request) {
	s.graph.Hover().Leave()
	writeJSON(w, http.StatusOK, s.graph.Hover().State())
}

// writeError responds with the error's code. Uncoded errors are reported as
// INTERNAL_ERROR without their message.
func (s *server) writeError(w http.ResponseWriter, err error) {
	if fgerrors.GetCode(err) == "" {
		err = fgerrors.Wrap(fgerrors.ErrCodeInternal, err, "internal error")
	}
	status := fgerrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{
		"code":  string(fgerrors.GetCode(err)),
		"error": fgerrors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
