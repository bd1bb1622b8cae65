// Package server implements the callchart preview server.
//
// The server renders a fixed snapshot of call graphs, built once at
// startup, and serves them as inline SVG in the browser. There is no
// state beyond the snapshot: reloading sources means restarting the
// server, which keeps the handlers trivially safe for concurrent use.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/callchart/callchart/pkg/callgraph"
	"github.com/callchart/callchart/pkg/dot"
)

// Chart is one rendered call graph in a snapshot.
type Chart struct {
	Source string // analyzed source file
	Nodes  int
	Edges  int
	DOT    []byte
	SVG    []byte
}

// Snapshot is an immutable set of rendered charts. The ID doubles as
// the ETag for every response, so browsers re-fetch after a restart
// and cache within one.
type Snapshot struct {
	ID     string
	Charts []Chart
}

// NewSnapshot emits and renders every graph up front. Graphs that
// failed analysis (nil entries) are skipped; an empty snapshot is an
// error since the server would have nothing to show.
func NewSnapshot(ctx context.Context, graphs []*callgraph.Graph, opts dot.Options, renderer dot.Renderer) (*Snapshot, error) {
	snap := &Snapshot{ID: uuid.NewString()}

	siblings := make([]*callgraph.Graph, 0, len(graphs))
	for _, g := range graphs {
		if g != nil {
			siblings = append(siblings, g)
		}
	}
	opts.Siblings = siblings

	for _, g := range siblings {
		doc := dot.Marshal(g, opts)
		svg, err := renderer.Render(ctx, doc, dot.FormatSVG, opts.Layout)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", g.File(), err)
		}
		snap.Charts = append(snap.Charts, Chart{
			Source: g.File(),
			Nodes:  g.NodeCount(),
			Edges:  g.EdgeCount(),
			DOT:    doc,
			SVG:    svg,
		})
	}

	if len(snap.Charts) == 0 {
		return nil, errors.New("no call graphs to serve")
	}
	return snap, nil
}

// Server serves a snapshot of rendered call graphs over HTTP.
type Server struct {
	snapshot *Snapshot
	logger   *log.Logger
}

// New creates a server for the given snapshot.
func New(snapshot *Snapshot, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{snapshot: snapshot, logger: logger}
}

// Handler builds the chi router for the preview endpoints.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/graphs/{index}.svg", s.handleSVG)
	r.Get("/graphs/{index}.dot", s.handleDOT)
	r.Get("/healthz", s.handleHealth)

	return r
}

// ListenAndServe runs the server until ctx is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	s.logger.Info("preview server listening", "addr", addr, "charts", len(s.snapshot.Charts))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// logRequests logs one line per request through the charm logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

// indexTemplate renders the chart list with inline SVG.
var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>callchart</title>
<style>
body { font-family: sans-serif; margin: 2rem; background: #fafafa; }
h1 { font-size: 1.4rem; }
section { background: #fff; border: 1px solid #ddd; border-radius: 6px; margin-bottom: 2rem; padding: 1rem; }
h2 { font-size: 1rem; font-family: monospace; }
p.meta { color: #666; font-size: 0.85rem; }
section img { max-width: 100%; }
</style>
</head>
<body>
<h1>callchart</h1>
{{range $i, $c := .Charts}}
<section>
<h2>{{$c.Source}}</h2>
<p class="meta">{{$c.Nodes}} nodes &middot; {{$c.Edges}} edges &middot; <a href="/graphs/{{$i}}.dot">dot</a> &middot; <a href="/graphs/{{$i}}.svg">svg</a></p>
<img src="/graphs/{{$i}}.svg" alt="{{$c.Source}}">
</section>
{{end}}
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.notModified(w, r) {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, s.snapshot); err != nil {
		s.logger.Error("render index", "err", err)
	}
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	chart, ok := s.chart(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if s.notModified(w, r) {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(chart.SVG)
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	chart, ok := s.chart(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if s.notModified(w, r) {
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	w.Write(chart.DOT)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "ok %s\n", s.snapshot.ID)
}

// chart resolves the {index} URL parameter to a snapshot chart.
func (s *Server) chart(r *http.Request) (*Chart, bool) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || idx < 0 || idx >= len(s.snapshot.Charts) {
		return nil, false
	}
	return &s.snapshot.Charts[idx], true
}

// notModified applies the snapshot ETag; true means a 304 was written.
func (s *Server) notModified(w http.ResponseWriter, r *http.Request) bool {
	etag := `"` + s.snapshot.ID + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}
