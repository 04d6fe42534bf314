// Package web serves the browser explorer and its JSON API over HTTP.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/internal/observability"
	"github.com/huangsam/devscope/schema"
)

// Server timeouts.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"ago":       humanize.Time,
	"comma":     func(n int) string { return humanize.Comma(int64(n)) },
	"bytes":     func(n int64) string {
		if n < 0 {
			n = 0
		}
		return humanize.Bytes(uint64(n))
	},
	"pct":       func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"escape":    url.PathEscape,
	"langColor": schema.LanguageColor,
}

var pageTemplate = template.Must(
	template.New("index.html").Funcs(funcs).ParseFS(templateFS, "templates/index.html"),
)

// Server is the browser explorer.
type Server struct {
	cfg      *contract.Config
	client   contract.ProfileClient
	recorder contract.Recorder
	metrics  http.Handler // nil when metrics are disabled
	logger   *slog.Logger
}

// NewServer creates a Server. Metrics may be nil, in which case lookups are
// not recorded and /metrics is not served.
func NewServer(cfg *contract.Config, client contract.ProfileClient, metrics *observability.Metrics) *Server {
	s := &Server{
		cfg:      cfg,
		client:   client,
		recorder: contract.NopRecorder{},
		logger:   slog.Default().With(slog.String("component", "web")),
	}
	if metrics != nil {
		s.recorder = metrics
		s.metrics = metrics.Handler()
	}
	return s
}

// Handler returns the routes wrapped with CORS and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/profiles/{handle}", s.handleProfileAPI)
	mux.HandleFunc("GET /chart/{handle}", s.handleChart)
	mux.Handle("GET /healthz", observability.HealthHandler())
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}
	return observability.LoggingMiddleware(s.logger, corsMiddleware(mux))
}

// Run serves on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.ListenAddr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("web server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("web server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web server shutdown: %w", err)
	}
	return nil
}

// lookupConfig derives the per-request config for a handle.
func (s *Server) lookupConfig(handle string) *contract.Config {
	cfg := s.cfg.CloneForHandle(handle)
	cfg.Output = schema.JSONOut
	cfg.OutputFile = ""
	return cfg
}
