// Package server exposes the generated reports and charts over HTTP: JSON
// listings, file downloads, a health probe, and Prometheus metrics.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"farsight/internal/config"
	"farsight/internal/errors"
	"farsight/internal/infrastructure"
)

// Server serves the analysis outputs.
type Server struct {
	cfg    config.ServerConfig
	paths  *config.Paths
	logger *slog.Logger
	http   *http.Server
}

// New creates the report server with its routes and middleware wired.
func New(cfg config.ServerConfig, paths *config.Paths, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{cfg: cfg, paths: paths, logger: logger}

	r := chi.NewRouter()
	r.Use(traceMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(metricsMiddleware)
	if cfg.RateLimit.Enabled {
		r.Use(rateLimitMiddleware(cfg.RateLimit))
	}

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api", func(r chi.Router) {
		r.Get("/reports", s.handleList(paths.ReportsDir))
		r.Get("/reports/{name}", s.handleFile(paths.ReportsDir))
		r.Get("/charts", s.handleList(paths.ChartsDir))
		r.Get("/charts/{name}", s.handleFile(paths.ChartsDir))
	})

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Run starts the server and blocks until the context is cancelled, then
// shuts down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "report server listening",
			slog.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down report server")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// FileInfo is one entry of a listing response.
type FileInfo struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"status":  "ok",
		"app":     config.AppName,
		"version": config.AppVersion,
	})
}

// handleList returns the files available in a directory as JSON.
func (s *Server) handleList(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				render.JSON(w, r, []FileInfo{})
				return
			}
			s.renderError(w, r, errors.InternalServerWithError(err))
			return
		}

		files := make([]FileInfo, 0, len(entries))
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			files = append(files, FileInfo{
				Name:     entry.Name(),
				Size:     info.Size(),
				Modified: info.ModTime(),
			})
		}
		sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

		render.JSON(w, r, files)
	}
}

// handleFile serves one file from a directory. The name is restricted to a
// plain base name so directory traversal is not possible.
func (s *Server) handleFile(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
			s.renderError(w, r, errors.ErrInvalidRequest)
			return
		}

		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			s.renderError(w, r, errors.NotFoundWithResource(name))
			return
		}

		http.ServeFile(w, r, path)
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, apiErr *errors.APIError) {
	if err := render.Render(w, r, apiErr); err != nil {
		infrastructure.WithError(s.logger, err).Error("render error response")
	}
}

// traceMiddleware ensures every request carries a trace ID.
func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := infrastructure.EnsureTraceID(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs each request with its trace ID.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.InfoContext(r.Context(), "handled request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)))
	})
}
