// Package web is the development server: it serves the built SPA bundle and
// reverse-proxies /api to the CareerCompass backend so the browser app and
// the API share an origin.
package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Config holds server configuration.
type Config struct {
	Port       int
	StaticDir  string // built SPA bundle; empty disables static serving
	APIBaseURL string // backend base, e.g. http://localhost:8080/api
}

// Server is the HTTP server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	config     *Config
	listener   net.Listener
}

// NewServer creates the dev server. An invalid API base URL is an error.
func NewServer(cfg *Config) (*Server, error) {
	srv := &Server{
		router: chi.NewRouter(),
		config: cfg,
	}

	srv.setupMiddleware()
	if err := srv.setupRoutes(); err != nil {
		return nil, err
	}
	return srv, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() error {
	// API passthrough
	if s.config.APIBaseURL != "" {
		proxy, err := newAPIProxy(s.config.APIBaseURL)
		if err != nil {
			return err
		}
		s.router.Handle("/api/*", proxy)
	}

	// health endpoint
	s.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			_ = err // client disconnected
		}
	})

	// SPA bundle with index.html fallback for client-side routes
	if s.config.StaticDir != "" {
		s.router.Get("/*", s.serveSPA)
	}
	return nil
}

// newAPIProxy builds a reverse proxy that rewrites /api/... onto the
// backend base path, preserving the Authorization header.
func newAPIProxy(apiBaseURL string) (http.Handler, error) {
	target, err := url.Parse(apiBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	basePath := strings.TrimSuffix(target.Path, "/")

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Scheme = target.Scheme
			pr.Out.URL.Host = target.Host
			pr.Out.URL.Path = basePath + strings.TrimPrefix(pr.In.URL.Path, "/api")
			pr.Out.URL.RawQuery = pr.In.URL.RawQuery
			pr.Out.Host = target.Host
			pr.SetXForwarded()
		},
	}
	return proxy, nil
}

// serveSPA serves files from the static dir, falling back to index.html so
// deep links into client-side routes still load the app.
func (s *Server) serveSPA(w http.ResponseWriter, r *http.Request) {
	name := filepath.Join(s.config.StaticDir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		http.ServeFile(w, r, name)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.config.StaticDir, "index.html"))
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.httpServer.Serve(listener)
}

// Stop gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// BaseURL returns the server's base URL once started.
func (s *Server) BaseURL() string {
	if s.listener != nil {
		return fmt.Sprintf("http://%s", s.listener.Addr().String())
	}
	return fmt.Sprintf("http://localhost:%d", s.config.Port)
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
