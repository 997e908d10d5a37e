// Package web provides the preview server for the conference site.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/faa-hf/confsite/internal/config"
	"github.com/faa-hf/confsite/internal/funcs"
	"github.com/faa-hf/confsite/internal/markdown"
	"github.com/faa-hf/confsite/internal/site"
	webmw "github.com/faa-hf/confsite/internal/web/middleware"
)

// Deps are the collaborators the server renders with.
type Deps struct {
	Tree        *site.Tree
	Funcs       *funcs.Env
	TemplateDir string
	Server      config.ServerConfig
}

// Server is the HTTP preview server.
type Server struct {
	tree        *site.Tree
	funcs       *funcs.Env
	templateDir string
	cfg         config.ServerConfig
	router      *chi.Mux
	server      *http.Server
}

// NewServer creates a Server over deps.
func NewServer(deps Deps) *Server {
	env := deps.Funcs
	if env == nil {
		env = &funcs.Env{Tree: deps.Tree}
	}
	if env.Markdown == nil {
		env.Markdown = markdown.New(env.Drive)
	}

	s := &Server{
		tree:        deps.Tree,
		funcs:       env,
		templateDir: deps.TemplateDir,
		cfg:         deps.Server,
		router:      chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(webmw.TrustedRealIP(s.cfg.TrustedProxyList()))
	s.router.Use(webmw.Logger)
	s.router.Use(middleware.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}
	s.router.Use(securityHeaders)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/tables/*", s.handleTables)
		r.Get("/sponsors", s.handleSponsors)
		r.Get("/palette", s.handlePalette)
	})

	s.router.Get("/*", s.handlePage)
}

// Start listens on the configured address until Shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	slog.Info("starting preview server", "addr", s.server.Addr, "content", s.tree.Root())
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses. Site pages may
// embed Drive and video links, so only framing and sniffing are locked
// down.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
