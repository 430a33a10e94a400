// Package server implements the cabinetry web designer.
//
// Each visitor gets a workspace identified by the cabinet_session cookie.
// Forms post to /api/<action>; every action applies one cabinet edit and
// redirects back to the index page, carrying a failure as ?error=<message>.
// The current design renders at /image (PNG), /image.svg and /text.
package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/cabinetry/pkg/observability"
	"github.com/matzehuels/cabinetry/pkg/pipeline"
	"github.com/matzehuels/cabinetry/pkg/session"
	"github.com/matzehuels/cabinetry/pkg/store"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Hour
)

// Options configures a Server. Zero values get working defaults.
type Options struct {
	Designs      store.Store      // Named saved designs; required
	Sessions     session.Store    // Workspace persistence; defaults to memory
	Runner       *pipeline.Runner // Renderer; defaults to an uncached runner
	Logger       *log.Logger      // Defaults to log.Default()
	SessionTTL   time.Duration    // Defaults to session.DefaultTTL
	SecureCookie bool             // Set the Secure flag on the session cookie
	Font         string           // TrueType font for PNG labels
}

// Server serves the web designer.
type Server struct {
	designs    store.Store
	runner     *pipeline.Runner
	logger     *log.Logger
	workspaces *Workspaces
	secure     bool
	font       string
	tmpl       *template.Template
	router     chi.Router
}

// New builds a Server and its routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	s := &Server{
		designs:    opts.Designs,
		runner:     opts.Runner,
		logger:     opts.Logger,
		workspaces: NewWorkspaces(opts.Sessions, opts.SessionTTL, opts.Logger),
		secure:     opts.SecureCookie,
		font:       opts.Font,
		tmpl:       template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Workspaces returns the live workspace registry.
func (s *Server) Workspaces() *Workspaces { return s.workspaces }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/", s.handleIndex)
	r.Get("/image", s.handleRender(pipeline.FormatPNG, "image/png"))
	r.Get("/image.svg", s.handleRender(pipeline.FormatSVG, "image/svg+xml"))
	r.Get("/text", s.handleRender(pipeline.FormatText, "text/plain; charset=utf-8"))
	r.Get("/design.json", s.handleRender(pipeline.FormatJSON, "application/json"))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Route("/api", func(r chi.Router) {
		for name, fn := range actions {
			r.Post("/"+name, s.handleAction(name, fn))
		}
	})
	return r
}

// observe reports every request to the HTTP hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		observability.HTTP().OnRequest(ctx, r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		observability.HTTP().OnResponse(ctx, r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path,
			"status", status, "bytes", ww.BytesWritten(), "duration", elapsed.Round(time.Microsecond),
			"id", middleware.GetReqID(ctx))
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. Idle workspaces are swept hourly.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweep(ctx)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("web designer listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) sweep(ctx context.Context) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.workspaces.Sweep(ctx, now); n > 0 {
				s.logger.Debug("evicted idle workspaces", "count", n)
			}
		}
	}
}
